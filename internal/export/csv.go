package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// csvColumns is the fixed output column order. "time" is derived from
// "timestamp"; every other column comes straight off the observation.
var csvColumns = []string{
	"timestamp", "time", "latitude", "longitude", "altitude", "humidity",
	"mission_name", "pressure", "specific_humidity", "speed_u", "speed_v",
	"temperature",
}

// CSVWriter renders segments as CSV files in a target directory,
// overwriting any existing file of the same name.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates a CSVWriter targeting dir ("." for the working
// directory).
func NewCSVWriter(dir string) *CSVWriter {
	if dir == "" {
		dir = "."
	}
	return &CSVWriter{dir: dir}
}

// WriteSegment writes one segment to its bucket's file and returns the
// file name. An empty segment produces no file and returns "".
func (w *CSVWriter) WriteSegment(mission string, seg Segment, bucketHours float64) (string, error) {
	if len(seg.Observations) == 0 {
		return "", nil
	}

	name := segmentFileName(mission, seg.Label, bucketHours)
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvColumns); err != nil {
		return "", fmt.Errorf("write header to %s: %w", path, err)
	}

	for _, obs := range seg.Observations {
		if err := cw.Write(observationRow(obs)); err != nil {
			return "", fmt.Errorf("write row to %s: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return name, nil
}

// segmentFileName derives the output file name from the segment's label
// timestamp rendered in UTC, e.g. WindBorne_W-1234_2024-04-29_00_6h.csv.
func segmentFileName(mission string, label int64, bucketHours float64) string {
	mt := time.Unix(label, 0).UTC()
	return fmt.Sprintf("WindBorne_%s_%04d-%02d-%02d_%02d_%dh.csv",
		mission, mt.Year(), int(mt.Month()), mt.Day(), mt.Hour(), int(bucketHours))
}

func observationRow(obs Observation) []string {
	row := make([]string, 0, len(csvColumns))
	row = append(row,
		strconv.FormatInt(obs.Timestamp, 10),
		time.Unix(obs.Timestamp, 0).UTC().Format(time.RFC3339),
		formatOptional(obs.Latitude),
		formatOptional(obs.Longitude),
		formatOptional(obs.Altitude),
		formatOptional(obs.Humidity),
		obs.MissionName,
		formatOptional(obs.Pressure),
		formatOptional(obs.SpecificHumidity),
		formatOptional(obs.SpeedU),
		formatOptional(obs.SpeedV),
		formatOptional(obs.Temperature),
	)
	return row
}

// formatOptional renders an optional field, blank when absent.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
