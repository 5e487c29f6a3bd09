package export

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nwp-tools/windborne-export/internal/log"
)

var validate = validator.New()

// RunOptions holds the resolved parameters for one export run.
type RunOptions struct {
	StartTime   int64   `validate:"required,gt=0"`
	EndTime     int64   `validate:"required,gtfield=StartTime"`
	BucketHours float64 `validate:"required,gt=0"`
	Combine     bool
}

// Validate checks the run options before any network activity.
func (o RunOptions) Validate() error {
	return validate.Struct(o)
}

// Exporter orchestrates one export run: collect all observations,
// bucketize each partition, and write one CSV file per bucket.
type Exporter struct {
	collector *Collector
	writer    *CSVWriter
}

// NewExporter creates a new Exporter.
func NewExporter(collector *Collector, writer *CSVWriter) *Exporter {
	return &Exporter{
		collector: collector,
		writer:    writer,
	}
}

// Run performs a full export. A window with no observations is a
// successful no-op with zero output files.
func (e *Exporter) Run(ctx context.Context, opts RunOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid run options: %w", err)
	}

	partitions, err := e.collector.Collect(ctx, opts.StartTime, opts.EndTime, opts.Combine)
	if err != nil {
		return err
	}
	if len(partitions) == 0 {
		log.Info("no observations found")
		return nil
	}

	files := 0
	for _, p := range partitions {
		segments := Bucketize(p.Observations, opts.StartTime, opts.BucketHours)
		for _, seg := range segments {
			name, err := e.writer.WriteSegment(p.Mission, seg, opts.BucketHours)
			if err != nil {
				return fmt.Errorf("write segment for mission %s: %w", p.Mission, err)
			}
			if name == "" {
				continue
			}
			files++
			log.Infof("wrote %d observation(s) to %s", len(seg.Observations), name)
		}
	}

	log.Infof("export complete: %d partition(s), %d file(s)", len(partitions), files)
	return nil
}
