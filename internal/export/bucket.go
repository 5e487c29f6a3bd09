package export

import (
	"math"
	"sort"

	"github.com/nwp-tools/windborne-export/internal/log"
)

// Segment is the contiguous run of sorted observations assigned to one
// time bucket. Label is the bucket's temporal midpoint in Unix seconds
// and names the output file.
type Segment struct {
	Observations []Observation
	Label        int64
}

// Bucketize sorts the partition's observations by timestamp and splits
// them into fixed-width buckets aligned to the data itself: the first
// bucket starts at the earliest observation's timestamp floored to a
// multiple of the bucket width. Anchoring to the data rather than the
// requested start time avoids emitting a spurious empty leading bucket
// when the first observation lags the request window.
//
// A bucket closes as soon as an observation falls more than one width
// past the current bucket start; the bucket start then advances by
// exactly one width. With gaps wider than a bucket this means the start
// lags the data until it catches up, one closure at a time. The trailing
// bucket is always emitted, partial or not.
//
// The caller guarantees obs is non-empty and bucketHours is positive;
// empty partitions never reach this function.
func Bucketize(obs []Observation, startTime int64, bucketHours float64) []Segment {
	if len(obs) == 0 {
		return nil
	}

	width := int64(math.Round(bucketHours * 3600))
	if width <= 0 {
		return nil
	}

	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Timestamp < obs[j].Timestamp
	})

	earliest := obs[0].Timestamp
	if earliest < startTime {
		log.Warnf("observation at %d precedes the requested start time %d; proceeding anyway", earliest, startTime)
	}

	curtime := earliest - floorMod(earliest, width)

	var segments []Segment
	startIndex := 0
	for i := range obs {
		if obs[i].Timestamp-curtime > width {
			segments = append(segments, Segment{
				Observations: obs[startIndex:i],
				Label:        curtime + width/2,
			})
			startIndex = i
			curtime += width
		}
	}

	// The latest partial bucket is always emitted.
	segments = append(segments, Segment{
		Observations: obs[startIndex:],
		Label:        curtime + width/2,
	})

	return segments
}

// floorMod returns a mod b with the sign of b, matching mathematical
// floored division for pre-epoch timestamps.
func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
