package export

import (
	"context"
	"fmt"

	"github.com/nwp-tools/windborne-export/internal/log"
)

// Collector drives the paginated source until it reports no further
// pages and groups the accepted observations by mission.
type Collector struct {
	src Source
	acc Accumulator
}

// NewCollector creates a new Collector.
func NewCollector(src Source, acc Accumulator) *Collector {
	return &Collector{
		src: src,
		acc: acc,
	}
}

// Collect fetches every page in the [minTime, maxTime] window and
// returns the accepted observations as partitions. Records without a
// mission name are dropped with a warning; records without a usable
// timestamp are dropped as malformed. A nil result with a nil error
// means the source had no observations for the window, which is not a
// failure. Any fetch error aborts the run.
func (c *Collector) Collect(ctx context.Context, minTime, maxTime int64, combine bool) ([]Partition, error) {
	c.acc.Reset()

	q := Query{MinTime: minTime, MaxTime: maxTime}
	for {
		page, err := c.src.Observations(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("fetch observations page: %w", err)
		}

		log.Infof("fetched page with %d observation(s)", len(page.Observations))

		for _, obs := range page.Observations {
			if obs.Timestamp <= 0 {
				log.Warnf("got an observation without a usable timestamp; dropping it")
				continue
			}
			if obs.MissionName == "" {
				log.Warnf("got an observation without a mission name")
				continue
			}
			c.acc.Add(obs)
		}

		if !page.HasNextPage {
			break
		}
		q.Cursor = page.NextPage
	}

	if c.acc.Len() == 0 {
		return nil, nil
	}

	return c.acc.Partitions(combine), nil
}
