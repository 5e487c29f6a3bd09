package store

import (
	"sort"

	"github.com/nwp-tools/windborne-export/internal/export"
)

// PartitionStore accumulates accepted observations during a fetch run
// and hands them back grouped by mission. The collector owns it
// exclusively while fetching; the returned partitions are read-only
// from the store's point of view.
type PartitionStore struct {
	// key: mission name, value: observations in arrival order
	byMission map[string][]export.Observation
	all       []export.Observation
}

// NewPartitionStore creates an empty PartitionStore.
func NewPartitionStore() *PartitionStore {
	return &PartitionStore{
		byMission: make(map[string][]export.Observation),
	}
}

// Reset discards all accumulated observations. Called at the start of
// each collection run so a long-lived store can be reused across polls.
func (s *PartitionStore) Reset() {
	s.byMission = make(map[string][]export.Observation)
	s.all = nil
}

// Add appends an observation to its mission's group and to the combined
// group. The caller has already rejected records without a mission.
func (s *PartitionStore) Add(obs export.Observation) {
	s.byMission[obs.MissionName] = append(s.byMission[obs.MissionName], obs)
	s.all = append(s.all, obs)
}

// Len returns the total number of accumulated observations.
func (s *PartitionStore) Len() int {
	return len(s.all)
}

// Partitions returns the accumulated observations as partitions. With
// combine set, everything lands in one partition named "all"; otherwise
// one partition per mission, in sorted mission-name order so output is
// deterministic.
func (s *PartitionStore) Partitions(combine bool) []export.Partition {
	if len(s.all) == 0 {
		return nil
	}

	if combine {
		return []export.Partition{{
			Mission:      export.CombinedMission,
			Observations: s.all,
		}}
	}

	missions := make([]string, 0, len(s.byMission))
	for m := range s.byMission {
		missions = append(missions, m)
	}
	sort.Strings(missions)

	parts := make([]export.Partition, 0, len(missions))
	for _, m := range missions {
		parts = append(parts, export.Partition{
			Mission:      m,
			Observations: s.byMission[m],
		})
	}
	return parts
}
