package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwp-tools/windborne-export/internal/export"
)

func TestPartitionsGroupsByMissionSorted(t *testing.T) {
	s := NewPartitionStore()
	s.Add(export.Observation{Timestamp: 100, MissionName: "W-2"})
	s.Add(export.Observation{Timestamp: 200, MissionName: "W-1"})
	s.Add(export.Observation{Timestamp: 300, MissionName: "W-2"})

	require.Equal(t, 3, s.Len())

	parts := s.Partitions(false)
	require.Len(t, parts, 2)
	assert.Equal(t, "W-1", parts[0].Mission)
	assert.Len(t, parts[0].Observations, 1)
	assert.Equal(t, "W-2", parts[1].Mission)
	assert.Len(t, parts[1].Observations, 2)
}

func TestPartitionsCombinedKeepsArrivalOrder(t *testing.T) {
	s := NewPartitionStore()
	s.Add(export.Observation{Timestamp: 300, MissionName: "W-2"})
	s.Add(export.Observation{Timestamp: 100, MissionName: "W-1"})

	parts := s.Partitions(true)
	require.Len(t, parts, 1)
	assert.Equal(t, export.CombinedMission, parts[0].Mission)
	assert.Equal(t, int64(300), parts[0].Observations[0].Timestamp)
	assert.Equal(t, int64(100), parts[0].Observations[1].Timestamp)
}

func TestPartitionsEmptyStore(t *testing.T) {
	s := NewPartitionStore()
	assert.Nil(t, s.Partitions(false))
	assert.Nil(t, s.Partitions(true))
}

func TestResetClearsAccumulatedState(t *testing.T) {
	s := NewPartitionStore()
	s.Add(export.Observation{Timestamp: 100, MissionName: "W-1"})
	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Partitions(false))
}
