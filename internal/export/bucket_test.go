package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obsAt(ts int64) Observation {
	return Observation{Timestamp: ts, MissionName: "W-100"}
}

func obsTimestamps(obs []Observation) []int64 {
	out := make([]int64, len(obs))
	for i, o := range obs {
		out[i] = o.Timestamp
	}
	return out
}

// TestBucketizeSplitsAtWidth covers the canonical case: three
// observations with one falling more than a bucket width past the
// anchor.
func TestBucketizeSplitsAtWidth(t *testing.T) {
	obs := []Observation{obsAt(100), obsAt(200), obsAt(25000)}

	segments := Bucketize(obs, 0, 6.0)
	require.Len(t, segments, 2)

	// Anchor = 100 - (100 mod 21600) = 0, labels are midpoints.
	assert.Equal(t, []int64{100, 200}, obsTimestamps(segments[0].Observations))
	assert.Equal(t, int64(10800), segments[0].Label)

	assert.Equal(t, []int64{25000}, obsTimestamps(segments[1].Observations))
	assert.Equal(t, int64(32400), segments[1].Label)
}

func TestBucketizeSingleObservation(t *testing.T) {
	segments := Bucketize([]Observation{obsAt(30000)}, 0, 6.0)
	require.Len(t, segments, 1)

	assert.Equal(t, []int64{30000}, obsTimestamps(segments[0].Observations))
	// floor(30000, 21600) = 21600, midpoint 21600 + 10800.
	assert.Equal(t, int64(32400), segments[0].Label)
}

func TestBucketizeSortsInput(t *testing.T) {
	obs := []Observation{obsAt(25000), obsAt(200), obsAt(100)}

	segments := Bucketize(obs, 0, 6.0)
	require.Len(t, segments, 2)
	assert.Equal(t, []int64{100, 200}, obsTimestamps(segments[0].Observations))
	assert.Equal(t, []int64{25000}, obsTimestamps(segments[1].Observations))
}

// TestBucketizeBoundaryIsInclusive: an observation exactly one width
// past the bucket start does not close the bucket (the check is a
// strict greater-than).
func TestBucketizeBoundaryIsInclusive(t *testing.T) {
	obs := []Observation{obsAt(0), obsAt(3600)}

	segments := Bucketize(obs, 0, 1.0)
	require.Len(t, segments, 1)
	assert.Equal(t, []int64{0, 3600}, obsTimestamps(segments[0].Observations))
	assert.Equal(t, int64(1800), segments[0].Label)
}

// TestBucketizeSparseGapAdvancesOneWidth pins the one-bucket-per-trigger
// behaviour: a gap spanning several widths still advances the bucket
// start by exactly one width per closure, so the second label does not
// correspond to the bucket the late observation actually falls in.
func TestBucketizeSparseGapAdvancesOneWidth(t *testing.T) {
	obs := []Observation{obsAt(100), obsAt(100000)}

	segments := Bucketize(obs, 0, 6.0)
	require.Len(t, segments, 2)

	assert.Equal(t, []int64{100}, obsTimestamps(segments[0].Observations))
	assert.Equal(t, int64(10800), segments[0].Label)

	assert.Equal(t, []int64{100000}, obsTimestamps(segments[1].Observations))
	assert.Equal(t, int64(32400), segments[1].Label)
}

func TestBucketizeFractionalHours(t *testing.T) {
	obs := []Observation{obsAt(0), obsAt(100), obsAt(2000)}

	segments := Bucketize(obs, 0, 0.5)
	require.Len(t, segments, 2)

	assert.Equal(t, []int64{0, 100}, obsTimestamps(segments[0].Observations))
	assert.Equal(t, int64(900), segments[0].Label)

	assert.Equal(t, []int64{2000}, obsTimestamps(segments[1].Observations))
	assert.Equal(t, int64(2700), segments[1].Label)
}

// TestBucketizePartitionsInputExactly checks the core guarantees over a
// denser, irregular stream: every observation lands in exactly one
// segment, segments are contiguous in sorted order, and labels step by
// exactly one width.
func TestBucketizePartitionsInputExactly(t *testing.T) {
	timestamps := []int64{
		7200, 50, 3600, 90000, 86400, 14000, 14001, 43200, 100, 200000,
	}
	obs := make([]Observation, len(timestamps))
	for i, ts := range timestamps {
		obs[i] = obsAt(ts)
	}

	const width = int64(21600)
	segments := Bucketize(obs, 0, 6.0)
	require.NotEmpty(t, segments)

	var flattened []int64
	for i, seg := range segments {
		flattened = append(flattened, obsTimestamps(seg.Observations)...)
		if i > 0 {
			assert.Equal(t, segments[i-1].Label+width, seg.Label,
				"labels must advance by exactly one width")
		}
	}

	// Union of segments equals the sorted input, no loss or duplication.
	assert.Equal(t, []int64{50, 100, 3600, 7200, 14000, 14001, 43200, 86400, 90000, 200000}, flattened)

	// First label is the anchored bucket's midpoint.
	assert.Equal(t, int64(10800), segments[0].Label)
}

// TestBucketizeAnchorsToData: when the first observation lags the
// requested start, buckets align to the observation, not the request.
func TestBucketizeAnchorsToData(t *testing.T) {
	obs := []Observation{obsAt(90001)}

	segments := Bucketize(obs, 0, 6.0)
	require.Len(t, segments, 1)
	// floor(90001, 21600) = 86400, midpoint 97200.
	assert.Equal(t, int64(97200), segments[0].Label)
}

func TestBucketizeEmptyInput(t *testing.T) {
	assert.Nil(t, Bucketize(nil, 0, 6.0))
}
