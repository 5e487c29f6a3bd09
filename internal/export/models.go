package export

import "context"

// CombinedMission is the partition name used when all missions are
// exported into a single set of output files.
const CombinedMission = "all"

// Observation is a single timestamped sensor reading. Timestamp is
// required; every other field is optional and renders as an empty CSV
// column when absent.
type Observation struct {
	Timestamp   int64  `json:"timestamp"`
	MissionName string `json:"mission_name,omitempty"`

	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	Altitude         *float64 `json:"altitude,omitempty"`
	Humidity         *float64 `json:"humidity,omitempty"`
	Pressure         *float64 `json:"pressure,omitempty"`
	SpecificHumidity *float64 `json:"specific_humidity,omitempty"`
	SpeedU           *float64 `json:"speed_u,omitempty"`
	SpeedV           *float64 `json:"speed_v,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
}

// Partition is a named group of observations, either one mission or
// the combined "all" group.
type Partition struct {
	Mission      string
	Observations []Observation
}

// Query identifies one page of the observation stream. Cursor is the
// opaque continuation reference from the previous page; empty for the
// first page.
type Query struct {
	MinTime int64
	MaxTime int64
	Cursor  string
}

// Page is one response from the paginated observation source.
type Page struct {
	Observations []Observation `json:"observations"`
	HasNextPage  bool          `json:"has_next_page"`
	NextPage     string        `json:"next_page"`
}

// Source abstracts the remote observation API (e.g. the WindBorne
// super-observations endpoint).
type Source interface {
	Observations(ctx context.Context, q Query) (Page, error)
}

// Accumulator is the contract the partition store must satisfy.
type Accumulator interface {
	Reset()
	Add(obs Observation)
	Len() int
	Partitions(combine bool) []Partition
}
