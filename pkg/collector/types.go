package collector

import "context"

// Section is one named slice of the cluster overview: health, nodes, indices,
// shards, or recovery.
type Section struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// Collector defines the interface for gathering one section of cluster state.
// All collectors must support context-based cancellation.
type Collector interface {
	Collect(ctx context.Context) (*Section, error)
}
