package collector

import (
	"github.com/esadmin/esadmctl/pkg/elastic"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateHealthCollector() Collector
	CreateNodesCollector() Collector
	CreateIndicesCollector() Collector
	CreateShardsCollector() Collector
	CreateRecoveryCollector() Collector
}

// DefaultFactory creates collectors backed by one cluster client.
type DefaultFactory struct {
	Client *elastic.Client

	// IndexPattern restricts the indices, shards and recovery sections.
	// Empty collects everything.
	IndexPattern string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(client *elastic.Client) *DefaultFactory {
	return &DefaultFactory{Client: client}
}

// CreateHealthCollector creates a cluster health collector.
func (f *DefaultFactory) CreateHealthCollector() Collector {
	return &HealthCollector{Client: f.Client}
}

// CreateNodesCollector creates a node listing collector.
func (f *DefaultFactory) CreateNodesCollector() Collector {
	return &NodesCollector{Client: f.Client}
}

// CreateIndicesCollector creates an index listing collector.
func (f *DefaultFactory) CreateIndicesCollector() Collector {
	return &IndicesCollector{Client: f.Client, Pattern: f.IndexPattern}
}

// CreateShardsCollector creates a shard listing collector.
func (f *DefaultFactory) CreateShardsCollector() Collector {
	return &ShardsCollector{Client: f.Client, Pattern: f.IndexPattern}
}

// CreateRecoveryCollector creates a shard recovery collector.
func (f *DefaultFactory) CreateRecoveryCollector() Collector {
	return &RecoveryCollector{Client: f.Client, Pattern: f.IndexPattern}
}
