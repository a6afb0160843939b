package collector

import (
	"context"

	"github.com/esadmin/esadmctl/pkg/elastic"
)

// HealthCollector gathers the cluster health section.
type HealthCollector struct {
	Client *elastic.Client
}

func (c *HealthCollector) Collect(ctx context.Context) (*Section, error) {
	health, err := c.Client.Health(ctx)
	if err != nil {
		return nil, err
	}
	return &Section{Name: "health", Data: health}, nil
}

// NodesCollector gathers the node listing section.
type NodesCollector struct {
	Client *elastic.Client
}

func (c *NodesCollector) Collect(ctx context.Context) (*Section, error) {
	nodes, err := c.Client.CatNodes(ctx)
	if err != nil {
		return nil, err
	}
	return &Section{Name: "nodes", Data: nodes}, nil
}

// IndicesCollector gathers the index listing section.
type IndicesCollector struct {
	Client  *elastic.Client
	Pattern string
}

func (c *IndicesCollector) Collect(ctx context.Context) (*Section, error) {
	indices, err := c.Client.CatIndices(ctx, c.Pattern)
	if err != nil {
		return nil, err
	}
	return &Section{Name: "indices", Data: indices}, nil
}

// ShardsCollector gathers the shard listing section.
type ShardsCollector struct {
	Client  *elastic.Client
	Pattern string
}

func (c *ShardsCollector) Collect(ctx context.Context) (*Section, error) {
	shards, err := c.Client.CatShards(ctx, c.Pattern)
	if err != nil {
		return nil, err
	}
	return &Section{Name: "shards", Data: shards}, nil
}

// RecoveryCollector gathers the shard recovery section.
type RecoveryCollector struct {
	Client  *elastic.Client
	Pattern string
}

func (c *RecoveryCollector) Collect(ctx context.Context) (*Section, error) {
	recoveries, err := c.Client.CatRecovery(ctx, c.Pattern)
	if err != nil {
		return nil, err
	}
	return &Section{Name: "recovery", Data: recoveries}, nil
}
