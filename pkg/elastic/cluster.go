/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
)

// ClusterHealth is the _cluster/health response.
type ClusterHealth struct {
	ClusterName                 string  `json:"cluster_name"`
	Status                      string  `json:"status"`
	TimedOut                    bool    `json:"timed_out"`
	NumberOfNodes               int     `json:"number_of_nodes"`
	NumberOfDataNodes           int     `json:"number_of_data_nodes"`
	ActivePrimaryShards         int     `json:"active_primary_shards"`
	ActiveShards                int     `json:"active_shards"`
	RelocatingShards            int     `json:"relocating_shards"`
	InitializingShards          int     `json:"initializing_shards"`
	UnassignedShards            int     `json:"unassigned_shards"`
	PendingTasks                int     `json:"number_of_pending_tasks"`
	ActiveShardsPercentAsNumber float64 `json:"active_shards_percent_as_number"`
}

// CatNode is one row of _cat/nodes.
type CatNode struct {
	Name        string `json:"name"`
	IP          string `json:"ip"`
	NodeRole    string `json:"node.role"`
	Master      string `json:"master"`
	HeapPercent string `json:"heap.percent"`
	RAMPercent  string `json:"ram.percent"`
	CPU         string `json:"cpu"`
	Load1m      string `json:"load_1m"`
	Uptime      string `json:"uptime"`
	Version     string `json:"version"`
}

// Health returns the cluster health summary.
func (c *Client) Health(ctx context.Context) (ClusterHealth, error) {
	res, err := c.es.Cluster.Health(c.es.Cluster.Health.WithContext(ctx))
	var health ClusterHealth
	err = decode(res, err, "cluster health", &health)
	return health, err
}

// Settings returns the raw cluster settings, optionally with defaults.
func (c *Client) Settings(ctx context.Context, includeDefaults bool) (json.RawMessage, error) {
	res, err := c.es.Cluster.GetSettings(
		c.es.Cluster.GetSettings.WithContext(ctx),
		c.es.Cluster.GetSettings.WithIncludeDefaults(includeDefaults),
	)
	return consume(res, err, "cluster settings")
}

// UpdateTransientSettings applies a transient settings change. Used to toggle
// shard allocation around maintenance.
func (c *Client) UpdateTransientSettings(ctx context.Context, settings map[string]any) (json.RawMessage, error) {
	body := map[string]any{"transient": settings}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	res, err := c.es.Cluster.PutSettings(
		bytes.NewReader(payload),
		c.es.Cluster.PutSettings.WithContext(ctx),
	)
	return consume(res, err, "updating cluster settings")
}

// State returns the raw cluster state for the given metrics ("routing_table",
// "nodes", ...). Empty metrics return the full state.
func (c *Client) State(ctx context.Context, metrics ...string) (json.RawMessage, error) {
	res, err := c.es.Cluster.State(
		c.es.Cluster.State.WithContext(ctx),
		c.es.Cluster.State.WithMetric(metrics...),
	)
	return consume(res, err, "cluster state")
}

// AllocationExplain returns the allocation explanation for the first
// unassigned shard the cluster finds.
func (c *Client) AllocationExplain(ctx context.Context) (json.RawMessage, error) {
	res, err := c.es.Cluster.AllocationExplain(
		c.es.Cluster.AllocationExplain.WithContext(ctx),
	)
	return consume(res, err, "allocation explain")
}

// CatNodes lists the cluster nodes in cat format.
func (c *Client) CatNodes(ctx context.Context) ([]CatNode, error) {
	res, err := c.es.Cat.Nodes(
		c.es.Cat.Nodes.WithContext(ctx),
		c.es.Cat.Nodes.WithFormat("json"),
		c.es.Cat.Nodes.WithFullID(false),
	)
	var nodes []CatNode
	err = decode(res, err, "cat nodes", &nodes)
	return nodes, err
}

// NodesInfo returns the raw _nodes response.
func (c *Client) NodesInfo(ctx context.Context) (json.RawMessage, error) {
	res, err := c.es.Nodes.Info(c.es.Nodes.Info.WithContext(ctx))
	return consume(res, err, "nodes info")
}
