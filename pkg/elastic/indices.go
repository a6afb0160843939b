/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package elastic

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// CatIndex is one row of _cat/indices.
type CatIndex struct {
	Health       string `json:"health"`
	Status       string `json:"status"`
	Index        string `json:"index"`
	UUID         string `json:"uuid"`
	Primary      string `json:"pri"`
	Replicas     string `json:"rep"`
	DocsCount    string `json:"docs.count"`
	StoreSize    string `json:"store.size"`
	PriStoreSize string `json:"pri.store.size"`
}

// CatShard is one row of _cat/shards.
type CatShard struct {
	Index  string `json:"index"`
	Shard  string `json:"shard"`
	Prirep string `json:"prirep"`
	State  string `json:"state"`
	Docs   string `json:"docs"`
	Store  string `json:"store"`
	Node   string `json:"node"`
}

// CatAlias is one row of _cat/aliases.
type CatAlias struct {
	Alias   string `json:"alias"`
	Index   string `json:"index"`
	IsWrite string `json:"is_write_index"`
}

// Acknowledged is the generic acknowledgement response of mutating index APIs.
type Acknowledged struct {
	Acknowledged bool `json:"acknowledged"`
}

// CatIndices lists indices matching the pattern ("" lists everything),
// hidden indices included so restored system indices show up.
func (c *Client) CatIndices(ctx context.Context, pattern string) ([]CatIndex, error) {
	opts := []func(*esapi.CatIndicesRequest){
		c.es.Cat.Indices.WithContext(ctx),
		c.es.Cat.Indices.WithFormat("json"),
		c.es.Cat.Indices.WithExpandWildcards("all"),
	}
	if pattern != "" {
		opts = append(opts, c.es.Cat.Indices.WithIndex(pattern))
	}

	res, err := c.es.Cat.Indices(opts...)
	var indices []CatIndex
	err = decode(res, err, "cat indices", &indices)
	return indices, err
}

// IndexNames returns the names of indices matching the pattern.
func (c *Client) IndexNames(ctx context.Context, pattern string) ([]string, error) {
	indices, err := c.CatIndices(ctx, pattern)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(indices))
	for _, idx := range indices {
		names = append(names, idx.Index)
	}
	return names, nil
}

// CatShards lists shards, optionally restricted to an index pattern.
func (c *Client) CatShards(ctx context.Context, pattern string) ([]CatShard, error) {
	opts := []func(*esapi.CatShardsRequest){
		c.es.Cat.Shards.WithContext(ctx),
		c.es.Cat.Shards.WithFormat("json"),
	}
	if pattern != "" {
		opts = append(opts, c.es.Cat.Shards.WithIndex(pattern))
	}

	res, err := c.es.Cat.Shards(opts...)
	var shards []CatShard
	err = decode(res, err, "cat shards", &shards)
	return shards, err
}

// CatAliases lists aliases.
func (c *Client) CatAliases(ctx context.Context) ([]CatAlias, error) {
	res, err := c.es.Cat.Aliases(
		c.es.Cat.Aliases.WithContext(ctx),
		c.es.Cat.Aliases.WithFormat("json"),
	)
	var aliases []CatAlias
	err = decode(res, err, "cat aliases", &aliases)
	return aliases, err
}

// GetIndex returns the raw settings/mappings/aliases of an index.
func (c *Client) GetIndex(ctx context.Context, name string) (json.RawMessage, error) {
	res, err := c.es.Indices.Get(
		[]string{name},
		c.es.Indices.Get.WithContext(ctx),
	)
	return consume(res, err, "getting index "+name)
}

// OpenIndex opens a closed index.
func (c *Client) OpenIndex(ctx context.Context, name string) (Acknowledged, error) {
	res, err := c.es.Indices.Open(
		[]string{name},
		c.es.Indices.Open.WithContext(ctx),
	)
	var ack Acknowledged
	err = decode(res, err, "opening index "+name, &ack)
	return ack, err
}

// CloseIndex closes an index.
func (c *Client) CloseIndex(ctx context.Context, name string) (Acknowledged, error) {
	res, err := c.es.Indices.Close(
		[]string{name},
		c.es.Indices.Close.WithContext(ctx),
	)
	var ack Acknowledged
	err = decode(res, err, "closing index "+name, &ack)
	return ack, err
}

// DeleteIndex deletes an index. Callers confirm before reaching here.
func (c *Client) DeleteIndex(ctx context.Context, name string) (Acknowledged, error) {
	res, err := c.es.Indices.Delete(
		[]string{name},
		c.es.Indices.Delete.WithContext(ctx),
	)
	var ack Acknowledged
	err = decode(res, err, "deleting index "+name, &ack)
	return ack, err
}

// PutIndexSettings applies settings to one index.
func (c *Client) PutIndexSettings(ctx context.Context, name string, settings map[string]any) (Acknowledged, error) {
	payload, err := json.Marshal(settings)
	if err != nil {
		return Acknowledged{}, err
	}
	res, err := c.es.Indices.PutSettings(
		bytes.NewReader(payload),
		c.es.Indices.PutSettings.WithContext(ctx),
		c.es.Indices.PutSettings.WithIndex(name),
	)
	var ack Acknowledged
	err = decode(res, err, "updating settings of "+name, &ack)
	return ack, err
}

// ReindexRequest is the _reindex body.
type ReindexRequest struct {
	Source ReindexSource `json:"source"`
	Dest   ReindexDest   `json:"dest"`
}

type ReindexSource struct {
	Index string `json:"index"`
}

type ReindexDest struct {
	Index string `json:"index"`
}

// ReindexResponse is the synchronous _reindex summary.
type ReindexResponse struct {
	Took     int64 `json:"took"`
	Total    int64 `json:"total"`
	Created  int64 `json:"created"`
	Updated  int64 `json:"updated"`
	Failures []any `json:"failures"`
}

// Reindex copies documents between indices and waits for completion.
func (c *Client) Reindex(ctx context.Context, req ReindexRequest) (ReindexResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return ReindexResponse{}, err
	}
	res, err := c.es.Reindex(
		bytes.NewReader(payload),
		c.es.Reindex.WithContext(ctx),
	)
	var out ReindexResponse
	err = decode(res, err, "reindex", &out)
	return out, err
}

// IndexTemplates returns the raw _index_template response, optionally for one
// template name.
func (c *Client) IndexTemplates(ctx context.Context, name string) (json.RawMessage, error) {
	opts := []func(*esapi.IndicesGetIndexTemplateRequest){
		c.es.Indices.GetIndexTemplate.WithContext(ctx),
	}
	if name != "" {
		opts = append(opts, c.es.Indices.GetIndexTemplate.WithName(name))
	}
	res, err := c.es.Indices.GetIndexTemplate(opts...)
	return consume(res, err, "getting index templates")
}

// ComponentTemplates returns the raw _component_template response, optionally
// for one template name.
func (c *Client) ComponentTemplates(ctx context.Context, name string) (json.RawMessage, error) {
	opts := []func(*esapi.ClusterGetComponentTemplateRequest){
		c.es.Cluster.GetComponentTemplate.WithContext(ctx),
	}
	if name != "" {
		opts = append(opts, c.es.Cluster.GetComponentTemplate.WithName(name))
	}
	res, err := c.es.Cluster.GetComponentTemplate(opts...)
	return consume(res, err, "getting component templates")
}
