/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package elastic

import (
	"context"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// RecoveryShard is one row of _cat/recovery: one shard's recovery state.
type RecoveryShard struct {
	Index      string `json:"index"`
	Shard      string `json:"shard"`
	Time       string `json:"time"`
	Type       string `json:"type"`
	Stage      string `json:"stage"`
	SourceNode string `json:"source_node"`
	TargetNode string `json:"target_node"`
	Files      string `json:"files_percent"`
	Bytes      string `json:"bytes_percent"`
}

// RecoveryStageDone is the terminal shard recovery stage.
const RecoveryStageDone = "done"

// CatRecovery lists shard recoveries, completed ones included so the poller
// can tell "all done" from "none reported".
func (c *Client) CatRecovery(ctx context.Context, pattern string) ([]RecoveryShard, error) {
	opts := []func(*esapi.CatRecoveryRequest){
		c.es.Cat.Recovery.WithContext(ctx),
		c.es.Cat.Recovery.WithFormat("json"),
	}
	if pattern != "" {
		opts = append(opts, c.es.Cat.Recovery.WithIndex(pattern))
	}

	res, err := c.es.Cat.Recovery(opts...)
	var shards []RecoveryShard
	err = decode(res, err, "cat recovery", &shards)
	return shards, err
}
