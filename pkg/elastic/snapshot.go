/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Repository describes one snapshot repository.
type Repository struct {
	Type     string         `json:"type"`
	Settings map[string]any `json:"settings"`
}

// Snapshot is one entry of the _snapshot/{repo}/_all response.
type Snapshot struct {
	Snapshot           string         `json:"snapshot"`
	UUID               string         `json:"uuid"`
	State              string         `json:"state"`
	Indices            []string       `json:"indices"`
	DataStreams        []string       `json:"data_streams"`
	FeatureStates      []FeatureState `json:"feature_states"`
	IncludeGlobalState bool           `json:"include_global_state"`
	StartTime          string         `json:"start_time"`
	StartTimeInMillis  int64          `json:"start_time_in_millis"`
	EndTimeInMillis    int64          `json:"end_time_in_millis"`
	DurationInMillis   int64          `json:"duration_in_millis"`
	Metadata           SnapshotMeta   `json:"metadata"`
	Failures           []any          `json:"failures"`
}

// FeatureState is a feature state captured in a snapshot.
type FeatureState struct {
	FeatureName string   `json:"feature_name"`
	Indices     []string `json:"indices"`
}

// SnapshotMeta is the snapshot metadata block. SLM stamps the policy name here.
type SnapshotMeta struct {
	Policy string `json:"policy"`
}

type snapshotsResponse struct {
	Snapshots []Snapshot `json:"snapshots"`
}

// SLMPolicy is one entry of the _slm/policy response.
type SLMPolicy struct {
	Version int64 `json:"version"`
	Policy  struct {
		Name       string `json:"name"`
		Schedule   string `json:"schedule"`
		Repository string `json:"repository"`
	} `json:"policy"`
	LastSuccess struct {
		SnapshotName string `json:"snapshot_name"`
	} `json:"last_success"`
}

// Repositories lists the registered snapshot repositories.
func (c *Client) Repositories(ctx context.Context) (map[string]Repository, error) {
	res, err := c.es.Snapshot.GetRepository(
		c.es.Snapshot.GetRepository.WithContext(ctx),
	)
	repos := map[string]Repository{}
	err = decode(res, err, "listing snapshot repositories", &repos)
	return repos, err
}

// SLMPolicies lists the SLM policies by name. The typed API surface does not
// cover SLM, so this goes through the transport directly.
func (c *Client) SLMPolicies(ctx context.Context) (map[string]SLMPolicy, error) {
	policies := map[string]SLMPolicy{}
	err := c.perform(ctx, http.MethodGet, joinPath("_slm", "policy"), nil, &policies)
	return policies, err
}

// Snapshots lists all snapshots in a repository.
func (c *Client) Snapshots(ctx context.Context, repository string) ([]Snapshot, error) {
	res, err := c.es.Snapshot.Get(
		repository,
		[]string{"_all"},
		c.es.Snapshot.Get.WithContext(ctx),
	)
	var out snapshotsResponse
	if err := decode(res, err, "listing snapshots in "+repository, &out); err != nil {
		return nil, err
	}
	return out.Snapshots, nil
}

// SnapshotStatus returns the raw _snapshot/{repo}/{name}/_status response.
// Large snapshots are known to time this endpoint out upstream (504/503);
// the error is surfaced as-is.
func (c *Client) SnapshotStatus(ctx context.Context, repository, name string) (json.RawMessage, error) {
	res, err := c.es.Snapshot.Status(
		c.es.Snapshot.Status.WithContext(ctx),
		c.es.Snapshot.Status.WithRepository(repository),
		c.es.Snapshot.Status.WithSnapshot(name),
	)
	return consume(res, err, "snapshot status of "+repository+"/"+name)
}

// Restore submits a restore of the named snapshot. The body is a structured
// request built by the restore workflow; this call does not wait for the
// restore to finish.
func (c *Client) Restore(ctx context.Context, repository, snapshot string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	res, err := c.es.Snapshot.Restore(
		repository,
		snapshot,
		c.es.Snapshot.Restore.WithContext(ctx),
		c.es.Snapshot.Restore.WithBody(bytes.NewReader(payload)),
	)
	return consume(res, err, "restoring "+repository+"/"+snapshot)
}
