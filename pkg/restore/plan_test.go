/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package restore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esadmin/esadmctl/pkg/config"
	"github.com/esadmin/esadmctl/pkg/elastic"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

func TestBuildRequestDefaults(t *testing.T) {
	req, err := BuildRequest(Options{
		IgnoreUnavailable: true,
		IncludeAliases:    true,
	}, config.RestoreDefaults{})
	require.NoError(t, err)

	assert.Equal(t, "*", req.Indices[0])
	assert.Contains(t, req.Indices, "-.security*")
	assert.Contains(t, req.Indices, "-.kibana*")
	assert.Equal(t, []string{"kibana", "security"}, req.FeatureStates)
	assert.True(t, req.IgnoreUnavailable)
	assert.True(t, req.IncludeAliases)
	assert.False(t, req.IncludeGlobalState)
}

func TestBuildRequestMergesExclusions(t *testing.T) {
	req, err := BuildRequest(Options{
		IncludeIndices: []string{"logs-*", "metrics-*"},
		ExcludeIndices: []string{"logs-noise-*"},
	}, config.RestoreDefaults{
		ExcludeIndices: []string{"-restored-*", "partial-*"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"logs-*", "metrics-*"}, req.Indices[:2])
	assert.Contains(t, req.Indices, "-restored-*")
	assert.Contains(t, req.Indices, "-partial-*")
	assert.Contains(t, req.Indices, "-logs-noise-*")
	// merged exactly once even when stated both built-in and per-env
	assert.Len(t, req.Indices, len(unique(req.Indices)))
}

func TestBuildRequestFeatureStateFallback(t *testing.T) {
	req, err := BuildRequest(Options{FeatureStates: []string{"geoip"}}, config.RestoreDefaults{
		FeatureStates: []string{"kibana"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"geoip"}, req.FeatureStates)

	req, err = BuildRequest(Options{}, config.RestoreDefaults{FeatureStates: []string{"kibana"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"kibana"}, req.FeatureStates)
}

// Optional fields appear in the serialized body exactly when they carry a
// value; the core fields are always present, false or not.
func TestRequestSerialization(t *testing.T) {
	plain, err := BuildRequest(Options{}, config.RestoreDefaults{})
	require.NoError(t, err)

	raw, err := json.Marshal(plain)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	for _, key := range []string{"indices", "ignore_unavailable", "include_global_state", "feature_states", "include_aliases"} {
		assert.Contains(t, keys, key)
	}
	for _, key := range []string{"rename_pattern", "rename_replacement", "ignore_index_settings"} {
		assert.NotContains(t, keys, key)
	}

	renamed, err := BuildRequest(Options{
		RenamePattern:       "(.+)",
		RenameReplacement:   "restored-$1",
		IgnoreIndexSettings: []string{"index.lifecycle.name"},
	}, config.RestoreDefaults{})
	require.NoError(t, err)

	raw, err = json.Marshal(renamed)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Contains(t, keys, "rename_pattern")
	assert.Contains(t, keys, "rename_replacement")
	assert.Contains(t, keys, "ignore_index_settings")
}

func TestLatestForPolicy(t *testing.T) {
	snapshots := []elastic.Snapshot{
		{Snapshot: "daily-old", StartTimeInMillis: 100, Metadata: elastic.SnapshotMeta{Policy: "daily"}},
		{Snapshot: "daily-new", StartTimeInMillis: 300, Metadata: elastic.SnapshotMeta{Policy: "daily"}},
		{Snapshot: "weekly-newest", StartTimeInMillis: 900, Metadata: elastic.SnapshotMeta{Policy: "weekly"}},
	}

	best, err := LatestForPolicy(snapshots, "daily")
	require.NoError(t, err)
	assert.Equal(t, "daily-new", best.Snapshot)

	_, err = LatestForPolicy(snapshots, "hourly")
	require.Error(t, err)
	assert.True(t, adminerrors.HasCode(err, adminerrors.ErrCodeNotFound))
}

func TestCollisions(t *testing.T) {
	snapshot := elastic.Snapshot{
		Indices:     []string{".ds-logs-app-2026.01.01-000001", "orders"},
		DataStreams: []string{"logs-app"},
	}

	collisions := Collisions(snapshot,
		[]string{"orders", "customers"},
		[]string{"logs-app", "metrics-host"},
	)
	assert.ElementsMatch(t, []string{"orders", "logs-app"}, collisions)

	assert.Empty(t, Collisions(snapshot, []string{"customers"}, nil))
}

func unique(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
