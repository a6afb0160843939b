/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package restore

import (
	"strings"

	"github.com/samber/lo"

	"github.com/esadmin/esadmctl/pkg/config"
	"github.com/esadmin/esadmctl/pkg/elastic"
)

// Request is the _restore request body. The five core fields are always
// serialized; rename and ignore_index_settings appear only when set.
type Request struct {
	Indices             []string `json:"indices"`
	IgnoreUnavailable   bool     `json:"ignore_unavailable"`
	IncludeGlobalState  bool     `json:"include_global_state"`
	FeatureStates       []string `json:"feature_states"`
	IncludeAliases      bool     `json:"include_aliases"`
	RenamePattern       string   `json:"rename_pattern,omitempty"`
	RenameReplacement   string   `json:"rename_replacement,omitempty"`
	IgnoreIndexSettings []string `json:"ignore_index_settings,omitempty"`
}

// Options are the operator's answers to the restore prompts, before merging
// with defaults.
type Options struct {
	// IncludeIndices are the patterns to restore. Empty means everything.
	IncludeIndices []string

	// ExcludeIndices are extra exclusion patterns, stated without the
	// leading "-".
	ExcludeIndices []string

	// FeatureStates overrides the default feature states when non-empty.
	FeatureStates []string

	IncludeGlobalState bool
	IgnoreUnavailable  bool
	IncludeAliases     bool

	RenamePattern       string
	RenameReplacement   string
	IgnoreIndexSettings []string
}

// Plan is a fully assembled restore ready for confirmation.
type Plan struct {
	Repository string
	Snapshot   elastic.Snapshot
	Request    Request

	// Collisions are index and data stream names present both in the
	// snapshot and in the target cluster. Surfaced before confirmation:
	// restoring over them fails unless they are closed or renamed.
	Collisions []string
}

// BuildRequest merges the operator's options with the built-in and
// per-environment defaults into the final request body.
func BuildRequest(opts Options, envDefaults config.RestoreDefaults) (Request, error) {
	builtin, err := loadDefaults()
	if err != nil {
		return Request{}, err
	}

	indices := make([]string, 0, len(opts.IncludeIndices)+len(builtin.ExcludeIndices))
	if len(opts.IncludeIndices) == 0 {
		indices = append(indices, "*")
	} else {
		indices = append(indices, opts.IncludeIndices...)
	}
	indices = append(indices, builtin.ExcludeIndices...)
	for _, pattern := range envDefaults.ExcludeIndices {
		indices = append(indices, asExclusion(pattern))
	}
	for _, pattern := range opts.ExcludeIndices {
		indices = append(indices, asExclusion(pattern))
	}
	indices = lo.Uniq(indices)

	featureStates := opts.FeatureStates
	if len(featureStates) == 0 {
		featureStates = envDefaults.FeatureStates
	}
	if len(featureStates) == 0 {
		featureStates = builtin.FeatureStates
	}
	// feature_states must serialize as a list even when empty.
	if featureStates == nil {
		featureStates = []string{}
	}

	return Request{
		Indices:             indices,
		IgnoreUnavailable:   opts.IgnoreUnavailable,
		IncludeGlobalState:  opts.IncludeGlobalState,
		FeatureStates:       featureStates,
		IncludeAliases:      opts.IncludeAliases,
		RenamePattern:       opts.RenamePattern,
		RenameReplacement:   opts.RenameReplacement,
		IgnoreIndexSettings: opts.IgnoreIndexSettings,
	}, nil
}

// asExclusion normalizes a pattern into the "-pattern" exclusion form the
// restore API expects inside the indices list.
func asExclusion(pattern string) string {
	if strings.HasPrefix(pattern, "-") {
		return pattern
	}
	return "-" + pattern
}

// Collisions returns the names present both in the snapshot and in the
// target cluster, data streams included.
func Collisions(snapshot elastic.Snapshot, targetIndices, targetStreams []string) []string {
	inSnapshot := append(append([]string{}, snapshot.Indices...), snapshot.DataStreams...)
	inTarget := append(append([]string{}, targetIndices...), targetStreams...)
	return lo.Intersect(inSnapshot, inTarget)
}
