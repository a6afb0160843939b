/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package datastream repairs data streams after a snapshot restore: backing
// indices come back with stale or missing ILM state, and indices restored
// under their .ds- names are not reattached to the stream automatically.
package datastream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/esadmin/esadmctl/pkg/elastic"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

// StreamSettings are the lifecycle settings a stream's backing indices are
// supposed to carry, resolved from the stream's index template.
type StreamSettings struct {
	ILMPolicy       string
	DefaultPipeline string
	FinalPipeline   string
}

// IndexResult is the per-index outcome of one repair step. A failure on one
// index does not stop the others; rerunning the repair retries it.
type IndexResult struct {
	Index  string `json:"index"`
	Action string `json:"action"`
	Err    error  `json:"-"`
}

// MarshalJSON renders the error as a string so per-index failures survive
// serialization.
func (r IndexResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Index  string `json:"index"`
		Action string `json:"action"`
		Error  string `json:"error,omitempty"`
	}{Index: r.Index, Action: r.Action}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Actions recorded in IndexResult.
const (
	ActionReassigned = "ilm-reassigned"
	ActionReattached = "reattached"
)

// Report is the outcome of a whole repair run.
type Report struct {
	Stream   string
	Settings StreamSettings
	Attached []IndexResult
	Detached []IndexResult
}

// Failed returns the results that carry an error.
func (r Report) Failed() []IndexResult {
	failed := append(r.attachedFailures(), r.detachedFailures()...)
	return failed
}

func (r Report) attachedFailures() []IndexResult {
	return lo.Filter(r.Attached, func(res IndexResult, _ int) bool { return res.Err != nil })
}

func (r Report) detachedFailures() []IndexResult {
	return lo.Filter(r.Detached, func(res IndexResult, _ int) bool { return res.Err != nil })
}

// Repairer runs the backing-index repair workflow against one cluster.
type Repairer struct {
	Client *elastic.Client
}

// Repair repairs the named data stream: reassigns ILM policy and pipelines on
// every attached backing index, then reattaches detached ones. Rerunning on a
// repaired stream is a no-op finding zero detached indices.
func (r *Repairer) Repair(ctx context.Context, stream string) (Report, error) {
	ds, err := r.Client.DataStream(ctx, stream)
	if err != nil {
		return Report{}, err
	}

	settings, err := r.resolveSettings(ctx, ds)
	if err != nil {
		return Report{}, err
	}
	slog.Info("repairing data stream",
		slog.String("stream", ds.Name),
		slog.String("ilm_policy", settings.ILMPolicy),
		slog.String("template", ds.Template),
	)

	report := Report{Stream: ds.Name, Settings: settings}

	attached := ds.BackingIndexNames()
	for _, index := range attached {
		report.Attached = append(report.Attached, IndexResult{
			Index:  index,
			Action: ActionReassigned,
			Err:    r.reassign(ctx, index, settings),
		})
	}

	matching, err := r.Client.IndexNames(ctx, BackingIndexPattern(ds.Name))
	if err != nil {
		return report, err
	}
	detached := Detached(matching, attached)
	if len(detached) == 0 {
		slog.Info("no detached backing indices", slog.String("stream", ds.Name))
		return report, nil
	}

	for _, index := range detached {
		report.Detached = append(report.Detached, IndexResult{
			Index:  index,
			Action: ActionReattached,
			Err:    r.reattach(ctx, ds.Name, index),
		})
	}
	return report, nil
}

// BackingIndexPattern is the naming convention of a stream's backing indices.
func BackingIndexPattern(stream string) string {
	return fmt.Sprintf(".ds-%s-*", stream)
}

// Detached computes the backing indices that exist under the stream's naming
// convention but are not attached to the stream.
func Detached(matching, attached []string) []string {
	detached := lo.Without(matching, attached...)
	sort.Strings(detached)
	return detached
}

// resolveSettings pulls the ILM policy and ingest pipelines out of the
// stream's index template. The stream's own ilm_policy field wins when the
// template leaves the lifecycle unset.
func (r *Repairer) resolveSettings(ctx context.Context, ds elastic.DataStream) (StreamSettings, error) {
	if ds.Template == "" {
		return StreamSettings{}, adminerrors.New(adminerrors.ErrCodeNotFound,
			"data stream %q has no index template", ds.Name)
	}

	raw, err := r.Client.IndexTemplates(ctx, ds.Template)
	if err != nil {
		return StreamSettings{}, err
	}

	tmpl := gjson.GetBytes(raw, "index_templates.0.index_template.template.settings.index")
	settings := StreamSettings{
		ILMPolicy:       tmpl.Get("lifecycle.name").String(),
		DefaultPipeline: tmpl.Get("default_pipeline").String(),
		FinalPipeline:   tmpl.Get("final_pipeline").String(),
	}
	if settings.ILMPolicy == "" {
		settings.ILMPolicy = ds.ILMPolicy
	}
	if settings.ILMPolicy == "" {
		return StreamSettings{}, adminerrors.New(adminerrors.ErrCodeNotFound,
			"no ILM policy configured for data stream %q", ds.Name)
	}
	return settings, nil
}

// reassign strips the index's current ILM association and applies the
// stream's policy and pipelines. Removal comes first: setting the policy over
// an existing association keeps the stale phase_execution metadata.
func (r *Repairer) reassign(ctx context.Context, index string, settings StreamSettings) error {
	result, err := r.Client.RemoveILMPolicy(ctx, index)
	if err != nil {
		return err
	}
	if result.HasFailures {
		return adminerrors.New(adminerrors.ErrCodeInternal,
			"removing ILM policy failed for %v", result.FailedIndexes)
	}

	body := map[string]any{"index.lifecycle.name": settings.ILMPolicy}
	if settings.DefaultPipeline != "" {
		body["index.default_pipeline"] = settings.DefaultPipeline
	}
	if settings.FinalPipeline != "" {
		body["index.final_pipeline"] = settings.FinalPipeline
	}
	_, err = r.Client.PutIndexSettings(ctx, index, body)
	return err
}

// reattach adds the index back to the stream, then forces its ILM execution
// to hot/rollover/set-indexing-complete so it behaves as a completed backing
// index instead of retrying rollover forever.
func (r *Repairer) reattach(ctx context.Context, stream, index string) error {
	if _, err := r.Client.AddBackingIndex(ctx, stream, index); err != nil {
		return err
	}

	explain, err := r.Client.ILMExplain(ctx, index)
	if err != nil {
		return err
	}
	state, ok := explain[index]
	if !ok {
		return adminerrors.New(adminerrors.ErrCodeNotFound, "no ILM state for %s", index)
	}

	_, err = r.Client.MoveILMStep(ctx, index, elastic.MoveStepRequest{
		CurrentStep: elastic.ILMStep{Phase: state.Phase, Action: state.Action, Name: state.Step},
		NextStep:    elastic.ILMStep{Phase: "hot", Action: "rollover", Name: "set-indexing-complete"},
	})
	return err
}
