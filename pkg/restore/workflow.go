/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package restore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/ttacon/chalk"

	"github.com/esadmin/esadmctl/pkg/config"
	"github.com/esadmin/esadmctl/pkg/elastic"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
	"github.com/esadmin/esadmctl/pkg/prompt"
)

// Workflow is the interactive snapshot restore: discovery, plan, confirm,
// submit, wait.
type Workflow struct {
	// Target is the cluster restored into; its repositories and snapshots
	// are the ones listed.
	Target *elastic.Client

	// Origin is the cluster the snapshots were taken from; SLM policy names
	// come from there.
	Origin *elastic.Client

	Prompt   prompt.Prompter
	Defaults config.RestoreDefaults

	// Poller overrides the default recovery poller. Tests shorten its
	// interval and deadline.
	Poller *Poller

	// Out receives the operator-facing progress output.
	Out io.Writer
}

// Run executes the whole workflow. It returns an ABORTED error when the
// operator declines the confirmation; by then no mutating call has been made.
func (w *Workflow) Run(ctx context.Context) error {
	plan, err := w.BuildPlan(ctx)
	if err != nil {
		return err
	}

	if err := w.confirm(plan); err != nil {
		return err
	}

	return w.Execute(ctx, plan)
}

// BuildPlan runs discovery and the interactive prompts, producing a plan that
// has made no mutating call yet.
func (w *Workflow) BuildPlan(ctx context.Context) (*Plan, error) {
	repos, err := w.Target.Repositories(ctx)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, adminerrors.New(adminerrors.ErrCodeNotFound, "no snapshot repositories registered")
	}
	repoNames := lo.Keys(repos)
	sort.Strings(repoNames)

	repo, err := w.Prompt.Select("Snapshot repository", repoNames)
	if err != nil {
		return nil, err
	}

	policies, err := w.Origin.SLMPolicies(ctx)
	if err != nil {
		return nil, err
	}
	if len(policies) == 0 {
		return nil, adminerrors.New(adminerrors.ErrCodeNotFound, "origin cluster has no SLM policies")
	}
	policyNames := lo.Keys(policies)
	sort.Strings(policyNames)

	policy, err := w.Prompt.Select("SLM policy", policyNames)
	if err != nil {
		return nil, err
	}

	snapshots, err := w.Target.Snapshots(ctx, repo)
	if err != nil {
		return nil, err
	}
	snapshot, err := LatestForPolicy(snapshots, policy)
	if err != nil {
		return nil, err
	}
	w.printf("Latest snapshot for policy %s: %s (state %s, %d indices, %d data streams)\n",
		policy, snapshot.Snapshot, snapshot.State, len(snapshot.Indices), len(snapshot.DataStreams))

	opts, err := w.promptOptions()
	if err != nil {
		return nil, err
	}

	request, err := BuildRequest(opts, w.Defaults)
	if err != nil {
		return nil, err
	}

	targetIndices, err := w.Target.IndexNames(ctx, "")
	if err != nil {
		return nil, err
	}
	targetStreams, err := w.Target.DataStreams(ctx, "")
	if err != nil {
		return nil, err
	}
	streamNames := lo.Map(targetStreams, func(ds elastic.DataStream, _ int) string { return ds.Name })

	return &Plan{
		Repository: repo,
		Snapshot:   snapshot,
		Request:    request,
		Collisions: Collisions(snapshot, targetIndices, streamNames),
	}, nil
}

func (w *Workflow) promptOptions() (Options, error) {
	var opts Options

	includes, err := w.Prompt.Input("Index patterns to restore (comma separated)", "*")
	if err != nil {
		return opts, err
	}
	opts.IncludeIndices = splitPatterns(includes)

	excludes, err := w.Prompt.Input("Additional index patterns to exclude (comma separated)", "")
	if err != nil {
		return opts, err
	}
	opts.ExcludeIndices = splitPatterns(excludes)

	features, err := w.Prompt.Input("Feature states to restore (comma separated)",
		strings.Join(w.Defaults.FeatureStates, ","))
	if err != nil {
		return opts, err
	}
	opts.FeatureStates = splitPatterns(features)

	if opts.IncludeGlobalState, err = w.promptBool("Include global state", w.Defaults.IncludeGlobalState); err != nil {
		return opts, err
	}
	if opts.IgnoreUnavailable, err = w.promptBool("Ignore unavailable indices", w.Defaults.IgnoreUnavailable); err != nil {
		return opts, err
	}
	if opts.IncludeAliases, err = w.promptBool("Include aliases", w.Defaults.IncludeAliases); err != nil {
		return opts, err
	}

	if opts.RenamePattern, err = w.Prompt.Input("Rename pattern (empty to skip)", ""); err != nil {
		return opts, err
	}
	if opts.RenamePattern != "" {
		if opts.RenameReplacement, err = w.Prompt.Required("Rename replacement"); err != nil {
			return opts, err
		}
	}

	ignoreSettings, err := w.Prompt.Input("Index settings to ignore (comma separated, empty to skip)", "")
	if err != nil {
		return opts, err
	}
	opts.IgnoreIndexSettings = splitPatterns(ignoreSettings)

	return opts, nil
}

func (w *Workflow) promptBool(message string, def bool) (bool, error) {
	answer, err := w.Prompt.Input(message+" (true/false)", strconv.FormatBool(def))
	if err != nil {
		return false, err
	}
	value, err := strconv.ParseBool(strings.TrimSpace(answer))
	if err != nil {
		return false, adminerrors.New(adminerrors.ErrCodeAborted, "%q is not a boolean", answer)
	}
	return value, nil
}

func (w *Workflow) confirm(plan *Plan) error {
	payload, err := json.MarshalIndent(plan.Request, "", "  ")
	if err != nil {
		return err
	}
	w.printf("Restore request for %s/%s:\n%s\n", plan.Repository, plan.Snapshot.Snapshot, payload)

	if len(plan.Collisions) > 0 {
		w.printf("%s\n", chalk.Yellow.Color(fmt.Sprintf(
			"%d indices/data streams already exist in the target cluster: %s",
			len(plan.Collisions), strings.Join(plan.Collisions, ", "))))
	}

	confirmed, err := w.Prompt.Confirm("Proceed with restore?")
	if err != nil {
		return err
	}
	if !confirmed {
		return adminerrors.New(adminerrors.ErrCodeAborted, "restore cancelled by operator")
	}
	return nil
}

// Execute submits the restore and waits for shard recovery.
func (w *Workflow) Execute(ctx context.Context, plan *Plan) error {
	slog.Info("submitting restore",
		slog.String("repository", plan.Repository),
		slog.String("snapshot", plan.Snapshot.Snapshot),
	)
	if _, err := w.Target.Restore(ctx, plan.Repository, plan.Snapshot.Snapshot, plan.Request); err != nil {
		restoreSubmittedTotal.WithLabelValues("error").Inc()
		return err
	}
	restoreSubmittedTotal.WithLabelValues("accepted").Inc()
	w.printf("%s\n", chalk.Green.Color("Restore accepted, waiting for shard recovery"))

	poller := w.Poller
	if poller == nil {
		poller = &Poller{Client: w.Target}
	}
	if poller.OnPoll == nil {
		poller.OnPoll = func(stages []string, shards int) {
			w.printf("recovery: %d shards, stages [%s]\n", shards, strings.Join(stages, " "))
		}
	}
	if err := poller.Wait(ctx); err != nil {
		return err
	}

	health, err := w.Target.Health(ctx)
	if err != nil {
		return err
	}
	w.printf("Recovery complete, cluster status: %s\n", colorStatus(health.Status))
	return nil
}

func (w *Workflow) printf(format string, args ...any) {
	if w.Out != nil {
		fmt.Fprintf(w.Out, format, args...)
	}
}

func splitPatterns(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func colorStatus(status string) string {
	switch status {
	case "green":
		return chalk.Green.Color(status)
	case "yellow":
		return chalk.Yellow.Color(status)
	default:
		return chalk.Red.Color(status)
	}
}
