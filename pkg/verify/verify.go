/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package verify checks a cluster after a snapshot restore: health must not
// be red, the expected indices must exist, and shard recovery must be
// complete. Document-count comparison against the origin cluster is not
// performed.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/esadmin/esadmctl/pkg/elastic"
	"github.com/esadmin/esadmctl/pkg/patterns"
)

// CheckStatus is the outcome of one check.
type CheckStatus string

const (
	CheckStatusPassed  CheckStatus = "passed"
	CheckStatusFailed  CheckStatus = "failed"
	CheckStatusSkipped CheckStatus = "skipped"
)

// Status is the overall verification outcome.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusPartial Status = "partial"
)

// Check is the result of one verification check.
type Check struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Expected string      `json:"expected,omitempty"`
	Actual   string      `json:"actual,omitempty"`
	Message  string      `json:"message,omitempty"`
}

// Summary aggregates the per-check outcomes.
type Summary struct {
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Status   Status        `json:"status"`
	Duration time.Duration `json:"duration"`
}

// Result contains the per-check results and summary of one verification run.
type Result struct {
	Summary Summary `json:"summary"`
	Checks  []Check `json:"checks"`
}

// TableHeader implements serializer.Tabular.
func (r *Result) TableHeader() []string {
	return []string{"check", "status", "expected", "actual", "message"}
}

// TableRows implements serializer.Tabular.
func (r *Result) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		rows = append(rows, []string{c.Name, string(c.Status), c.Expected, c.Actual, c.Message})
	}
	return rows
}

// Verifier runs the post-restore checks against one cluster.
type Verifier struct {
	client *elastic.Client

	// expectedIndices are patterns that must each match at least one index.
	expectedIndices []string
}

// Option is a functional option for configuring Verifier instances.
type Option func(*Verifier)

// WithExpectedIndices returns an Option that sets the index patterns the
// cluster is expected to contain.
func WithExpectedIndices(patterns []string) Option {
	return func(v *Verifier) {
		v.expectedIndices = patterns
	}
}

// New creates a new Verifier with the provided options.
func New(client *elastic.Client, opts ...Option) *Verifier {
	v := &Verifier{client: client}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify runs all checks and returns their combined result. A check failure
// is reported in the result, not as an error; the error return covers broken
// communication with the cluster.
func (v *Verifier) Verify(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	health, err := v.client.Health(ctx)
	if err != nil {
		return nil, err
	}
	result.Checks = append(result.Checks, v.checkHealth(health))

	indexNames, err := v.client.IndexNames(ctx, "")
	if err != nil {
		return nil, err
	}
	result.Checks = append(result.Checks, v.checkIndices(indexNames)...)

	recoveries, err := v.client.CatRecovery(ctx, "")
	if err != nil {
		return nil, err
	}
	result.Checks = append(result.Checks, v.checkRecovery(recoveries))

	for _, c := range result.Checks {
		switch c.Status {
		case CheckStatusPassed:
			result.Summary.Passed++
		case CheckStatusFailed:
			result.Summary.Failed++
		case CheckStatusSkipped:
			result.Summary.Skipped++
		}
	}
	result.Summary.Total = len(result.Checks)
	result.Summary.Duration = time.Since(start)

	switch {
	case result.Summary.Failed > 0:
		result.Summary.Status = StatusFail
	case result.Summary.Skipped > 0:
		result.Summary.Status = StatusPartial
	default:
		result.Summary.Status = StatusPass
	}

	slog.Debug("verification completed",
		"passed", result.Summary.Passed,
		"failed", result.Summary.Failed,
		"skipped", result.Summary.Skipped,
		"status", result.Summary.Status,
		"duration", result.Summary.Duration)

	return result, nil
}

func (v *Verifier) checkHealth(health elastic.ClusterHealth) Check {
	c := Check{
		Name:     "cluster-health",
		Expected: "not red",
		Actual:   health.Status,
	}
	if health.Status == "red" {
		c.Status = CheckStatusFailed
		c.Message = fmt.Sprintf("%d unassigned shards", health.UnassignedShards)
		return c
	}
	c.Status = CheckStatusPassed
	if health.Status == "yellow" {
		c.Message = "replicas not fully allocated"
	}
	return c
}

func (v *Verifier) checkIndices(indexNames []string) []Check {
	if len(v.expectedIndices) == 0 {
		return []Check{{
			Name:    "expected-indices",
			Status:  CheckStatusSkipped,
			Message: "no expected index patterns configured",
		}}
	}

	checks := make([]Check, 0, len(v.expectedIndices))
	for _, pattern := range v.expectedIndices {
		matched := patterns.Filter(indexNames, []string{pattern})
		c := Check{
			Name:     "expected-indices/" + pattern,
			Expected: pattern,
			Actual:   fmt.Sprintf("%d indices", len(matched)),
		}
		if len(matched) == 0 {
			c.Status = CheckStatusFailed
			c.Message = "no index matches the pattern"
		} else {
			c.Status = CheckStatusPassed
		}
		checks = append(checks, c)
	}
	return checks
}

func (v *Verifier) checkRecovery(recoveries []elastic.RecoveryShard) Check {
	c := Check{
		Name:     "recovery-complete",
		Expected: elastic.RecoveryStageDone,
	}
	if len(recoveries) == 0 {
		c.Status = CheckStatusSkipped
		c.Message = "no shard recoveries reported"
		return c
	}

	pending := 0
	for _, shard := range recoveries {
		if !strings.EqualFold(shard.Stage, elastic.RecoveryStageDone) {
			pending++
		}
	}
	c.Actual = fmt.Sprintf("%d of %d shards done", len(recoveries)-pending, len(recoveries))
	if pending > 0 {
		c.Status = CheckStatusFailed
		c.Message = "recovery still in progress"
	} else {
		c.Status = CheckStatusPassed
	}
	return c
}
