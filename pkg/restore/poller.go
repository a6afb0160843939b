/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package restore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"

	"github.com/esadmin/esadmctl/pkg/elastic"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

const (
	// DefaultPollInterval is the pause between recovery polls.
	DefaultPollInterval = 10 * time.Second

	// DefaultPollDeadline bounds the whole poll loop. A recovery that is
	// still not done by then is either wedged or very large; either way the
	// operator decides, not the tool.
	DefaultPollDeadline = 30 * time.Minute
)

var errRecoveryInProgress = fmt.Errorf("recovery in progress")

// Poller watches shard recovery after a restore until every reported shard
// reaches the done stage.
type Poller struct {
	Client *elastic.Client

	// Interval between polls. Defaults to DefaultPollInterval.
	Interval time.Duration

	// Deadline for the whole wait. Defaults to DefaultPollDeadline.
	Deadline time.Duration

	// OnPoll, when set, receives the distinct stages and shard count of
	// every poll cycle for progress display.
	OnPoll func(stages []string, shards int)
}

// Wait polls until the only distinct recovery stage is "done". It returns a
// TIMEOUT error when the deadline passes first, reporting "no shard
// recoveries seen" as its own condition rather than success. A failed poll
// request aborts immediately; polls are not retried.
func (p *Poller) Wait(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	deadline := p.Deadline
	if deadline <= 0 {
		deadline = DefaultPollDeadline
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()
	sawShards := false

	poll := func() error {
		shards, err := p.Client.CatRecovery(ctx, "")
		if err != nil {
			// Transport/API failures are not retried anywhere in the tool.
			return backoff.Permanent(err)
		}
		pollCyclesTotal.Inc()

		stages := distinctStages(shards)
		if p.OnPoll != nil {
			p.OnPoll(stages, len(shards))
		}

		if len(shards) == 0 {
			// Not the same as done: the cluster reports no recoveries at
			// all, e.g. before the restore has created any shards.
			slog.Debug("no shard recoveries reported yet")
			return errRecoveryInProgress
		}
		sawShards = true

		if len(stages) == 1 && stages[0] == elastic.RecoveryStageDone {
			return nil
		}
		slog.Debug("recovery in progress",
			slog.String("stages", strings.Join(stages, ",")),
			slog.Int("shards", len(shards)),
		)
		return errRecoveryInProgress
	}

	err := backoff.Retry(poll, backoff.WithContext(backoff.NewConstantBackOff(interval), ctx))
	waitDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil && !sawShards:
		return adminerrors.New(adminerrors.ErrCodeTimeout,
			"no shard recoveries reported within %s", deadline)
	case ctx.Err() != nil:
		return adminerrors.Wrap(adminerrors.ErrCodeTimeout, err,
			"recovery did not complete within %s", deadline)
	default:
		return err
	}
}

// distinctStages returns the sorted distinct recovery stages, normalized to
// lower case (the cat API reports "done", the index recovery API "DONE").
func distinctStages(shards []elastic.RecoveryShard) []string {
	stages := lo.Uniq(lo.Map(shards, func(s elastic.RecoveryShard, _ int) string {
		return strings.ToLower(s.Stage)
	}))
	sort.Strings(stages)
	return stages
}
