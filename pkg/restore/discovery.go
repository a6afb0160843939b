/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package restore implements the snapshot restore workflow: discovering the
// latest snapshot of an SLM policy, building the restore request
// interactively, submitting it after confirmation, and polling shard recovery
// until it completes or the deadline passes.
package restore

import (
	"github.com/esadmin/esadmctl/pkg/elastic"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

// LatestForPolicy selects the snapshot with the maximum start_time_in_millis
// among those whose metadata references the given SLM policy.
func LatestForPolicy(snapshots []elastic.Snapshot, policy string) (elastic.Snapshot, error) {
	var (
		best  elastic.Snapshot
		found bool
	)
	for _, snap := range snapshots {
		if snap.Metadata.Policy != policy {
			continue
		}
		if !found || snap.StartTimeInMillis > best.StartTimeInMillis {
			best = snap
			found = true
		}
	}
	if !found {
		return elastic.Snapshot{}, adminerrors.New(adminerrors.ErrCodeNotFound,
			"no snapshot for SLM policy %q", policy)
	}
	return best, nil
}
