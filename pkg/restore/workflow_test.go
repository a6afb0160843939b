/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package restore

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esadmin/esadmctl/pkg/config"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
	"github.com/esadmin/esadmctl/pkg/prompt"
)

// registerDiscovery installs the read-only responders the plan phase needs.
func registerDiscovery(transport *httpmock.MockTransport) {
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_snapshot",
		respondJSON(200, `{"backups":{"type":"s3","settings":{"bucket":"es-backups"}}}`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_slm/policy",
		respondJSON(200, `{"daily":{"version":4,"policy":{"name":"<daily-{now/d}>","repository":"backups"}}}`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_snapshot/backups/_all",
		respondJSON(200, `{"snapshots":[
			{"snapshot":"daily-old","state":"SUCCESS","start_time_in_millis":100,
			 "indices":["orders"],"metadata":{"policy":"daily"}},
			{"snapshot":"daily-new","state":"SUCCESS","start_time_in_millis":300,
			 "indices":["orders","customers"],"data_streams":["logs-app"],"metadata":{"policy":"daily"}}
		]}`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/indices",
		respondJSON(200, `[{"index":"orders","health":"green"},{"index":"archive","health":"green"}]`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_data_stream",
		respondJSON(200, `{"data_streams":[{"name":"logs-app","generation":3}]}`))
}

// fullRunAnswers scripts every prompt of Run: repository, policy, the eight
// option prompts with their defaults, then the confirmation.
func fullRunAnswers(confirmation string) []string {
	return []string{
		"backups", // repository
		"daily",   // SLM policy
		"",        // include patterns (default *)
		"",        // extra excludes
		"",        // feature states
		"",        // include global state
		"",        // ignore unavailable
		"",        // include aliases
		"",        // rename pattern
		"",        // ignore index settings
		confirmation,
	}
}

func TestRunDeclinedMakesNoMutatingCall(t *testing.T) {
	client, transport := newTestClient(t)
	registerDiscovery(transport)

	var out bytes.Buffer
	workflow := &Workflow{
		Target:   client,
		Origin:   client,
		Prompt:   &prompt.Scripted{Answers: fullRunAnswers("no")},
		Defaults: config.RestoreDefaults{IgnoreUnavailable: true, IncludeAliases: true},
		Out:      &out,
	}

	err := workflow.Run(context.Background())
	require.Error(t, err)
	assert.True(t, adminerrors.HasCode(err, adminerrors.ErrCodeAborted))

	for call := range transport.GetCallCountInfo() {
		assert.True(t, strings.HasPrefix(call, http.MethodGet+" "),
			"declined run issued non-GET call %s", call)
	}
}

// "yes" is not "y": anything but the literal confirmation declines.
func TestRunRequiresLiteralConfirmation(t *testing.T) {
	client, transport := newTestClient(t)
	registerDiscovery(transport)

	workflow := &Workflow{
		Target: client,
		Origin: client,
		Prompt: &prompt.Scripted{Answers: fullRunAnswers("yes")},
	}

	err := workflow.Run(context.Background())
	require.Error(t, err)
	assert.True(t, adminerrors.HasCode(err, adminerrors.ErrCodeAborted))
}

func TestRunConfirmedRestoresAndWaits(t *testing.T) {
	client, transport := newTestClient(t)
	registerDiscovery(transport)

	restoreURL := testClusterURL + "/_snapshot/backups/daily-new/_restore"
	transport.RegisterResponder(http.MethodPost, restoreURL,
		respondJSON(200, `{"accepted":true}`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/recovery",
		respondJSON(200, `[{"index":"orders","shard":"0","stage":"done"}]`))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cluster/health",
		respondJSON(200, `{"cluster_name":"es-test","status":"green"}`))

	var out bytes.Buffer
	workflow := &Workflow{
		Target:   client,
		Origin:   client,
		Prompt:   &prompt.Scripted{Answers: fullRunAnswers("y")},
		Defaults: config.RestoreDefaults{IgnoreUnavailable: true, IncludeAliases: true},
		Poller:   &Poller{Client: client, Interval: time.Millisecond, Deadline: time.Second},
		Out:      &out,
	}

	require.NoError(t, workflow.Run(context.Background()))
	assert.Equal(t, 1, transport.GetCallCountInfo()[http.MethodPost+" "+restoreURL])
	assert.Contains(t, out.String(), "daily-new")
	assert.Contains(t, out.String(), "Restore accepted")
}

// The latest snapshot of the selected policy is restored, even when another
// policy has a newer one; the collision warning names what already exists.
func TestBuildPlanPicksLatestAndReportsCollisions(t *testing.T) {
	client, transport := newTestClient(t)
	registerDiscovery(transport)

	workflow := &Workflow{
		Target:   client,
		Origin:   client,
		Prompt:   &prompt.Scripted{Answers: fullRunAnswers("")[:10]},
		Defaults: config.RestoreDefaults{IgnoreUnavailable: true, IncludeAliases: true},
	}

	plan, err := workflow.BuildPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backups", plan.Repository)
	assert.Equal(t, "daily-new", plan.Snapshot.Snapshot)
	assert.ElementsMatch(t, []string{"orders", "logs-app"}, plan.Collisions)
	assert.True(t, plan.Request.IgnoreUnavailable)
	assert.Equal(t, "*", plan.Request.Indices[0])
}
