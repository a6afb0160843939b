/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package verify

import (
	"context"
	"net/http"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esadmin/esadmctl/pkg/elastic"
)

const testClusterURL = "http://es.test.internal:9200"

func respondJSON(body string) httpmock.Responder {
	return func(*http.Request) (*http.Response, error) {
		res := httpmock.NewStringResponse(200, body)
		res.Header.Set("Content-Type", "application/json")
		res.Header.Set("X-Elastic-Product", "Elasticsearch")
		return res, nil
	}
}

func newTestVerifier(t *testing.T, opts ...Option) (*Verifier, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client, err := elastic.NewClientFromConfig(elasticsearch.Config{
		Addresses: []string{testClusterURL},
		Transport: transport,
	})
	require.NoError(t, err)
	return New(client, opts...), transport
}

func register(transport *httpmock.MockTransport, health, indices, recovery string) {
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cluster/health", respondJSON(health))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/indices", respondJSON(indices))
	transport.RegisterResponder(http.MethodGet, testClusterURL+"/_cat/recovery", respondJSON(recovery))
}

func TestVerifyPass(t *testing.T) {
	verifier, transport := newTestVerifier(t, WithExpectedIndices([]string{"orders", "logs-*"}))
	register(transport,
		`{"cluster_name":"es-test","status":"green"}`,
		`[{"index":"orders"},{"index":"logs-app-000001"}]`,
		`[{"index":"orders","shard":"0","stage":"done"}]`,
	)

	result, err := verifier.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusPass, result.Summary.Status)
	assert.Equal(t, 4, result.Summary.Total)
	assert.Zero(t, result.Summary.Failed)
}

func TestVerifyRedHealthFails(t *testing.T) {
	verifier, transport := newTestVerifier(t)
	register(transport,
		`{"cluster_name":"es-test","status":"red","unassigned_shards":7}`,
		`[{"index":"orders"}]`,
		`[{"index":"orders","shard":"0","stage":"done"}]`,
	)

	result, err := verifier.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFail, result.Summary.Status)
	assert.Equal(t, CheckStatusFailed, result.Checks[0].Status)
	assert.Contains(t, result.Checks[0].Message, "7 unassigned")
}

func TestVerifyMissingIndexFails(t *testing.T) {
	verifier, transport := newTestVerifier(t, WithExpectedIndices([]string{"orders", "missing-*"}))
	register(transport,
		`{"cluster_name":"es-test","status":"green"}`,
		`[{"index":"orders"}]`,
		`[]`,
	)

	result, err := verifier.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFail, result.Summary.Status)

	byName := map[string]Check{}
	for _, c := range result.Checks {
		byName[c.Name] = c
	}
	assert.Equal(t, CheckStatusPassed, byName["expected-indices/orders"].Status)
	assert.Equal(t, CheckStatusFailed, byName["expected-indices/missing-*"].Status)
	// empty recovery is informational, not a failure
	assert.Equal(t, CheckStatusSkipped, byName["recovery-complete"].Status)
}

func TestVerifyRecoveryInProgressFails(t *testing.T) {
	verifier, transport := newTestVerifier(t)
	register(transport,
		`{"cluster_name":"es-test","status":"yellow"}`,
		`[{"index":"orders"}]`,
		`[{"index":"orders","shard":"0","stage":"done"},{"index":"orders","shard":"1","stage":"translog"}]`,
	)

	result, err := verifier.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFail, result.Summary.Status)

	last := result.Checks[len(result.Checks)-1]
	assert.Equal(t, "recovery-complete", last.Name)
	assert.Equal(t, CheckStatusFailed, last.Status)
	assert.Equal(t, "1 of 2 shards done", last.Actual)
}

func TestResultTableRendering(t *testing.T) {
	result := &Result{Checks: []Check{
		{Name: "cluster-health", Status: CheckStatusPassed, Expected: "not red", Actual: "green"},
	}}
	assert.Len(t, result.TableHeader(), 5)
	require.Len(t, result.TableRows(), 1)
	assert.Equal(t, "cluster-health", result.TableRows()[0][0])
}
