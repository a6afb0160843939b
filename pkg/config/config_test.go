/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

func writeEnvFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
	require.NoError(t, err)
}

const minimalEnv = `ES_URL=https://es.test.internal:9200
ES_USERNAME=admin
ES_PASSWORD=secret
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env.test", minimalEnv+`
ORIGIN_ES_URL=https://es.prod.internal:9200
ORIGIN_ES_USERNAME=reader
ORIGIN_ES_PASSWORD=readonly
KIBANA_URL=https://kibana.test.internal:5601
RESTORE_EXCLUDE_INDICES=-.security*, -.kibana*
RESTORE_FEATURE_STATES=kibana,security
RESTORE_INCLUDE_GLOBAL_STATE=false
`)

	cfg, err := Load(dir, "test")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, []string{"https://es.test.internal:9200"}, cfg.Current.Addresses)
	assert.Equal(t, "admin", cfg.Current.Username)
	assert.Equal(t, []string{"https://es.prod.internal:9200"}, cfg.Origin.Addresses)
	assert.Equal(t, "reader", cfg.Origin.Username)
	assert.Equal(t, "https://kibana.test.internal:5601", cfg.Kibana.BaseURL)
	// Kibana credentials fall back to the cluster credentials.
	assert.Equal(t, "admin", cfg.Kibana.Username)
	assert.Equal(t, []string{"-.security*", "-.kibana*"}, cfg.Restore.ExcludeIndices)
	assert.Equal(t, []string{"kibana", "security"}, cfg.Restore.FeatureStates)
	assert.False(t, cfg.Restore.IncludeGlobalState)
	assert.True(t, cfg.Restore.IgnoreUnavailable)
	assert.True(t, cfg.Restore.IncludeAliases)
}

func TestLoadRestoreOverlay(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env.test", minimalEnv+"RESTORE_INCLUDE_ALIASES=true\n")
	writeEnvFile(t, dir, ".env.restore.test", "RESTORE_INCLUDE_ALIASES=false\nRESTORE_FEATURE_STATES=geoip\n")

	cfg, err := Load(dir, "test")
	require.NoError(t, err)
	assert.False(t, cfg.Restore.IncludeAliases)
	assert.Equal(t, []string{"geoip"}, cfg.Restore.FeatureStates)
}

func TestLoadOriginFallsBackToCurrent(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env.prod", minimalEnv)

	cfg, err := Load(dir, "prod")
	require.NoError(t, err)
	assert.Equal(t, cfg.Current, cfg.Origin)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), "test")
	require.Error(t, err)
	assert.True(t, adminerrors.HasCode(err, adminerrors.ErrCodeConfig))
}

func TestLoadMissingRequiredKeys(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env.test", "ES_URL=https://es.test.internal:9200\n")

	_, err := Load(dir, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ES_USERNAME")
	assert.Contains(t, err.Error(), "ES_PASSWORD")
}

func TestLoadUnknownEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantHint    string
	}{
		{name: "typo of prod", environment: "pord", wantHint: `did you mean "prod"?`},
		{name: "typo of test", environment: "tets", wantHint: `did you mean "test"?`},
		{name: "nothing close", environment: "staging", wantHint: "valid: test, prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(t.TempDir(), tt.environment)
			require.Error(t, err)
			assert.True(t, adminerrors.HasCode(err, adminerrors.ErrCodeConfig))
			assert.Contains(t, err.Error(), tt.wantHint)
		})
	}
}
