/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads the per-environment dotenv files and exposes them as an
// explicit Config value. Operations receive the Config they act on; nothing in
// the tool reads ambient process environment after startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/joho/godotenv"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

// Environment names accepted by the CLI.
const (
	EnvTest = "test"
	EnvProd = "prod"
)

// Environments returns the recognized environment names.
func Environments() []string {
	return []string{EnvTest, EnvProd}
}

// Cluster holds connection settings for one Elasticsearch cluster.
type Cluster struct {
	// Addresses are the cluster base URLs.
	Addresses []string

	// Username and Password are the basic-auth credentials.
	Username string
	Password string

	// InsecureSkipTLSVerify disables certificate verification. Used for test
	// clusters fronted by self-signed certificates.
	InsecureSkipTLSVerify bool
}

// Kibana holds connection settings for the Kibana server.
type Kibana struct {
	BaseURL  string
	Username string
	Password string
}

// RestoreDefaults are the built-in restore options defined per environment.
// Prompted values are merged on top of these.
type RestoreDefaults struct {
	// ExcludeIndices are index patterns always excluded from a restore.
	ExcludeIndices []string

	// FeatureStates are the feature states restored by default.
	FeatureStates []string

	IncludeGlobalState bool
	IgnoreUnavailable  bool
	IncludeAliases     bool
}

// Config is the explicit context object handed to every operation.
type Config struct {
	// Environment is the environment name the config was loaded for.
	Environment string

	// Current is the cluster operations act on.
	Current Cluster

	// Origin is the cluster snapshots were taken from. Defaults to Current
	// when the environment file defines no origin cluster.
	Origin Cluster

	// Kibana is the Kibana server of the current environment.
	Kibana Kibana

	// Restore holds the environment's restore defaults.
	Restore RestoreDefaults
}

// Load reads .env.<environment> from dir, overlays .env.restore.<environment>
// when present, and validates the result. An unknown environment name is
// rejected with a closest-match suggestion.
func Load(dir, environment string) (*Config, error) {
	if err := validateEnvironment(environment); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, ".env."+environment)
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, adminerrors.Wrap(adminerrors.ErrCodeConfig, err, "reading environment file %s", path)
	}

	restorePath := filepath.Join(dir, ".env.restore."+environment)
	if _, err := os.Stat(restorePath); err == nil {
		overlay, err := godotenv.Read(restorePath)
		if err != nil {
			return nil, adminerrors.Wrap(adminerrors.ErrCodeConfig, err, "reading restore overrides %s", restorePath)
		}
		for k, v := range overlay {
			values[k] = v
		}
		slog.Debug("applied restore overrides", slog.String("path", restorePath))
	}

	cfg, err := fromValues(environment, values)
	if err != nil {
		return nil, err
	}

	slog.Debug("environment loaded",
		slog.String("environment", environment),
		slog.String("cluster", strings.Join(cfg.Current.Addresses, ",")),
	)
	return cfg, nil
}

func validateEnvironment(environment string) error {
	for _, known := range Environments() {
		if environment == known {
			return nil
		}
	}
	if suggestion := closestEnvironment(environment); suggestion != "" {
		return adminerrors.New(adminerrors.ErrCodeConfig,
			"unknown environment %q (did you mean %q?)", environment, suggestion)
	}
	return adminerrors.New(adminerrors.ErrCodeConfig,
		"unknown environment %q (valid: %s)", environment, strings.Join(Environments(), ", "))
}

// closestEnvironment returns the known environment within edit distance 2 of
// name, or empty when nothing is close enough to be a plausible typo.
func closestEnvironment(name string) string {
	best := ""
	bestDistance := 3
	for _, known := range Environments() {
		if d := levenshtein.ComputeDistance(strings.ToLower(name), known); d < bestDistance {
			best = known
			bestDistance = d
		}
	}
	return best
}

func fromValues(environment string, values map[string]string) (*Config, error) {
	cfg := &Config{Environment: environment}

	var missing []string
	require := func(key string) string {
		v, ok := values[key]
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.Current = Cluster{
		Addresses:             splitList(require("ES_URL")),
		Username:              require("ES_USERNAME"),
		Password:              require("ES_PASSWORD"),
		InsecureSkipTLSVerify: parseBool(values["ES_INSECURE_SKIP_TLS"], false),
	}

	cfg.Origin = Cluster{
		Addresses:             splitList(values["ORIGIN_ES_URL"]),
		Username:              values["ORIGIN_ES_USERNAME"],
		Password:              values["ORIGIN_ES_PASSWORD"],
		InsecureSkipTLSVerify: parseBool(values["ORIGIN_ES_INSECURE_SKIP_TLS"], false),
	}
	if len(cfg.Origin.Addresses) == 0 {
		cfg.Origin = cfg.Current
	}

	cfg.Kibana = Kibana{
		BaseURL:  values["KIBANA_URL"],
		Username: values["KIBANA_USERNAME"],
		Password: values["KIBANA_PASSWORD"],
	}
	if cfg.Kibana.Username == "" {
		cfg.Kibana.Username = cfg.Current.Username
		cfg.Kibana.Password = cfg.Current.Password
	}

	cfg.Restore = RestoreDefaults{
		ExcludeIndices:     splitList(values["RESTORE_EXCLUDE_INDICES"]),
		FeatureStates:      splitList(values["RESTORE_FEATURE_STATES"]),
		IncludeGlobalState: parseBool(values["RESTORE_INCLUDE_GLOBAL_STATE"], false),
		IgnoreUnavailable:  parseBool(values["RESTORE_IGNORE_UNAVAILABLE"], true),
		IncludeAliases:     parseBool(values["RESTORE_INCLUDE_ALIASES"], true),
	}

	if len(missing) > 0 {
		return nil, adminerrors.New(adminerrors.ErrCodeConfig,
			"environment file is missing required keys: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// splitList splits a comma-separated dotenv value, dropping empty entries.
func splitList(raw string) []string {
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

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

// String renders the config for logging with credentials redacted.
func (c *Config) String() string {
	return fmt.Sprintf("env=%s cluster=%s origin=%s kibana=%s",
		c.Environment,
		strings.Join(c.Current.Addresses, ","),
		strings.Join(c.Origin.Addresses, ","),
		c.Kibana.BaseURL,
	)
}
