/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package restore

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

var (
	//go:embed data/defaults.yaml
	defaultsData []byte

	defaultsOnce   sync.Once
	cachedDefaults *Defaults
	cachedErr      error
)

// Defaults are the built-in restore selection defaults.
type Defaults struct {
	ExcludeIndices []string `yaml:"exclude_indices"`
	FeatureStates  []string `yaml:"feature_states"`
}

// loadDefaults parses the embedded defaults once and reuses the in-memory
// representation for the lifetime of the process.
func loadDefaults() (*Defaults, error) {
	defaultsOnce.Do(func() {
		var d Defaults
		if err := yaml.Unmarshal(defaultsData, &d); err != nil {
			cachedErr = err
			return
		}
		cachedDefaults = &d
	})

	if cachedErr != nil {
		return nil, cachedErr
	}
	if cachedDefaults == nil {
		return nil, adminerrors.New(adminerrors.ErrCodeInternal, "restore defaults not initialized")
	}
	return cachedDefaults, nil
}
