/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	ran := ""
	r.Register(Operation{Group: "cluster", Name: "health", Handler: func(context.Context, *App) error {
		ran = "cluster/health"
		return nil
	}})

	require.NoError(t, r.Run(context.Background(), "cluster/health", nil))
	assert.Equal(t, "cluster/health", ran)

	err := r.Run(context.Background(), "cluster/missing", nil)
	require.Error(t, err)
	assert.True(t, adminerrors.HasCode(err, adminerrors.ErrCodeNotFound))
}

func TestRegistrySameNameInDifferentGroups(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, *App) error { return nil }
	r.Register(Operation{Group: "indices", Name: "list", Handler: noop})
	r.Register(Operation{Group: "datastreams", Name: "list", Handler: noop})

	_, err := r.Lookup("indices/list")
	assert.NoError(t, err)
	_, err = r.Lookup("datastreams/list")
	assert.NoError(t, err)
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, *App) error { return nil }
	r.Register(Operation{Group: "cluster", Name: "health", Handler: noop})

	assert.Panics(t, func() {
		r.Register(Operation{Group: "cluster", Name: "health", Handler: noop})
	})
}

func TestRegistryGroupsAndOrdering(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, *App) error { return nil }
	r.Register(Operation{Group: "cluster", Name: "nodes", Handler: noop})
	r.Register(Operation{Group: "cluster", Name: "health", Handler: noop})
	r.Register(Operation{Group: "ilm", Name: "policies", Handler: noop})

	assert.Equal(t, []string{"cluster", "ilm"}, r.Groups())

	ops := r.Group("cluster")
	require.Len(t, ops, 2)
	assert.Equal(t, "health", ops[0].Name)
	assert.Equal(t, "nodes", ops[1].Name)
}

func TestDefaultRegistryCoversAllGroups(t *testing.T) {
	r := DefaultRegistry()
	assert.ElementsMatch(t,
		[]string{"cluster", "snapshots", "indices", "templates", "ilm", "datastreams", "fleet", "kibana"},
		r.Groups())

	// the headline workflows are registered
	for _, name := range []string{"snapshots/restore", "snapshots/verify", "datastreams/repair", "cluster/overview"} {
		_, err := r.Lookup(name)
		assert.NoError(t, err, name)
	}
}
