/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
	"github.com/esadmin/esadmctl/pkg/prompt"
	"github.com/esadmin/esadmctl/pkg/serializer"
)

func menuApp(answers ...string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		Prompt: &prompt.Scripted{Answers: answers},
		Out:    &out,
		Format: serializer.FormatJSON,
	}, &out
}

func TestMenuQuitExitsCleanly(t *testing.T) {
	r := NewRegistry()
	r.Register(Operation{Group: "cluster", Name: "health",
		Handler: func(context.Context, *App) error { return nil }})

	app, _ := menuApp(menuQuit)
	require.NoError(t, RunMenu(context.Background(), r, app))
}

func TestMenuRunsSelectedOperation(t *testing.T) {
	r := NewRegistry()
	runs := 0
	r.Register(Operation{Group: "cluster", Name: "health",
		Handler: func(context.Context, *App) error { runs++; return nil }})

	app, _ := menuApp("cluster", "health", menuBack, menuQuit)
	require.NoError(t, RunMenu(context.Background(), r, app))
	assert.Equal(t, 1, runs)
}

// A failed operation is reported but keeps the menu alive.
func TestMenuSurvivesOperationFailure(t *testing.T) {
	r := NewRegistry()
	runs := 0
	r.Register(Operation{Group: "indices", Name: "delete",
		Handler: func(context.Context, *App) error {
			runs++
			return adminerrors.New(adminerrors.ErrCodeAborted, "operation cancelled")
		}})
	r.Register(Operation{Group: "indices", Name: "list",
		Handler: func(context.Context, *App) error { runs++; return nil }})

	app, out := menuApp("indices", "delete", "list", menuBack, menuQuit)
	require.NoError(t, RunMenu(context.Background(), r, app))
	assert.Equal(t, 2, runs)
	assert.Contains(t, out.String(), "operation cancelled")
}
