/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/esadmin/esadmctl/pkg/elastic"
	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
	"github.com/esadmin/esadmctl/pkg/serializer"
)

func registerILMOps(r *Registry) {
	r.Register(Operation{Group: "ilm", Name: "policies", Usage: "List ILM policies",
		Handler: ilmPolicies})
	r.Register(Operation{Group: "ilm", Name: "policy", Usage: "Show one ILM policy",
		Handler: ilmPolicy})
	r.Register(Operation{Group: "ilm", Name: "export", Usage: "Export an ILM policy to a local file",
		Handler: ilmExport})
	r.Register(Operation{Group: "ilm", Name: "delete", Usage: "Delete an ILM policy",
		Handler: ilmDelete})
	r.Register(Operation{Group: "ilm", Name: "explain", Usage: "Explain the ILM state of indices",
		Handler: ilmExplain})
	r.Register(Operation{Group: "ilm", Name: "remove", Usage: "Remove the ILM association from an index",
		Handler: ilmRemove})
	r.Register(Operation{Group: "ilm", Name: "assign", Usage: "Assign an ILM policy to an index",
		Handler: ilmAssign})
	r.Register(Operation{Group: "ilm", Name: "move", Usage: "Move an index to another ILM step",
		Handler: ilmMove})
}

func ilmPolicies(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	policies, err := client.ILMPolicies(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, policies)
}

func ilmPolicy(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Policy name")
	if err != nil {
		return err
	}
	policy, err := client.ILMPolicy(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, policy)
}

func ilmExport(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Policy name")
	if err != nil {
		return err
	}
	raw, err := client.ILMPolicy(ctx, name)
	if err != nil {
		return err
	}
	path, err := serializer.ExportEntity(".", name, raw)
	if err != nil {
		return err
	}
	return app.Render(ctx, map[string]string{"exported": path})
}

func ilmDelete(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Policy name")
	if err != nil {
		return err
	}
	if err := confirmDestructive(app, "Delete ILM policy "+name+"?"); err != nil {
		return err
	}
	ack, err := client.DeleteILMPolicy(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, ack)
}

func ilmExplain(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	pattern, err := app.Prompt.Input("Index pattern", "*")
	if err != nil {
		return err
	}
	explain, err := client.ILMExplain(ctx, pattern)
	if err != nil {
		return err
	}
	return app.Render(ctx, explain)
}

func ilmRemove(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	index, err := app.Prompt.Required("Index name")
	if err != nil {
		return err
	}
	result, err := client.RemoveILMPolicy(ctx, index)
	if err != nil {
		return err
	}
	return app.Render(ctx, result)
}

func ilmAssign(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	index, err := app.Prompt.Required("Index name")
	if err != nil {
		return err
	}
	policy, err := app.Prompt.Required("Policy name")
	if err != nil {
		return err
	}
	ack, err := client.PutIndexSettings(ctx, index, map[string]any{
		"index.lifecycle.name": policy,
	})
	if err != nil {
		return err
	}
	return app.Render(ctx, ack)
}

func ilmMove(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	index, err := app.Prompt.Required("Index name")
	if err != nil {
		return err
	}
	explain, err := client.ILMExplain(ctx, index)
	if err != nil {
		return err
	}
	state, ok := explain[index]
	if !ok {
		return adminerrors.New(adminerrors.ErrCodeNotFound, "no ILM state for index "+index)
	}

	phase, err := app.Prompt.Input("Next phase", "hot")
	if err != nil {
		return err
	}
	action, err := app.Prompt.Input("Next action", "rollover")
	if err != nil {
		return err
	}
	step, err := app.Prompt.Input("Next step", "set-indexing-complete")
	if err != nil {
		return err
	}

	ack, err := client.MoveILMStep(ctx, index, elastic.MoveStepRequest{
		CurrentStep: elastic.ILMStep{Phase: state.Phase, Action: state.Action, Name: state.Step},
		NextStep:    elastic.ILMStep{Phase: phase, Action: action, Name: step},
	})
	if err != nil {
		return err
	}
	return app.Render(ctx, ack)
}
