/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/esadmin/esadmctl/pkg/restore"
	"github.com/esadmin/esadmctl/pkg/verify"
)

func registerSnapshotOps(r *Registry) {
	r.Register(Operation{Group: "snapshots", Name: "repositories", Usage: "List snapshot repositories",
		Handler: snapshotRepositories})
	r.Register(Operation{Group: "snapshots", Name: "policies", Usage: "List SLM policies of the origin cluster",
		Handler: snapshotPolicies})
	r.Register(Operation{Group: "snapshots", Name: "list", Usage: "List snapshots in a repository",
		Handler: snapshotList})
	r.Register(Operation{Group: "snapshots", Name: "status", Usage: "Show the status of one snapshot",
		Handler: snapshotStatus})
	r.Register(Operation{Group: "snapshots", Name: "restore", Usage: "Restore the latest snapshot of an SLM policy",
		Handler: snapshotRestore})
	r.Register(Operation{Group: "snapshots", Name: "verify", Usage: "Verify the cluster after a restore",
		Handler: snapshotVerify})
}

func snapshotRepositories(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	repos, err := client.Repositories(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, repos)
}

func snapshotPolicies(ctx context.Context, app *App) error {
	client, err := app.Origin()
	if err != nil {
		return err
	}
	policies, err := client.SLMPolicies(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, policies)
}

func selectRepository(ctx context.Context, app *App) (string, error) {
	client, err := app.Target()
	if err != nil {
		return "", err
	}
	repos, err := client.Repositories(ctx)
	if err != nil {
		return "", err
	}
	names := lo.Keys(repos)
	sort.Strings(names)
	return app.Prompt.Select("Snapshot repository", names)
}

func snapshotList(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	repo, err := selectRepository(ctx, app)
	if err != nil {
		return err
	}
	snapshots, err := client.Snapshots(ctx, repo)
	if err != nil {
		return err
	}
	return app.Render(ctx, snapshots)
}

func snapshotStatus(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	repo, err := selectRepository(ctx, app)
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Snapshot name")
	if err != nil {
		return err
	}
	status, err := client.SnapshotStatus(ctx, repo, name)
	if err != nil {
		return err
	}
	return renderRaw(ctx, app, status)
}

func snapshotRestore(ctx context.Context, app *App) error {
	target, err := app.Target()
	if err != nil {
		return err
	}
	origin, err := app.Origin()
	if err != nil {
		return err
	}
	workflow := &restore.Workflow{
		Target:   target,
		Origin:   origin,
		Prompt:   app.Prompt,
		Defaults: app.Config.Restore,
		Out:      app.Out,
	}
	return workflow.Run(ctx)
}

func snapshotVerify(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	patterns, err := app.Prompt.Input("Expected index patterns (comma separated)", "")
	if err != nil {
		return err
	}
	verifier := verify.New(client, verify.WithExpectedIndices(splitList(patterns)))
	result, err := verifier.Verify(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, result)
}
