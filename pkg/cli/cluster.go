/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"strconv"

	"github.com/esadmin/esadmctl/pkg/inspect"
	"github.com/esadmin/esadmctl/pkg/serializer"
)

func registerClusterOps(r *Registry) {
	r.Register(Operation{Group: "cluster", Name: "health", Usage: "Show cluster health",
		Handler: clusterHealth})
	r.Register(Operation{Group: "cluster", Name: "settings", Usage: "Show cluster settings",
		Handler: clusterSettings})
	r.Register(Operation{Group: "cluster", Name: "transient-settings", Usage: "Update a transient cluster setting",
		Handler: clusterTransientSettings})
	r.Register(Operation{Group: "cluster", Name: "state", Usage: "Show cluster state metadata",
		Handler: clusterState})
	r.Register(Operation{Group: "cluster", Name: "allocation-explain", Usage: "Explain the current shard allocation",
		Handler: clusterAllocationExplain})
	r.Register(Operation{Group: "cluster", Name: "nodes", Usage: "List nodes",
		Handler: clusterNodes})
	r.Register(Operation{Group: "cluster", Name: "nodes-info", Usage: "Show node details",
		Handler: clusterNodesInfo})
	r.Register(Operation{Group: "cluster", Name: "overview", Usage: "Collect a full cluster overview",
		Handler: clusterOverview})
}

func clusterHealth(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	health, err := client.Health(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, health)
}

func clusterSettings(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	answer, err := app.Prompt.Input("Include default settings (true/false)", "false")
	if err != nil {
		return err
	}
	includeDefaults, _ := strconv.ParseBool(answer)
	settings, err := client.Settings(ctx, includeDefaults)
	if err != nil {
		return err
	}
	return app.Render(ctx, settings)
}

func clusterTransientSettings(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	key, err := app.Prompt.Required("Setting key")
	if err != nil {
		return err
	}
	value, err := app.Prompt.Required("Setting value (null to clear)")
	if err != nil {
		return err
	}

	var setting any = value
	if value == "null" {
		setting = nil
	}
	result, err := client.UpdateTransientSettings(ctx, map[string]any{key: setting})
	if err != nil {
		return err
	}
	return app.Render(ctx, result)
}

func clusterState(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	state, err := client.State(ctx, "metadata", "routing_table")
	if err != nil {
		return err
	}
	return renderRaw(ctx, app, state)
}

func clusterAllocationExplain(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	explain, err := client.AllocationExplain(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, explain)
}

func clusterNodes(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	nodes, err := client.CatNodes(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, nodes)
}

func clusterNodesInfo(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	info, err := client.NodesInfo(ctx)
	if err != nil {
		return err
	}
	return renderRaw(ctx, app, info)
}

func clusterOverview(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	inspector := &inspect.ClusterInspector{
		Version:     app.Version,
		Client:      client,
		Environment: app.Config.Environment,
		Serializer:  serializer.NewWriter(app.Format, app.Out),
	}
	return inspector.Inspect(ctx)
}
