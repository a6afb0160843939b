/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/esadmin/esadmctl/pkg/kibana"
)

const agentPageSize = 100

func registerFleetOps(r *Registry) {
	r.Register(Operation{Group: "fleet", Name: "agents", Usage: "List fleet agents",
		Handler: fleetAgents})
	r.Register(Operation{Group: "fleet", Name: "unenroll", Usage: "Bulk-unenroll agents matching a query",
		Handler: fleetUnenroll})
	r.Register(Operation{Group: "fleet", Name: "server-hosts", Usage: "List fleet server hosts",
		Handler: fleetServerHosts})
	r.Register(Operation{Group: "fleet", Name: "outputs", Usage: "List fleet outputs",
		Handler: fleetOutputs})
}

func fleetAgents(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	kuery, err := app.Prompt.Input("Agent query (kuery, empty for all)", "")
	if err != nil {
		return err
	}
	agents, err := client.Agents(ctx, kuery, 1, agentPageSize)
	if err != nil {
		return err
	}
	return app.Render(ctx, agents)
}

func fleetUnenroll(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	kuery, err := app.Prompt.Required("Agent query (kuery)")
	if err != nil {
		return err
	}
	agents, err := client.Agents(ctx, kuery, 1, agentPageSize)
	if err != nil {
		return err
	}
	if len(agents.List) == 0 {
		return app.Render(ctx, map[string]string{"result": "no agents match the query"})
	}

	ids := lo.Map(agents.List, func(a kibana.Agent, _ int) string { return a.ID })
	message := fmt.Sprintf("Unenroll %d agents matching %q?", len(ids), kuery)
	if err := confirmDestructive(app, message); err != nil {
		return err
	}

	result, err := client.BulkUnenroll(ctx, ids, true)
	if err != nil {
		return err
	}
	return app.Render(ctx, result)
}

func fleetServerHosts(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	hosts, err := client.FleetServerHosts(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, hosts)
}

func fleetOutputs(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	outputs, err := client.Outputs(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, outputs)
}
