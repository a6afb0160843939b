/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/esadmin/esadmctl/pkg/datastream"
)

func registerDataStreamOps(r *Registry) {
	r.Register(Operation{Group: "datastreams", Name: "list", Usage: "List data streams",
		Handler: dataStreamList})
	r.Register(Operation{Group: "datastreams", Name: "get", Usage: "Show one data stream",
		Handler: dataStreamGet})
	r.Register(Operation{Group: "datastreams", Name: "delete", Usage: "Delete a data stream and its backing indices",
		Handler: dataStreamDelete})
	r.Register(Operation{Group: "datastreams", Name: "repair", Usage: "Repair backing indices after a restore",
		Handler: dataStreamRepair})
}

func dataStreamList(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	pattern, err := app.Prompt.Input("Data stream pattern", "")
	if err != nil {
		return err
	}
	streams, err := client.DataStreams(ctx, pattern)
	if err != nil {
		return err
	}
	return app.Render(ctx, streams)
}

func dataStreamGet(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Data stream name")
	if err != nil {
		return err
	}
	stream, err := client.DataStream(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, stream)
}

func dataStreamDelete(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Data stream name")
	if err != nil {
		return err
	}
	if err := confirmDestructive(app, "Delete data stream "+name+" and all its backing indices?"); err != nil {
		return err
	}
	ack, err := client.DeleteDataStream(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, ack)
}

func dataStreamRepair(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Data stream name")
	if err != nil {
		return err
	}
	repairer := &datastream.Repairer{Client: client}
	report, err := repairer.Repair(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, report)
}
