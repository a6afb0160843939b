/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/esadmin/esadmctl/pkg/elastic"
	"github.com/esadmin/esadmctl/pkg/serializer"
)

func registerIndexOps(r *Registry) {
	r.Register(Operation{Group: "indices", Name: "list", Usage: "List indices",
		Handler: indexList})
	r.Register(Operation{Group: "indices", Name: "shards", Usage: "List shards",
		Handler: indexShards})
	r.Register(Operation{Group: "indices", Name: "aliases", Usage: "List aliases",
		Handler: indexAliases})
	r.Register(Operation{Group: "indices", Name: "get", Usage: "Show one index",
		Handler: indexGet})
	r.Register(Operation{Group: "indices", Name: "open", Usage: "Open a closed index",
		Handler: indexOpen})
	r.Register(Operation{Group: "indices", Name: "close", Usage: "Close an index",
		Handler: indexClose})
	r.Register(Operation{Group: "indices", Name: "delete", Usage: "Delete an index",
		Handler: indexDelete})
	r.Register(Operation{Group: "indices", Name: "reindex", Usage: "Reindex one index into another",
		Handler: indexReindex})
	r.Register(Operation{Group: "indices", Name: "export", Usage: "Export index settings and mappings to a local file",
		Handler: indexExport})
	r.Register(Operation{Group: "indices", Name: "recovery", Usage: "Show shard recovery progress",
		Handler: indexRecovery})
	r.Register(Operation{Group: "templates", Name: "index-templates", Usage: "List index templates",
		Handler: indexTemplates})
	r.Register(Operation{Group: "templates", Name: "component-templates", Usage: "List component templates",
		Handler: componentTemplates})
	r.Register(Operation{Group: "templates", Name: "export", Usage: "Export an index template to a local file",
		Handler: templateExport})
}

func indexList(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	pattern, err := app.Prompt.Input("Index pattern", "*")
	if err != nil {
		return err
	}
	indices, err := client.CatIndices(ctx, pattern)
	if err != nil {
		return err
	}
	return app.Render(ctx, indices)
}

func indexShards(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	pattern, err := app.Prompt.Input("Index pattern", "")
	if err != nil {
		return err
	}
	shards, err := client.CatShards(ctx, pattern)
	if err != nil {
		return err
	}
	return app.Render(ctx, shards)
}

func indexAliases(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	aliases, err := client.CatAliases(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, aliases)
}

func indexGet(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Index name")
	if err != nil {
		return err
	}
	index, err := client.GetIndex(ctx, name)
	if err != nil {
		return err
	}
	return renderRaw(ctx, app, index)
}

func indexOpen(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Index name")
	if err != nil {
		return err
	}
	ack, err := client.OpenIndex(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, ack)
}

func indexClose(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Index name")
	if err != nil {
		return err
	}
	if err := confirmDestructive(app, "Close index "+name+"?"); err != nil {
		return err
	}
	ack, err := client.CloseIndex(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, ack)
}

func indexDelete(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Index name")
	if err != nil {
		return err
	}
	if err := confirmDestructive(app, "Delete index "+name+"? This cannot be undone."); err != nil {
		return err
	}
	ack, err := client.DeleteIndex(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, ack)
}

func indexReindex(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	source, err := app.Prompt.Required("Source index")
	if err != nil {
		return err
	}
	dest, err := app.Prompt.Required("Destination index")
	if err != nil {
		return err
	}
	result, err := client.Reindex(ctx, elastic.ReindexRequest{
		Source: elastic.ReindexSource{Index: source},
		Dest:   elastic.ReindexDest{Index: dest},
	})
	if err != nil {
		return err
	}
	return app.Render(ctx, result)
}

func indexExport(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Index name")
	if err != nil {
		return err
	}
	raw, err := client.GetIndex(ctx, name)
	if err != nil {
		return err
	}
	path, err := serializer.ExportEntity(".", name, raw)
	if err != nil {
		return err
	}
	return app.Render(ctx, map[string]string{"exported": path})
}

func indexRecovery(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	pattern, err := app.Prompt.Input("Index pattern", "")
	if err != nil {
		return err
	}
	recoveries, err := client.CatRecovery(ctx, pattern)
	if err != nil {
		return err
	}
	return app.Render(ctx, recoveries)
}

func indexTemplates(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Input("Template name (empty for all)", "")
	if err != nil {
		return err
	}
	templates, err := client.IndexTemplates(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, templates)
}

func componentTemplates(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Input("Template name (empty for all)", "")
	if err != nil {
		return err
	}
	templates, err := client.ComponentTemplates(ctx, name)
	if err != nil {
		return err
	}
	return app.Render(ctx, templates)
}

func templateExport(ctx context.Context, app *App) error {
	client, err := app.Target()
	if err != nil {
		return err
	}
	name, err := app.Prompt.Required("Template name")
	if err != nil {
		return err
	}
	raw, err := client.IndexTemplates(ctx, name)
	if err != nil {
		return err
	}
	path, err := serializer.ExportEntity(".", name, raw)
	if err != nil {
		return err
	}
	return app.Render(ctx, map[string]string{"exported": path})
}
