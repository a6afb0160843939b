/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os"
	"strings"
)

func registerKibanaOps(r *Registry) {
	r.Register(Operation{Group: "kibana", Name: "saved-objects", Usage: "Find saved objects",
		Handler: kibanaSavedObjects})
	r.Register(Operation{Group: "kibana", Name: "export", Usage: "Export saved objects to a local NDJSON file",
		Handler: kibanaExport})
	r.Register(Operation{Group: "kibana", Name: "spaces", Usage: "List spaces",
		Handler: kibanaSpaces})
	r.Register(Operation{Group: "kibana", Name: "roles", Usage: "List security roles",
		Handler: kibanaRoles})
	r.Register(Operation{Group: "kibana", Name: "users", Usage: "List security users",
		Handler: kibanaUsers})
}

func kibanaSavedObjects(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	objectType, err := app.Prompt.Select("Object type",
		[]string{"dashboard", "index-pattern", "visualization", "search", "lens"})
	if err != nil {
		return err
	}
	search, err := app.Prompt.Input("Search term (empty for all)", "")
	if err != nil {
		return err
	}
	objects, err := client.FindSavedObjects(ctx, objectType, search, 100)
	if err != nil {
		return err
	}
	return app.Render(ctx, objects)
}

func kibanaExport(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	types, err := app.Prompt.Input("Object types (comma separated)", "dashboard")
	if err != nil {
		return err
	}
	ndjson, err := client.ExportSavedObjects(ctx, splitList(types))
	if err != nil {
		return err
	}

	name := "saved-objects-" + strings.ReplaceAll(strings.TrimSpace(types), ",", "-") + ".ndjson"
	if err := os.WriteFile(name, ndjson, 0o644); err != nil {
		return err
	}
	return app.Render(ctx, map[string]string{"exported": name})
}

func kibanaSpaces(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	spaces, err := client.Spaces(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, spaces)
}

func kibanaRoles(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	roles, err := client.Roles(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, roles)
}

func kibanaUsers(ctx context.Context, app *App) error {
	client, err := app.Kibana()
	if err != nil {
		return err
	}
	users, err := client.Users(ctx)
	if err != nil {
		return err
	}
	return app.Render(ctx, users)
}
