/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/ttacon/chalk"
	"github.com/urfave/cli/v3"
)

const (
	menuQuit = "quit"
	menuBack = "back"
)

func menuCommand(registry *Registry, version string) *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "Browse all operations interactively",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			app, err := setupApp(cmd, version)
			if err != nil {
				return err
			}
			return RunMenu(ctx, registry, app)
		},
	}
}

// RunMenu drives the nested interactive menu: pick a group, pick an
// operation, run it, repeat. A failed operation is reported and the menu
// continues; only "quit" ends the loop.
func RunMenu(ctx context.Context, registry *Registry, app *App) error {
	for {
		groups := append(append([]string{}, registry.Groups()...), menuQuit)
		group, err := app.Prompt.Select("Select area", groups)
		if err != nil {
			return err
		}
		if group == menuQuit {
			return nil
		}

		if err := runGroupMenu(ctx, registry, app, group); err != nil {
			return err
		}
	}
}

func runGroupMenu(ctx context.Context, registry *Registry, app *App, group string) error {
	ops := registry.Group(group)
	names := make([]string, 0, len(ops)+1)
	for _, op := range ops {
		names = append(names, op.Name)
	}
	names = append(names, menuBack)

	for {
		name, err := app.Prompt.Select(group+" operation", names)
		if err != nil {
			return err
		}
		if name == menuBack {
			return nil
		}

		if err := registry.Run(ctx, group+"/"+name, app); err != nil {
			// the operation aborted, the menu did not
			fmt.Fprintln(app.Out, chalk.Red.Color(err.Error()))
		}
	}
}
