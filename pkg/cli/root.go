/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/esadmin/esadmctl/pkg/config"
)

// DefaultRegistry builds the registry holding every operation.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerClusterOps(r)
	registerSnapshotOps(r)
	registerIndexOps(r)
	registerILMOps(r)
	registerDataStreamOps(r)
	registerFleetOps(r)
	registerKibanaOps(r)
	return r
}

// RootCommand builds the esadmctl command tree. One subcommand per operation
// group, each group's subcommands dispatching through the registry, plus the
// interactive menu.
func RootCommand(version string) *cli.Command {
	registry := DefaultRegistry()

	commands := make([]*cli.Command, 0, len(registry.Groups())+1)
	for _, group := range registry.Groups() {
		commands = append(commands, groupCommand(registry, group, version))
	}
	commands = append(commands, menuCommand(registry, version))

	return &cli.Command{
		Name:                  "esadmctl",
		Usage:                 "Administer Elasticsearch and Kibana environments",
		Version:               version,
		EnableShellCompletion: true,
		Flags:                 globalFlags(),
		Commands:              commands,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "env",
			Aliases:  []string{"e"},
			Required: true,
			Usage:    "Environment to operate on (test, prod)",
		},
		&cli.StringFlag{
			Name:  "config-dir",
			Value: ".",
			Usage: "Directory holding the .env.<environment> files",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"t"},
			Value:   "json",
			Usage:   "Output format (json, yaml, table)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

func groupCommand(registry *Registry, group string, version string) *cli.Command {
	ops := registry.Group(group)
	subcommands := make([]*cli.Command, 0, len(ops))
	for _, op := range ops {
		subcommands = append(subcommands, &cli.Command{
			Name:  op.Name,
			Usage: op.Usage,
			Action: func(ctx context.Context, cmd *cli.Command) error {
				app, err := setupApp(cmd, version)
				if err != nil {
					return err
				}
				return op.Handler(ctx, app)
			},
		})
	}
	return &cli.Command{
		Name:     group,
		Usage:    "Operations on " + group,
		Commands: subcommands,
	}
}

// setupApp configures logging, loads the environment config, and builds the
// app context for one command invocation.
func setupApp(cmd *cli.Command, version string) (*App, error) {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cmd.String("config-dir"), cmd.String("env"))
	if err != nil {
		return nil, err
	}

	app := NewApp(cfg, version)
	app.Format = format
	return app, nil
}
