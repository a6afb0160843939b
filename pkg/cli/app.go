/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"io"
	"os"

	"github.com/esadmin/esadmctl/pkg/config"
	"github.com/esadmin/esadmctl/pkg/elastic"
	"github.com/esadmin/esadmctl/pkg/kibana"
	"github.com/esadmin/esadmctl/pkg/prompt"
	"github.com/esadmin/esadmctl/pkg/serializer"
)

// App is the shared context of every operation: the loaded environment
// config, lazily created API clients, the prompter, and the output sink.
type App struct {
	Config  *config.Config
	Prompt  prompt.Prompter
	Out     io.Writer
	Format  serializer.Format
	Version string

	target *elastic.Client
	origin *elastic.Client
	kb     *kibana.Client
}

// NewApp creates an App for the loaded config with terminal prompts and
// stdout output.
func NewApp(cfg *config.Config, version string) *App {
	return &App{
		Config:  cfg,
		Prompt:  prompt.Terminal{},
		Out:     os.Stdout,
		Format:  serializer.FormatJSON,
		Version: version,
	}
}

// Target returns the client for the cluster operations act on.
func (a *App) Target() (*elastic.Client, error) {
	if a.target == nil {
		client, err := elastic.NewClient(a.Config.Current)
		if err != nil {
			return nil, err
		}
		a.target = client
	}
	return a.target, nil
}

// Origin returns the client for the cluster snapshots were taken from.
func (a *App) Origin() (*elastic.Client, error) {
	if a.origin == nil {
		client, err := elastic.NewClient(a.Config.Origin)
		if err != nil {
			return nil, err
		}
		a.origin = client
	}
	return a.origin, nil
}

// Kibana returns the client for the environment's Kibana server.
func (a *App) Kibana() (*kibana.Client, error) {
	if a.kb == nil {
		client, err := kibana.NewClient(a.Config.Kibana)
		if err != nil {
			return nil, err
		}
		a.kb = client
	}
	return a.kb, nil
}

// Render serializes data to the app's output in the selected format.
func (a *App) Render(ctx context.Context, data any) error {
	return serializer.NewWriter(a.Format, a.Out).Serialize(ctx, data)
}
