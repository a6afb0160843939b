/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
	"github.com/esadmin/esadmctl/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// splitList splits a comma separated prompt answer, dropping empty entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// renderRaw shows a raw JSON payload, optionally narrowed to one gjson path.
// The large state/settings payloads are rarely wanted whole.
func renderRaw(ctx context.Context, app *App, raw json.RawMessage) error {
	path, err := app.Prompt.Input("Filter path (empty for full payload)", "")
	if err != nil {
		return err
	}
	if path == "" {
		return app.Render(ctx, raw)
	}
	value, err := serializer.Query(raw, path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.Out, value)
	return err
}

// confirmDestructive gates a mutating operation behind the literal "y"
// confirmation. Anything else aborts before a single request is sent.
func confirmDestructive(app *App, message string) error {
	confirmed, err := app.Prompt.Confirm(message)
	if err != nil {
		return err
	}
	if !confirmed {
		return adminerrors.New(adminerrors.ErrCodeAborted, "operation cancelled")
	}
	return nil
}
