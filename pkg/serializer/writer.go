/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer renders API payloads for the operator: JSON and YAML for
// piping, tables for the cat-style listings, and entity exports to local files.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Format identifies an output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported formats.
// The empty format is known and treated as JSON.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable, "":
		return false
	}
	return true
}

// Serializer writes a payload to its destination.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Tabular is implemented by payloads that know how to render themselves as a
// table. FormatTable requires it.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

// Writer serializes payloads to an io.Writer in a fixed format.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter creates a writer for the given format and destination.
func NewWriter(format Format, out io.Writer) *Writer {
	if format == "" {
		format = FormatJSON
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a writer targeting standard output.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// Serialize writes data in the writer's format. Table output requires data to
// implement Tabular.
func (w *Writer) Serialize(_ context.Context, data any) error {
	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		tab, ok := data.(Tabular)
		if !ok {
			return fmt.Errorf("payload of type %T cannot be rendered as a table", data)
		}
		renderTable(w.out, tab)
		return nil
	default:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		return nil
	}
}

func renderTable(out io.Writer, data Tabular) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	header := table.Row{}
	for _, h := range data.TableHeader() {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, row := range data.TableRows() {
		r := table.Row{}
		for _, cell := range row {
			r = append(r, cell)
		}
		t.AppendRow(r)
	}
	t.Render()
}
