/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"sort"

	adminerrors "github.com/esadmin/esadmctl/pkg/errors"
)

// Handler executes one operation against the app context. Handlers prompt for
// the parameters they need and render their own output.
type Handler func(ctx context.Context, app *App) error

// Operation is one registered operation: a stable identifier, the menu group
// it belongs to, and its handler.
type Operation struct {
	Name    string
	Group   string
	Usage   string
	Handler Handler
}

// QualifiedName is the registry key, unique across groups.
func (op Operation) QualifiedName() string {
	return op.Group + "/" + op.Name
}

// Registry maps operation identifiers to handlers. The CLI commands and the
// interactive menu both dispatch through it.
type Registry struct {
	operations map[string]Operation
	groups     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{operations: map[string]Operation{}}
}

// Register adds an operation. Registering the same name twice panics: names
// are compile-time constants and a duplicate is a programming error.
func (r *Registry) Register(op Operation) {
	if _, exists := r.operations[op.QualifiedName()]; exists {
		panic("operation registered twice: " + op.QualifiedName())
	}
	r.operations[op.QualifiedName()] = op
	if !contains(r.groups, op.Group) {
		r.groups = append(r.groups, op.Group)
	}
}

// Lookup returns the operation registered under the qualified "group/name"
// identifier.
func (r *Registry) Lookup(name string) (Operation, error) {
	op, ok := r.operations[name]
	if !ok {
		return Operation{}, adminerrors.New(adminerrors.ErrCodeNotFound, "unknown operation %q", name)
	}
	return op, nil
}

// Run dispatches the named operation.
func (r *Registry) Run(ctx context.Context, name string, app *App) error {
	op, err := r.Lookup(name)
	if err != nil {
		return err
	}
	return op.Handler(ctx, app)
}

// Groups returns the group names in registration order.
func (r *Registry) Groups() []string {
	return r.groups
}

// Group returns the operations of one group, sorted by name.
func (r *Registry) Group(group string) []Operation {
	ops := make([]Operation, 0)
	for _, op := range r.operations {
		if op.Group == group {
			ops = append(ops, op)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
