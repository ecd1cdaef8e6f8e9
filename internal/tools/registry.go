// Package tools maps tool names to handlers and validates call arguments
// against each tool's declared JSON schema before dispatch.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Definition describes one tool in the list_tools table. Definitions are
// built once at server start and never change.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// Handler executes one tool call against validated arguments.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Registry is the tool table and dispatcher.
type Registry struct {
	defs     []Definition
	handlers map[string]Handler
	schemas  map[string]*gojsonschema.Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		schemas:  make(map[string]*gojsonschema.Schema),
	}
}

// Register adds a tool, compiling its input schema.
func (r *Registry) Register(def Definition, handler Handler) error {
	if _, exists := r.handlers[def.Name]; exists {
		return fmt.Errorf("tool already registered: %s", def.Name)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(def.InputSchema))
	if err != nil {
		return fmt.Errorf("invalid input schema for %s: %w", def.Name, err)
	}

	r.defs = append(r.defs, def)
	r.handlers[def.Name] = handler
	r.schemas[def.Name] = schema
	return nil
}

// Definitions returns the full static tool table.
func (r *Registry) Definitions() []Definition {
	return r.defs
}

// Call dispatches a tool by name. Unknown names fail without side effects;
// arguments that violate the tool's schema are rejected before the handler
// runs.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	result, err := r.schemas[name].Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return nil, &ArgumentError{Tool: name, Detail: err.Error()}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, &ArgumentError{Tool: name, Detail: strings.Join(details, "; ")}
	}

	return handler(ctx, args)
}
