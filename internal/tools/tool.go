// Package tools defines the tool interface and shared types, and provides
// the tool registry and dispatcher the backend session calls into.
package tools

import (
	"context"
	"encoding/json"
)

// ToolResult is the outcome of one tool execution.
type ToolResult struct {
	Content   string // primary output, serialized into the function response
	IsError   bool   // whether this is an error result
	Truncated bool   // whether Content was cut by the dispatcher
}

// Tool is the contract every model-callable operation satisfies.
type Tool interface {
	// Name returns the tool name (snake_case), e.g. "read_file".
	// This is the name the model calls; it must be unique in a registry.
	Name() string

	// Description is the tool description sent to the model.
	Description() string

	// Parameters returns the JSON Schema properties for the tool's input.
	Parameters() map[string]any

	// Execute runs the tool. params is the model-supplied call input,
	// already valid JSON. Tool-internal failures should be returned as
	// a ToolResult with IsError set; a non-nil error means the call
	// itself could not be carried out.
	Execute(ctx context.Context, params json.RawMessage) (ToolResult, error)

	// IsReadOnly marks tools that never modify files or run commands.
	IsReadOnly() bool
}
