package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Dispatcher executes tool calls on behalf of the backend session, with
// timeout control and output size limits. Tool failures never propagate as
// errors: every outcome becomes a ToolResult the model can read.
type Dispatcher struct {
	registry       *Registry
	defaultTimeout time.Duration
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{
		registry:       registry,
		defaultTimeout: 300 * time.Second,
	}
}

// Registry returns the underlying tool registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Execute runs a single tool call.
func (d *Dispatcher) Execute(ctx context.Context, name string, params json.RawMessage) ToolResult {
	tool, ok := d.registry.Get(name)
	if !ok {
		return ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}
	}

	ctx, cancel := context.WithTimeout(ctx, d.defaultTimeout)
	defer cancel()

	result, err := tool.Execute(ctx, params)
	if err != nil {
		return ToolResult{Content: fmt.Sprintf("error: %v", err), IsError: true}
	}

	limit := toolOutputLimit(name)
	if len(result.Content) > limit {
		result.Content = truncateHeadTail(result.Content, limit)
		result.Truncated = true
	}

	return result
}

// toolOutputLimit returns the output byte limit for a given tool.
func toolOutputLimit(name string) int {
	switch name {
	case "read_file", "bash", "sandbox", "arxiv_search":
		return 32 * 1024 // 32KB ~8K tokens
	case "list_files":
		return 16 * 1024
	default: // edit_file, datetime
		return 4 * 1024
	}
}

// truncateHeadTail keeps the head (60%) and tail (40%) of a string,
// omitting the middle. Tail content (errors, final results) is often more
// important than the middle.
func truncateHeadTail(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	head := maxLen * 3 / 5
	tail := maxLen * 2 / 5
	omitted := len(s) - head - tail
	return s[:head] + fmt.Sprintf("\n\n[...%d chars omitted...]\n\n", omitted) + s[len(s)-tail:]
}
