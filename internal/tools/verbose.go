package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// verboseTool is a pure pass-through observer around another tool. It
// prints the call arguments before execution and the result (or error)
// after, and returns the inner tool's values untouched. Applied at
// registry-build time via Registry.Wrap when --verbose is set.
type verboseTool struct {
	inner Tool
	out   io.Writer
}

// Verbose wraps t so every invocation is logged to out.
func Verbose(t Tool, out io.Writer) Tool {
	return &verboseTool{inner: t, out: out}
}

func (v *verboseTool) Name() string               { return v.inner.Name() }
func (v *verboseTool) Description() string        { return v.inner.Description() }
func (v *verboseTool) Parameters() map[string]any { return v.inner.Parameters() }
func (v *verboseTool) IsReadOnly() bool           { return v.inner.IsReadOnly() }

func (v *verboseTool) Execute(ctx context.Context, params json.RawMessage) (ToolResult, error) {
	fmt.Fprintf(v.out, "[tool] %s called with: %s\n", v.inner.Name(), string(params))
	result, err := v.inner.Execute(ctx, params)
	if err != nil {
		fmt.Fprintf(v.out, "[tool] %s error: %v\n", v.inner.Name(), err)
		return result, err
	}
	fmt.Fprintf(v.out, "[tool] %s result: %s\n", v.inner.Name(), preview(result.Content, 200))
	return result, nil
}

// preview shortens s to maxLen characters for log output.
func preview(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
