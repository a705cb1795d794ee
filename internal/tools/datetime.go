package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeTool reports the current date and time.
type DateTimeTool struct {
	// Now overrides the clock in tests. nil means time.Now.
	Now func() time.Time
}

func (t *DateTimeTool) Name() string     { return "datetime" }
func (t *DateTimeTool) IsReadOnly() bool { return true }

func (t *DateTimeTool) Description() string {
	return "Get the current date and time, in local time and UTC. " +
		"Call this whenever the answer depends on today's date."
}

func (t *DateTimeTool) Parameters() map[string]any {
	return map[string]any{}
}

func (t *DateTimeTool) Execute(_ context.Context, _ json.RawMessage) (ToolResult, error) {
	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	content := fmt.Sprintf("Local: %s\nUTC:   %s\nUnix:  %d",
		now.Format(time.RFC1123),
		now.UTC().Format(time.RFC3339),
		now.Unix())
	return ToolResult{Content: content}, nil
}
