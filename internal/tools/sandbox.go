package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SandboxTool runs a command inside a throwaway scratch directory with a
// scrubbed environment. The command cannot see the caller's environment
// variables and its working directory is deleted afterwards, so it is the
// right place for experiments, generated scripts, and anything untrusted.
type SandboxTool struct {
	KeepDirs bool // retain scratch directories after the run
}

func (t *SandboxTool) Name() string     { return "sandbox" }
func (t *SandboxTool) IsReadOnly() bool { return false }

func (t *SandboxTool) Description() string {
	return "Run a shell command in an isolated scratch directory with a minimal " +
		"environment. Files written by the command land in the scratch directory " +
		"and are discarded when the command finishes. Use for experiments and " +
		"untrusted code; use bash for commands that must touch the project."
}

const defaultSandboxTimeout = 60 * time.Second

func (t *SandboxTool) Parameters() map[string]any {
	return map[string]any{
		"command": map[string]any{
			"type":        "string",
			"description": "The shell command to execute in the sandbox",
		},
		"timeout": map[string]any{
			"type":        "integer",
			"description": "Timeout in seconds (default 60, max 600)",
		},
	}
}

func (t *SandboxTool) Execute(ctx context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		Command string `json:"command"`
		Timeout int    `json:"timeout"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if p.Command == "" {
		return ToolResult{}, fmt.Errorf("command is required")
	}

	timeout := defaultSandboxTimeout
	if p.Timeout > 0 {
		timeout = time.Duration(p.Timeout) * time.Second
	}
	if timeout > maxBashTimeout {
		timeout = maxBashTimeout
	}

	dir, err := os.MkdirTemp("", "halcyon-sandbox-")
	if err != nil {
		return ToolResult{}, fmt.Errorf("failed to create sandbox dir: %w", err)
	}
	if !t.KeepDirs {
		defer os.RemoveAll(dir)
	}

	// Minimal environment: PATH for tool lookup, HOME pointed inside the
	// sandbox so dotfile writes stay contained.
	env := []string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + dir,
		"TMPDIR=" + dir,
		"LANG=C.UTF-8",
	}

	result, err := runCommand(ctx, p.Command, dir, env, timeout)
	if err != nil {
		return result, err
	}
	if result.Content == "" && !result.IsError {
		result.Content = "[command produced no output]"
	}
	return result, nil
}
