package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// BashTool executes shell commands in the current working directory.
type BashTool struct{}

func (t *BashTool) Name() string     { return "bash" }
func (t *BashTool) IsReadOnly() bool { return false }

func (t *BashTool) Description() string {
	return "Execute a shell command and return its combined stdout and stderr. " +
		"stdin is disconnected, so interactive commands will fail. " +
		"Use the sandbox tool instead for untrusted or experimental commands."
}

const (
	defaultBashTimeout = 120 * time.Second
	maxBashTimeout     = 600 * time.Second
)

func (t *BashTool) Parameters() map[string]any {
	return map[string]any{
		"command": map[string]any{
			"type":        "string",
			"description": "The shell command to execute",
		},
		"timeout": map[string]any{
			"type":        "integer",
			"description": "Timeout in seconds (default 120, max 600)",
		},
	}
}

func (t *BashTool) Execute(ctx context.Context, params json.RawMessage) (ToolResult, error) {
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

	timeout := defaultBashTimeout
	if p.Timeout > 0 {
		timeout = time.Duration(p.Timeout) * time.Second
	}
	if timeout > maxBashTimeout {
		timeout = maxBashTimeout
	}

	return runCommand(ctx, p.Command, "", nil, timeout)
}

// runCommand executes command through the shell with a hard timeout,
// killing the whole process group on expiry. dir and env override the
// working directory and environment when non-empty (used by the sandbox
// tool).
func runCommand(ctx context.Context, command, dir string, env []string, timeout time.Duration) (ToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, shellBin(), "-c", command)
	// Close stdin so interactive commands fail fast with EOF.
	cmd.Stdin = nil
	// New process group so the entire tree can be killed.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if dir != "" {
		cmd.Dir = dir
	}
	if env != nil {
		cmd.Env = env
	}

	var buf safeBuffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Start(); err != nil {
		return ToolResult{
			Content: fmt.Sprintf("Failed to start: %v", err),
			IsError: true,
		}, nil
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		result := buf.String()
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				secs := int(timeout.Seconds())
				return ToolResult{
					Content: fmt.Sprintf("Command timed out after %dm%ds.\nOutput:\n%s", secs/60, secs%60, result),
					IsError: true,
				}, nil
			}
			return ToolResult{
				Content: fmt.Sprintf("Exit error: %v\nOutput:\n%s", err, result),
				IsError: true,
			}, nil
		}
		return ToolResult{Content: result}, nil

	case <-ctx.Done():
		killProcessGroup(cmd)
		// Let the command goroutine finish reaping.
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
		if ctx.Err() == context.DeadlineExceeded {
			secs := int(timeout.Seconds())
			return ToolResult{
				Content: fmt.Sprintf("Command timed out after %dm%ds.\nOutput:\n%s", secs/60, secs%60, buf.String()),
				IsError: true,
			}, nil
		}
		return ToolResult{}, fmt.Errorf("cancelled")
	}
}

// killProcessGroup sends SIGTERM to the process group, waits briefly, then
// SIGKILL if anything is still alive.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	// Negative PID targets the whole process group.
	_ = syscall.Kill(-pid, syscall.SIGTERM)
	time.Sleep(200 * time.Millisecond)
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// safeBuffer is a bytes.Buffer safe for concurrent writes from the
// command's stdout and stderr pipes.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// shellBin returns the user's preferred shell, falling back to bash then sh.
func shellBin() string {
	if s := os.Getenv("SHELL"); s != "" {
		if _, err := os.Stat(s); err == nil {
			return s
		}
	}
	if p, err := exec.LookPath("bash"); err == nil {
		return p
	}
	return "sh"
}
