package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// EditFileTool edits files via exact string replacement. An empty
// old_string creates the file with new_string as its content.
type EditFileTool struct{}

func (t *EditFileTool) Name() string     { return "edit_file" }
func (t *EditFileTool) IsReadOnly() bool { return false }

func (t *EditFileTool) Description() string {
	return "Edit a file by replacing an exact string match. The old_string must " +
		"appear exactly once in the file. To create a new file, pass an empty " +
		"old_string and the full content as new_string."
}

func (t *EditFileTool) Parameters() map[string]any {
	return map[string]any{
		"file_path": map[string]any{
			"type":        "string",
			"description": "Path to the file to edit or create",
		},
		"old_string": map[string]any{
			"type":        "string",
			"description": "The exact text to find and replace (empty to create a new file)",
		},
		"new_string": map[string]any{
			"type":        "string",
			"description": "The replacement text, or the full content for a new file",
		},
	}
}

func (t *EditFileTool) Execute(_ context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		FilePath  string `json:"file_path"`
		OldString string `json:"old_string"`
		NewString string `json:"new_string"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if p.FilePath == "" {
		return ToolResult{}, fmt.Errorf("file_path is required")
	}

	if p.OldString == "" {
		if _, err := os.Stat(p.FilePath); err == nil {
			return ToolResult{
				Content: fmt.Sprintf("%s already exists; provide old_string to edit it", p.FilePath),
				IsError: true,
			}, nil
		}
		if err := os.WriteFile(p.FilePath, []byte(p.NewString), 0644); err != nil {
			return ToolResult{}, fmt.Errorf("failed to create file: %w", err)
		}
		return ToolResult{Content: fmt.Sprintf("Created %s (%d bytes)", p.FilePath, len(p.NewString))}, nil
	}

	data, err := os.ReadFile(p.FilePath)
	if err != nil {
		return ToolResult{}, fmt.Errorf("failed to read file: %w", err)
	}
	content := string(data)

	count := strings.Count(content, p.OldString)
	if count == 0 {
		return ToolResult{
			Content: "old_string not found in file. Read the file and match the text exactly.",
			IsError: true,
		}, nil
	}
	if count > 1 {
		return ToolResult{
			Content: fmt.Sprintf("old_string matches %d occurrences; it must be unique. Add surrounding context.", count),
			IsError: true,
		}, nil
	}

	updated := strings.Replace(content, p.OldString, p.NewString, 1)
	if err := os.WriteFile(p.FilePath, []byte(updated), 0644); err != nil {
		return ToolResult{}, fmt.Errorf("failed to write file: %w", err)
	}

	return ToolResult{Content: fmt.Sprintf("Edited %s", p.FilePath)}, nil
}
