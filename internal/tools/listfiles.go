package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListFilesTool lists a directory, or matches files against a glob pattern
// (including ** for recursive matching) when one is given.
type ListFilesTool struct{}

func (t *ListFilesTool) Name() string     { return "list_files" }
func (t *ListFilesTool) IsReadOnly() bool { return true }

func (t *ListFilesTool) Description() string {
	return "List files and directories under a path. Optionally filter with a glob " +
		"pattern, including ** for recursive matching (e.g. '**/*.go', 'src/*.py'). " +
		"Directories in plain listings carry a trailing slash."
}

func (t *ListFilesTool) Parameters() map[string]any {
	return map[string]any{
		"path": map[string]any{
			"type":        "string",
			"description": "Base directory (default: current directory)",
		},
		"pattern": map[string]any{
			"type":        "string",
			"description": "Glob pattern to filter files (optional)",
		},
	}
}

const maxListResults = 1000

// Directories skipped during recursive traversal.
var listSkipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

func (t *ListFilesTool) Execute(_ context.Context, params json.RawMessage) (ToolResult, error) {
	var p struct {
		Path    string `json:"path"`
		Pattern string `json:"pattern"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return ToolResult{}, fmt.Errorf("invalid params: %w", err)
	}
	if p.Path == "" {
		p.Path = "."
	}

	if p.Pattern == "" {
		return listDir(p.Path)
	}

	var matches []string
	var err error
	if strings.Contains(p.Pattern, "**") {
		matches, err = globRecursive(p.Path, p.Pattern)
	} else {
		matches, err = filepath.Glob(filepath.Join(p.Path, p.Pattern))
	}
	if err != nil {
		return ToolResult{}, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return ToolResult{Content: "no files matched"}, nil
	}
	sort.Strings(matches)

	truncated := false
	if len(matches) > maxListResults {
		matches = matches[:maxListResults]
		truncated = true
	}
	content := strings.Join(matches, "\n")
	if truncated {
		content += fmt.Sprintf("\n[Truncated: showing first %d results]", maxListResults)
	}
	return ToolResult{Content: content, Truncated: truncated}, nil
}

// listDir renders a single directory level, dirs first, with sizes for files.
func listDir(path string) (ToolResult, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return ToolResult{}, fmt.Errorf("failed to list directory: %w", err)
	}
	if len(entries) == 0 {
		return ToolResult{Content: "[empty directory]"}, nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	var sb strings.Builder
	for _, e := range entries {
		if e.IsDir() {
			fmt.Fprintf(&sb, "%s/\n", e.Name())
			continue
		}
		size := int64(0)
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		fmt.Fprintf(&sb, "%s (%d bytes)\n", e.Name(), size)
	}
	return ToolResult{Content: sb.String()}, nil
}

// globRecursive handles patterns containing ** by walking the directory
// tree and matching each file against the pattern's suffix.
func globRecursive(basePath, pattern string) ([]string, error) {
	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimRight(parts[0], "/\\")
	suffix := ""
	if len(parts) > 1 {
		suffix = strings.TrimLeft(parts[1], "/\\")
	}

	root := basePath
	if prefix != "" {
		root = filepath.Join(basePath, prefix)
	}
	if _, err := os.Stat(root); err != nil {
		return nil, nil // no matches, not an error
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible
		}
		if d.IsDir() {
			if listSkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if suffix == "" {
			// "**" alone matches every file.
			matches = append(matches, path)
			return nil
		}
		if strings.Contains(suffix, "/") {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			if matched, _ := filepath.Match(suffix, rel); matched {
				matches = append(matches, path)
			}
			return nil
		}
		if matched, _ := filepath.Match(suffix, d.Name()); matched {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}
