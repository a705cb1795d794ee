package tools

import "sort"

// Registry manages the set of tools offered to the model for a session.
// The set is fixed at construction time; the backend treats it as static
// configuration.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns all registered tools sorted by name.
func (r *Registry) All() []Tool {
	result := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Wrap replaces every registered tool with wrap(tool). Used to apply
// cross-cutting wrappers (e.g. the verbose observer) at build time rather
// than inside the tools themselves.
func (r *Registry) Wrap(wrap func(Tool) Tool) {
	for name, t := range r.tools {
		r.tools[name] = wrap(t)
	}
}

// DefaultRegistry creates a registry with all built-in tools.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ReadFileTool{})
	r.Register(&ListFilesTool{})
	r.Register(&EditFileTool{})
	r.Register(&BashTool{})
	r.Register(&SandboxTool{})
	r.Register(&DateTimeTool{})
	r.Register(&ArxivSearchTool{})
	return r
}
