package backend

import (
	"google.golang.org/genai"

	"github.com/halcyon-ai/halcyon/internal/tools"
)

// declarationsFor converts the registry's tools into the genai function
// declaration format. All declarations travel in a single genai.Tool, as
// the API expects.
func declarationsFor(registry *tools.Registry) []*genai.Tool {
	all := registry.All()
	decls := make([]*genai.FunctionDeclaration, 0, len(all))
	for _, t := range all {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: schemaProperties(t.Parameters()),
			},
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// schemaProperties converts the tools package's plain-map JSON Schema
// properties into genai.Schema values.
func schemaProperties(props map[string]any) map[string]*genai.Schema {
	out := make(map[string]*genai.Schema, len(props))
	for name, raw := range props {
		spec, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		out[name] = schemaFrom(spec)
	}
	return out
}

func schemaFrom(spec map[string]any) *genai.Schema {
	s := &genai.Schema{Type: schemaType(spec["type"])}
	if d, ok := spec["description"].(string); ok {
		s.Description = d
	}
	if items, ok := spec["items"].(map[string]any); ok {
		s.Items = schemaFrom(items)
	}
	if enum, ok := spec["enum"].([]string); ok {
		s.Enum = enum
	}
	return s
}

func schemaType(v any) genai.Type {
	t, _ := v.(string)
	switch t {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
