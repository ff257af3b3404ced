package mcp

import "encoding/json"

// engine params accepted by every pipeline tool
var engineProps = map[string]string{
	"effort":     "string",
	"strict":     "boolean",
	"max_nodes":  "integer",
	"timeout_ms": "integer",
}

func withEngine(props map[string]string) map[string]string {
	for k, v := range engineProps {
		props[k] = v
	}
	return props
}

// MCPToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func MCPToolSpec() string {
	tools := []map[string]interface{}{
		ts("simplify", "Simplify an expression at the given effort", []string{"expr"}, withEngine(map[string]string{"expr": "object"})),
		ts("diff", "First derivative d/dvar", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("evaluate", "Evaluate numerically. env maps symbol names to numbers", []string{"expr"}, map[string]string{"expr": "object", "env": "object"}),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("free_symbols", "Return free symbol names", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("frame", "Moving frame of carrier={param,pos:[x,y,z]}. Optional normals=[x,y,z]", []string{"carrier"},
			withEngine(map[string]string{"carrier": "object", "normals": "array"})),
		ts("sweep", "Sweep section along carrier. Optional normals, with_normals", []string{"carrier", "section"},
			withEngine(map[string]string{"carrier": "object", "section": "object", "normals": "array", "with_normals": "boolean"})),
		ts("surface_normal", "Normal field ∂f/∂u × ∂f/∂v of surface={u,v,pos:[x,y,z]}", []string{"surface"},
			withEngine(map[string]string{"surface": "object"})),
		ts("presets", "List built-in surfaces", []string{}, map[string]string{}),
		ts("preset", "Derive a built-in surface and its normal field", []string{"name"}, withEngine(map[string]string{"name": "string"})),
		ts("emit", "Emit GLSL or C for vector=[x,y,z]. Optional lang, float32, name, params", []string{"vector"},
			map[string]string{"vector": "array", "lang": "string", "float32": "boolean", "name": "string", "params": "array"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
