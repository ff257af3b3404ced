// Package mcp exposes the sweep engine as JSON tool calls for agent
// frameworks. Expressions travel in the object form of symbolic.ToJSON and
// vectors as arrays of three such objects.
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/njchilds90/gosweep"
	"github.com/njchilds90/gosweep/codegen"
	"github.com/njchilds90/gosweep/surfaces"
	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
)

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result   interface{} `json:"result,omitempty"`
	LaTeX    string      `json:"latex,omitempty"`
	String   string      `json:"string,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// VectorJSON is the wire form of v.
func VectorJSON(v vec.Vector3) []interface{} {
	out := make([]interface{}, 3)
	for i, c := range v {
		out[i] = symbolic.ToJSONValue(c)
	}
	return out
}

// warnings collects sign diagnostics raised during one call.
type warnings struct {
	mu   sync.Mutex
	list []string
}

func (w *warnings) Observe(ev gosweep.Event) {
	if ev.Diagnostic == nil || !ev.Diagnostic.Ambiguous() {
		return
	}
	w.mu.Lock()
	w.list = append(w.list, ev.Diagnostic.String())
	w.mu.Unlock()
}

// HandleToolCall runs one tool. Failures are reported in ToolResponse.Error;
// it never returns a Go error.
//
// Every pipeline tool accepts the optional engine params effort ("none",
// "basic", "trig", "expand"), strict (bool), max_nodes and timeout_ms.
func HandleToolCall(ctx context.Context, req ToolRequest) ToolResponse {
	getExpr := func(key string) (symbolic.Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return symbolic.FromJSON(val)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	optString := func(key, def string) (string, error) {
		if _, ok := req.Params[key]; !ok {
			return def, nil
		}
		return getString(key)
	}
	optBool := func(key string) (bool, error) {
		v, ok := req.Params[key]
		if !ok {
			return false, nil
		}
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("param %s must be a boolean", key)
		}
		return b, nil
	}
	optNumber := func(key string) (float64, bool, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, false, nil
		}
		f, ok := v.(float64)
		if !ok {
			return 0, false, fmt.Errorf("param %s must be a number", key)
		}
		return f, true, nil
	}
	getStrings := func(key string) ([]string, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]string, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			result[i] = s
		}
		return result, nil
	}
	vector := func(key string, raw interface{}) (vec.Vector3, error) {
		list, ok := raw.([]interface{})
		if !ok || len(list) != 3 {
			return vec.Vector3{}, fmt.Errorf("param %s must be an array of 3 expressions", key)
		}
		var out vec.Vector3
		for i, r := range list {
			m, ok := r.(map[string]interface{})
			if !ok {
				return vec.Vector3{}, fmt.Errorf("param %s[%d] must be expression object", key, i)
			}
			e, err := symbolic.FromJSON(m)
			if err != nil {
				return vec.Vector3{}, fmt.Errorf("param %s[%d]: %w", key, i, err)
			}
			out[i] = e
		}
		return out, nil
	}
	getVector := func(key string) (vec.Vector3, error) {
		v, ok := req.Params[key]
		if !ok {
			return vec.Vector3{}, fmt.Errorf("missing param: %s", key)
		}
		return vector(key, v)
	}
	// getCurve decodes {"param": "u", "pos": [x, y, z]}.
	getCurve := func(key string) (gosweep.Curve, error) {
		v, ok := req.Params[key]
		if !ok {
			return gosweep.Curve{}, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return gosweep.Curve{}, fmt.Errorf("param %s must be curve object", key)
		}
		param, ok := raw["param"].(string)
		if !ok || param == "" {
			return gosweep.Curve{}, fmt.Errorf("%s.param must be a non-empty string", key)
		}
		pos, err := vector(key+".pos", raw["pos"])
		if err != nil {
			return gosweep.Curve{}, err
		}
		return gosweep.Curve{Param: param, Pos: pos}, nil
	}
	// getSurface decodes {"u": "u", "v": "v", "pos": [x, y, z]}.
	getSurface := func(key string) (gosweep.Surface, error) {
		v, ok := req.Params[key]
		if !ok {
			return gosweep.Surface{}, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return gosweep.Surface{}, fmt.Errorf("param %s must be surface object", key)
		}
		u, uok := raw["u"].(string)
		w, wok := raw["v"].(string)
		if !uok || !wok || u == "" || w == "" {
			return gosweep.Surface{}, fmt.Errorf("%s.u and %s.v must be non-empty strings", key, key)
		}
		pos, err := vector(key+".pos", raw["pos"])
		if err != nil {
			return gosweep.Surface{}, err
		}
		return gosweep.Surface{U: u, V: w, Pos: pos}, nil
	}
	getSimplifier := func() (symbolic.Simplifier, error) {
		s := symbolic.DefaultSimplifier()
		name, err := optString("effort", s.Effort.String())
		if err != nil {
			return s, err
		}
		effort, ok := symbolic.ParseEffort(name)
		if !ok {
			return s, fmt.Errorf("unknown effort: %s", name)
		}
		s.Effort = effort
		if n, ok, err := optNumber("max_nodes"); err != nil {
			return s, err
		} else if ok {
			s.Budget.MaxNodes = int(n)
		}
		if ms, ok, err := optNumber("timeout_ms"); err != nil {
			return s, err
		} else if ok {
			s.Budget.Timeout = time.Duration(ms) * time.Millisecond
		}
		return s, nil
	}
	warn := &warnings{}
	getEngine := func() (*gosweep.Engine, error) {
		cfg := gosweep.DefaultConfig()
		s, err := getSimplifier()
		if err != nil {
			return nil, err
		}
		cfg.Simplifier = s
		if cfg.Strict, err = optBool("strict"); err != nil {
			return nil, err
		}
		cfg.Observer = warn
		return gosweep.New(cfg), nil
	}
	fail := func(err error) ToolResponse {
		return ToolResponse{Error: err.Error(), Warnings: warn.list}
	}
	respond := func(e symbolic.Expr) ToolResponse {
		return ToolResponse{Result: symbolic.ToJSONValue(e), LaTeX: symbolic.LaTeX(e), String: symbolic.String(e)}
	}
	respondVector := func(v vec.Vector3) ToolResponse {
		return ToolResponse{Result: VectorJSON(v), LaTeX: v.LaTeX(), String: v.String(), Warnings: warn.list}
	}
	respondResult := func(res gosweep.Result) ToolResponse {
		return ToolResponse{
			Result: map[string]interface{}{
				"surface": VectorJSON(res.Surface.Pos),
				"normals": VectorJSON(res.Normals.Dir),
			},
			LaTeX:    res.Surface.Pos.LaTeX(),
			String:   res.Surface.String() + "\n" + res.Normals.String(),
			Warnings: warn.list,
		}
	}

	switch req.Tool {
	case "simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		s, err := getSimplifier()
		if err != nil {
			return fail(err)
		}
		out, err := s.Simplify(ctx, e)
		if err != nil {
			return fail(err)
		}
		return respond(out)

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return respond(symbolic.Diff(e, v))

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		val, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(symbolic.Sub(e, v, val))

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		env := symbolic.Env{}
		if raw, ok := req.Params["env"]; ok {
			m, ok := raw.(map[string]interface{})
			if !ok {
				return ToolResponse{Error: "param env must be an object of numbers"}
			}
			for k, x := range m {
				f, ok := x.(float64)
				if !ok {
					return ToolResponse{Error: fmt.Sprintf("env.%s must be a number", k)}
				}
				env[k] = f
			}
		}
		f, err := symbolic.Evaluate(e, env)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: f, String: fmt.Sprint(f)}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: symbolic.LaTeX(e), LaTeX: symbolic.LaTeX(e), String: symbolic.String(e)}

	case "free_symbols":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		var names []string
		for n := range symbolic.FreeSymbols(e) {
			names = append(names, n)
		}
		sort.Strings(names)
		return ToolResponse{Result: names, String: strings.Join(names, ", ")}

	case "frame":
		c, err := getCurve("carrier")
		if err != nil {
			return fail(err)
		}
		eng, err := getEngine()
		if err != nil {
			return fail(err)
		}
		var f gosweep.Frame
		if _, ok := req.Params["normals"]; ok {
			n, err := getVector("normals")
			if err != nil {
				return fail(err)
			}
			f, err = eng.FrameFromNormals(ctx, c, n)
			if err != nil {
				return fail(err)
			}
		} else if f, err = eng.Frame(ctx, c); err != nil {
			return fail(err)
		}
		basis := f.Basis()
		return ToolResponse{
			Result: map[string]interface{}{
				"tangent":  VectorJSON(f.T),
				"normal":   VectorJSON(f.N),
				"binormal": VectorJSON(f.B),
			},
			LaTeX:    basis.LaTeX(),
			String:   basis.String(),
			Warnings: warn.list,
		}

	case "sweep":
		carrier, err := getCurve("carrier")
		if err != nil {
			return fail(err)
		}
		section, err := getCurve("section")
		if err != nil {
			return fail(err)
		}
		sw := gosweep.Derived(carrier, section)
		if _, ok := req.Params["normals"]; ok {
			n, err := getVector("normals")
			if err != nil {
				return fail(err)
			}
			sw = gosweep.Supplied(carrier, n, section)
		}
		eng, err := getEngine()
		if err != nil {
			return fail(err)
		}
		if with, _ := optBool("with_normals"); with {
			res, err := eng.Run(ctx, sw)
			if err != nil {
				return fail(err)
			}
			return respondResult(res)
		}
		s, err := eng.Sweep(ctx, sw)
		if err != nil {
			return fail(err)
		}
		return respondVector(s.Pos)

	case "surface_normal":
		s, err := getSurface("surface")
		if err != nil {
			return fail(err)
		}
		eng, err := getEngine()
		if err != nil {
			return fail(err)
		}
		n, err := eng.SurfaceNormal(ctx, s)
		if err != nil {
			return fail(err)
		}
		return respondVector(n.Dir)

	case "presets":
		names := surfaces.Names()
		return ToolResponse{Result: names, String: strings.Join(names, ", ")}

	case "preset":
		name, err := getString("name")
		if err != nil {
			return fail(err)
		}
		p, ok := surfaces.Lookup(name)
		if !ok {
			return ToolResponse{Error: fmt.Sprintf("unknown preset: %s", name)}
		}
		eng, err := getEngine()
		if err != nil {
			return fail(err)
		}
		res, err := p.Run(ctx, eng)
		if err != nil {
			return fail(err)
		}
		return respondResult(res)

	case "emit":
		langName, err := optString("lang", codegen.GLSL.String())
		if err != nil {
			return fail(err)
		}
		lang, ok := codegen.ParseLang(langName)
		if !ok {
			return ToolResponse{Error: fmt.Sprintf("unknown lang: %s", langName)}
		}
		f32, err := optBool("float32")
		if err != nil {
			return fail(err)
		}
		name, err := optString("name", "surface")
		if err != nil {
			return fail(err)
		}
		v, err := getVector("vector")
		if err != nil {
			return fail(err)
		}
		var params []string
		if _, ok := req.Params["params"]; ok {
			if params, err = getStrings("params"); err != nil {
				return fail(err)
			}
		}
		g := codegen.Generator{Lang: lang, Float32: f32}
		src := string(g.AppendFunc(nil, name, params, v))
		return ToolResponse{Result: src, String: src}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}
