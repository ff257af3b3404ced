// Package gosweep derives closed-form sweep surfaces and their normal fields.
//
// A sweep moves a 2-D cross-section along a carrier curve, oriented by a
// moving frame built from the curve's derivatives. Everything is exact:
// results are symbolic.Expr formulas in the two surface parameters, ready to
// be printed, evaluated at sample points or emitted as shader code.
//
// Design goals:
//   - Pure values in, pure values out; nothing is cached between calls
//   - Simplification is explicit, staged and budgeted (see Config)
//   - Sign problems introduced by normalization are reported, not hidden
package gosweep

import (
	"context"
	"sort"

	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
)

// Engine runs the pipeline under one Config. It holds no state besides the
// configuration and is safe for concurrent use.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine { return &Engine{cfg: cfg} }

var defaultEngine = New(DefaultConfig())

// Default returns an engine using DefaultConfig.
func Default() *Engine { return defaultEngine }

func (e *Engine) Config() Config { return e.cfg }

// Result bundles everything one pipeline run derives.
type Result struct {
	Frame   Frame
	Surface Surface
	Normals NormalField
}

// Run sweeps sw and computes the normal field of the resulting surface.
func (e *Engine) Run(ctx context.Context, sw Sweep) (Result, error) {
	frame, surface, err := e.sweep(ctx, sw)
	if err != nil {
		return Result{}, err
	}
	normals, err := e.SurfaceNormal(ctx, surface)
	if err != nil {
		return Result{}, err
	}
	return Result{Frame: frame, Surface: surface, Normals: normals}, nil
}

// simplifier returns the simplifier for stage, or nil if the stage is left
// unsimplified.
func (e *Engine) simplifier(stage Stage) *symbolic.Simplifier {
	if e.cfg.Stages&stage == 0 {
		return nil
	}
	s := e.cfg.Simplifier
	return &s
}

func (e *Engine) simplify(ctx context.Context, stage Stage, v vec.Vector3) (vec.Vector3, error) {
	s := e.simplifier(stage)
	if s == nil {
		return v, nil
	}
	return vec.Simplify(ctx, v, *s, e.cfg.Parallel)
}

func (e *Engine) observe(cp Checkpoint, v vec.Vector3, d *Diagnostic) {
	if e.cfg.Observer != nil {
		e.cfg.Observer.Observe(Event{Checkpoint: cp, Value: v, Diagnostic: d})
	}
}

// introducedSigns lists the symbols without a positive domain that appear
// under an abs or sign in after but not in before. The curve parameter param
// is left out of names; onParam reports whether it was seen there.
func introducedSigns(before, after vec.Vector3, param string) (names []string, onParam bool) {
	old := map[symbolic.Expr]bool{}
	symbolic.Walk(func(n symbolic.Expr) {
		if symbolic.IsFunc(n, "abs") || symbolic.IsFunc(n, "sign") {
			old[n] = true
		}
	}, before[:]...)
	seen := map[string]bool{}
	symbolic.Walk(func(n symbolic.Expr) {
		if old[n] || !(symbolic.IsFunc(n, "abs") || symbolic.IsFunc(n, "sign")) {
			return
		}
		for _, s := range symbolic.Symbols(n.(*symbolic.Func).Arg()) {
			switch {
			case s.Name() == param:
				onParam = true
			case s.Domain() != symbolic.Positive && !seen[s.Name()]:
				seen[s.Name()] = true
				names = append(names, s.Name())
			}
		}
	}, after[:]...)
	sort.Strings(names)
	return names, onParam
}
