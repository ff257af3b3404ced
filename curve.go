package gosweep

import (
	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is a parametric curve: a Vector3 in one free parameter. Carrier
// curves and cross-sections are both Curves.
type Curve struct {
	Param string
	Pos   vec.Vector3
}

func NewCurve(param string, x, y, z symbolic.Expr) Curve {
	return Curve{Param: param, Pos: vec.New(x, y, z)}
}

// Derivative is dC/dParam.
func (c Curve) Derivative() vec.Vector3 { return vec.Diff(c.Pos, c.Param) }

// At substitutes value for the parameter.
func (c Curve) At(value symbolic.Expr) vec.Vector3 { return vec.Subst(c.Pos, c.Param, value) }

func (c Curve) String() string { return c.Param + " -> " + c.Pos.String() }

// Surface is a parametric surface in U and V.
type Surface struct {
	U, V string
	Pos  vec.Vector3
}

// At substitutes u and v.
func (s Surface) At(u, v symbolic.Expr) vec.Vector3 {
	return vec.Subst(vec.Subst(s.Pos, s.U, u), s.V, v)
}

// Eval evaluates the surface at (u, v) with the remaining symbols bound by
// env.
func (s Surface) Eval(u, v float64, env symbolic.Env) (r3.Vec, error) {
	return vec.Eval(s.Pos, bind(env, s.U, u, s.V, v))
}

func (s Surface) String() string { return "(" + s.U + ", " + s.V + ") -> " + s.Pos.String() }

// NormalField is ∂f/∂u × ∂f/∂v of a surface. It is not unit length.
type NormalField struct {
	U, V string
	Dir  vec.Vector3
}

func (n NormalField) At(u, v symbolic.Expr) vec.Vector3 {
	return vec.Subst(vec.Subst(n.Dir, n.U, u), n.V, v)
}

func (n NormalField) Eval(u, v float64, env symbolic.Env) (r3.Vec, error) {
	return vec.Eval(n.Dir, bind(env, n.U, u, n.V, v))
}

func (n NormalField) String() string { return "(" + n.U + ", " + n.V + ") -> " + n.Dir.String() }

func bind(env symbolic.Env, u string, uv float64, v string, vv float64) symbolic.Env {
	out := make(symbolic.Env, len(env)+2)
	for k, x := range env {
		out[k] = x
	}
	out[u] = uv
	out[v] = vv
	return out
}
