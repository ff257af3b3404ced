package symbolic

import (
	"math"
	"math/big"
)

// ============================================================
// Derivatives
// ============================================================

// Shared subexpressions are visited once per call, so the cost of a
// derivative is linear in the number of distinct nodes.
type differ struct {
	name string
	memo map[Expr]Expr
}

func derive(e Expr, varName string) Expr {
	d := &differ{name: varName, memo: map[Expr]Expr{}}
	return d.of(e)
}

func (d *differ) of(e Expr) Expr {
	if r, ok := d.memo[e]; ok {
		return r
	}
	r := d.rule(e)
	d.memo[e] = r
	return r
}

func (d *differ) rule(e Expr) Expr {
	switch v := e.(type) {
	case *Num, *Const:
		return zero
	case *Sym:
		return v.Diff(d.name)
	case *Add:
		terms := make([]Expr, 0, len(v.terms))
		for _, t := range v.terms {
			if dt := d.of(t); dt != zero {
				terms = append(terms, dt)
			}
		}
		return AddOf(terms...)
	case *Mul:
		terms := make([]Expr, 0, len(v.factors))
		for i, fi := range v.factors {
			dfi := d.of(fi)
			if dfi == zero {
				continue
			}
			prod := make([]Expr, 0, len(v.factors))
			prod = append(prod, dfi)
			prod = append(prod, v.factors[:i]...)
			prod = append(prod, v.factors[i+1:]...)
			terms = append(terms, MulOf(prod...))
		}
		return AddOf(terms...)
	case *Pow:
		du := d.of(v.base)
		dv := d.of(v.exp)
		if dv == zero {
			if du == zero {
				return zero
			}
			return MulOf(v.exp, PowOf(v.base, AddOf(v.exp, negOne)), du)
		}
		if du == zero {
			return MulOf(v, LnOf(v.base), dv)
		}
		logTerm := MulOf(dv, LnOf(v.base))
		divTerm := MulOf(v.exp, du, PowOf(v.base, negOne))
		return MulOf(v, AddOf(logTerm, divTerm))
	case *Func:
		du := d.of(v.arg)
		if du == zero {
			return zero
		}
		var outer Expr
		switch v.name {
		case "sin":
			outer = CosOf(v.arg)
		case "cos":
			outer = NegOf(SinOf(v.arg))
		case "tan":
			outer = AddOf(one, PowOf(TanOf(v.arg), N(2)))
		case "exp":
			outer = v
		case "ln":
			outer = PowOf(v.arg, negOne)
		case "abs":
			outer = SignOf(v.arg)
		case "sign":
			// zero wherever it is differentiable
			return zero
		default:
			panic("symbolic: no derivative rule for " + v.name)
		}
		return MulOf(outer, du)
	}
	panic("symbolic: unknown expression kind")
}

// ============================================================
// Substitution
// ============================================================

type substituter struct {
	name  string
	value Expr
	memo  map[Expr]Expr
}

func substitute(e Expr, varName string, value Expr) Expr {
	s := &substituter{name: varName, value: value, memo: map[Expr]Expr{}}
	return s.of(e)
}

func (s *substituter) of(e Expr) Expr {
	if r, ok := s.memo[e]; ok {
		return r
	}
	var r Expr
	switch v := e.(type) {
	case *Num, *Const:
		r = e
	case *Sym:
		r = v.Sub(s.name, s.value)
	case *Add:
		r = AddOf(s.all(v.terms)...)
	case *Mul:
		r = MulOf(s.all(v.factors)...)
	case *Pow:
		r = PowOf(s.of(v.base), s.of(v.exp))
	case *Func:
		r = mustFunc(v.name, s.of(v.arg))
	}
	s.memo[e] = r
	return r
}

func (s *substituter) all(in []Expr) []Expr {
	out := make([]Expr, len(in))
	for i, e := range in {
		out[i] = s.of(e)
	}
	return out
}

// ============================================================
// Exact folding (Eval)
// ============================================================

func fold(e Expr) (*Num, bool) {
	memo := map[Expr]*Num{}
	var rec func(Expr) (*Num, bool)
	rec = func(e Expr) (*Num, bool) {
		if n, ok := memo[e]; ok {
			return n, n != nil
		}
		n, ok := foldNode(e, rec)
		if !ok {
			n = nil
		}
		memo[e] = n
		return n, ok
	}
	return rec(e)
}

func foldNode(e Expr, rec func(Expr) (*Num, bool)) (*Num, bool) {
	switch v := e.(type) {
	case *Num:
		return v, true
	case *Const:
		return v.Eval()
	case *Sym:
		return nil, false
	case *Add:
		acc := new(big.Rat)
		for _, t := range v.terms {
			n, ok := rec(t)
			if !ok {
				return nil, false
			}
			acc.Add(acc, n.val)
		}
		return numOf(acc), true
	case *Mul:
		acc := big.NewRat(1, 1)
		for _, f := range v.factors {
			n, ok := rec(f)
			if !ok {
				return nil, false
			}
			acc.Mul(acc, n.val)
		}
		return numOf(acc), true
	case *Pow:
		b, ok1 := rec(v.base)
		x, ok2 := rec(v.exp)
		if !ok1 || !ok2 {
			return nil, false
		}
		if r, ok := ratPow(b.val, x.val); ok {
			return numOf(r), true
		}
		return floatNum(math.Pow(b.Float64(), x.Float64()))
	case *Func:
		a, ok := rec(v.arg)
		if !ok {
			return nil, false
		}
		f, err := applyFloat(v.name, a.Float64())
		if err != nil {
			return nil, false
		}
		return floatNum(f)
	}
	return nil, false
}

func floatNum(f float64) (*Num, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return NFloat(f), true
}

// ============================================================
// Top-level convenience functions
// ============================================================

func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

func Sub(expr Expr, varName string, value Expr) Expr { return expr.Sub(varName, value) }

// Diff is the exact partial derivative of expr with respect to varName.
func Diff(expr Expr, varName string) Expr { return expr.Diff(varName) }

// Gradient returns the partial derivatives of expr, one per variable.
func Gradient(expr Expr, varNames []string) []Expr {
	out := make([]Expr, len(varNames))
	for i, v := range varNames {
		out[i] = Diff(expr, v)
	}
	return out
}

// Jacobian returns the len(exprs)×len(varNames) matrix of partials; row i
// is the gradient of exprs[i].
func Jacobian(exprs []Expr, varNames []string) *Matrix {
	entries := make([]Expr, 0, len(exprs)*len(varNames))
	for _, e := range exprs {
		entries = append(entries, Gradient(e, varNames)...)
	}
	return MatrixFromSlice(len(exprs), len(varNames), entries)
}
