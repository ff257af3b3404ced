package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct {
	header
	factors []Expr
}

// MulOf flattens nested products, folds numbers into a leading coefficient
// and merges powers of a common base by adding exponents. Bases are assumed
// nonzero when exponents cancel, so x*x^-1 is 1.
func MulOf(factors ...Expr) Expr {
	coeff := big.NewRat(1, 1)
	type power struct {
		base  Expr
		exps  []Expr
		first Expr
	}
	index := map[Expr]int{}
	var pows []power
	isZero := false
	addFactor := func(f Expr) {
		if n, ok := f.(*Num); ok {
			if n.IsZero() {
				isZero = true
			}
			coeff.Mul(coeff, n.val)
			return
		}
		base, exp := splitPow(f)
		if i, ok := index[base]; ok {
			pows[i].exps = append(pows[i].exps, exp)
			return
		}
		index[base] = len(pows)
		pows = append(pows, power{base: base, exps: []Expr{exp}, first: f})
	}
	for _, f := range factors {
		if inner, ok := f.(*Mul); ok {
			for _, it := range inner.factors {
				addFactor(it)
			}
			continue
		}
		addFactor(f)
	}
	if isZero {
		return zero
	}
	out := make([]Expr, 0, len(pows)+1)
	for _, p := range pows {
		var merged Expr
		if len(p.exps) == 1 {
			merged = p.first
		} else {
			merged = PowOf(p.base, AddOf(p.exps...))
		}
		switch m := merged.(type) {
		case *Num:
			if m.IsZero() {
				return zero
			}
			coeff.Mul(coeff, m.val)
		case *Mul:
			for _, f := range m.factors {
				if n, ok := f.(*Num); ok {
					coeff.Mul(coeff, n.val)
					continue
				}
				out = append(out, f)
			}
		default:
			out = append(out, merged)
		}
	}
	if coeff.Sign() == 0 {
		return zero
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) == 0 {
		return numOf(coeff)
	}
	if coeff.Cmp(one.val) == 0 {
		if len(out) == 1 {
			return out[0]
		}
		return newMul(out)
	}
	return newMul(append([]Expr{numOf(coeff)}, out...))
}

// DivOf returns a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, negOne)) }

func newMul(factors []Expr) Expr {
	m := &Mul{factors: factors}
	return intern(m, hashOf(kindMul, "", factors...), mulSign(factors))
}

func splitPow(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, one
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, 0, len(m.factors))
	prefix := ""
	for i, f := range m.factors {
		if i == 0 {
			if n, ok := f.(*Num); ok && n.IsNegOne() {
				prefix = "-"
				continue
			}
		}
		switch f.(type) {
		case *Add:
			parts = append(parts, "("+f.String()+")")
		default:
			parts = append(parts, f.String())
		}
	}
	return prefix + strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		_, isAdd := f.(*Add)
		if isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

func (m *Mul) Sub(varName string, value Expr) Expr { return substitute(m, varName, value) }
func (m *Mul) Diff(varName string) Expr             { return derive(m, varName) }
func (m *Mul) Eval() (*Num, bool)                   { return fold(m) }
func (m *Mul) Equal(other Expr) bool                { return Expr(m) == other }

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}

// Factors returns a copy of the factors, numeric coefficient first.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }
