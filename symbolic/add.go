package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct {
	header
	terms []Expr
}

// AddOf flattens nested sums, folds numbers and combines like terms
// (terms that differ only in their numeric coefficient).
func AddOf(terms ...Expr) Expr {
	type group struct {
		rest  Expr
		coeff *big.Rat
	}
	acc := new(big.Rat)
	index := map[Expr]int{}
	var groups []group
	addTerm := func(t Expr) {
		if n, ok := t.(*Num); ok {
			acc.Add(acc, n.val)
			return
		}
		c, rest := splitCoeff(t)
		if i, ok := index[rest]; ok {
			groups[i].coeff.Add(groups[i].coeff, c)
			return
		}
		index[rest] = len(groups)
		groups = append(groups, group{rest: rest, coeff: new(big.Rat).Set(c)})
	}
	for _, t := range terms {
		if inner, ok := t.(*Add); ok {
			for _, it := range inner.terms {
				addTerm(it)
			}
			continue
		}
		addTerm(t)
	}
	sort.Slice(groups, func(i, j int) bool { return less(groups[i].rest, groups[j].rest) })
	out := make([]Expr, 0, len(groups)+1)
	for _, g := range groups {
		if g.coeff.Sign() == 0 {
			continue
		}
		out = append(out, scaleTerm(g.coeff, g.rest))
	}
	if acc.Sign() != 0 {
		out = append(out, numOf(acc))
	}
	switch len(out) {
	case 0:
		return zero
	case 1:
		return out[0]
	}
	return newAdd(out)
}

// MinusOf returns a - b.
func MinusOf(a, b Expr) Expr { return AddOf(a, NegOf(b)) }

// NegOf returns -e.
func NegOf(e Expr) Expr { return MulOf(negOne, e) }

func newAdd(terms []Expr) Expr {
	a := &Add{terms: terms}
	return intern(a, hashOf(kindAdd, "", terms...), sumSign(terms))
}

// splitCoeff separates the numeric coefficient of a canonical term.
func splitCoeff(e Expr) (*big.Rat, Expr) {
	if m, ok := e.(*Mul); ok {
		if c, ok := m.factors[0].(*Num); ok {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return c.val, rest[0]
			}
			return c.val, newMul(rest)
		}
	}
	return one.val, e
}

// scaleTerm rebuilds c*rest for a rest produced by splitCoeff.
func scaleTerm(c *big.Rat, rest Expr) Expr {
	if c.Cmp(one.val) == 0 {
		return rest
	}
	coeff := numOf(c)
	if m, ok := rest.(*Mul); ok {
		return newMul(append([]Expr{coeff}, m.factors...))
	}
	return newMul([]Expr{coeff, rest})
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		s, neg := signedString(t)
		switch {
		case i == 0 && neg:
			sb.WriteString("-" + s)
		case i == 0:
			sb.WriteString(s)
		case neg:
			sb.WriteString(" - " + s)
		default:
			sb.WriteString(" + " + s)
		}
	}
	return sb.String()
}

// signedString prints t without a leading minus and reports whether one was
// dropped.
func signedString(t Expr) (string, bool) {
	if n, ok := t.(*Num); ok {
		if n.IsNegative() {
			return numOf(new(big.Rat).Neg(n.val)).String(), true
		}
		return n.String(), false
	}
	c, rest := splitCoeff(t)
	if c.Sign() >= 0 {
		return t.String(), false
	}
	return scaleTerm(new(big.Rat).Neg(c), rest).String(), true
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(varName string, value Expr) Expr { return substitute(a, varName, value) }
func (a *Add) Diff(varName string) Expr             { return derive(a, varName) }

func (a *Add) Eval() (*Num, bool) { return fold(a) }

func (a *Add) Equal(other Expr) bool { return Expr(a) == other }

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}

// Terms returns a copy of the summands.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }
