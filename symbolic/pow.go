package symbolic

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct {
	header
	base, exp Expr
}

// PowOf builds base^exp. Symbols are real, so (x^2)^(1/2) is |x| unless x is
// known to be nonnegative, in which case it is x.
func PowOf(base, exp Expr) Expr {
	en, expNum := exp.(*Num)
	if expNum {
		if en.IsZero() {
			return one
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsOne() {
			return one
		}
		if bn.IsZero() && expNum && en.IsPositive() {
			return zero
		}
		if expNum {
			if r, ok := ratPow(bn.val, en.val); ok {
				return numOf(r)
			}
		}
		return newPow(base, exp)
	}
	switch b := base.(type) {
	case *Pow:
		if expNum && en.IsInteger() {
			return PowOf(b.base, MulOf(b.exp, exp))
		}
		if isNonnegative(b.base) {
			return PowOf(b.base, MulOf(b.exp, exp))
		}
		if inner, ok := b.exp.(*Num); ok && expNum && isEvenRat(inner) {
			return PowOf(AbsOf(b.base), MulOf(b.exp, exp))
		}
	case *Mul:
		if expNum && en.IsInteger() {
			parts := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				parts[i] = PowOf(f, exp)
			}
			return MulOf(parts...)
		}
		var known, rest []Expr
		for _, f := range b.factors {
			if isNonnegative(f) {
				known = append(known, PowOf(f, exp))
			} else {
				rest = append(rest, f)
			}
		}
		if len(known) > 0 {
			if len(rest) > 0 {
				known = append(known, PowOf(MulOf(rest...), exp))
			}
			return MulOf(known...)
		}
	case *Func:
		if b.name == "abs" && expNum && isEvenRat(en) {
			return PowOf(b.arg, exp)
		}
	}
	return newPow(base, exp)
}

// SqrtOf returns the principal square root arg^(1/2).
func SqrtOf(arg Expr) Expr { return PowOf(arg, half) }

func newPow(base, exp Expr) Expr {
	p := &Pow{base: base, exp: exp}
	return intern(p, hashOf(kindPow, "", base, exp), powSign(base, exp))
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	case *Num:
		if b.IsNegative() || !b.IsInteger() {
			baseStr = "(" + baseStr + ")"
		}
	}
	expStr := p.exp.String()
	switch e := p.exp.(type) {
	case *Sym, *Const:
	case *Num:
		if !e.IsInteger() || e.IsNegative() {
			expStr = "(" + expStr + ")"
		}
	default:
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok && en.val.Cmp(half.val) == 0 {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr { return substitute(p, varName, value) }
func (p *Pow) Diff(varName string) Expr             { return derive(p, varName) }
func (p *Pow) Eval() (*Num, bool)                   { return fold(p) }
func (p *Pow) Equal(other Expr) bool                { return Expr(p) == other }

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }
