package symbolic

import (
	"math"
	"math/big"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	header
	name string
	arg  Expr
}

func newFunc(name string, arg Expr) Expr {
	f := &Func{name: name, arg: arg}
	return intern(f, hashOf(kindFunc, name, arg), funcSign(name, arg))
}

// FuncOf applies the named function (sin, cos, tan, exp, ln, abs, sign).
func FuncOf(name string, arg Expr) (Expr, bool) {
	switch name {
	case "sin":
		return SinOf(arg), true
	case "cos":
		return CosOf(arg), true
	case "tan":
		return TanOf(arg), true
	case "exp":
		return ExpOf(arg), true
	case "ln":
		return LnOf(arg), true
	case "abs":
		return AbsOf(arg), true
	case "sign":
		return SignOf(arg), true
	}
	return nil, false
}

func mustFunc(name string, arg Expr) Expr {
	e, ok := FuncOf(name, arg)
	if !ok {
		panic("symbolic: unknown function " + name)
	}
	return e
}

func SinOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		if n.IsZero() {
			return zero
		}
		return NFloat(math.Sin(n.Float64()))
	}
	if k, ok := halfPiMultiple(arg); ok {
		return []Expr{zero, one, zero, negOne}[k]
	}
	if pos, ok := negated(arg); ok {
		return NegOf(SinOf(pos))
	}
	return newFunc("sin", arg)
}

func CosOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		if n.IsZero() {
			return one
		}
		return NFloat(math.Cos(n.Float64()))
	}
	if k, ok := halfPiMultiple(arg); ok {
		return []Expr{one, zero, negOne, zero}[k]
	}
	if pos, ok := negated(arg); ok {
		return CosOf(pos)
	}
	return newFunc("cos", arg)
}

func TanOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		if n.IsZero() {
			return zero
		}
		return NFloat(math.Tan(n.Float64()))
	}
	if pos, ok := negated(arg); ok {
		return NegOf(TanOf(pos))
	}
	return newFunc("tan", arg)
}

func ExpOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		if n.IsZero() {
			return one
		}
		return NFloat(math.Exp(n.Float64()))
	}
	if inner, ok := arg.(*Func); ok && inner.name == "ln" {
		return inner.arg
	}
	return newFunc("exp", arg)
}

func LnOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		if n.IsOne() {
			return zero
		}
		if n.IsPositive() {
			return NFloat(math.Log(n.Float64()))
		}
	}
	if inner, ok := arg.(*Func); ok && inner.name == "exp" {
		return inner.arg
	}
	return newFunc("ln", arg)
}

// AbsOf resolves |x| from the sign of x when it is known and pulls known
// nonnegative factors out of products.
func AbsOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		return numOf(new(big.Rat).Abs(n.val))
	}
	if isNonnegative(arg) {
		return arg
	}
	if isNonpositive(arg) {
		return NegOf(arg)
	}
	if m, ok := arg.(*Mul); ok {
		var out, rest []Expr
		for _, f := range m.factors {
			if n, ok := f.(*Num); ok {
				out = append(out, AbsOf(n))
				continue
			}
			if isNonnegative(f) {
				out = append(out, f)
				continue
			}
			rest = append(rest, f)
		}
		if len(out) > 0 {
			return MulOf(append(out, AbsOf(MulOf(rest...)))...)
		}
	}
	return newFunc("abs", arg)
}

// SignOf returns -1, 0 or 1 when the sign of arg is known.
func SignOf(arg Expr) Expr {
	switch arg.node().sign {
	case signPos:
		return one
	case signNeg:
		return negOne
	case signZero:
		return zero
	}
	if m, ok := arg.(*Mul); ok {
		var out, rest []Expr
		for _, f := range m.factors {
			if ProvablyNonzero(f) && (isNonnegative(f) || isNonpositive(f)) {
				out = append(out, SignOf(f))
			} else {
				rest = append(rest, f)
			}
		}
		if len(out) > 0 {
			return MulOf(append(out, SignOf(MulOf(rest...)))...)
		}
	}
	return newFunc("sign", arg)
}

// negated returns -arg when arg carries a negative numeric coefficient.
func negated(arg Expr) (Expr, bool) {
	if m, ok := arg.(*Mul); ok {
		if c, ok := m.factors[0].(*Num); ok && c.IsNegative() {
			return NegOf(arg), true
		}
	}
	return nil, false
}

// halfPiMultiple recognizes k*pi/2 and returns k mod 4.
func halfPiMultiple(arg Expr) (int, bool) {
	var c *big.Rat
	switch a := arg.(type) {
	case *Const:
		if a.name != "pi" {
			return 0, false
		}
		c = one.val
	case *Mul:
		if len(a.factors) != 2 {
			return 0, false
		}
		n, ok := a.factors[0].(*Num)
		if !ok {
			return 0, false
		}
		p, ok := a.factors[1].(*Const)
		if !ok || p.name != "pi" {
			return 0, false
		}
		c = n.val
	default:
		return 0, false
	}
	twice := new(big.Rat).Mul(c, big.NewRat(2, 1))
	if !twice.IsInt() {
		return 0, false
	}
	k := new(big.Int).Mod(twice.Num(), big.NewInt(4))
	return int(k.Int64()), true
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	case "sign":
		return "\\operatorname{sign}\\left(" + f.arg.LaTeX() + "\\right)"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr { return substitute(f, varName, value) }
func (f *Func) Diff(varName string) Expr             { return derive(f, varName) }
func (f *Func) Eval() (*Num, bool)                   { return fold(f) }
func (f *Func) Equal(other Expr) bool                { return Expr(f) == other }

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
