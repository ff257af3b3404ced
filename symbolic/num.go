package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct {
	header
	val *big.Rat
}

var (
	zero   = N(0)
	one    = N(1)
	negOne = N(-1)
	half   = F(1, 2)
)

func numOf(r *big.Rat) *Num {
	n := &Num{val: new(big.Rat).Set(r)}
	return intern(n, hashOf(kindNum, n.val.RatString()), signOfRat(n.val.Sign())).(*Num)
}

func N(n int64) *Num { return numOf(new(big.Rat).SetInt64(n)) }
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return numOf(new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q)))
}

// NFloat converts f exactly; NaN and infinities are rejected.
func NFloat(f float64) *Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("symbolic: cannot represent %v exactly", f))
	}
	return numOf(new(big.Rat).SetFloat64(f))
}

func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return zero }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { return Expr(n) == other }
func (n *Num) exprType() string      { return "num" }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n == one }
func (n *Num) IsNegOne() bool        { return n == negOne }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func isEvenRat(n *Num) bool {
	return n.val.IsInt() && n.val.Num().Bit(0) == 0
}

// ratPow computes b^e exactly when the result is rational: integer
// exponents up to 64 in magnitude, and square roots of perfect squares.
func ratPow(b, e *big.Rat) (*big.Rat, bool) {
	if e.IsInt() {
		if !e.Num().IsInt64() {
			return nil, false
		}
		k := e.Num().Int64()
		if k > 64 || k < -64 {
			return nil, false
		}
		if k < 0 && b.Sign() == 0 {
			return nil, false
		}
		neg := k < 0
		if neg {
			k = -k
		}
		num := new(big.Int).Exp(b.Num(), big.NewInt(k), nil)
		den := new(big.Int).Exp(b.Denom(), big.NewInt(k), nil)
		r := new(big.Rat).SetFrac(num, den)
		if neg {
			r.Inv(r)
		}
		return r, true
	}
	if e.Denom().Cmp(big.NewInt(2)) != 0 || b.Sign() < 0 {
		return nil, false
	}
	sn, ok := exactSqrt(b.Num())
	if !ok {
		return nil, false
	}
	sd, ok := exactSqrt(b.Denom())
	if !ok {
		return nil, false
	}
	root := new(big.Rat).SetFrac(sn, sd)
	return ratPow(root, new(big.Rat).SetInt(e.Num()))
}

func exactSqrt(n *big.Int) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	s := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(s, s).Cmp(n) != 0 {
		return nil, false
	}
	return s, true
}

// ============================================================
// Const: named irrational constant
// ============================================================

type Const struct {
	header
	name  string
	value float64
}

// Pi returns the constant π.
func Pi() *Const {
	c := &Const{name: "pi", value: math.Pi}
	return intern(c, hashOf(kindConst, c.name), signPos).(*Const)
}

func (c *Const) String() string        { return c.name }
func (c *Const) LaTeX() string         { return "\\" + c.name }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Diff(string) Expr      { return zero }
func (c *Const) Eval() (*Num, bool)    { return NFloat(c.value), true }
func (c *Const) Equal(other Expr) bool { return Expr(c) == other }
func (c *Const) Name() string          { return c.name }
func (c *Const) Value() float64        { return c.value }
func (c *Const) exprType() string      { return "const" }
func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "name": c.name}
}
