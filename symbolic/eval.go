package symbolic

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// ============================================================
// Numeric evaluation
// ============================================================

// Env binds symbol names to values.
type Env map[string]float64

// Evaluate computes e in float64 with the symbols bound by env. It is meant
// for checking formulas at sample points, not for meshing.
func Evaluate(e Expr, env Env) (float64, error) {
	memo := map[Expr]float64{}
	var rec func(Expr) (float64, error)
	rec = func(e Expr) (float64, error) {
		if f, ok := memo[e]; ok {
			return f, nil
		}
		f, err := evalNode(e, env, rec)
		if err != nil {
			return 0, err
		}
		memo[e] = f
		return f, nil
	}
	return rec(e)
}

func evalNode(e Expr, env Env, rec func(Expr) (float64, error)) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Float64(), nil
	case *Const:
		return v.value, nil
	case *Sym:
		f, ok := env[v.name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnbound, v.name)
		}
		return f, nil
	case *Add:
		acc := 0.0
		for _, t := range v.terms {
			f, err := rec(t)
			if err != nil {
				return 0, err
			}
			acc += f
		}
		return acc, nil
	case *Mul:
		acc := 1.0
		for _, t := range v.factors {
			f, err := rec(t)
			if err != nil {
				return 0, err
			}
			acc *= f
		}
		return acc, nil
	case *Pow:
		b, err := rec(v.base)
		if err != nil {
			return 0, err
		}
		x, err := rec(v.exp)
		if err != nil {
			return 0, err
		}
		if x == 0.5 {
			return math.Sqrt(b), nil
		}
		return math.Pow(b, x), nil
	case *Func:
		a, err := rec(v.arg)
		if err != nil {
			return 0, err
		}
		return applyFloat(v.name, a)
	}
	return 0, fmt.Errorf("symbolic: cannot evaluate %s", e.exprType())
}

func applyFloat(name string, x float64) (float64, error) {
	switch name {
	case "sin":
		return math.Sin(x), nil
	case "cos":
		return math.Cos(x), nil
	case "tan":
		return math.Tan(x), nil
	case "exp":
		return math.Exp(x), nil
	case "ln":
		return math.Log(x), nil
	case "abs":
		return math.Abs(x), nil
	case "sign":
		switch {
		case x > 0:
			return 1, nil
		case x < 0:
			return -1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("symbolic: unknown function %s", name)
}

// Evaluate32 is Evaluate in float32, the precision shaders run emitted
// formulas at.
func Evaluate32(e Expr, env map[string]float32) (float32, error) {
	memo := map[Expr]float32{}
	var rec func(Expr) (float32, error)
	rec = func(e Expr) (float32, error) {
		if f, ok := memo[e]; ok {
			return f, nil
		}
		var f float32
		switch v := e.(type) {
		case *Num:
			f, _ = v.val.Float32()
		case *Const:
			f = float32(v.value)
		case *Sym:
			x, ok := env[v.name]
			if !ok {
				return 0, fmt.Errorf("%w: %s", ErrUnbound, v.name)
			}
			f = x
		case *Add:
			for _, t := range v.terms {
				x, err := rec(t)
				if err != nil {
					return 0, err
				}
				f += x
			}
		case *Mul:
			f = 1
			for _, t := range v.factors {
				x, err := rec(t)
				if err != nil {
					return 0, err
				}
				f *= x
			}
		case *Pow:
			b, err := rec(v.base)
			if err != nil {
				return 0, err
			}
			x, err := rec(v.exp)
			if err != nil {
				return 0, err
			}
			if x == 0.5 {
				f = math32.Sqrt(b)
			} else {
				f = math32.Pow(b, x)
			}
		case *Func:
			a, err := rec(v.arg)
			if err != nil {
				return 0, err
			}
			switch v.name {
			case "sin":
				f = math32.Sin(a)
			case "cos":
				f = math32.Cos(a)
			case "tan":
				f = math32.Tan(a)
			case "exp":
				f = math32.Exp(a)
			case "ln":
				f = math32.Log(a)
			case "abs":
				f = math32.Abs(a)
			case "sign":
				switch {
				case a > 0:
					f = 1
				case a < 0:
					f = -1
				}
			default:
				return 0, fmt.Errorf("symbolic: unknown function %s", v.name)
			}
		}
		memo[e] = f
		return f, nil
	}
	return rec(e)
}
