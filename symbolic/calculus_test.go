package symbolic_test

import (
	"errors"
	"math"
	"testing"

	"github.com/njchilds90/gosweep/symbolic"
	"gonum.org/v1/gonum/floats/scalar"
)

// ============================================================
// Differentiation
// ============================================================

func TestDiff_Sin(t *testing.T) {
	x := symbolic.S("x")
	if got := symbolic.Diff(symbolic.SinOf(x), "x"); got != symbolic.CosOf(x) {
		t.Errorf("want cos(x), got %s", got)
	}
}

func TestDiff_Cos(t *testing.T) {
	x := symbolic.S("x")
	want := symbolic.NegOf(symbolic.SinOf(x))
	if got := symbolic.Diff(symbolic.CosOf(x), "x"); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestDiff_Power(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.Diff(symbolic.PowOf(x, symbolic.N(3)), "x")
	want := symbolic.MulOf(symbolic.N(3), sq(x))
	if got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestDiff_ProductRule(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.Diff(symbolic.MulOf(x, symbolic.SinOf(x)), "x")
	want := symbolic.AddOf(symbolic.SinOf(x), symbolic.MulOf(x, symbolic.CosOf(x)))
	if got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestDiff_ChainRule(t *testing.T) {
	u := symbolic.S("u")
	got := symbolic.Diff(symbolic.SinOf(symbolic.MulOf(symbolic.N(3), u)), "u")
	want := symbolic.MulOf(symbolic.N(3), symbolic.CosOf(symbolic.MulOf(symbolic.N(3), u)))
	if got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestDiff_Abs(t *testing.T) {
	x := symbolic.S("x")
	if got := symbolic.Diff(symbolic.AbsOf(x), "x"); got != symbolic.SignOf(x) {
		t.Errorf("want sign(x), got %s", got)
	}
}

func TestDiff_OtherVariableIsConstant(t *testing.T) {
	u, v := symbolic.S("u"), symbolic.S("v")
	e := symbolic.MulOf(symbolic.CosOf(v), symbolic.Pos("r"))
	if got := symbolic.Diff(e, u.Name()); !symbolic.IsZero(got) {
		t.Errorf("want 0, got %s", got)
	}
}

func TestDiff_SinTwice(t *testing.T) {
	x := symbolic.S("x")
	want := symbolic.NegOf(symbolic.SinOf(x))
	if got := symbolic.Diff(symbolic.Diff(symbolic.SinOf(x), "x"), "x"); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestGradient(t *testing.T) {
	x, y := symbolic.S("x"), symbolic.S("y")
	g := symbolic.Gradient(symbolic.MulOf(x, y), []string{"x", "y"})
	if g[0] != y || g[1] != x {
		t.Errorf("want [y x], got %v", g)
	}
}

func TestJacobian(t *testing.T) {
	u, v := symbolic.S("u"), symbolic.S("v")
	j := symbolic.Jacobian([]symbolic.Expr{symbolic.MulOf(u, v), symbolic.AddOf(u, v)}, []string{"u", "v"})
	if j.Rows() != 2 || j.Cols() != 2 {
		t.Fatalf("want 2x2, got %dx%d", j.Rows(), j.Cols())
	}
	want := [][]symbolic.Expr{{v, u}, {symbolic.N(1), symbolic.N(1)}}
	for i := range want {
		for k := range want[i] {
			if j.Get(i, k) != want[i][k] {
				t.Errorf("[%d,%d]: want %s, got %s", i, k, want[i][k], j.Get(i, k))
			}
		}
	}
}

// ============================================================
// Substitution and evaluation
// ============================================================

func TestSub_FoldsNumbers(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.Sub(symbolic.AddOf(sq(x), x), "x", symbolic.N(3))
	if got != symbolic.N(12) {
		t.Errorf("want 12, got %s", got)
	}
}

func TestSub_ExactTrig(t *testing.T) {
	u := symbolic.S("u")
	halfPi := symbolic.MulOf(symbolic.F(1, 2), symbolic.Pi())
	got := symbolic.Sub(symbolic.MulOf(symbolic.N(3), symbolic.CosOf(u)), "u", halfPi)
	if !symbolic.IsZero(got) {
		t.Errorf("want 0, got %s", got)
	}
}

func TestEval_Exact(t *testing.T) {
	n, ok := symbolic.MulOf(symbolic.F(1, 2), symbolic.N(4)).Eval()
	if !ok || n != symbolic.N(2) {
		t.Errorf("want 2, got %v", n)
	}
	if _, ok := symbolic.S("x").Eval(); ok {
		t.Error("a free symbol should not fold")
	}
}

func TestEvaluate(t *testing.T) {
	u, R := symbolic.S("u"), symbolic.Pos("R")
	e := symbolic.MulOf(R, symbolic.CosOf(u))
	got, err := symbolic.Evaluate(e, symbolic.Env{"u": math.Pi / 3, "R": 2})
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(got, 1, 1e-12) {
		t.Errorf("want 1, got %v", got)
	}
}

func TestEvaluate_Sqrt(t *testing.T) {
	got, err := symbolic.Evaluate(symbolic.SqrtOf(symbolic.S("x")), symbolic.Env{"x": 2})
	if err != nil {
		t.Fatal(err)
	}
	if got != math.Sqrt2 {
		t.Errorf("want %v, got %v", math.Sqrt2, got)
	}
}

func TestEvaluate_Unbound(t *testing.T) {
	_, err := symbolic.Evaluate(symbolic.AddOf(symbolic.S("x"), symbolic.S("y")), symbolic.Env{"x": 1})
	if !errors.Is(err, symbolic.ErrUnbound) {
		t.Errorf("want ErrUnbound, got %v", err)
	}
}

func TestEvaluate32(t *testing.T) {
	x := symbolic.S("x")
	got, err := symbolic.Evaluate32(symbolic.AddOf(sq(symbolic.SinOf(x)), sq(symbolic.CosOf(x))), map[string]float32{"x": 0.7})
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(float64(got), 1, 1e-6) {
		t.Errorf("want 1, got %v", got)
	}
}
