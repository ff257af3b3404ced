package vec_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
	"gonum.org/v1/gonum/spatial/r3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var (
	zero = symbolic.N(0)
	one  = symbolic.N(1)
	ex   = vec.New(one, zero, zero)
	ey   = vec.New(zero, one, zero)
	ez   = vec.New(zero, zero, one)
)

func TestCross_RightHanded(t *testing.T) {
	if got := vec.Cross(ex, ey); !vec.Equal(got, ez) {
		t.Errorf("want %s, got %s", ez, got)
	}
	if got := vec.Cross(ey, ex); !vec.Equal(got, vec.Neg(ez)) {
		t.Errorf("want -z, got %s", got)
	}
}

func TestDot_Orthogonal(t *testing.T) {
	if got := vec.Dot(ex, ey); !symbolic.IsZero(got) {
		t.Errorf("want 0, got %s", got)
	}
}

func TestCross_PerpendicularToOperands(t *testing.T) {
	u := symbolic.S("u")
	a := vec.New(symbolic.CosOf(u), symbolic.SinOf(u), symbolic.S("h"))
	b := vec.New(symbolic.S("p"), symbolic.S("q"), one)
	c := vec.Cross(a, b)
	if got := vec.Dot(a, c); !symbolic.IsZero(symbolic.DeepSimplify(got)) {
		t.Errorf("a·(a×b): want 0, got %s", got)
	}
}

func TestNormalize_CircleTangent(t *testing.T) {
	u, R := symbolic.S("u"), symbolic.Pos("R")
	d := vec.New(symbolic.NegOf(symbolic.MulOf(R, symbolic.SinOf(u))), symbolic.MulOf(R, symbolic.CosOf(u)), zero)
	s := symbolic.DefaultSimplifier()
	got, err := vec.Normalize(context.Background(), d, &s)
	if err != nil {
		t.Fatal(err)
	}
	want := vec.New(symbolic.NegOf(symbolic.SinOf(u)), symbolic.CosOf(u), zero)
	if !vec.Equal(got, want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestNormalize_Zero(t *testing.T) {
	_, err := vec.Normalize(context.Background(), vec.Zero(), nil)
	if !errors.Is(err, vec.ErrZeroVector) {
		t.Errorf("want ErrZeroVector, got %v", err)
	}
}

func TestNormalize_CancelsToZero(t *testing.T) {
	x := symbolic.S("x")
	a := vec.Sub(vec.New(x, symbolic.SinOf(x), zero), vec.New(x, symbolic.SinOf(x), zero))
	s := symbolic.DefaultSimplifier()
	_, err := vec.Normalize(context.Background(), a, &s)
	if !errors.Is(err, vec.ErrZeroVector) {
		t.Errorf("want ErrZeroVector, got %v", err)
	}
}

func TestNormalize_RealScaleKeepsAbs(t *testing.T) {
	k := symbolic.S("k")
	s := symbolic.DefaultSimplifier()
	got, err := vec.Normalize(context.Background(), vec.New(k, zero, zero), &s)
	if err != nil {
		t.Fatal(err)
	}
	isAbs := func(e symbolic.Expr) bool { return symbolic.IsFunc(e, "abs") }
	if !symbolic.Contains(isAbs, got[0]) {
		t.Errorf("want abs in %s", got[0])
	}
}

func TestNormalize_UnitLength(t *testing.T) {
	u := symbolic.S("u")
	a := vec.New(symbolic.CosOf(u), symbolic.N(2), symbolic.SinOf(u))
	n, err := vec.Normalize(context.Background(), a, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0, 0.3, 1.7, 4} {
		p, err := vec.Eval(n, symbolic.Env{"u": x})
		if err != nil {
			t.Fatal(err)
		}
		diff(t, 1.0, r3.Norm(p), cmpopts.EquateApprox(0, 1e-12))
	}
}

func TestSimplify_ParallelMatchesSequential(t *testing.T) {
	u, v := symbolic.S("u"), symbolic.S("v")
	sq := func(e symbolic.Expr) symbolic.Expr { return symbolic.PowOf(e, symbolic.N(2)) }
	a := vec.New(
		symbolic.AddOf(sq(symbolic.SinOf(u)), sq(symbolic.CosOf(u))),
		symbolic.AddOf(symbolic.MulOf(v, symbolic.SinOf(u)), symbolic.MulOf(v, symbolic.CosOf(u))),
		symbolic.MinusOf(v, symbolic.MulOf(v, sq(symbolic.CosOf(u)))),
	)
	s := symbolic.DefaultSimplifier()
	seq, err := vec.Simplify(context.Background(), a, s, false)
	if err != nil {
		t.Fatal(err)
	}
	par, err := vec.Simplify(context.Background(), a, s, true)
	if err != nil {
		t.Fatal(err)
	}
	if !vec.Equal(seq, par) {
		t.Errorf("want %s, got %s", seq, par)
	}
	if seq[0] != one {
		t.Errorf("want 1, got %s", seq[0])
	}
}

func TestSimplify_ParallelKeepsComponentOrder(t *testing.T) {
	u, v := symbolic.S("u"), symbolic.S("v")
	sq := func(e symbolic.Expr) symbolic.Expr { return symbolic.PowOf(e, symbolic.N(2)) }
	a := vec.New(
		symbolic.AddOf(sq(symbolic.SinOf(u)), sq(symbolic.CosOf(u))),
		symbolic.MinusOf(symbolic.MulOf(symbolic.N(2), v), v),
		symbolic.AddOf(u, u),
	)
	want := vec.New(one, v, symbolic.MulOf(symbolic.N(2), u))
	for n := 0; n < 20; n++ {
		got, err := vec.Simplify(context.Background(), a, symbolic.DefaultSimplifier(), true)
		if err != nil {
			t.Fatal(err)
		}
		if !vec.Equal(want, got) {
			t.Fatalf("want %s, got %s", want, got)
		}
	}
}

func TestSimplify_ParallelBudgetError(t *testing.T) {
	a, b, c := symbolic.S("a"), symbolic.S("b"), symbolic.S("c")
	big := symbolic.MulOf(symbolic.AddOf(a, b, c), symbolic.AddOf(a, symbolic.S("d"), symbolic.S("e")))
	s := symbolic.Simplifier{Effort: symbolic.EffortExpand, Budget: symbolic.Budget{MaxNodes: 4}}
	_, err := vec.Simplify(context.Background(), vec.New(big, zero, zero), s, true)
	if !errors.Is(err, symbolic.ErrResourceExhausted) {
		t.Errorf("want ErrResourceExhausted, got %v", err)
	}
}

func TestEval(t *testing.T) {
	u, R := symbolic.S("u"), symbolic.Pos("R")
	a := vec.New(symbolic.MulOf(R, symbolic.CosOf(u)), symbolic.MulOf(R, symbolic.SinOf(u)), zero)
	got, err := vec.Eval(a, symbolic.Env{"u": math.Pi / 2, "R": 3})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, r3.Vec{X: 0, Y: 3, Z: 0}, got, cmpopts.EquateApprox(0, 1e-12))
}

func TestEval32(t *testing.T) {
	x := symbolic.S("x")
	got, err := vec.Eval32(vec.New(x, symbolic.MulOf(symbolic.N(2), x), one), map[string]float32{"x": 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if got.X != 1.5 || got.Y != 3 || got.Z != 1 {
		t.Errorf("want (1.5, 3, 1), got %v", got)
	}
}

func TestDiffAndSubst(t *testing.T) {
	u := symbolic.S("u")
	c := vec.New(symbolic.CosOf(u), symbolic.SinOf(u), u)
	d := vec.Diff(c, "u")
	at := vec.Subst(d, "u", symbolic.N(0))
	want := vec.New(zero, one, one)
	if !vec.Equal(at, want) {
		t.Errorf("want %s, got %s", want, at)
	}
}
