package symbolic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/njchilds90/gosweep/symbolic"
)

func sq(e symbolic.Expr) symbolic.Expr { return symbolic.PowOf(e, symbolic.N(2)) }

func TestTrigSimplify_Pythagorean(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.TrigSimplify(symbolic.AddOf(sq(symbolic.SinOf(x)), sq(symbolic.CosOf(x))))
	if got != symbolic.N(1) {
		t.Errorf("want 1, got %s", got)
	}
}

func TestTrigSimplify_ScaledPair(t *testing.T) {
	u, R := symbolic.S("u"), symbolic.Pos("R")
	e := symbolic.AddOf(
		symbolic.MulOf(sq(R), sq(symbolic.CosOf(u))),
		symbolic.MulOf(sq(R), sq(symbolic.SinOf(u))),
		symbolic.S("z"),
	)
	want := symbolic.AddOf(sq(R), symbolic.S("z"))
	if got := symbolic.TrigSimplify(e); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestTrigSimplify_OneMinusSinSquared(t *testing.T) {
	x, k := symbolic.S("x"), symbolic.S("k")
	e := symbolic.MinusOf(k, symbolic.MulOf(k, sq(symbolic.SinOf(x))))
	want := symbolic.MulOf(k, sq(symbolic.CosOf(x)))
	if got := symbolic.TrigSimplify(e); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestTrigSimplify_DifferentArgumentsUntouched(t *testing.T) {
	x, y := symbolic.S("x"), symbolic.S("y")
	e := symbolic.AddOf(sq(symbolic.SinOf(x)), sq(symbolic.CosOf(y)))
	if got := symbolic.TrigSimplify(e); got != e {
		t.Errorf("want %s unchanged, got %s", e, got)
	}
}

func TestSimplify_NormOfCircleDerivative(t *testing.T) {
	u, R := symbolic.S("u"), symbolic.Pos("R")
	dx := symbolic.NegOf(symbolic.MulOf(R, symbolic.SinOf(u)))
	dy := symbolic.MulOf(R, symbolic.CosOf(u))
	norm := symbolic.SqrtOf(symbolic.AddOf(symbolic.MulOf(dx, dx), symbolic.MulOf(dy, dy)))
	if got := symbolic.Simplify(norm); got != R {
		t.Errorf("want R, got %s", got)
	}
}

func TestSimplify_RealRadiusKeepsAbs(t *testing.T) {
	u, R := symbolic.S("u"), symbolic.S("R")
	dx := symbolic.MulOf(R, symbolic.SinOf(u))
	dy := symbolic.MulOf(R, symbolic.CosOf(u))
	norm := symbolic.SqrtOf(symbolic.AddOf(symbolic.MulOf(dx, dx), symbolic.MulOf(dy, dy)))
	if got := symbolic.Simplify(norm); got != symbolic.AbsOf(R) {
		t.Errorf("want abs(R), got %s", got)
	}
}

func TestSimplify_FactorsCommonTerms(t *testing.T) {
	u, v := symbolic.S("u"), symbolic.S("v")
	R, r := symbolic.Pos("R"), symbolic.Pos("r")
	e := symbolic.AddOf(
		symbolic.MulOf(R, symbolic.CosOf(u)),
		symbolic.MulOf(r, symbolic.CosOf(u), symbolic.CosOf(v)),
	)
	want := symbolic.MulOf(symbolic.CosOf(u), symbolic.AddOf(R, symbolic.MulOf(r, symbolic.CosOf(v))))
	if got := symbolic.Simplify(e); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	u, v := symbolic.S("u"), symbolic.S("v")
	e := symbolic.AddOf(
		symbolic.MulOf(symbolic.S("a"), symbolic.SinOf(u), symbolic.CosOf(v)),
		symbolic.MulOf(symbolic.S("a"), sq(symbolic.SinOf(u))),
		symbolic.MulOf(symbolic.S("a"), sq(symbolic.CosOf(u))),
	)
	once := symbolic.Simplify(e)
	if twice := symbolic.Simplify(once); twice != once {
		t.Errorf("want a fixed point, got %s then %s", once, twice)
	}
}

func TestDeepSimplify_ExpandsSquare(t *testing.T) {
	x := symbolic.S("x")
	s, c := symbolic.SinOf(x), symbolic.CosOf(x)
	got := symbolic.DeepSimplify(sq(symbolic.AddOf(s, c)))
	want := symbolic.AddOf(symbolic.MulOf(symbolic.N(2), s, c), symbolic.N(1))
	if got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestExpand_Binomial(t *testing.T) {
	x := symbolic.S("x")
	got := symbolic.Expand(sq(symbolic.AddOf(x, symbolic.N(1))))
	want := symbolic.AddOf(sq(x), symbolic.MulOf(symbolic.N(2), x), symbolic.N(1))
	if got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestExpandWithin_Limit(t *testing.T) {
	a, b, c := symbolic.S("a"), symbolic.S("b"), symbolic.S("c")
	e := symbolic.PowOf(symbolic.AddOf(a, b, c), symbolic.N(6))
	_, err := symbolic.ExpandWithin(context.Background(), e, 50)
	if !errors.Is(err, symbolic.ErrResourceExhausted) {
		t.Errorf("want ErrResourceExhausted, got %v", err)
	}
}

func TestSimplifier_NodeBudget(t *testing.T) {
	a, b, c := symbolic.S("a"), symbolic.S("b"), symbolic.S("c")
	x, y, z := symbolic.S("x"), symbolic.S("y"), symbolic.S("z")
	e := symbolic.MulOf(symbolic.AddOf(a, b, c), symbolic.AddOf(x, y, z))
	s := symbolic.Simplifier{Effort: symbolic.EffortExpand, Budget: symbolic.Budget{MaxNodes: 5}}
	_, err := s.Simplify(context.Background(), e)
	var re *symbolic.ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("want *ResourceError, got %v", err)
	}
	if re.Resource != "nodes" || re.Limit != 5 {
		t.Errorf("want nodes budget 5, got %s %d", re.Resource, re.Limit)
	}
	if !errors.Is(err, symbolic.ErrResourceExhausted) {
		t.Error("ResourceError should match ErrResourceExhausted")
	}
}

func TestSimplifier_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := symbolic.DefaultSimplifier().Simplify(ctx, symbolic.S("x"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestSimplifier_EffortNone(t *testing.T) {
	x := symbolic.S("x")
	e := symbolic.AddOf(sq(symbolic.SinOf(x)), sq(symbolic.CosOf(x)))
	got, err := symbolic.Simplifier{}.Simplify(context.Background(), e)
	if err != nil || got != e {
		t.Errorf("want input unchanged, got %v, %v", got, err)
	}
}

func TestParseEffort(t *testing.T) {
	for _, e := range []symbolic.Effort{symbolic.EffortNone, symbolic.EffortBasic, symbolic.EffortTrig, symbolic.EffortExpand} {
		got, ok := symbolic.ParseEffort(e.String())
		if !ok || got != e {
			t.Errorf("ParseEffort(%q): want %v, got %v", e.String(), e, got)
		}
	}
	if _, ok := symbolic.ParseEffort("heroic"); ok {
		t.Error("unknown effort should not parse")
	}
}
