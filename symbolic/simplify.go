package symbolic

import (
	"context"
	"errors"
	"time"
)

// ============================================================
// Simplifier
// ============================================================

// Effort selects which rewrites Simplify applies.
type Effort int

const (
	// EffortNone returns the input unchanged.
	EffortNone Effort = iota
	// EffortBasic rebuilds every node through its constructor.
	EffortBasic
	// EffortTrig adds sin²+cos²=1 and pulls common factors out of sums.
	EffortTrig
	// EffortExpand distributes products over sums and applies sin²+cos²=1 to
	// the expanded form. Common factors are left distributed.
	EffortExpand
)

func (e Effort) String() string {
	switch e {
	case EffortNone:
		return "none"
	case EffortBasic:
		return "basic"
	case EffortTrig:
		return "trig"
	case EffortExpand:
		return "expand"
	}
	return "unknown"
}

// ParseEffort is the inverse of Effort.String.
func ParseEffort(s string) (Effort, bool) {
	for e := EffortNone; e <= EffortExpand; e++ {
		if e.String() == s {
			return e, true
		}
	}
	return EffortNone, false
}

// Budget bounds a single Simplify call. Zero fields mean no limit.
type Budget struct {
	MaxNodes int           // nodes produced by rewriting
	Timeout  time.Duration // wall clock
}

type Simplifier struct {
	Effort Effort
	Budget Budget
}

const maxPasses = 4

func DefaultSimplifier() Simplifier {
	return Simplifier{Effort: EffortTrig, Budget: Budget{MaxNodes: 200000}}
}

// Simplify rewrites e to a fixed point of the selected rules, giving up with
// a *ResourceError once the budget is spent. Cancellation of ctx is returned
// as ctx.Err().
func (s Simplifier) Simplify(ctx context.Context, e Expr) (Expr, error) {
	if s.Effort == EffortNone {
		return e, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	if s.Budget.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Budget.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, s.budgetErr(err, start)
	}
	rw := &rewriter{
		ctx:    ctx,
		effort: s.Effort,
		memo:   map[Expr]Expr{},
		factor: s.Effort == EffortTrig,
		limit:  s.Budget.MaxNodes,
	}
	cur := e
	for pass := 0; pass < maxPasses; pass++ {
		next, err := rw.of(cur)
		if err != nil {
			return nil, s.budgetErr(err, start)
		}
		if next == cur {
			break
		}
		cur = next
	}
	return cur, nil
}

// budgetErr reports our own deadline as a time budget overrun.
func (s Simplifier) budgetErr(err error, start time.Time) error {
	if errors.Is(err, context.DeadlineExceeded) && s.Budget.Timeout > 0 {
		return &ResourceError{Resource: "time", Limit: int64(s.Budget.Timeout), Observed: int64(time.Since(start))}
	}
	return err
}

// Simplify applies the trig rewrites without a budget.
func Simplify(e Expr) Expr {
	out, err := Simplifier{Effort: EffortTrig}.Simplify(context.Background(), e)
	if err != nil {
		return e
	}
	return out
}

// DeepSimplify returns the expanded form with sin²+cos² reduced.
func DeepSimplify(e Expr) Expr {
	out, err := Simplifier{Effort: EffortExpand}.Simplify(context.Background(), e)
	if err != nil {
		return e
	}
	return out
}

type rewriter struct {
	ctx      context.Context
	effort   Effort
	memo     map[Expr]Expr
	factor   bool
	limit    int
	produced int
	steps    int
}

func (rw *rewriter) of(e Expr) (Expr, error) {
	if r, ok := rw.memo[e]; ok {
		return r, nil
	}
	rw.steps++
	if rw.ctx != nil && rw.steps%1024 == 0 {
		if err := rw.ctx.Err(); err != nil {
			return nil, err
		}
	}
	var out Expr
	switch x := e.(type) {
	case *Add:
		terms, err := rw.all(x.terms)
		if err != nil {
			return nil, err
		}
		out = rw.finishSum(AddOf(terms...))
	case *Mul:
		factors, err := rw.all(x.factors)
		if err != nil {
			return nil, err
		}
		if out, err = rw.expand(MulOf(factors...)); err != nil {
			return nil, err
		}
	case *Pow:
		base, err := rw.of(x.base)
		if err != nil {
			return nil, err
		}
		exp, err := rw.of(x.exp)
		if err != nil {
			return nil, err
		}
		if out, err = rw.expand(PowOf(base, exp)); err != nil {
			return nil, err
		}
	case *Func:
		arg, err := rw.of(x.arg)
		if err != nil {
			return nil, err
		}
		out = mustFunc(x.name, arg)
	default:
		out = e
	}
	if out != e {
		rw.produced++
		if rw.limit > 0 && rw.produced > rw.limit {
			return nil, &ResourceError{Resource: "nodes", Limit: int64(rw.limit), Observed: int64(rw.produced)}
		}
	}
	rw.memo[e] = out
	return out, nil
}

func (rw *rewriter) all(in []Expr) ([]Expr, error) {
	out := make([]Expr, len(in))
	for i, c := range in {
		r, err := rw.of(c)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (rw *rewriter) expand(e Expr) (Expr, error) {
	if rw.effort < EffortExpand {
		return e, nil
	}
	budget := 0
	if rw.limit > 0 {
		budget = rw.limit - rw.produced
	}
	ex, n, err := distribute(e, budget)
	if err != nil {
		return nil, err
	}
	rw.produced += n
	return rw.finishSum(ex), nil
}

func (rw *rewriter) finishSum(e Expr) Expr {
	if rw.effort < EffortTrig {
		return e
	}
	a, ok := e.(*Add)
	if !ok {
		return e
	}
	e = pythagoreanAll(a)
	if a, ok = e.(*Add); ok && rw.factor {
		e = factorCommon(a)
	}
	return e
}
