package symbolic

import "context"

// maxExpandPower caps (a+b)^n expansion.
const maxExpandPower = 8

// Expand distributes every product over sums and multiplies out small
// positive integer powers of sums.
func Expand(e Expr) Expr {
	out, _ := ExpandWithin(context.Background(), e, 0)
	return out
}

// ExpandWithin is Expand with a limit on the number of terms created;
// limit <= 0 means unlimited.
func ExpandWithin(ctx context.Context, e Expr, limit int) (Expr, error) {
	x := &expander{ctx: ctx, limit: limit, memo: map[Expr]Expr{}}
	return x.of(e)
}

type expander struct {
	ctx      context.Context
	limit    int
	produced int
	memo     map[Expr]Expr
}

func (x *expander) of(e Expr) (Expr, error) {
	if r, ok := x.memo[e]; ok {
		return r, nil
	}
	if x.ctx != nil {
		if err := x.ctx.Err(); err != nil {
			return nil, err
		}
	}
	kids := children(e)
	next := make([]Expr, len(kids))
	for i, c := range kids {
		r, err := x.of(c)
		if err != nil {
			return nil, err
		}
		next[i] = r
	}
	var out Expr
	switch v := e.(type) {
	case *Add:
		out = AddOf(next...)
	case *Mul, *Pow:
		var rebuilt Expr
		if _, ok := v.(*Mul); ok {
			rebuilt = MulOf(next...)
		} else {
			rebuilt = PowOf(next[0], next[1])
		}
		budget := 0
		if x.limit > 0 {
			budget = x.limit - x.produced
		}
		d, n, err := distribute(rebuilt, budget)
		if err != nil {
			return nil, err
		}
		x.produced += n
		out = d
	case *Func:
		out = mustFunc(v.name, next[0])
	default:
		out = e
	}
	x.memo[e] = out
	return out, nil
}

// distribute multiplies out one product (or power of a sum) whose operands
// are already expanded. It reports how many terms it built.
func distribute(e Expr, limit int) (Expr, int, error) {
	var factors []Expr
	switch v := e.(type) {
	case *Mul:
		factors = v.factors
	case *Pow:
		if _, ok := v.base.(*Add); !ok {
			return e, 0, nil
		}
		factors = []Expr{v}
	default:
		return e, 0, nil
	}
	hasSum := false
	var expanded []Expr
	for _, f := range factors {
		if p, ok := f.(*Pow); ok {
			if sum, ok := p.base.(*Add); ok {
				if k, ok := p.exp.(*Num); ok && k.IsInteger() && k.IsPositive() && k.val.Num().Int64() <= maxExpandPower {
					for i := int64(0); i < k.val.Num().Int64(); i++ {
						expanded = append(expanded, sum)
					}
					hasSum = true
					continue
				}
			}
		}
		if _, ok := f.(*Add); ok {
			hasSum = true
		}
		expanded = append(expanded, f)
	}
	if !hasSum {
		return e, 0, nil
	}
	acc := []Expr{one}
	built := 0
	for _, f := range expanded {
		terms := []Expr{f}
		if sum, ok := f.(*Add); ok {
			terms = sum.terms
		}
		next := make([]Expr, 0, len(acc)*len(terms))
		for _, a := range acc {
			for _, t := range terms {
				next = append(next, MulOf(a, t))
			}
		}
		built += len(next)
		if limit > 0 && built > limit {
			return nil, built, &ResourceError{Resource: "nodes", Limit: int64(limit), Observed: int64(built)}
		}
		acc = next
	}
	return AddOf(acc...), built, nil
}
