package symbolic

import "sort"

// ============================================================
// Trig identities and common factors
// ============================================================

// TrigSimplify applies sin²+cos²=1 throughout e, also in the forms
// k - k*sin²(x) = k*cos²(x) and k - k*cos²(x) = k*sin²(x).
func TrigSimplify(e Expr) Expr {
	rw := &rewriter{effort: EffortTrig, memo: map[Expr]Expr{}, factor: false}
	out, _ := rw.of(e)
	return out
}

type trigSquare struct {
	ok   bool
	fn   string
	arg  Expr
	rest Expr
}

// splitTrigSquare finds a sin(x)^2 or cos(x)^2 factor in t.
func splitTrigSquare(t Expr) trigSquare {
	match := func(f Expr) (*Func, bool) {
		p, ok := f.(*Pow)
		if !ok || p.exp != two() {
			return nil, false
		}
		fn, ok := p.base.(*Func)
		if !ok || (fn.name != "sin" && fn.name != "cos") {
			return nil, false
		}
		return fn, true
	}
	if fn, ok := match(t); ok {
		return trigSquare{ok: true, fn: fn.name, arg: fn.arg, rest: one}
	}
	m, ok := t.(*Mul)
	if !ok {
		return trigSquare{}
	}
	for i, f := range m.factors {
		if fn, ok := match(f); ok {
			others := make([]Expr, 0, len(m.factors)-1)
			others = append(others, m.factors[:i]...)
			others = append(others, m.factors[i+1:]...)
			return trigSquare{ok: true, fn: fn.name, arg: fn.arg, rest: MulOf(others...)}
		}
	}
	return trigSquare{}
}

func two() Expr { return N(2) }

func pythagorean(a *Add) Expr {
	type key struct{ arg, rest Expr }
	terms := a.terms
	sq := make([]trigSquare, len(terms))
	index := map[string]map[key]int{"sin": {}, "cos": {}}
	for i, t := range terms {
		sq[i] = splitTrigSquare(t)
		if !sq[i].ok {
			continue
		}
		k := key{sq[i].arg, sq[i].rest}
		if _, dup := index[sq[i].fn][k]; !dup {
			index[sq[i].fn][k] = i
		}
	}
	other := map[string]string{"sin": "cos", "cos": "sin"}
	used := make([]bool, len(terms))
	var out []Expr
	for i := range terms {
		if !sq[i].ok || used[i] || sq[i].fn != "sin" {
			continue
		}
		if j, ok := index["cos"][key{sq[i].arg, sq[i].rest}]; ok && !used[j] {
			used[i], used[j] = true, true
			out = append(out, sq[i].rest)
		}
	}
	plain := map[Expr]int{}
	for i, t := range terms {
		if !used[i] {
			if _, dup := plain[t]; !dup {
				plain[t] = i
			}
		}
	}
	for i := range terms {
		if !sq[i].ok || used[i] {
			continue
		}
		j, ok := plain[NegOf(sq[i].rest)]
		if !ok || used[j] || j == i {
			continue
		}
		used[i], used[j] = true, true
		var co Expr
		if other[sq[i].fn] == "cos" {
			co = CosOf(sq[i].arg)
		} else {
			co = SinOf(sq[i].arg)
		}
		out = append(out, NegOf(MulOf(sq[i].rest, PowOf(co, two()))))
	}
	if len(out) == 0 {
		return a
	}
	for i, t := range terms {
		if !used[i] {
			out = append(out, t)
		}
	}
	return AddOf(out...)
}

// factorCommon pulls the factors shared by every term of a sum out in front,
// e.g. a*x + a*y*z becomes a*(x + y*z). Integer powers of a base count as
// shared when they have the same sign in every term; the smallest in
// magnitude is extracted.
func factorCommon(a *Add) Expr {
	var common map[Expr]int64
	for i, t := range a.terms {
		fs := termPowers(t)
		if i == 0 {
			common = fs
			continue
		}
		for b, k := range common {
			kk, ok := fs[b]
			switch {
			case !ok || (kk > 0) != (k > 0):
				delete(common, b)
			case abs64(kk) < abs64(k):
				common[b] = kk
			}
		}
		if len(common) == 0 {
			return a
		}
	}
	if len(common) == 0 {
		return a
	}
	bases := make([]Expr, 0, len(common))
	for b := range common {
		bases = append(bases, b)
	}
	sort.Slice(bases, func(i, j int) bool { return less(bases[i], bases[j]) })
	shared := make([]Expr, len(bases))
	inverse := make([]Expr, len(bases))
	for i, b := range bases {
		shared[i] = PowOf(b, N(common[b]))
		inverse[i] = PowOf(b, N(-common[b]))
	}
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = MulOf(append([]Expr{t}, inverse...)...)
	}
	inner := AddOf(terms...)
	if ia, ok := inner.(*Add); ok {
		inner = pythagoreanAll(ia)
	}
	return MulOf(append(shared, inner)...)
}

// pythagoreanAll repeats pythagorean while it makes progress; one rewrite
// can expose another pair.
func pythagoreanAll(a *Add) Expr {
	var e Expr = a
	for i := 0; i < maxPasses; i++ {
		next := pythagorean(a)
		if next == e {
			break
		}
		e = next
		var ok bool
		if a, ok = e.(*Add); !ok {
			break
		}
	}
	return e
}

func abs64(k int64) int64 {
	if k < 0 {
		return -k
	}
	return k
}

// termPowers maps each base in t to its integer exponent. Factors with other
// exponents count as bases of their own.
func termPowers(t Expr) map[Expr]int64 {
	out := map[Expr]int64{}
	add := func(f Expr) {
		if _, ok := f.(*Num); ok {
			return
		}
		if p, ok := f.(*Pow); ok {
			if en, ok := p.exp.(*Num); ok && en.IsInteger() {
				if k := en.val.Num(); k.IsInt64() {
					out[p.base] += k.Int64()
				}
				return
			}
		}
		out[f]++
	}
	if m, ok := t.(*Mul); ok {
		for _, f := range m.factors {
			add(f)
		}
		return out
	}
	add(t)
	return out
}
