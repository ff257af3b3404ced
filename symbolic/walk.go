package symbolic

import (
	"math"
	"sort"
)

// ============================================================
// Traversal helpers
// ============================================================

// Children returns the direct operands of e.
func Children(e Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		return v.Terms()
	case *Mul:
		return v.Factors()
	case *Pow:
		return []Expr{v.base, v.exp}
	case *Func:
		return []Expr{v.arg}
	}
	return nil
}

func children(e Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		return v.terms
	case *Mul:
		return v.factors
	case *Pow:
		return []Expr{v.base, v.exp}
	case *Func:
		return []Expr{v.arg}
	}
	return nil
}

// Walk visits every distinct node reachable from roots once, children before
// parents.
func Walk(fn func(Expr), roots ...Expr) {
	seen := map[Expr]struct{}{}
	var rec func(Expr)
	rec = func(e Expr) {
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		for _, c := range children(e) {
			rec(c)
		}
		fn(e)
	}
	for _, r := range roots {
		rec(r)
	}
}

// Count returns the number of distinct nodes reachable from roots.
func Count(roots ...Expr) int {
	n := 0
	Walk(func(Expr) { n++ }, roots...)
	return n
}

// TreeSize returns the node count of e written out without sharing,
// saturating at math.MaxInt64.
func TreeSize(e Expr) int64 {
	memo := map[Expr]int64{}
	var rec func(Expr) int64
	rec = func(e Expr) int64 {
		if n, ok := memo[e]; ok {
			return n
		}
		n := int64(1)
		for _, c := range children(e) {
			k := rec(c)
			if n > math.MaxInt64-k {
				n = math.MaxInt64
				break
			}
			n += k
		}
		memo[e] = n
		return n
	}
	return rec(e)
}

// FreeSymbols returns the names of all symbols in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	Walk(func(n Expr) {
		if s, ok := n.(*Sym); ok {
			out[s.name] = struct{}{}
		}
	}, e)
	return out
}

// Symbols returns the distinct symbols reachable from roots sorted by name.
func Symbols(roots ...Expr) []*Sym {
	var out []*Sym
	Walk(func(n Expr) {
		if s, ok := n.(*Sym); ok {
			out = append(out, s)
		}
	}, roots...)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Contains reports whether any node reachable from roots satisfies pred.
func Contains(pred func(Expr) bool, roots ...Expr) bool {
	found := false
	Walk(func(n Expr) {
		if !found && pred(n) {
			found = true
		}
	}, roots...)
	return found
}

// IsFunc reports whether e is an application of the named function.
func IsFunc(e Expr, name string) bool {
	f, ok := e.(*Func)
	return ok && f.name == name
}

// IsZero reports whether e is the number 0.
func IsZero(e Expr) bool { return e == zero }
