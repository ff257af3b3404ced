// Package symbolic is the exact expression kernel used by gosweep.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Immutable, hash-consed nodes: building the same structure twice yields
//     the same pointer, so Equal is identity and the subexpressions repeated by
//     differentiation are shared rather than copied
//   - Constructors (AddOf, MulOf, PowOf, ...) only canonicalize locally;
//     heavier rewriting happens in Simplify / Simplifier, which callers invoke
//     explicitly and can bound
//   - Deterministic ordering and stable output
package symbolic

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
	node() *header
}

// header is embedded in every node. All fields are set before the node is
// published through the intern table and never change afterwards.
type header struct {
	id   uint64
	hash uint64
	sign signSet
}

func (h *header) node() *header { return h }

// ============================================================
// Hash-consing
// ============================================================

var interned = struct {
	sync.Mutex
	buckets map[uint64][]Expr
	next    uint64
}{buckets: map[uint64][]Expr{}}

// intern returns the canonical node structurally equal to e, publishing e if
// no such node exists yet. Children of e must already be interned.
func intern(e Expr, hash uint64, sign signSet) Expr {
	interned.Lock()
	defer interned.Unlock()
	for _, c := range interned.buckets[hash] {
		if sameShape(c, e) {
			return c
		}
	}
	interned.next++
	h := e.node()
	h.id = interned.next
	h.hash = hash
	h.sign = sign
	interned.buckets[hash] = append(interned.buckets[hash], e)
	return e
}

// Interned reports how many distinct nodes have been built so far.
func Interned() int {
	interned.Lock()
	defer interned.Unlock()
	return int(interned.next)
}

// sameShape compares one level of structure; children are compared by
// identity because they are interned.
func sameShape(a, b Expr) bool {
	switch x := a.(type) {
	case *Num:
		y, ok := b.(*Num)
		return ok && x.val.Cmp(y.val) == 0
	case *Sym:
		y, ok := b.(*Sym)
		return ok && x.name == y.name && x.domain == y.domain
	case *Const:
		y, ok := b.(*Const)
		return ok && x.name == y.name
	case *Add:
		y, ok := b.(*Add)
		return ok && sameList(x.terms, y.terms)
	case *Mul:
		y, ok := b.(*Mul)
		return ok && sameList(x.factors, y.factors)
	case *Pow:
		y, ok := b.(*Pow)
		return ok && x.base == y.base && x.exp == y.exp
	case *Func:
		y, ok := b.(*Func)
		return ok && x.name == y.name && x.arg == y.arg
	}
	return false
}

func sameList(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const (
	kindNum byte = iota + 1
	kindConst
	kindSym
	kindFunc
	kindPow
	kindMul
	kindAdd
)

func hashOf(kind byte, label string, children ...Expr) uint64 {
	h := fnv.New64a()
	h.Write([]byte{kind})
	h.Write([]byte(label))
	var buf [8]byte
	for _, c := range children {
		binary.LittleEndian.PutUint64(buf[:], c.node().hash)
		h.Write(buf[:])
	}
	return h.Sum64()
}

// ============================================================
// Ordering of commutative operands
// ============================================================

func rank(e Expr) byte {
	switch e.(type) {
	case *Num:
		return kindNum
	case *Const:
		return kindConst
	case *Sym:
		return kindSym
	case *Func:
		return kindFunc
	case *Pow:
		return kindPow
	case *Mul:
		return kindMul
	}
	return kindAdd
}

// less orders by kind, then by name for symbols and functions, then by
// structural hash. The order does not depend on construction history.
func less(a, b Expr) bool {
	if a == b {
		return false
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	switch x := a.(type) {
	case *Num:
		return x.val.Cmp(b.(*Num).val) < 0
	case *Sym:
		y := b.(*Sym)
		if x.name != y.name {
			return x.name < y.name
		}
		return x.domain < y.domain
	case *Const:
		return x.name < b.(*Const).name
	case *Func:
		y := b.(*Func)
		if x.name != y.name {
			return x.name < y.name
		}
		return less(x.arg, y.arg)
	case *Pow:
		y := b.(*Pow)
		if x.base != y.base {
			return less(x.base, y.base)
		}
		return less(x.exp, y.exp)
	}
	ha, hb := a.node().hash, b.node().hash
	if ha != hb {
		return ha < hb
	}
	return a.node().id < b.node().id
}
