// Package codegen turns vector formulas into GLSL or C source so derived
// surfaces and normal fields can be evaluated on the GPU or in native code.
//
// Subexpressions used more than once are hoisted into temporaries, in the
// order they are needed, so shared work such as sin(u) is computed once.
package codegen

import (
	"io"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/njchilds90/gosweep"
	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
)

// Lang selects the output dialect.
type Lang int

const (
	GLSL Lang = iota
	C
)

func (l Lang) String() string {
	switch l {
	case GLSL:
		return "glsl"
	case C:
		return "c"
	}
	return "Lang(" + strconv.Itoa(int(l)) + ")"
}

// ParseLang accepts the names String returns.
func ParseLang(s string) (Lang, bool) {
	switch strings.ToLower(s) {
	case "glsl":
		return GLSL, true
	case "c":
		return C, true
	}
	return 0, false
}

// Generator emits one function per vector. Float32 selects float over
// double and the f-suffixed math functions for C; GLSL is always float.
type Generator struct {
	Lang    Lang
	Float32 bool
}

// products up to this power are written as repeated multiplication.
const maxProductPower = 4

// AppendFunc appends a function named name that returns v. Its arguments are
// params followed by any other free symbols of v in sorted order.
func (g Generator) AppendFunc(dst []byte, name string, params []string, v vec.Vector3) []byte {
	em := newEmitter(g, v[:], params)
	args := em.arguments(params, v[:])

	dst = g.appendSignature(dst, name, args)
	for _, t := range em.order {
		dst = append(dst, '\t')
		if g.Lang == C {
			dst = append(dst, "const "...)
		}
		dst = append(dst, g.floatType()...)
		dst = append(dst, ' ')
		dst = append(dst, em.names[t]...)
		dst = append(dst, " = "...)
		dst = em.appendNode(dst, t)
		dst = append(dst, ";\n"...)
	}
	switch g.Lang {
	case GLSL:
		dst = append(dst, "\treturn vec3("...)
		for i, c := range v {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = em.appendExpr(dst, c)
		}
		dst = append(dst, ");\n"...)
	default:
		for i, c := range v {
			dst = append(dst, "\tout["...)
			dst = strconv.AppendInt(dst, int64(i), 10)
			dst = append(dst, "] = "...)
			dst = em.appendExpr(dst, c)
			dst = append(dst, ";\n"...)
		}
	}
	return append(dst, "}\n"...)
}

// WriteFunc writes the function AppendFunc would append.
func (g Generator) WriteFunc(w io.Writer, name string, params []string, v vec.Vector3) error {
	_, err := w.Write(g.AppendFunc(make([]byte, 0, 1024), name, params, v))
	return err
}

// AppendSurface emits the position formula of s with the surface
// parameters as leading arguments.
func (g Generator) AppendSurface(dst []byte, name string, s gosweep.Surface) []byte {
	return g.AppendFunc(dst, name, []string{s.U, s.V}, s.Pos)
}

// AppendNormals emits the normal field n with the surface parameters as
// leading arguments.
func (g Generator) AppendNormals(dst []byte, name string, n gosweep.NormalField) []byte {
	return g.AppendFunc(dst, name, []string{n.U, n.V}, n.Dir)
}

func (g Generator) floatType() string {
	if g.Lang == GLSL || g.Float32 {
		return "float"
	}
	return "double"
}

func (g Generator) appendSignature(dst []byte, name string, args []string) []byte {
	ft := g.floatType()
	if g.Lang == GLSL {
		dst = append(dst, "vec3 "...)
	} else {
		dst = append(dst, "void "...)
	}
	dst = append(dst, name...)
	dst = append(dst, '(')
	for i, a := range args {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = append(dst, ft...)
		dst = append(dst, ' ')
		dst = append(dst, a...)
	}
	if g.Lang == C {
		if len(args) > 0 {
			dst = append(dst, ", "...)
		}
		dst = append(dst, ft...)
		dst = append(dst, " out[3]"...)
	}
	return append(dst, ") {\n"...)
}

// fn maps a symbolic function name to the dialect's spelling.
func (g Generator) fn(name string) string {
	switch name {
	case "ln":
		name = "log"
	case "abs":
		if g.Lang == C {
			name = "fabs"
		}
	}
	if g.Lang == C && g.Float32 {
		name += "f"
	}
	return name
}

// appendFloat writes f so both dialects read it as a floating literal.
func (g Generator) appendFloat(dst []byte, f float64) []byte {
	bits := 64
	if g.Lang == GLSL || g.Float32 {
		bits = 32
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, bits)
	if !strings.ContainsAny(string(dst[start:]), ".eEnN") {
		dst = append(dst, ".0"...)
	}
	if g.Lang == C && g.Float32 {
		dst = append(dst, 'f')
	}
	return dst
}

// Operator precedence of rendered expressions.
const (
	precSum = iota + 1
	precProduct
	precAtom
)

type emitter struct {
	g     Generator
	names map[symbolic.Expr]string
	order []symbolic.Expr
}

func newEmitter(g Generator, roots []symbolic.Expr, params []string) *emitter {
	em := &emitter{g: g, names: map[symbolic.Expr]string{}}
	refs := map[symbolic.Expr]int{}
	for _, r := range roots {
		refs[r]++
	}
	var post []symbolic.Expr
	symbolic.Walk(func(e symbolic.Expr) {
		post = append(post, e)
		for _, c := range em.operands(e) {
			refs[c]++
		}
	}, roots...)

	prefix := tempPrefix(roots, params)
	for _, e := range post {
		if atomic(e) || refs[e] < 2 {
			continue
		}
		em.names[e] = prefix + strconv.Itoa(len(em.order))
		em.order = append(em.order, e)
	}
	return em
}

// operands lists the nodes the rendering of e mentions, with repetition.
func (em *emitter) operands(e symbolic.Expr) []symbolic.Expr {
	switch v := e.(type) {
	case *symbolic.Pow:
		if k, ok := productPower(v); ok {
			out := make([]symbolic.Expr, k)
			for i := range out {
				out[i] = v.Base()
			}
			return out
		}
		return symbolic.Children(e)
	case *symbolic.Func:
		if v.FuncName() == "sign" && em.g.Lang == C {
			return []symbolic.Expr{v.Arg(), v.Arg()}
		}
	}
	return symbolic.Children(e)
}

func atomic(e symbolic.Expr) bool {
	switch e.(type) {
	case *symbolic.Num, *symbolic.Sym, *symbolic.Const:
		return true
	}
	return false
}

// productPower reports |k| when p is base^k for an integer k that is written
// as a product.
func productPower(p *symbolic.Pow) (int, bool) {
	n, ok := p.ExpExpr().(*symbolic.Num)
	if !ok || !n.IsInteger() {
		return 0, false
	}
	k := n.Rat().Num().Int64()
	if k < 0 {
		k = -k
	}
	if k < 2 || k > maxProductPower {
		return 0, false
	}
	return int(k), true
}

// tempPrefix picks a temporary name prefix no argument can collide with.
func tempPrefix(roots []symbolic.Expr, params []string) string {
	syms := append([]string(nil), params...)
	for _, s := range symbolic.Symbols(roots...) {
		syms = append(syms, s.Name())
	}
	prefix := "t"
	for collides(prefix, syms) {
		prefix += "_"
	}
	return prefix
}

func collides(prefix string, names []string) bool {
	for _, n := range names {
		rest, ok := strings.CutPrefix(n, prefix)
		if !ok || rest == "" {
			continue
		}
		if strings.Trim(rest, "0123456789") == "" {
			return true
		}
	}
	return false
}

func (em *emitter) arguments(params []string, roots []symbolic.Expr) []string {
	args := append([]string(nil), params...)
	seen := map[string]bool{}
	for _, p := range params {
		seen[p] = true
	}
	var extra []string
	for _, s := range symbolic.Symbols(roots...) {
		if !seen[s.Name()] {
			seen[s.Name()] = true
			extra = append(extra, s.Name())
		}
	}
	sort.Strings(extra)
	return append(args, extra...)
}

// appendExpr writes e, or its temporary if it has one.
func (em *emitter) appendExpr(dst []byte, e symbolic.Expr) []byte {
	if name, ok := em.names[e]; ok {
		return append(dst, name...)
	}
	return em.appendNode(dst, e)
}

// appendOperand writes e, parenthesized if it binds looser than prec.
func (em *emitter) appendOperand(dst []byte, e symbolic.Expr, prec int) []byte {
	if em.prec(e) >= prec {
		return em.appendExpr(dst, e)
	}
	dst = append(dst, '(')
	dst = em.appendExpr(dst, e)
	return append(dst, ')')
}

func (em *emitter) prec(e symbolic.Expr) int {
	if _, ok := em.names[e]; ok {
		return precAtom
	}
	switch v := e.(type) {
	case *symbolic.Num:
		if v.IsNegative() {
			return precSum
		}
		return precAtom
	case *symbolic.Add:
		return precSum
	case *symbolic.Mul:
		if c, _ := coefficient(v); c != nil && c.IsNegative() {
			return precSum
		}
		return precProduct
	case *symbolic.Pow:
		if _, ok := productPower(v); ok {
			return precProduct
		}
		if n, ok := v.ExpExpr().(*symbolic.Num); ok && n.IsNegative() {
			if em.g.Lang == GLSL && n.Rat().Cmp(big.NewRat(-1, 2)) == 0 {
				return precAtom
			}
			return precProduct
		}
	}
	return precAtom
}

// appendNode writes the structure of e, ignoring any temporary for e itself.
func (em *emitter) appendNode(dst []byte, e symbolic.Expr) []byte {
	switch v := e.(type) {
	case *symbolic.Num:
		return em.g.appendFloat(dst, v.Float64())
	case *symbolic.Const:
		return em.g.appendFloat(dst, v.Value())
	case *symbolic.Sym:
		return append(dst, v.Name()...)
	case *symbolic.Add:
		return em.appendSum(dst, v)
	case *symbolic.Mul:
		c, rest := coefficient(v)
		if c != nil && c.IsNegative() {
			dst = append(dst, '-')
			return em.appendProduct(dst, new(big.Rat).Neg(c.Rat()), rest)
		}
		var r *big.Rat
		if c != nil {
			r = c.Rat()
		}
		return em.appendProduct(dst, r, rest)
	case *symbolic.Pow:
		return em.appendPow(dst, v)
	case *symbolic.Func:
		return em.appendFunc(dst, v)
	}
	panic("codegen: unknown expression kind")
}

func (em *emitter) appendSum(dst []byte, a *symbolic.Add) []byte {
	for i, t := range a.Terms() {
		neg, c, rest := em.splitNegative(t)
		switch {
		case i == 0 && neg:
			dst = append(dst, '-')
		case i > 0 && neg:
			dst = append(dst, " - "...)
		case i > 0:
			dst = append(dst, " + "...)
		}
		if !neg {
			dst = em.appendOperand(dst, t, precSum)
			continue
		}
		if rest == nil {
			dst = em.g.appendFloat(dst, -c.Float64())
			continue
		}
		dst = em.appendProduct(dst, new(big.Rat).Neg(c.Rat()), rest)
	}
	return dst
}

// splitNegative reports whether t is written with a leading minus, returning
// its coefficient and remaining factors when it is.
func (em *emitter) splitNegative(t symbolic.Expr) (bool, *symbolic.Num, []symbolic.Expr) {
	if _, ok := em.names[t]; ok {
		return false, nil, nil
	}
	switch v := t.(type) {
	case *symbolic.Num:
		return v.IsNegative(), v, nil
	case *symbolic.Mul:
		c, rest := coefficient(v)
		if c != nil && c.IsNegative() {
			return true, c, rest
		}
	}
	return false, nil, nil
}

// coefficient splits the numeric factor off m.
func coefficient(m *symbolic.Mul) (*symbolic.Num, []symbolic.Expr) {
	fs := m.Factors()
	for i, f := range fs {
		if n, ok := f.(*symbolic.Num); ok {
			return n, append(fs[:i:i], fs[i+1:]...)
		}
	}
	return nil, fs
}

// appendProduct writes c·factors, moving negative powers under a division.
// c may be nil for 1.
func (em *emitter) appendProduct(dst []byte, c *big.Rat, factors []symbolic.Expr) []byte {
	var num, den []symbolic.Expr
	for _, f := range factors {
		if _, named := em.names[f]; !named {
			if p, ok := f.(*symbolic.Pow); ok {
				if n, ok := p.ExpExpr().(*symbolic.Num); ok && n.IsNegative() {
					den = append(den, symbolic.PowOf(p.Base(), symbolic.NegOf(n)))
					continue
				}
			}
		}
		num = append(num, f)
	}
	wrote := false
	if c != nil && (c.Cmp(big.NewRat(1, 1)) != 0 || len(num) == 0) {
		f, _ := c.Float64()
		dst = em.g.appendFloat(dst, f)
		wrote = true
	}
	for _, f := range num {
		if wrote {
			dst = append(dst, '*')
		}
		dst = em.appendOperand(dst, f, precProduct)
		wrote = true
	}
	if !wrote {
		dst = em.g.appendFloat(dst, 1)
	}
	if len(den) == 0 {
		return dst
	}
	dst = append(dst, '/')
	if len(den) == 1 {
		return em.appendOperand(dst, den[0], precAtom)
	}
	dst = append(dst, '(')
	for i, f := range den {
		if i > 0 {
			dst = append(dst, '*')
		}
		dst = em.appendOperand(dst, f, precProduct)
	}
	return append(dst, ')')
}

func (em *emitter) appendPow(dst []byte, p *symbolic.Pow) []byte {
	base := p.Base()
	if k, ok := productPower(p); ok {
		n := p.ExpExpr().(*symbolic.Num)
		if n.IsNegative() {
			dst = em.g.appendFloat(dst, 1)
			dst = append(dst, "/("...)
		}
		for i := 0; i < k; i++ {
			if i > 0 {
				dst = append(dst, '*')
			}
			dst = em.appendOperand(dst, base, precAtom)
		}
		if n.IsNegative() {
			dst = append(dst, ')')
		}
		return dst
	}
	if n, ok := p.ExpExpr().(*symbolic.Num); ok {
		r := n.Rat()
		switch {
		case r.Cmp(big.NewRat(1, 2)) == 0:
			return em.appendCall(dst, em.g.fn("sqrt"), base)
		case r.Cmp(big.NewRat(-1, 2)) == 0:
			if em.g.Lang == GLSL {
				return em.appendCall(dst, "inversesqrt", base)
			}
			dst = em.g.appendFloat(dst, 1)
			dst = append(dst, '/')
			return em.appendCall(dst, em.g.fn("sqrt"), base)
		case r.Cmp(big.NewRat(-1, 1)) == 0:
			dst = em.g.appendFloat(dst, 1)
			dst = append(dst, '/')
			return em.appendOperand(dst, base, precAtom)
		}
	}
	dst = append(dst, em.g.fn("pow")...)
	dst = append(dst, '(')
	dst = em.appendExpr(dst, base)
	dst = append(dst, ", "...)
	dst = em.appendExpr(dst, p.ExpExpr())
	return append(dst, ')')
}

func (em *emitter) appendFunc(dst []byte, f *symbolic.Func) []byte {
	if f.FuncName() == "sign" && em.g.Lang == C {
		// C has no sign function.
		dst = append(dst, "(("...)
		dst = em.appendExpr(dst, f.Arg())
		dst = append(dst, ") > 0 ? "...)
		dst = em.g.appendFloat(dst, 1)
		dst = append(dst, " : (("...)
		dst = em.appendExpr(dst, f.Arg())
		dst = append(dst, ") < 0 ? "...)
		dst = em.g.appendFloat(dst, -1)
		dst = append(dst, " : "...)
		dst = em.g.appendFloat(dst, 0)
		return append(dst, "))"...)
	}
	return em.appendCall(dst, em.g.fn(f.FuncName()), f.Arg())
}

func (em *emitter) appendCall(dst []byte, name string, arg symbolic.Expr) []byte {
	dst = append(dst, name...)
	dst = append(dst, '(')
	dst = em.appendExpr(dst, arg)
	return append(dst, ')')
}
