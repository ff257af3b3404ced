// Package vec is vector algebra over symbolic expressions: the 3-vectors
// that carry curve positions, frame vectors and surface normals.
package vec

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/njchilds90/gosweep/symbolic"
	"github.com/soypat/glgl/math/ms3"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrZeroVector is returned by Normalize for a vector whose length is
// provably zero.
var ErrZeroVector = errors.New("vec: zero vector")

// Vector3 holds three symbolic components. Values are never mutated by the
// functions in this package.
type Vector3 [3]symbolic.Expr

func New(x, y, z symbolic.Expr) Vector3 { return Vector3{x, y, z} }

// Zero is the zero vector.
func Zero() Vector3 {
	z := symbolic.N(0)
	return Vector3{z, z, z}
}

// IsZero reports whether every component is the number 0.
func (a Vector3) IsZero() bool {
	return symbolic.IsZero(a[0]) && symbolic.IsZero(a[1]) && symbolic.IsZero(a[2])
}

func (a Vector3) String() string {
	return "(" + a[0].String() + ", " + a[1].String() + ", " + a[2].String() + ")"
}

// LaTeX renders a as a column vector.
func (a Vector3) LaTeX() string {
	parts := make([]string, 3)
	for i, c := range a {
		parts[i] = c.LaTeX()
	}
	return "\\begin{pmatrix}" + strings.Join(parts, " \\\\ ") + "\\end{pmatrix}"
}

// Equal compares componentwise; expressions are canonical, so this is
// structural equality.
func Equal(a, b Vector3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

func Add(a, b Vector3) Vector3 {
	return Vector3{symbolic.AddOf(a[0], b[0]), symbolic.AddOf(a[1], b[1]), symbolic.AddOf(a[2], b[2])}
}

func Sub(a, b Vector3) Vector3 {
	return Vector3{symbolic.MinusOf(a[0], b[0]), symbolic.MinusOf(a[1], b[1]), symbolic.MinusOf(a[2], b[2])}
}

func Scale(a Vector3, k symbolic.Expr) Vector3 {
	return Vector3{symbolic.MulOf(k, a[0]), symbolic.MulOf(k, a[1]), symbolic.MulOf(k, a[2])}
}

func Neg(a Vector3) Vector3 { return Scale(a, symbolic.N(-1)) }

func Dot(a, b Vector3) symbolic.Expr {
	return symbolic.AddOf(symbolic.MulOf(a[0], b[0]), symbolic.MulOf(a[1], b[1]), symbolic.MulOf(a[2], b[2]))
}

// Cross is the right-handed cross product a × b.
func Cross(a, b Vector3) Vector3 {
	return Vector3{
		symbolic.MinusOf(symbolic.MulOf(a[1], b[2]), symbolic.MulOf(a[2], b[1])),
		symbolic.MinusOf(symbolic.MulOf(a[2], b[0]), symbolic.MulOf(a[0], b[2])),
		symbolic.MinusOf(symbolic.MulOf(a[0], b[1]), symbolic.MulOf(a[1], b[0])),
	}
}

// Norm is sqrt(a·a), left unsimplified.
func Norm(a Vector3) symbolic.Expr { return symbolic.SqrtOf(Dot(a, a)) }

// Diff differentiates each component with respect to name.
func Diff(a Vector3, name string) Vector3 {
	return Vector3{symbolic.Diff(a[0], name), symbolic.Diff(a[1], name), symbolic.Diff(a[2], name)}
}

// Subst replaces the symbol name by value in each component.
func Subst(a Vector3, name string, value symbolic.Expr) Vector3 {
	return Vector3{a[0].Sub(name, value), a[1].Sub(name, value), a[2].Sub(name, value)}
}

// Column returns a as a 3×1 matrix.
func (a Vector3) Column() *symbolic.Matrix {
	return symbolic.MatrixFromColumns(a[:])
}

// FromColumn reads column j of a matrix with three rows.
func FromColumn(m *symbolic.Matrix, j int) Vector3 {
	if m.Rows() != 3 {
		panic(fmt.Sprintf("vec: matrix has %d rows, want 3", m.Rows()))
	}
	c := m.Column(j)
	return Vector3{c[0], c[1], c[2]}
}

// Simplify simplifies each component with s. With parallel set the three
// components are simplified concurrently and the first error cancels the
// others.
func Simplify(ctx context.Context, a Vector3, s symbolic.Simplifier, parallel bool) (Vector3, error) {
	var out Vector3
	if !parallel {
		for i, c := range a {
			r, err := s.Simplify(ctx, c)
			if err != nil {
				return Vector3{}, err
			}
			out[i] = r
		}
		return out, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for i := range a {
		i := i
		g.Go(func() error {
			r, err := s.Simplify(ctx, a[i])
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Vector3{}, err
	}
	return out, nil
}

// Normalize returns a / |a|. When s is non-nil the norm is simplified before
// dividing and the quotient afterwards.
//
// Components are real, so the norm of a vector scaled by a symbol k carries
// |k| unless k is declared positive; the quotient then contains k*|k|^-1
// rather than 1.
func Normalize(ctx context.Context, a Vector3, s *symbolic.Simplifier) (Vector3, error) {
	if a.IsZero() {
		return Vector3{}, ErrZeroVector
	}
	norm := Norm(a)
	if s != nil {
		var err error
		if norm, err = s.Simplify(ctx, norm); err != nil {
			return Vector3{}, err
		}
	}
	if symbolic.IsZero(norm) {
		return Vector3{}, ErrZeroVector
	}
	q := Scale(a, symbolic.PowOf(norm, symbolic.N(-1)))
	if s == nil {
		return q, nil
	}
	return Simplify(ctx, q, *s, false)
}

// Eval evaluates a at the bindings in env.
func Eval(a Vector3, env symbolic.Env) (r3.Vec, error) {
	var f [3]float64
	for i, c := range a {
		v, err := symbolic.Evaluate(c, env)
		if err != nil {
			return r3.Vec{}, err
		}
		f[i] = v
	}
	return r3.Vec{X: f[0], Y: f[1], Z: f[2]}, nil
}

// Eval32 evaluates a in float32.
func Eval32(a Vector3, env map[string]float32) (ms3.Vec, error) {
	var f [3]float32
	for i, c := range a {
		v, err := symbolic.Evaluate32(c, env)
		if err != nil {
			return ms3.Vec{}, err
		}
		f[i] = v
	}
	return ms3.Vec{X: f[0], Y: f[1], Z: f[2]}, nil
}
