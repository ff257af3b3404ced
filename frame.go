package gosweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
)

// Frame is an orthonormal moving frame along a carrier curve.
type Frame struct {
	Param   string
	T, N, B vec.Vector3
}

// Basis returns the 3×3 matrix with columns T, N and B.
func (f Frame) Basis() *symbolic.Matrix {
	return symbolic.MatrixFromColumns(f.T[:], f.N[:], f.B[:])
}

// Frame builds the Frenet-style frame of c by Gram-Schmidt on the first two
// derivatives:
//
//	t = d/|d|,  n = r/|r| with r = dd - t(dd·t),  b = (t×n)/|t×n|
//
// The parameterization need not be by arc length. A carrier whose curvature
// vanishes identically fails with ErrDegenerateFrame; one whose curvature
// vanishes only at isolated points yields formulas undefined there.
func (e *Engine) Frame(ctx context.Context, c Curve) (Frame, error) {
	d := c.Derivative()
	dd := vec.Diff(d, c.Param)
	s := e.simplifier(StageFrame)

	t, err := e.unit(ctx, CheckTangent, c.Param, d, s)
	if err != nil {
		return Frame{}, err
	}
	residual := vec.Sub(dd, vec.Scale(t, vec.Dot(dd, t)))
	n, err := e.unit(ctx, CheckNormal, c.Param, residual, s)
	if err != nil {
		return Frame{}, err
	}
	b, err := e.unit(ctx, CheckBinormal, c.Param, vec.Cross(t, n), s)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Param: c.Param, T: t, N: n, B: b}, nil
}

// FrameFromNormals builds a frame from caller-supplied normals instead of
// the second derivative: t = C'/|C'|, n = normals as given, b = (t×n)/|t×n|.
// The normals are expected to be unit length and perpendicular to C'.
func (e *Engine) FrameFromNormals(ctx context.Context, c Curve, normals vec.Vector3) (Frame, error) {
	s := e.simplifier(StageFrame)
	t, err := e.unit(ctx, CheckTangent, c.Param, c.Derivative(), s)
	if err != nil {
		return Frame{}, err
	}
	e.observe(CheckNormal, normals, nil)
	b, err := e.unit(ctx, CheckBinormal, c.Param, vec.Cross(t, normals), s)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Param: c.Param, T: t, N: normals, B: b}, nil
}

// unit normalizes v, then reports it and any sign trouble normalization
// introduced. Only parameters other than the curve parameter param count as
// ambiguous.
func (e *Engine) unit(ctx context.Context, cp Checkpoint, param string, v vec.Vector3, s *symbolic.Simplifier) (vec.Vector3, error) {
	u, err := vec.Normalize(ctx, v, s)
	if err != nil {
		if errors.Is(err, vec.ErrZeroVector) {
			return vec.Vector3{}, fmt.Errorf("%w: %s: %w", ErrDegenerateFrame, cp, err)
		}
		return vec.Vector3{}, fmt.Errorf("gosweep: %s: %w", cp, err)
	}
	var diag *Diagnostic
	syms, onParam := introducedSigns(v, u, param)
	if len(syms) > 0 || onParam {
		diag = &Diagnostic{Checkpoint: cp, Symbols: syms}
		if onParam {
			diag.Param = param
		}
		if diag.Ambiguous() && e.cfg.Strict {
			return vec.Vector3{}, fmt.Errorf("%w: %s", ErrSignAmbiguity, diag)
		}
	}
	e.observe(cp, u, diag)
	return u, nil
}
