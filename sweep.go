package gosweep

import (
	"context"
	"fmt"

	"github.com/njchilds90/gosweep/vec"
)

// FrameMode tells how a Sweep orients its cross-section.
type FrameMode int

const (
	// FrameDerived builds the frame from the carrier's derivatives.
	FrameDerived FrameMode = iota
	// FrameSupplied uses caller-supplied normals along the carrier.
	FrameSupplied
)

func (m FrameMode) String() string {
	if m == FrameSupplied {
		return "supplied"
	}
	return "derived"
}

// Sweep describes one sweep surface. Build it with Derived or Supplied.
type Sweep struct {
	Mode    FrameMode
	Carrier Curve
	Normals vec.Vector3 // FrameSupplied only; a function of Carrier.Param
	Section Curve
}

func Derived(carrier, section Curve) Sweep {
	return Sweep{Mode: FrameDerived, Carrier: carrier, Section: section}
}

func Supplied(carrier Curve, normals vec.Vector3, section Curve) Sweep {
	return Sweep{Mode: FrameSupplied, Carrier: carrier, Normals: normals, Section: section}
}

// Sweep computes surface(u, v) = C(u) + [T N B](u) · section(v). The
// section's components are coordinates along T, N and B.
func (e *Engine) Sweep(ctx context.Context, sw Sweep) (Surface, error) {
	_, s, err := e.sweep(ctx, sw)
	return s, err
}

func (e *Engine) sweep(ctx context.Context, sw Sweep) (Frame, Surface, error) {
	if sw.Carrier.Param == sw.Section.Param {
		return Frame{}, Surface{}, fmt.Errorf("%w: %q", ErrParameterClash, sw.Carrier.Param)
	}
	var (
		frame Frame
		err   error
	)
	switch sw.Mode {
	case FrameDerived:
		frame, err = e.Frame(ctx, sw.Carrier)
	case FrameSupplied:
		frame, err = e.FrameFromNormals(ctx, sw.Carrier, sw.Normals)
	default:
		return Frame{}, Surface{}, fmt.Errorf("gosweep: unknown frame mode %d", int(sw.Mode))
	}
	if err != nil {
		return Frame{}, Surface{}, err
	}
	local := frame.Basis().MatMul(sw.Section.Pos.Column())
	pos := vec.Add(sw.Carrier.Pos, vec.FromColumn(local, 0))
	if pos, err = e.simplify(ctx, StageSurface, pos); err != nil {
		return Frame{}, Surface{}, fmt.Errorf("gosweep: surface: %w", err)
	}
	e.observe(CheckSurface, pos, nil)
	return frame, Surface{U: sw.Carrier.Param, V: sw.Section.Param, Pos: pos}, nil
}

// SweepCurve sweeps section along carrier with the derived frame and the
// default engine.
func SweepCurve(ctx context.Context, carrier, section Curve) (Surface, error) {
	return defaultEngine.Sweep(ctx, Derived(carrier, section))
}

// SweepWithNormals sweeps section along carrier oriented by normals, using
// the default engine.
func SweepWithNormals(ctx context.Context, carrier Curve, normals vec.Vector3, section Curve) (Surface, error) {
	return defaultEngine.Sweep(ctx, Supplied(carrier, normals, section))
}
