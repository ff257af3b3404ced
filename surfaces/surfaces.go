// Package surfaces holds ready-made sweep configurations: the torus family,
// tubes around space curves, a Möbius band, a seashell spiral and a bicubic
// patch. Each is only a choice of inputs for the gosweep pipeline.
//
// Radius-like parameters are declared positive so normalization does not
// introduce abs and sign terms.
package surfaces

import (
	"context"
	"fmt"
	"sort"

	"github.com/njchilds90/gosweep"
	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
)

// Carrier and cross-section parameters used by every preset.
var (
	U = symbolic.S("u")
	V = symbolic.S("v")
)

// Preset is a named surface definition. Exactly one of Sweep and Surface is
// set: sweeps go through the whole pipeline, direct surfaces only through
// the normal field computation.
type Preset struct {
	Name    string
	Doc     string
	Sweep   *gosweep.Sweep
	Surface *gosweep.Surface
	// Env binds every symbol other than u and v to a sample value.
	Env symbolic.Env
}

// Run derives the preset's surface and normal field with e.
func (p Preset) Run(ctx context.Context, e *gosweep.Engine) (gosweep.Result, error) {
	if p.Sweep != nil {
		return e.Run(ctx, *p.Sweep)
	}
	if p.Surface == nil {
		return gosweep.Result{}, fmt.Errorf("surfaces: preset %q has nothing to build", p.Name)
	}
	n, err := e.SurfaceNormal(ctx, *p.Surface)
	if err != nil {
		return gosweep.Result{}, err
	}
	return gosweep.Result{Surface: *p.Surface, Normals: n}, nil
}

var registry = map[string]func() Preset{
	"torus": func() Preset {
		s := Torus(symbolic.Pos("R"), symbolic.Pos("r"))
		return Preset{Doc: "circle swept along a circle", Sweep: &s, Env: symbolic.Env{"R": 3, "r": 1}}
	},
	"ridged-torus": func() Preset {
		s := RidgedTorus(symbolic.Pos("R"), symbolic.Pos("r"), symbolic.S("h"), symbolic.S("f"))
		return Preset{Doc: "torus whose tube radius ripples along the carrier", Sweep: &s,
			Env: symbolic.Env{"R": 3, "r": 1, "h": 0.1, "f": 12}}
	},
	"superellipse-torus": func() Preset {
		s := SuperellipseTorus(symbolic.Pos("R"), symbolic.Pos("r"), 4)
		return Preset{Doc: "torus with a rounded-square cross-section", Sweep: &s, Env: symbolic.Env{"R": 3, "r": 1}}
	},
	"supplied-normal-torus": func() Preset {
		s := SuppliedNormalTorus(symbolic.Pos("R"), symbolic.Pos("r"))
		return Preset{Doc: "torus oriented by explicit radial normals", Sweep: &s, Env: symbolic.Env{"R": 3, "r": 1}}
	},
	"mobius": func() Preset {
		s := MobiusBand(symbolic.Pos("R"))
		return Preset{Doc: "segment turning half a revolution around a circle", Sweep: &s, Env: symbolic.Env{"R": 3}}
	},
	"helix-tube": func() Preset {
		s := HelixTube(symbolic.Pos("a"), symbolic.Pos("c"), symbolic.Pos("r"))
		return Preset{Doc: "tube around a circular helix", Sweep: &s, Env: symbolic.Env{"a": 2, "c": 0.5, "r": 0.3}}
	},
	"trefoil-tube": func() Preset {
		s := TrefoilTube(symbolic.Pos("r"))
		return Preset{Doc: "tube around a trefoil knot", Sweep: &s, Env: symbolic.Env{"r": 0.4}}
	},
	"seashell": func() Preset {
		s := Seashell(symbolic.Pos("alpha"))
		return Preset{Doc: "tapering spiral shell", Surface: &s, Env: symbolic.Env{"alpha": 0.5}}
	},
	"bicubic": func() Preset {
		s := BicubicPatch(BumpControlPoints(symbolic.S("h")))
		return Preset{Doc: "Bernstein patch with a raised center", Surface: &s, Env: symbolic.Env{"h": 0.5}}
	},
}

// Names lists the registered presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the named preset.
func Lookup(name string) (Preset, bool) {
	build, ok := registry[name]
	if !ok {
		return Preset{}, false
	}
	p := build()
	p.Name = name
	return p, true
}

func circle(R symbolic.Expr) gosweep.Curve {
	return gosweep.NewCurve("u", symbolic.MulOf(R, symbolic.CosOf(U)), symbolic.MulOf(R, symbolic.SinOf(U)), symbolic.N(0))
}

// ring is a circle of radius r in the normal-binormal plane.
func ring(r symbolic.Expr) gosweep.Curve {
	return gosweep.NewCurve("v", symbolic.N(0),
		symbolic.NegOf(symbolic.MulOf(r, symbolic.CosOf(V))),
		symbolic.MulOf(r, symbolic.SinOf(V)))
}

// Torus sweeps a circle of radius r along a circle of radius R.
func Torus(R, r symbolic.Expr) gosweep.Sweep {
	return gosweep.Derived(circle(R), ring(r))
}

// RidgedTorus is a torus whose tube radius is r + h*sin(f*u), giving f
// meridian ridges of height h.
func RidgedTorus(R, r, h, f symbolic.Expr) gosweep.Sweep {
	radius := symbolic.AddOf(r, symbolic.MulOf(h, symbolic.SinOf(symbolic.MulOf(f, U))))
	return gosweep.Derived(circle(R), ring(radius))
}

// SuperellipseTorus sweeps the superellipse |y|^p + |z|^p = r^p; p = 2 is
// the ordinary torus and larger p approaches a square section.
func SuperellipseTorus(R, r symbolic.Expr, p int64) gosweep.Sweep {
	exp := symbolic.F(2, p)
	signedPow := func(x symbolic.Expr) symbolic.Expr {
		return symbolic.MulOf(symbolic.SignOf(x), symbolic.PowOf(symbolic.AbsOf(x), exp))
	}
	section := gosweep.NewCurve("v", symbolic.N(0),
		symbolic.NegOf(symbolic.MulOf(r, signedPow(symbolic.CosOf(V)))),
		symbolic.MulOf(r, signedPow(symbolic.SinOf(V))))
	return gosweep.Derived(circle(R), section)
}

// SuppliedNormalTorus builds the torus from explicit outward normals
// (cos u, sin u, 0) instead of the Frenet normal.
func SuppliedNormalTorus(R, r symbolic.Expr) gosweep.Sweep {
	normals := vec.New(symbolic.CosOf(U), symbolic.SinOf(U), symbolic.N(0))
	section := gosweep.NewCurve("v", symbolic.N(0),
		symbolic.MulOf(r, symbolic.CosOf(V)),
		symbolic.NegOf(symbolic.MulOf(r, symbolic.SinOf(V))))
	return gosweep.Supplied(circle(R), normals, section)
}

// MobiusBand sweeps the segment v along normals that turn by u/2 about the
// tangent, so one trip around the circle flips the band.
func MobiusBand(R symbolic.Expr) gosweep.Sweep {
	half := symbolic.MulOf(symbolic.F(1, 2), U)
	normals := vec.New(
		symbolic.MulOf(symbolic.CosOf(half), symbolic.CosOf(U)),
		symbolic.MulOf(symbolic.CosOf(half), symbolic.SinOf(U)),
		symbolic.SinOf(half),
	)
	section := gosweep.NewCurve("v", symbolic.N(0), V, symbolic.N(0))
	return gosweep.Supplied(circle(R), normals, section)
}

// HelixTube sweeps a circle of radius r along the helix of radius a that
// rises 2πc per turn.
func HelixTube(a, c, r symbolic.Expr) gosweep.Sweep {
	helix := gosweep.NewCurve("u",
		symbolic.MulOf(a, symbolic.CosOf(U)),
		symbolic.MulOf(a, symbolic.SinOf(U)),
		symbolic.MulOf(c, U))
	return gosweep.Derived(helix, ring(r))
}

// TrefoilTube sweeps a circle of radius r along the trefoil knot
// (sin u + 2 sin 2u, cos u - 2 cos 2u, -sin 3u).
func TrefoilTube(r symbolic.Expr) gosweep.Sweep {
	two, three := symbolic.N(2), symbolic.N(3)
	knot := gosweep.NewCurve("u",
		symbolic.AddOf(symbolic.SinOf(U), symbolic.MulOf(two, symbolic.SinOf(symbolic.MulOf(two, U)))),
		symbolic.MinusOf(symbolic.CosOf(U), symbolic.MulOf(two, symbolic.CosOf(symbolic.MulOf(two, U)))),
		symbolic.NegOf(symbolic.SinOf(symbolic.MulOf(three, U))))
	return gosweep.Derived(knot, ring(r))
}

// Seashell is a tapering tube wound twice around the z axis:
//
//	w = alpha*(1 - v/2π)
//	f = (w cos 2v (1 + cos u) + cos 2v / 10,
//	     w sin 2v (1 + cos u) + sin 2v / 10,
//	     w sin u + v/2π)
func Seashell(alpha symbolic.Expr) gosweep.Surface {
	invTwoPi := symbolic.MulOf(symbolic.F(1, 2), symbolic.PowOf(symbolic.Pi(), symbolic.N(-1)))
	turns := symbolic.MulOf(V, invTwoPi)
	w := symbolic.MulOf(alpha, symbolic.MinusOf(symbolic.N(1), turns))
	swell := symbolic.AddOf(symbolic.N(1), symbolic.CosOf(U))
	c2, s2 := symbolic.CosOf(symbolic.MulOf(symbolic.N(2), V)), symbolic.SinOf(symbolic.MulOf(symbolic.N(2), V))
	tenth := symbolic.F(1, 10)
	return gosweep.Surface{U: "u", V: "v", Pos: vec.New(
		symbolic.AddOf(symbolic.MulOf(w, c2, swell), symbolic.MulOf(tenth, c2)),
		symbolic.AddOf(symbolic.MulOf(w, s2, swell), symbolic.MulOf(tenth, s2)),
		symbolic.AddOf(symbolic.MulOf(w, symbolic.SinOf(U)), turns),
	)}
}

// bernstein returns the cubic Bernstein basis in t.
func bernstein(t symbolic.Expr) [4]symbolic.Expr {
	s := symbolic.MinusOf(symbolic.N(1), t)
	three := symbolic.N(3)
	return [4]symbolic.Expr{
		symbolic.PowOf(s, three),
		symbolic.MulOf(three, t, symbolic.PowOf(s, symbolic.N(2))),
		symbolic.MulOf(three, symbolic.PowOf(t, symbolic.N(2)), s),
		symbolic.PowOf(t, three),
	}
}

// BicubicPatch blends sixteen control points with the cubic Bernstein basis
// over (u, v) in [0, 1]². ctrl[i][j] weighs B_i(u) B_j(v).
func BicubicPatch(ctrl [4][4]vec.Vector3) gosweep.Surface {
	bu, bv := bernstein(U), bernstein(V)
	var sum [3][]symbolic.Expr
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			w := symbolic.MulOf(bu[i], bv[j])
			for k := 0; k < 3; k++ {
				sum[k] = append(sum[k], symbolic.MulOf(w, ctrl[i][j][k]))
			}
		}
	}
	return gosweep.Surface{U: "u", V: "v", Pos: vec.New(
		symbolic.AddOf(sum[0]...), symbolic.AddOf(sum[1]...), symbolic.AddOf(sum[2]...))}
}

// BumpControlPoints is a unit grid in the xy-plane whose four inner points
// are raised to height h.
func BumpControlPoints(h symbolic.Expr) [4][4]vec.Vector3 {
	var ctrl [4][4]vec.Vector3
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			z := symbolic.Expr(symbolic.N(0))
			if i > 0 && i < 3 && j > 0 && j < 3 {
				z = h
			}
			ctrl[i][j] = vec.New(symbolic.F(int64(i), 3), symbolic.F(int64(j), 3), z)
		}
	}
	return ctrl
}
