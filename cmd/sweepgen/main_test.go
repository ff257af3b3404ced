package main

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/njchilds90/gosweep"
	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
)

func TestRun_TorusGLSL(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"-preset", "torus", "-normals"}, &out, &errOut); err != nil {
		t.Fatal(err)
	}
	src := out.String()
	for _, want := range []string{"vec3 torus(float u, float v, float R, float r) {", "vec3 torusNormal("} {
		if !strings.Contains(src, want) {
			t.Errorf("want %q in\n%s", want, src)
		}
	}
	if !strings.Contains(errOut.String(), "derived torus") {
		t.Errorf("missing timing log: %q", errOut.String())
	}
}

func TestRun_C(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"-preset", "mobius", "-lang", "c", "-float32", "-effort", "none"}, &out, &errOut); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "void mobius(float u, float v, float R, float out[3]) {") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRun_Float32Check(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"-preset", "torus", "-lang", "c", "-float32"}, &out, &errOut); err != nil {
		t.Fatal(err)
	}
	logged := errOut.String()
	if !strings.Contains(logged, "float32 check at (0.5, 0.25)") {
		t.Errorf("missing float32 check in log:\n%s", logged)
	}
	if strings.Contains(logged, "deviates") {
		t.Errorf("unexpected float32 deviation:\n%s", logged)
	}
}

func TestRun_NoFloat32CheckByDefault(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"-preset", "torus", "-lang", "c"}, &out, &errOut); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(errOut.String(), "float32 check") {
		t.Errorf("unexpected float32 check:\n%s", errOut.String())
	}
}

func TestCheck32_Unbound(t *testing.T) {
	var errOut bytes.Buffer
	s := gosweep.Surface{U: "u", V: "v", Pos: vec.New(symbolic.S("u"), symbolic.S("v"), symbolic.S("w"))}
	err := check32(log.New(&errOut, "", 0), s, symbolic.Env{})
	if !errors.Is(err, symbolic.ErrUnbound) {
		t.Errorf("want ErrUnbound, got %v", err)
	}
}

func TestRun_List(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"-list"}, &out, &errOut); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "trefoil-tube") {
		t.Errorf("missing preset in list:\n%s", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"-preset", "teapot"},
		{"-lang", "hlsl"},
		{"-effort", "maximal"},
		{"-nonsense"},
	} {
		var out, errOut bytes.Buffer
		if err := run(args, &out, &errOut); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestIdentifier(t *testing.T) {
	for in, want := range map[string]string{
		"torus":                 "torus",
		"helix-tube":            "helixTube",
		"supplied-normal-torus": "suppliedNormalTorus",
	} {
		if got := identifier(in); got != want {
			t.Errorf("identifier(%q) = %q, want %q", in, got, want)
		}
	}
}
