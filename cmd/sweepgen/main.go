// Command sweepgen derives a built-in surface and prints it as GLSL or C.
//
// Usage:
//
//	sweepgen -preset torus -lang glsl -normals > torus.glsl
//	sweepgen -list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/njchilds90/gosweep"
	"github.com/njchilds90/gosweep/codegen"
	"github.com/njchilds90/gosweep/surfaces"
	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
	"gonum.org/v1/gonum/spatial/r3"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sweepgen: ")
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sweepgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	preset := fs.String("preset", "torus", "built-in surface to derive")
	lang := fs.String("lang", "glsl", "output language: glsl or c")
	normals := fs.Bool("normals", false, "also emit the normal field")
	effort := fs.String("effort", symbolic.EffortTrig.String(), "simplification effort: none, basic, trig or expand")
	timeout := fs.Duration("timeout", 30*time.Second, "give up simplifying after this long")
	f32 := fs.Bool("float32", false, "emit float instead of double for C and check the surface in float32")
	strict := fs.Bool("strict", false, "fail on sign ambiguities instead of warning")
	verbose := fs.Bool("v", false, "log every intermediate result")
	list := fs.Bool("list", false, "list built-in surfaces and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		for _, name := range surfaces.Names() {
			p, _ := surfaces.Lookup(name)
			fmt.Fprintf(stdout, "%-22s %s\n", name, p.Doc)
		}
		return nil
	}

	p, ok := surfaces.Lookup(*preset)
	if !ok {
		return fmt.Errorf("unknown preset %q (have %s)", *preset, strings.Join(surfaces.Names(), ", "))
	}
	l, ok := codegen.ParseLang(*lang)
	if !ok {
		return fmt.Errorf("unknown language %q", *lang)
	}
	e, ok := symbolic.ParseEffort(*effort)
	if !ok {
		return fmt.Errorf("unknown effort %q", *effort)
	}

	logger := log.New(stderr, "sweepgen: ", 0)
	cfg := gosweep.DefaultConfig()
	cfg.Simplifier.Effort = e
	cfg.Simplifier.Budget.Timeout = *timeout
	cfg.Strict = *strict
	cfg.Parallel = true
	cfg.Observer = gosweep.ObserverFunc(func(ev gosweep.Event) {
		if ev.Diagnostic != nil {
			logger.Printf("%s: %s", ev.Diagnostic.Level(), ev.Diagnostic)
		}
		if *verbose {
			logger.Printf("%s = %s", ev.Checkpoint, ev.Value)
		}
	})

	start := time.Now()
	res, err := p.Run(context.Background(), gosweep.New(cfg))
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	logger.Printf("derived %s in %v", p.Name, time.Since(start).Round(time.Millisecond))

	if *f32 {
		if err := check32(logger, res.Surface, p.Env); err != nil {
			return fmt.Errorf("%s: float32 check: %w", p.Name, err)
		}
	}

	g := codegen.Generator{Lang: l, Float32: *f32}
	name := identifier(p.Name)
	src := g.AppendSurface(nil, name, res.Surface)
	if *normals {
		src = append(src, '\n')
		src = g.AppendNormals(src, name+"Normal", res.Normals)
	}
	_, err = stdout.Write(src)
	return err
}

// sample is the (u, v) point at which -float32 output is checked.
var sample = [2]float64{0.5, 0.25}

// maxDeviation is the relative float32 error above which check32 warns.
const maxDeviation = 1e-3

// check32 evaluates s at sample in float32 and in float64 and logs how far
// apart the two are.
func check32(logger *log.Logger, s gosweep.Surface, env symbolic.Env) error {
	env32 := make(map[string]float32, len(env)+2)
	for k, x := range env {
		env32[k] = float32(x)
	}
	env32[s.U], env32[s.V] = float32(sample[0]), float32(sample[1])
	got, err := vec.Eval32(s.Pos, env32)
	if err != nil {
		return err
	}
	want, err := s.Eval(sample[0], sample[1], env)
	if err != nil {
		return err
	}
	p := r3.Vec{X: float64(got.X), Y: float64(got.Y), Z: float64(got.Z)}
	dev := r3.Norm(r3.Sub(p, want)) / max(1, r3.Norm(want))
	logger.Printf("float32 check at (%g, %g): %v, relative deviation %.2g", sample[0], sample[1], got, dev)
	if dev > maxDeviation {
		logger.Printf("warning: float32 result deviates from float64 %v", want)
	}
	return nil
}

// identifier turns a preset name such as "helix-tube" into helixTube.
func identifier(name string) string {
	parts := strings.Split(name, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
