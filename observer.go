package gosweep

import (
	"fmt"
	"log"
	"strings"

	"github.com/njchilds90/gosweep/vec"
)

// Checkpoint names an intermediate result reported to an Observer.
type Checkpoint int

const (
	CheckTangent Checkpoint = iota
	CheckNormal
	CheckBinormal
	CheckSurface
	CheckNormalField
)

func (c Checkpoint) String() string {
	switch c {
	case CheckTangent:
		return "tangent"
	case CheckNormal:
		return "normal"
	case CheckBinormal:
		return "binormal"
	case CheckSurface:
		return "surface"
	case CheckNormalField:
		return "normal field"
	}
	return fmt.Sprintf("Checkpoint(%d)", int(c))
}

// Diagnostic flags a result that normalization left with abs or sign terms.
// Symbols lists the parameters of unknown sign involved; declaring them
// symbolic.Positive removes those terms. Param is set when such terms remain
// over the curve parameter itself, where the sign genuinely varies along the
// curve: that is a note, never an error.
type Diagnostic struct {
	Checkpoint Checkpoint
	Symbols    []string
	Param      string
}

// Ambiguous reports whether any declared parameter has an unknown sign.
func (d *Diagnostic) Ambiguous() bool { return len(d.Symbols) > 0 }

// Level is "warning" for sign ambiguities and "note" otherwise.
func (d *Diagnostic) Level() string {
	if d.Ambiguous() {
		return "warning"
	}
	return "note"
}

func (d *Diagnostic) String() string {
	if !d.Ambiguous() {
		return fmt.Sprintf("%s: abs/sign over curve parameter %s kept; its sign varies along the curve",
			d.Checkpoint, d.Param)
	}
	return fmt.Sprintf("%s: sign of %s is unknown; declare positive to drop abs/sign terms",
		d.Checkpoint, strings.Join(d.Symbols, ", "))
}

type Event struct {
	Checkpoint Checkpoint
	Value      vec.Vector3
	Diagnostic *Diagnostic // nil when there is nothing to report
}

type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// LogObserver writes one line per checkpoint and one per diagnostic.
func LogObserver(l *log.Logger) Observer {
	return ObserverFunc(func(ev Event) {
		l.Printf("%s = %s", ev.Checkpoint, ev.Value)
		if ev.Diagnostic != nil {
			l.Printf("%s: %s", ev.Diagnostic.Level(), ev.Diagnostic)
		}
	})
}
