package symbolic

// ============================================================
// Sym: symbolic parameter
// ============================================================

// Domain constrains the real values a symbol may take. Declaring radius-like
// parameters Positive keeps abs and sign terms out of normalized vectors.
type Domain uint8

const (
	Real Domain = iota
	Nonnegative
	Positive
)

func (d Domain) String() string {
	switch d {
	case Nonnegative:
		return "nonnegative"
	case Positive:
		return "positive"
	}
	return "real"
}

// ParseDomain is the inverse of Domain.String.
func ParseDomain(s string) (Domain, bool) {
	switch s {
	case "", "real":
		return Real, true
	case "nonnegative":
		return Nonnegative, true
	case "positive":
		return Positive, true
	}
	return Real, false
}

type Sym struct {
	header
	name   string
	domain Domain
}

// S returns a real-valued symbol.
func S(name string) *Sym { return Symbol(name, Real) }

// Pos returns a symbol declared strictly positive.
func Pos(name string) *Sym { return Symbol(name, Positive) }

// Symbol returns the symbol name constrained to d. Symbols with the same name
// but different domains are distinct expressions; derivatives and
// substitution match by name only.
func Symbol(name string, d Domain) *Sym {
	if name == "" {
		panic("symbolic: empty symbol name")
	}
	s := &Sym{name: name, domain: d}
	var sign signSet
	switch d {
	case Positive:
		sign = signPos
	case Nonnegative:
		sign = signPos | signZero
	default:
		sign = signAny
	}
	return intern(s, hashOf(kindSym, name+"\x00"+d.String()), sign).(*Sym)
}

func (s *Sym) String() string        { return s.name }
func (s *Sym) LaTeX() string         { return s.name }
func (s *Sym) Eval() (*Num, bool)    { return nil, false }
func (s *Sym) Equal(other Expr) bool { return Expr(s) == other }
func (s *Sym) exprType() string      { return "sym" }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) Domain() Domain        { return s.domain }
func (s *Sym) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "sym", "name": s.name}
	if s.domain != Real {
		m["domain"] = s.domain.String()
	}
	return m
}
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}
func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return one
	}
	return zero
}
