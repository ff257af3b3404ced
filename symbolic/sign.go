package symbolic

// signSet is the set of signs an expression can take over the reals.
type signSet uint8

const (
	signNeg signSet = 1 << iota
	signZero
	signPos

	signAny = signNeg | signZero | signPos
)

func signOfRat(s int) signSet {
	switch {
	case s < 0:
		return signNeg
	case s > 0:
		return signPos
	}
	return signZero
}

// ProvablyPositive reports whether e is known to be strictly positive from
// the domains of its symbols.
func ProvablyPositive(e Expr) bool { return e.node().sign == signPos }

// ProvablyNonnegative reports whether e is known to be >= 0.
func ProvablyNonnegative(e Expr) bool { return e.node().sign&signNeg == 0 }

// ProvablyNonzero reports whether e is known to be nonzero.
func ProvablyNonzero(e Expr) bool { return e.node().sign&signZero == 0 }

func isNonnegative(e Expr) bool { return ProvablyNonnegative(e) }
func isNonpositive(e Expr) bool { return e.node().sign&signPos == 0 }

func negateSign(s signSet) signSet {
	out := s & signZero
	if s&signNeg != 0 {
		out |= signPos
	}
	if s&signPos != 0 {
		out |= signNeg
	}
	return out
}

func sumSign(terms []Expr) signSet {
	allNonneg, allNonpos := true, true
	anyPos, anyNeg := false, false
	for _, t := range terms {
		s := t.node().sign
		if s&signNeg != 0 {
			allNonneg = false
		}
		if s&signPos != 0 {
			allNonpos = false
		}
		if s == signPos {
			anyPos = true
		}
		if s == signNeg {
			anyNeg = true
		}
	}
	switch {
	case allNonneg && anyPos:
		return signPos
	case allNonneg:
		return signPos | signZero
	case allNonpos && anyNeg:
		return signNeg
	case allNonpos:
		return signNeg | signZero
	}
	return signAny
}

func productSign(a, b signSet) signSet {
	var out signSet
	if a&signZero != 0 || b&signZero != 0 {
		out |= signZero
	}
	if (a&signPos != 0 && b&signPos != 0) || (a&signNeg != 0 && b&signNeg != 0) {
		out |= signPos
	}
	if (a&signPos != 0 && b&signNeg != 0) || (a&signNeg != 0 && b&signPos != 0) {
		out |= signNeg
	}
	return out
}

func mulSign(factors []Expr) signSet {
	s := signPos
	for _, f := range factors {
		s = productSign(s, f.node().sign)
	}
	return s
}

func powSign(base, exp Expr) signSet {
	b := base.node().sign
	en, ok := exp.(*Num)
	if !ok {
		if b == signPos {
			return signPos
		}
		return signAny
	}
	out := b
	switch {
	case en.IsInteger() && isEvenRat(en):
		out = 0
		if b&(signNeg|signPos) != 0 {
			out |= signPos
		}
		if b&signZero != 0 {
			out |= signZero
		}
	case en.IsInteger():
		// odd powers keep the sign of the base
	default:
		// principal real root; only defined for nonnegative bases
		out = b &^ signNeg
		if out == 0 || b&signNeg != 0 {
			out |= signPos | signZero
		}
	}
	if en.IsNegative() {
		out &^= signZero
		if out == 0 {
			out = signPos
		}
	}
	return out
}

func funcSign(name string, arg Expr) signSet {
	a := arg.node().sign
	switch name {
	case "abs":
		if a&signZero == 0 {
			return signPos
		}
		return signPos | signZero
	case "exp":
		return signPos
	case "sign":
		return a
	}
	return signAny
}
