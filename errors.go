package gosweep

import "errors"

var (
	// ErrDegenerateFrame is returned when a frame vector is provably zero,
	// e.g. the normal of a straight carrier. The underlying error is
	// vec.ErrZeroVector.
	ErrDegenerateFrame = errors.New("gosweep: degenerate frame")

	// ErrSignAmbiguity is returned in strict mode when normalization leaves
	// abs or sign terms over symbols of unknown sign.
	ErrSignAmbiguity = errors.New("gosweep: sign ambiguity")

	// ErrParameterClash is returned when the carrier and the cross-section
	// use the same parameter name.
	ErrParameterClash = errors.New("gosweep: carrier and cross-section share a parameter")
)
