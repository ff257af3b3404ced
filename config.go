package gosweep

import "github.com/njchilds90/gosweep/symbolic"

// Stage selects which pipeline results are simplified.
type Stage uint8

const (
	StageFrame   Stage = 1 << iota // tangent, normal and binormal
	StageSurface                   // the assembled sweep surface
	StageNormal                    // the surface normal field

	StageNone Stage = 0
	StageAll        = StageFrame | StageSurface | StageNormal
)

// Config controls an Engine.
type Config struct {
	// Stages lists the stages whose results are simplified. Frame vectors
	// are always divided by their norm; without StageFrame neither the norm
	// nor the quotient is simplified.
	Stages Stage

	// Simplifier is used for every enabled stage.
	Simplifier symbolic.Simplifier

	// Strict turns sign diagnostics into ErrSignAmbiguity.
	Strict bool

	// Parallel simplifies the three components of a vector concurrently.
	Parallel bool

	// Observer, if non-nil, receives every intermediate result.
	Observer Observer
}

func DefaultConfig() Config {
	return Config{
		Stages:     StageAll,
		Simplifier: symbolic.DefaultSimplifier(),
	}
}
