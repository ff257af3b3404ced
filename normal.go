package gosweep

import (
	"context"
	"fmt"

	"github.com/njchilds90/gosweep/symbolic"
	"github.com/njchilds90/gosweep/vec"
)

// Partials returns ∂f/∂u and ∂f/∂v, the columns of the Jacobian of f.
func Partials(f Surface) (du, dv vec.Vector3) {
	j := symbolic.Jacobian(f.Pos[:], []string{f.U, f.V})
	return vec.FromColumn(j, 0), vec.FromColumn(j, 1)
}

// SurfaceNormal computes ∂f/∂u × ∂f/∂v. The result is simplified only when
// StageNormal is enabled and is never normalized.
func (e *Engine) SurfaceNormal(ctx context.Context, f Surface) (NormalField, error) {
	du, dv := Partials(f)
	n, err := e.simplify(ctx, StageNormal, vec.Cross(du, dv))
	if err != nil {
		return NormalField{}, fmt.Errorf("gosweep: normal field: %w", err)
	}
	e.observe(CheckNormalField, n, nil)
	return NormalField{U: f.U, V: f.V, Dir: n}, nil
}

// SurfaceNormal computes the normal field of f with the default engine.
func SurfaceNormal(ctx context.Context, f Surface) (NormalField, error) {
	return defaultEngine.SurfaceNormal(ctx, f)
}
