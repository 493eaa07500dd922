package actions

import (
	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/internal/systems"
	"dune-core/pkg/api"
)

// HandleEvaluate отвечает, может ли юнит войти в клетку. Мир не меняется.
func HandleEvaluate(ctx handlers.Context, p api.EvaluatePayload) (handlers.Result, error) {
	e := ctx.World.Arena.Lookup(domain.Handle(p.Handle))
	if e == nil || e.Kind != domain.KindUnit {
		return rejected("Нет такого юнита."), nil
	}

	aff := systems.Evaluate(
		ctx.World,
		systems.MoverOf(e),
		domain.PackXY(p.X, p.Y),
		domain.Orientation8(p.Orientation),
	)
	return handlers.Result{Data: aff}, nil
}
