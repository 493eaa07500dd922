package actions

import (
	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/internal/systems"
	"dune-core/pkg/api"
	"fmt"
)

// HandleUnveil раскрывает клетку (или круг) для основной фракции.
func HandleUnveil(ctx handlers.Context, p api.UnveilPayload) (handlers.Result, error) {
	w := ctx.World
	pos := domain.PackXY(p.X, p.Y)

	if p.Radius > 0 {
		n := systems.RevealRadius(w, pos, p.Radius, w.PrimaryFaction)
		return handlers.Result{
			Msg:     fmt.Sprintf("Раскрыто клеток: %d.", n),
			MsgType: "INFO",
			Data:    n,
		}, nil
	}

	if !systems.Unveil(w, pos, w.PrimaryFaction) {
		return handlers.Result{Msg: "Клетка уже раскрыта.", MsgType: "INFO", Data: 0}, nil
	}
	return handlers.Result{Data: 1}, nil
}
