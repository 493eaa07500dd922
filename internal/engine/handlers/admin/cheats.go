package admin

import (
	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/internal/systems"
	"dune-core/pkg/api"
	"fmt"
)

// HandleRevealAll снимает туман со всей активной области карты.
func HandleRevealAll(ctx handlers.Context) (handlers.Result, error) {
	w := ctx.World
	info := w.Scale.Info()

	revealed := 0
	for y := info.MinY; y < info.MinY+info.SizeY; y++ {
		for x := info.MinX; x < info.MinX+info.SizeX; x++ {
			p := domain.PackXY(x, y)
			wasRevealed := systems.IsUnveiled(w, p)
			if systems.Unveil(w, p, w.PrimaryFaction) && !wasRevealed {
				revealed++
			}
		}
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("👁️ Карта раскрыта (%d клеток)", revealed),
		MsgType: "INFO",
		Data:    revealed,
	}, nil
}

// HandleViewport сдвигает окно вьюпорта. Все клетки нового окна
// помечаются для перерисовки с нуля.
func HandleViewport(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	w := ctx.World
	origin := domain.PackXY(p.X, p.Y)

	w.Viewport.Origin = origin
	for dy := 0; dy < domain.ViewportHeight; dy++ {
		for dx := 0; dx < domain.ViewportWidth; dx++ {
			cell := origin.Offset(dx, dy)
			if cell == domain.InvalidPacked {
				continue
			}
			systems.Invalidate(w, cell, systems.ReasonDisplayed)
			systems.Invalidate(w, cell, systems.ReasonViewport)
		}
	}

	return handlers.Result{Data: w.Viewport}, nil
}
