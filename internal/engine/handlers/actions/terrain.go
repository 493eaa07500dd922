package actions

import (
	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/internal/systems"
	"dune-core/pkg/api"
)

func rejected(msg string) handlers.Result {
	return handlers.Result{Msg: msg, MsgType: "ERROR", Data: false}
}

func applied() handlers.Result {
	return handlers.Result{Data: true}
}

// HandleSpice растит или уменьшает пряность в клетке.
func HandleSpice(ctx handlers.Context, p api.SpicePayload) (handlers.Result, error) {
	dir := systems.SpiceShrink
	if p.Grow {
		dir = systems.SpiceGrow
	}
	if !systems.MutateSpice(ctx.World, domain.PackXY(p.X, p.Y), dir) {
		return rejected("Пряность здесь не меняется."), nil
	}
	return applied(), nil
}

// HandleWall ставит стену через разделяемый синглтон или разрушает её.
func HandleWall(ctx handlers.Context, p api.WallPayload) (handlers.Result, error) {
	w := ctx.World
	pos := domain.PackXY(p.X, p.Y)

	if p.Destroy {
		if !systems.DestroyWall(w, pos) {
			return rejected("Здесь нет стены."), nil
		}
		return applied(), nil
	}

	if !systems.Place(w, w.Arena.SharedHandle(domain.SharedWall), pos) {
		return rejected("Стену здесь не поставить."), nil
	}
	return applied(), nil
}

// HandleConcrete кладёт плиту 1x1 или 2x2 от имени владельца.
func HandleConcrete(ctx handlers.Context, p api.ConcretePayload) (handlers.Result, error) {
	w := ctx.World

	kind := domain.SharedSlab1x1
	if p.Size == 2 {
		kind = domain.SharedSlab2x2
	}
	h := w.Arena.SharedHandle(kind)
	w.Arena.Get(h).Faction = domain.Faction(p.Owner)

	if !systems.Place(w, h, domain.PackXY(p.X, p.Y)) {
		return rejected("Бетон здесь не положить."), nil
	}
	return applied(), nil
}

// HandleBloom сажает цветение пряности или взрывает его.
func HandleBloom(ctx handlers.Context, p api.BloomPayload) (handlers.Result, error) {
	pos := domain.PackXY(p.X, p.Y)

	if p.Explode {
		if !systems.ExplodeBloom(ctx.World, pos, ctx.Rng) {
			return rejected("Здесь нет цветения."), nil
		}
		return applied(), nil
	}

	if !systems.PlantBloom(ctx.World, pos) {
		return rejected("Цветение растёт только на песке."), nil
	}
	return applied(), nil
}
