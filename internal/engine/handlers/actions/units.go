package actions

import (
	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/internal/systems"
	"dune-core/pkg/api"
	"fmt"
)

// SpawnResult - ответ на SPAWN.
type SpawnResult struct {
	Handle domain.Handle `json:"handle"`
	Ref    domain.Ref    `json:"ref"`
}

// HandleSpawn выделяет слот в арене и ставит сущность на карту.
// Если клетка не подходит, слот сразу возвращается.
func HandleSpawn(ctx handlers.Context, p api.SpawnPayload) (handlers.Result, error) {
	w := ctx.World

	// 1. Параметры
	spec := domain.EntitySpec{
		Kind:        domain.KindUnit,
		Type:        p.Type,
		Faction:     domain.Faction(p.Faction),
		Footprint:   p.Footprint,
		Infiltrator: p.Infiltrator,
		Policy: domain.EntryPolicy{
			Conquerable: p.Conquerable,
			EnterFilter: p.EnterFilter,
		},
	}
	if p.Kind == "structure" {
		spec.Kind = domain.KindStructure
		if spec.Footprint == 0 {
			spec.Footprint = 1
		}
	}
	if p.Movement != "" {
		m, ok := domain.ParseMovementType(p.Movement)
		if !ok {
			return handlers.Result{}, fmt.Errorf("unknown movement type %q", p.Movement)
		}
		spec.Movement = m
	}

	// 2. Слот
	h := w.Arena.Allocate(spec)
	if h == domain.NoHandle {
		return rejected("Арена заполнена."), nil
	}

	// 3. Размещение
	if !systems.Place(w, h, domain.PackXY(p.X, p.Y)) {
		w.Arena.Free(h)
		return rejected("Клетка занята или не подходит."), nil
	}

	e := w.Arena.Get(h)
	return handlers.Result{
		Msg:     fmt.Sprintf("Создан %s.", e),
		MsgType: "WORLD",
		Data:    SpawnResult{Handle: h, Ref: e.Ref()},
	}, nil
}

// HandleRemove снимает сущность с карты и освобождает слот.
func HandleRemove(ctx handlers.Context, p api.RemovePayload) (handlers.Result, error) {
	w := ctx.World
	h := domain.Handle(p.Handle)

	e := w.Arena.Lookup(h)
	if e == nil || e.IsShared() {
		return rejected("Нет такой сущности."), nil
	}
	if !systems.Release(w, h) {
		return rejected("Сущность не освобождена."), nil
	}
	return applied(), nil
}

// HandleLink задаёт цель юнита, резерв и занятый слот постройки.
// Ссылки на несуществующие сущности отклоняются целиком.
func HandleLink(ctx handlers.Context, p api.LinkPayload) (handlers.Result, error) {
	w := ctx.World

	e := w.Arena.Lookup(domain.Handle(p.Handle))
	if e == nil || e.IsShared() {
		return rejected("Нет такой сущности."), nil
	}
	for _, ref := range []uint16{p.Target, p.ReservedFor, p.Linked} {
		if ref != 0 && w.Arena.Lookup(domain.Handle(ref)) == nil {
			return rejected(fmt.Sprintf("Нет сущности %d.", ref)), nil
		}
	}

	e.Target = domain.Handle(p.Target)
	e.ReservedFor = domain.Handle(p.ReservedFor)
	e.LinkedHandle = domain.Handle(p.Linked)
	return applied(), nil
}
