package systems

import (
	"dune-core/internal/domain"
	"dune-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// OccupantAt возвращает ссылку на того, кто стоит в клетке.
func OccupantAt(w *domain.WorldState, p domain.PackedCoordinate) domain.Ref {
	c := w.Cell(p)
	if c == nil || c.Occupant == domain.NoHandle {
		return domain.Ref{}
	}
	e := w.Arena.Lookup(c.Occupant)
	if e == nil {
		return domain.Ref{}
	}
	return e.Ref()
}

// footprintCells перечисляет клетки квадрата постройки от левого верхнего угла.
func footprintCells(origin domain.PackedCoordinate, size int) []domain.PackedCoordinate {
	if size < 1 {
		size = 1
	}
	cells := make([]domain.PackedCoordinate, 0, size*size)
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			cells = append(cells, origin.Offset(dx, dy))
		}
	}
	return cells
}

// canHost проверяет, что клетка свободна и местность подходит сущности.
func canHost(w *domain.WorldState, e *domain.Entity, p domain.PackedCoordinate) bool {
	if !w.IsValidPosition(p) {
		return false
	}
	c := w.Cell(p)
	if c.Occupant != domain.NoHandle || c.Occupied() {
		return false
	}
	l := c.Landscape()
	if e.Kind == domain.KindStructure {
		return l.Info().Buildable
	}
	return l.Speed(e.Movement) != 0
}

// Place ставит сущность в клетку p (для построек p - левый верхний угол).
// При любой несовместимости мир не меняется и возвращается false.
//
// Разделяемые синглтоны меняют только местность: стена ставит стену,
// плиты кладут бетон. В клетку как оккупант они не записываются.
func Place(w *domain.WorldState, h domain.Handle, p domain.PackedCoordinate) bool {
	e := w.Arena.Get(h)
	if !e.IsAlive() {
		return false
	}

	placeLogger := logger.Log.WithFields(logrus.Fields{
		"component": "placement",
		"entity":    e.String(),
		"cell":      p.String(),
	})

	if e.IsShared() {
		return placeShared(w, e, p)
	}
	if e.Placed {
		placeLogger.Warn("Place called for an entity already on the map")
		return false
	}

	size := 1
	if e.Kind == domain.KindStructure {
		size = e.Footprint
	}
	cells := footprintCells(p, size)
	for _, cp := range cells {
		if !canHost(w, e, cp) {
			placeLogger.Debug("Placement rejected")
			return false
		}
	}

	for _, cp := range cells {
		c := w.Cell(cp)
		c.Occupant = h
		if e.Kind == domain.KindStructure {
			c.HasStructure = true
			c.Owner = e.Faction
		} else {
			c.HasUnit = true
		}
		MarkDirty(w, cp)
		Invalidate(w, cp, ReasonRedraw)
	}

	e.Pos = p.ToFine()
	e.Placed = true
	e.Footprint = size

	placeLogger.Debug("Entity placed")
	return true
}

func placeShared(w *domain.WorldState, e *domain.Entity, p domain.PackedCoordinate) bool {
	switch e.Shared {
	case domain.SharedWall:
		return PlaceWall(w, p)
	case domain.SharedSlab1x1:
		return LayConcrete(w, p, e.Faction)
	case domain.SharedSlab2x2:
		cells := footprintCells(p, 2)
		for _, cp := range cells {
			c := w.Cell(cp)
			if c == nil || !w.IsValidPosition(cp) || c.Occupied() {
				return false
			}
		}
		laid := false
		for _, cp := range cells {
			if LayConcrete(w, cp, e.Faction) {
				laid = true
			}
		}
		return laid
	}
	return false
}

// Vacate снимает сущность с клетки. Клетка, занятая другим хэндлом, не трогается.
func Vacate(w *domain.WorldState, h domain.Handle, p domain.PackedCoordinate) bool {
	c := w.Cell(p)
	if c == nil || c.Occupant != h || h == domain.NoHandle {
		return false
	}
	c.ClearOccupant()
	MarkDirty(w, p)
	Invalidate(w, p, ReasonRedraw)
	return true
}

// Relocate переносит юнит на новую мелкую координату. Если клетка не меняется,
// обновляется только позиция. Возвращает false, если новая клетка недоступна.
func Relocate(w *domain.WorldState, h domain.Handle, to domain.FineCoordinate) bool {
	e := w.Arena.Get(h)
	if !e.IsAlive() || !e.Placed || e.Kind != domain.KindUnit {
		return false
	}

	from := e.Cell()
	dest := to.ToPacked()
	if dest == from {
		e.Pos = to
		return true
	}
	if !canHost(w, e, dest) {
		return false
	}

	Vacate(w, h, from)
	c := w.Cell(dest)
	c.Occupant = h
	c.HasUnit = true
	e.Pos = to
	MarkDirty(w, dest)
	Invalidate(w, dest, ReasonRedraw)
	return true
}

// Release снимает сущность со всех её клеток и возвращает слот в арену.
func Release(w *domain.WorldState, h domain.Handle) bool {
	e := w.Arena.Get(h)
	if !e.IsAlive() || e.IsShared() {
		return false
	}

	if e.Placed {
		origin := e.Cell()
		size := 1
		if e.Kind == domain.KindStructure {
			size = e.Footprint
		}
		for _, cp := range footprintCells(origin, size) {
			Vacate(w, h, cp)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "placement",
		"entity":    e.String(),
	}).Debug("Entity released")
	return w.Arena.Free(h)
}
