package domain

// Размер окна вьюпорта в клетках.
const (
	ViewportWidth  = 15
	ViewportHeight = 10
)

// Viewport - видимое окно карты.
type Viewport struct {
	Origin PackedCoordinate `json:"origin"`
}

// Contains проверяет, попадает ли клетка в окно.
func (v Viewport) Contains(p PackedCoordinate) bool {
	if !p.InGrid() || !v.Origin.InGrid() {
		return false
	}
	dx := p.X() - v.Origin.X()
	dy := p.Y() - v.Origin.Y()
	return dx >= 0 && dx < ViewportWidth && dy >= 0 && dy < ViewportHeight
}

// WorldState - агрегат состояния мира. Владеет им одна горутина
// (см. engine.Simulation), внутри блокировок нет.
type WorldState struct {
	Cells [MapCells]Cell

	Scale          MapScale
	Seed           uint32
	PrimaryFaction Faction

	Arena    *Arena
	Dirty    DirtyState
	Viewport Viewport
}

// NewWorldState создаёт пустой мир. Клетки нулевые (песок, без тумана),
// заполняет их mapgen.Generate или загрузка сценария.
func NewWorldState(scale MapScale, primary Faction) *WorldState {
	info := scale.Info()
	return &WorldState{
		Scale:          scale,
		PrimaryFaction: primary,
		Arena:          NewArena(DefaultArenaSlots),
		Dirty:          NewDirtyState(),
		Viewport:       Viewport{Origin: PackXY(info.MinX, info.MinY)},
	}
}

// Cell возвращает клетку или nil для координаты вне опорной сетки.
func (w *WorldState) Cell(p PackedCoordinate) *Cell {
	if !p.InGrid() {
		return nil
	}
	return &w.Cells[p.Index()]
}

// IsValidPosition проверяет, что клетка лежит в активной области карты.
func (w *WorldState) IsValidPosition(p PackedCoordinate) bool {
	return w.Scale.Contains(p)
}

// Landscape классифицирует клетку. Для координаты вне сетки - скала.
func (w *WorldState) Landscape(p PackedCoordinate) Landscape {
	c := w.Cell(p)
	if c == nil {
		return LandscapeRock
	}
	return c.Landscape()
}

// ResetArena пересоздаёт арену (при новой генерации).
func (w *WorldState) ResetArena() {
	w.Arena = NewArena(w.Arena.Capacity())
}
