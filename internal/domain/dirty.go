package domain

import "github.com/bits-and-blooms/bitset"

// ChangedTilesCapacity - ёмкость списка изменённых клеток.
const ChangedTilesCapacity = 200

// ChangedTiles - экспорт изменённых клеток для внешнего потребителя
// (рендер, сеть, журнал).
//
// Битовая карта покрытия всегда отражает все отмеченные клетки. Список
// ограничен ChangedTilesCapacity: после заполнения новые клетки попадают
// только в карту покрытия. Потребитель обязан проверять Saturated и при
// переполнении перечитывать карту покрытия целиком.
type ChangedTiles struct {
	list     [ChangedTilesCapacity]PackedCoordinate
	count    int
	coverage *bitset.BitSet
}

func newChangedTiles() ChangedTiles {
	return ChangedTiles{coverage: bitset.New(MapCells)}
}

// Mark отмечает клетку. Повторная отметка ничего не делает.
func (ct *ChangedTiles) Mark(p PackedCoordinate) {
	if !p.InGrid() {
		return
	}
	idx := uint(p.Index())
	if ct.coverage.Test(idx) {
		return
	}
	ct.coverage.Set(idx)

	if ct.count < ChangedTilesCapacity {
		ct.list[ct.count] = p
		ct.count++
	}
}

// Len возвращает длину списка.
func (ct *ChangedTiles) Len() int { return ct.count }

// Tiles возвращает копию списка.
func (ct *ChangedTiles) Tiles() []PackedCoordinate {
	out := make([]PackedCoordinate, ct.count)
	copy(out, ct.list[:ct.count])
	return out
}

// Covered проверяет карту покрытия.
func (ct *ChangedTiles) Covered(p PackedCoordinate) bool {
	if !p.InGrid() {
		return false
	}
	return ct.coverage.Test(uint(p.Index()))
}

// CoveredCount - число клеток в карте покрытия.
func (ct *ChangedTiles) CoveredCount() int {
	return int(ct.coverage.Count())
}

// Saturated сообщает, что карта покрытия шире списка.
func (ct *ChangedTiles) Saturated() bool {
	return ct.CoveredCount() > ct.count
}

// AllCovered перечисляет все клетки карты покрытия по возрастанию индекса.
func (ct *ChangedTiles) AllCovered() []PackedCoordinate {
	out := make([]PackedCoordinate, 0, ct.coverage.Count())
	for i, ok := ct.coverage.NextSet(0); ok; i, ok = ct.coverage.NextSet(i + 1) {
		out = append(out, PackedCoordinate(i))
	}
	return out
}

// Reset очищает экспорт. Вызывается только потребителем.
func (ct *ChangedTiles) Reset() {
	ct.count = 0
	ct.coverage.ClearAll()
}

// DirtyState - битовые карты перерисовки и счётчик отложенных перерисовок.
type DirtyState struct {
	MinimapDirty      *bitset.BitSet
	MinimapDisplayed  *bitset.BitSet
	ViewportDirty     *bitset.BitSet
	ViewportDisplayed *bitset.BitSet

	// PendingRedraw растёт при каждой новой отметке viewport-dirty по ReasonRedraw.
	PendingRedraw int

	Changed ChangedTiles
}

// NewDirtyState создаёт пустые карты на всю опорную сетку.
func NewDirtyState() DirtyState {
	return DirtyState{
		MinimapDirty:      bitset.New(MapCells),
		MinimapDisplayed:  bitset.New(MapCells),
		ViewportDirty:     bitset.New(MapCells),
		ViewportDisplayed: bitset.New(MapCells),
		Changed:           newChangedTiles(),
	}
}
