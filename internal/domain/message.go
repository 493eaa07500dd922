package domain

// TileChange - снимок одной изменённой клетки для потребителей экспорта.
type TileChange struct {
	Pos      PackedCoordinate `json:"pos" msgpack:"p"`
	Ground   uint16           `json:"ground" msgpack:"g"`
	Overlay  uint16           `json:"overlay" msgpack:"o"`
	Owner    Faction          `json:"owner" msgpack:"w"`
	Revealed bool             `json:"revealed" msgpack:"r"`
}

// ChangeFrame - пачка изменений за один тик.
// Saturated означает, что список изменённых клеток переполнился и Tiles
// собраны из карты покрытия, а не из ограниченного списка.
type ChangeFrame struct {
	Tick      uint32       `json:"tick" msgpack:"t"`
	Tiles     []TileChange `json:"tiles" msgpack:"c"`
	Saturated bool         `json:"saturated,omitempty" msgpack:"s,omitempty"`
}

// SnapshotTile собирает TileChange из текущего состояния клетки.
func (w *WorldState) SnapshotTile(p PackedCoordinate) TileChange {
	c := w.Cell(p)
	if c == nil {
		return TileChange{Pos: InvalidPacked}
	}
	return TileChange{
		Pos:      p,
		Ground:   c.Ground,
		Overlay:  c.Overlay,
		Owner:    c.Owner,
		Revealed: c.Revealed,
	}
}

// DrainChanges собирает кадр из экспорта изменений и очищает его.
// Вызывается только потребителем экспорта (цикл симуляции).
func (w *WorldState) DrainChanges(tick uint32) ChangeFrame {
	frame := ChangeFrame{Tick: tick}
	ct := &w.Dirty.Changed

	var tiles []PackedCoordinate
	if ct.Saturated() {
		frame.Saturated = true
		tiles = ct.AllCovered()
	} else {
		tiles = ct.Tiles()
	}

	frame.Tiles = make([]TileChange, 0, len(tiles))
	for _, p := range tiles {
		frame.Tiles = append(frame.Tiles, w.SnapshotTile(p))
	}
	ct.Reset()
	return frame
}
