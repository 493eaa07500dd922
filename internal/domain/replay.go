package domain

// ChangeLog - журнал кадров изменений одной сессии симуляции.
// По зерну и масштабу карта восстанавливается генератором, кадры
// накатываются поверх.
type ChangeLog struct {
	Seed      uint32        `json:"seed"`
	Scale     MapScale      `json:"scale"`
	Timestamp int64         `json:"timestamp"`
	Frames    []ChangeFrame `json:"frames"`
}

// Append добавляет непустой кадр.
func (l *ChangeLog) Append(f ChangeFrame) {
	if len(f.Tiles) == 0 {
		return
	}
	l.Frames = append(l.Frames, f)
}

// ApplyFrame накатывает кадр на мир: клетки получают сохранённые спрайты,
// владельца и флаг раскрытия. Оккупанты не трогаются.
func (w *WorldState) ApplyFrame(f ChangeFrame) {
	for _, t := range f.Tiles {
		c := w.Cell(t.Pos)
		if c == nil {
			continue
		}
		c.Ground = t.Ground
		c.Overlay = t.Overlay
		c.Owner = t.Owner
		c.Revealed = t.Revealed
	}
}
