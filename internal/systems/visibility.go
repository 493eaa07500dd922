package systems

import (
	"dune-core/internal/domain"
	"dune-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// InvalidateReason задаёт, какие карты перерисовки отметить.
type InvalidateReason uint8

const (
	// ReasonRedraw - обычная перерисовка: вьюпорт и миникарта на 3x3
	// вокруг раскрытой клетки, счётчик отложенных перерисовок растёт.
	ReasonRedraw InvalidateReason = iota
	// ReasonViewport - только вьюпорт, одна клетка.
	ReasonViewport
	// ReasonMinimap - только миникарта, одна клетка.
	ReasonMinimap
	// ReasonDisplayed - клетку нужно отрисовать заново с нуля:
	// снимаются отметки "уже показано".
	ReasonDisplayed
)

func (r InvalidateReason) String() string {
	switch r {
	case ReasonRedraw:
		return "redraw"
	case ReasonViewport:
		return "viewport"
	case ReasonMinimap:
		return "minimap"
	case ReasonDisplayed:
		return "displayed"
	}
	return "unknown"
}

// Unveil раскрывает клетку для фракции. Туман ведётся только для основной
// фракции, для остальных вызов ничего не делает.
// Возвращает false, если клетка вне активной области или уже раскрыта с верным туманом.
func Unveil(w *domain.WorldState, p domain.PackedCoordinate, faction domain.Faction) bool {
	if faction != w.PrimaryFaction {
		return false
	}
	c := w.Cell(p)
	if c == nil || !w.IsValidPosition(p) {
		return false
	}
	if c.Revealed && c.Overlay == fogOverlayFor(w, p) {
		return false
	}

	c.Revealed = true
	MarkDirty(w, p)

	refreshFog(w, p)
	for _, d := range domain.Cardinals {
		refreshFog(w, p.Neighbor(d))
	}
	return true
}

// IsUnveiled сообщает, раскрыта ли клетка. Вне сетки - false.
func IsUnveiled(w *domain.WorldState, p domain.PackedCoordinate) bool {
	c := w.Cell(p)
	return c != nil && c.Revealed
}

// concealedMask - 4-битная маска скрытых соседей (за краем карты - скрыто).
func concealedMask(w *domain.WorldState, p domain.PackedCoordinate) uint8 {
	var mask uint8
	for _, d := range domain.Cardinals {
		if !IsUnveiled(w, p.Neighbor(d)) {
			mask |= 1 << d
		}
	}
	return mask
}

// fogOverlayFor вычисляет ожидаемый overlay клетки. Overlay, не относящийся
// к туману (развалины стены), сохраняется.
func fogOverlayFor(w *domain.WorldState, p domain.PackedCoordinate) uint16 {
	c := w.Cell(p)
	if c.Overlay != 0 && !domain.IsFogSprite(c.Overlay) {
		return c.Overlay
	}
	if !c.Revealed {
		return domain.SpriteVeiled
	}
	return domain.FogSprite(concealedMask(w, p))
}

func refreshFog(w *domain.WorldState, p domain.PackedCoordinate) {
	c := w.Cell(p)
	if c == nil {
		return
	}
	overlay := fogOverlayFor(w, p)
	if c.Overlay == overlay {
		return
	}
	c.Overlay = overlay
	MarkDirty(w, p)
	Invalidate(w, p, ReasonRedraw)
}

// Invalidate отмечает клетку в картах перерисовки.
// Повторная отметка по ReasonRedraw не увеличивает счётчик.
func Invalidate(w *domain.WorldState, p domain.PackedCoordinate, reason InvalidateReason) {
	c := w.Cell(p)
	if c == nil {
		return
	}
	idx := uint(p.Index())
	d := &w.Dirty

	switch reason {
	case ReasonRedraw:
		if !c.Revealed || d.ViewportDirty.Test(idx) {
			return
		}
		d.PendingRedraw++
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				np := p.Offset(dx, dy)
				if np == domain.InvalidPacked {
					continue
				}
				d.ViewportDirty.Set(uint(np.Index()))
				d.MinimapDirty.Set(uint(np.Index()))
			}
		}

	case ReasonViewport:
		d.ViewportDirty.Set(idx)

	case ReasonMinimap:
		d.MinimapDirty.Set(idx)

	case ReasonDisplayed:
		d.ViewportDisplayed.Clear(idx)
		d.MinimapDisplayed.Clear(idx)

	default:
		logger.Log.WithFields(logrus.Fields{
			"component": "visibility",
			"reason":    uint8(reason),
		}).Warn("Unknown invalidate reason")
	}
}

// Acknowledge вызывается отрисовщиком после вывода клетки: снимает грязь
// и ставит отметки "показано". Возвращает true, если клетка была грязной.
func Acknowledge(w *domain.WorldState, p domain.PackedCoordinate) bool {
	if !p.InGrid() {
		return false
	}
	idx := uint(p.Index())
	d := &w.Dirty

	wasDirty := d.ViewportDirty.Test(idx) || d.MinimapDirty.Test(idx)
	d.ViewportDirty.Clear(idx)
	d.MinimapDirty.Clear(idx)
	d.ViewportDisplayed.Set(idx)
	d.MinimapDisplayed.Set(idx)
	return wasDirty
}

// TakePendingRedraw забирает счётчик отложенных перерисовок и обнуляет его.
func TakePendingRedraw(w *domain.WorldState) int {
	n := w.Dirty.PendingRedraw
	w.Dirty.PendingRedraw = 0
	return n
}

// IsVisibleInViewport - клетка раскрыта и попадает в окно вьюпорта.
func IsVisibleInViewport(w *domain.WorldState, p domain.PackedCoordinate) bool {
	return w.Viewport.Contains(p) && IsUnveiled(w, p)
}

// RevealRadius раскрывает круг вокруг центра (обзор юнита).
// Рельеф обзор не перекрывает. Возвращает число впервые раскрытых клеток.
func RevealRadius(w *domain.WorldState, center domain.PackedCoordinate, radius int, faction domain.Faction) int {
	revealLogger := logger.Log.WithFields(logrus.Fields{
		"component": "visibility",
		"center":    center.String(),
		"radius":    radius,
	})

	if !center.InGrid() || radius < 0 {
		revealLogger.Debug("Reveal skipped for off-grid center or negative radius.")
		return 0
	}

	revealed := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := center.Offset(dx, dy)
			if p == domain.InvalidPacked || center.DistanceTo(p) > radius {
				continue
			}
			wasRevealed := IsUnveiled(w, p)
			if Unveil(w, p, faction) && !wasRevealed {
				revealed++
			}
		}
	}

	revealLogger.WithField("revealed", revealed).Debug("Reveal complete.")
	return revealed
}
