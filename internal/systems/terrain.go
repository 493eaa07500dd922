package systems

import (
	"dune-core/internal/domain"
	"dune-core/pkg/logger"
	"dune-core/pkg/utils"

	"github.com/sirupsen/logrus"
)

// SpiceDirection - направление изменения пряности.
type SpiceDirection int8

const (
	SpiceShrink SpiceDirection = -1
	SpiceGrow   SpiceDirection = 1
)

// bloomRadius - радиус засева пряностью при взрыве цветения.
const bloomRadius = 5

// Classify возвращает категорию местности клетки. Вне сетки - скала.
func Classify(w *domain.WorldState, p domain.PackedCoordinate) domain.Landscape {
	return w.Landscape(p)
}

// MarkDirty записывает клетку в экспорт изменённых клеток.
func MarkDirty(w *domain.WorldState, p domain.PackedCoordinate) {
	w.Dirty.Changed.Mark(p)
}

// MutateSpice растит или уменьшает пряность в клетке.
//
//	рост:       песок/дюны -> пряность -> густая пряность
//	уменьшение: густая пряность -> пряность -> песок
//
// Остальные переходы отклоняются без изменений. После перехода
// пересчитываются кромки клетки и четырёх соседей.
func MutateSpice(w *domain.WorldState, p domain.PackedCoordinate, dir SpiceDirection) bool {
	c := w.Cell(p)
	if c == nil || !w.IsValidPosition(p) {
		return false
	}

	cur := c.Landscape()
	var next domain.Landscape

	switch dir {
	case SpiceGrow:
		switch cur {
		case domain.LandscapeSand, domain.LandscapeDune:
			next = domain.LandscapeSpice
		case domain.LandscapeSpice:
			next = domain.LandscapeThickSpice
		default:
			return false
		}
	case SpiceShrink:
		switch cur {
		case domain.LandscapeThickSpice:
			next = domain.LandscapeSpice
		case domain.LandscapeSpice:
			next = domain.LandscapeSand
		default:
			return false
		}
	default:
		return false
	}

	c.Ground, _ = domain.LandscapeSprite(next, 0)
	fixupEdges(w, p)
	for _, d := range domain.Cardinals {
		fixupEdges(w, p.Neighbor(d))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "terrain",
		"cell":      p.String(),
		"from":      cur.String(),
		"to":        next.String(),
	}).Debug("Spice mutated")
	return true
}

// fixupEdges пересчитывает код кромки природной клетки из текущих соседей.
// Клетки вне блоков ландшафта (бетон, стены, постройки) не трогаются.
func fixupEdges(w *domain.WorldState, p domain.PackedCoordinate) {
	c := w.Cell(p)
	if c == nil || c.HasStructure {
		return
	}
	cur := c.Landscape()

	var n [4]domain.Landscape
	for _, d := range domain.Cardinals {
		np := p.Neighbor(d)
		if np == domain.InvalidPacked {
			n[d] = cur
			continue
		}
		n[d] = w.Landscape(np)
	}

	sprite, ok := domain.LandscapeSprite(cur, domain.EdgeCode(cur, n))
	if !ok {
		return
	}
	c.Ground = sprite
	MarkDirty(w, p)
	Invalidate(w, p, ReasonRedraw)
}

// wallMask собирает 8-битную маску соседей стены:
// биты 0-3 - целая стена, биты 4-7 - разрушенная.
func wallMask(w *domain.WorldState, p domain.PackedCoordinate) uint8 {
	var mask uint8
	for _, d := range domain.Cardinals {
		switch w.Landscape(p.Neighbor(d)) {
		case domain.LandscapeWall:
			mask |= 1 << d
		case domain.LandscapeDestroyedWall:
			mask |= 1 << (d + 4)
		}
	}
	return mask
}

// ConnectWall пересчитывает спрайт стены в клетке по её соседям.
// Клетки вне активной области не трогаются. При recurse повторяет пересчёт для соседних стен (без дальнейшей рекурсии).
// Возвращает true, если спрайт клетки изменился.
func ConnectWall(w *domain.WorldState, p domain.PackedCoordinate, recurse bool) bool {
	c := w.Cell(p)
	if c == nil || !w.IsValidPosition(p) {
		return false
	}

	if recurse {
		for _, d := range domain.Cardinals {
			np := p.Neighbor(d)
			switch w.Landscape(np) {
			case domain.LandscapeWall, domain.LandscapeDestroyedWall:
				ConnectWall(w, np, false)
			}
		}
	}

	if c.Landscape() != domain.LandscapeWall {
		return false
	}

	sprite := domain.WallSprite(wallMask(w, p))
	if c.Ground == sprite {
		return false
	}
	c.Ground = sprite
	MarkDirty(w, p)
	Invalidate(w, p, ReasonRedraw)
	return true
}

// PlaceWall ставит стену на застраиваемую клетку или развалины
// и связывает соседей.
func PlaceWall(w *domain.WorldState, p domain.PackedCoordinate) bool {
	c := w.Cell(p)
	if c == nil || !w.IsValidPosition(p) || c.Occupied() {
		return false
	}
	l := c.Landscape()
	if !l.Info().Buildable && l != domain.LandscapeDestroyedWall {
		return false
	}

	c.Ground = domain.WallSprite(0)
	if c.Overlay == domain.SpriteWallBase {
		c.Overlay = 0
	}
	ConnectWall(w, p, true)
	MarkDirty(w, p)
	Invalidate(w, p, ReasonRedraw)
	return true
}

// DestroyWall превращает стену в развалины: земля становится скалой,
// overlay получает маркер разрушенной стены, соседи перевязываются.
func DestroyWall(w *domain.WorldState, p domain.PackedCoordinate) bool {
	c := w.Cell(p)
	if c == nil || !w.IsValidPosition(p) || c.Landscape() != domain.LandscapeWall {
		return false
	}

	c.Ground = domain.SpriteRockBase + 0x0F
	c.Overlay = domain.SpriteWallBase
	c.Owner = 0
	ConnectWall(w, p, true)
	MarkDirty(w, p)
	Invalidate(w, p, ReasonRedraw)

	logger.Log.WithFields(logrus.Fields{
		"component": "terrain",
		"cell":      p.String(),
	}).Debug("Wall destroyed")
	return true
}

// LayConcrete кладёт бетонную плиту на застраиваемую клетку.
func LayConcrete(w *domain.WorldState, p domain.PackedCoordinate, owner domain.Faction) bool {
	c := w.Cell(p)
	if c == nil || !w.IsValidPosition(p) || c.Occupied() {
		return false
	}
	l := c.Landscape()
	if l != domain.LandscapeRock && l != domain.LandscapeDestroyedWall {
		return false
	}

	c.Ground = domain.SpriteConcrete
	if c.Overlay == domain.SpriteWallBase {
		c.Overlay = 0
	}
	c.Owner = owner
	for _, d := range domain.Cardinals {
		ConnectWall(w, p.Neighbor(d), false)
		fixupEdges(w, p.Neighbor(d))
	}
	MarkDirty(w, p)
	Invalidate(w, p, ReasonRedraw)
	return true
}

// PlantBloom ставит поле цветения пряности на песчаную клетку.
func PlantBloom(w *domain.WorldState, p domain.PackedCoordinate) bool {
	c := w.Cell(p)
	if c == nil || !w.IsValidPosition(p) || c.Occupied() {
		return false
	}
	switch c.Landscape() {
	case domain.LandscapeSand, domain.LandscapeDune:
	default:
		return false
	}
	c.Ground = domain.SpriteBloom1
	MarkDirty(w, p)
	Invalidate(w, p, ReasonRedraw)
	return true
}

// ExplodeBloom взрывает цветение: клетка становится песком, а круг радиуса 5
// вокруг засевается пряностью. На границе круга клетки пропускаются
// с вероятностью 1/2.
func ExplodeBloom(w *domain.WorldState, p domain.PackedCoordinate, rng *utils.ByteStream) bool {
	c := w.Cell(p)
	if c == nil || !w.IsValidPosition(p) || c.Landscape() != domain.LandscapeBloom {
		return false
	}

	c.Ground = domain.SpriteSandBase
	fixupEdges(w, p)

	grown := 0
	for dy := -bloomRadius; dy <= bloomRadius; dy++ {
		for dx := -bloomRadius; dx <= bloomRadius; dx++ {
			np := p.Offset(dx, dy)
			if np == domain.InvalidPacked || !w.IsValidPosition(np) {
				continue
			}
			dist := p.DistanceTo(np)
			if dist > bloomRadius {
				continue
			}
			if dist == bloomRadius && rng.Intn(2) == 0 {
				continue
			}
			if w.Cell(np).Occupied() {
				continue
			}
			if MutateSpice(w, np, SpiceGrow) {
				grown++
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "terrain",
		"cell":      p.String(),
		"grown":     grown,
	}).Info("Spice bloom exploded")
	return true
}
