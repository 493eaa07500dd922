package mapgen

import (
	"dune-core/internal/domain"
	"dune-core/pkg/utils"
)

const (
	// maxPickAttempts ограничивает подбор клетки, чтобы карта без песка
	// или вне активной области не зацикливала генератор.
	maxPickAttempts = 1024
	maxStepAttempts = 256

	fineLimit = domain.MapSide * domain.FineUnitsPerCell
)

type spiceGrower struct {
	rng   *utils.ByteStream
	land  *[domain.MapCells]domain.Landscape
	world *domain.WorldState
	seeds int
}

func (g *spiceGrower) canHold(p domain.PackedCoordinate) bool {
	return g.land[p.Index()].Info().CanBecomeSpice
}

// scatter выбирает до 47 точек посева и от каждой делает до 31 шага блуждания.
func (g *spiceGrower) scatter() {
	seeds := int(g.rng.Next() & 0x2F)
	for ; seeds > 0; seeds-- {
		center, ok := g.pickSeed()
		if !ok {
			continue
		}
		g.seeds++

		fine := center.ToFine()
		steps := int(g.rng.Next() & 0x1F)
		for ; steps > 0; steps-- {
			for attempt := 0; attempt < maxStepAttempts; attempt++ {
				p := moveByRandom(g.rng, fine, int(g.rng.Next()&0x3F)).ToPacked()
				if !g.world.IsValidPosition(p) || !g.canHold(p) {
					continue
				}
				g.addSpice(p)
				break
			}
		}
	}
}

// pickSeed подбирает клетку для посева: сначала строка, затем столбец.
func (g *spiceGrower) pickSeed() (domain.PackedCoordinate, bool) {
	for attempt := 0; attempt < maxPickAttempts; attempt++ {
		y := int(g.rng.Next() & 0x3F)
		x := int(g.rng.Next() & 0x3F)
		p := domain.PackXY(x, y)
		if g.canHold(p) {
			return p, true
		}
	}
	return domain.InvalidPacked, false
}

// addSpice добавляет пряность в клетку. Пряность становится густой, густая
// растекается на соседей 3x3, но остаётся обычной, если рядом есть клетка,
// не способная держать пряность.
func (g *spiceGrower) addSpice(p domain.PackedCoordinate) {
	switch g.land[p.Index()] {
	case domain.LandscapeSpice:
		g.land[p.Index()] = domain.LandscapeThickSpice
		g.addSpice(p)

	case domain.LandscapeThickSpice:
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := p.Offset(dx, dy)
				if n == domain.InvalidPacked {
					continue
				}
				if !g.canHold(n) {
					g.land[p.Index()] = domain.LandscapeSpice
					continue
				}
				if g.land[n.Index()] != domain.LandscapeThickSpice {
					g.land[n.Index()] = domain.LandscapeSpice
				}
			}
		}

	default:
		if g.canHold(p) {
			g.land[p.Index()] = domain.LandscapeSpice
		}
	}
}

// moveByRandom сдвигает точку на случайное расстояние (не больше limit клеток/16)
// в одном из 256 направлений и центрирует результат в клетке.
// При выходе за сетку возвращает исходную точку.
func moveByRandom(rng *utils.ByteStream, from domain.FineCoordinate, limit int) domain.FineCoordinate {
	if limit == 0 {
		return from
	}

	dist := int(rng.Next())
	for dist > limit {
		dist /= 2
	}
	orient := rng.Next()

	x := int(from.X) + (stepX[orient]*dist/128)*16
	y := int(from.Y) - (stepY[orient]*dist/128)*16
	if x < 0 || x > fineLimit || y < 0 || y > fineLimit {
		return from
	}

	return domain.FineCoordinate{X: uint16(x), Y: uint16(y)}.Center()
}
