// Package mapgen строит ландшафт карты из числового зерна.
//
// Конвейер: шум на решётке 16x16, возмущения вокруг случайных якорей,
// развёртка решётки до 64x64 серединами отрезков, два прохода усреднения 3x3,
// нарезка высот на горы/скалы/песок/дюны, посев пряности случайными блужданиями
// и финальное сглаживание кромок. Одно и то же зерно всегда даёт одну и ту же
// карту бит в бит.
package mapgen

import (
	"dune-core/internal/domain"
	"dune-core/pkg/logger"
	"dune-core/pkg/utils"

	"github.com/sirupsen/logrus"
)

const side = domain.MapSide

// Generate перезаписывает ландшафт мира картой для seed.
// Все клетки становятся скрытыми, без владельца и без оккупантов;
// арена и экспорт изменений сбрасываются.
func Generate(w *domain.WorldState, seed uint32) {
	rng := utils.NewByteStream(seed)

	// 1. Высоты
	heights := buildHeights(rng)

	// 2. Нарезка на категории
	land := thresholdHeights(rng, &heights)

	// 3. Пряность
	g := &spiceGrower{rng: rng, land: &land, world: w}
	g.scatter()

	// 4. Сглаживание кромок и запись в мир
	sprites := smoothEdges(&land)

	for i := range w.Cells {
		w.Cells[i] = domain.Cell{
			Ground:  sprites[i],
			Overlay: domain.SpriteVeiled,
		}
	}
	w.Seed = seed
	w.ResetArena()
	w.Dirty = domain.NewDirtyState()

	logger.Log.WithFields(logrus.Fields{
		"component": "mapgen",
		"seed":      seed,
		"scale":     w.Scale.String(),
		"spice":     g.seeds,
	}).Debug("Map generated")
}

// NewWorld создаёт мир заданного масштаба и сразу генерирует карту.
func NewWorld(seed uint32, scale domain.MapScale, primary domain.Faction) *domain.WorldState {
	w := domain.NewWorldState(scale, primary)
	Generate(w, seed)
	return w
}

// buildHeights строит поле высот 64x64.
func buildHeights(rng *utils.ByteStream) [domain.MapCells]int {
	var lattice [latticeSize + 1]int

	// Шум на решётке, значения 0..10
	for i := 0; i < latticeSize; i++ {
		v := int(rng.Next() & 0x0F)
		if v > 10 {
			v = 10
		}
		lattice[i] = v
	}

	// Аддитивные возмущения
	rounds := int(rng.Next()&0x0F) + 1
	for ; rounds > 0; rounds-- {
		base := int(rng.Next())
		for _, off := range aroundOffsets {
			idx := clampLattice(base + off)
			lattice[idx] = (lattice[idx] + int(rng.Next()&0x0F)) & 0x0F
		}
	}

	// Перезаписывающие возмущения (низины)
	rounds = int(rng.Next()&0x03) + 1
	for ; rounds > 0; rounds-- {
		base := int(rng.Next())
		for _, off := range aroundOffsets {
			idx := clampLattice(base + off)
			lattice[idx] = int(rng.Next() & 0x03)
		}
	}

	var h [domain.MapCells]int
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			h[(j*4)*side+i*4] = lattice[j*16+i]
		}
	}

	expandMidpoints(&h)
	boxAverage(&h)
	boxAverage(&h)
	return h
}

func clampLattice(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx > latticeSize {
		return latticeSize
	}
	return idx
}

// expandMidpoints заполняет промежуточные клетки средними значениями.
// Индексы считаются как y*64+x без маскирования: выход x за край строки
// переносит точку на следующую строку, как и у исходной раскладки.
func expandMidpoints(h *[domain.MapCells]int) {
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			table := &midpointPairs[(i+1)%2]
			for _, pair := range table {
				x1, y1 := i*4+pair[0], j*4+pair[1]
				x2, y2 := i*4+pair[2], j*4+pair[3]

				target := (y1*side + x1 + y2*side + x2) / 2
				if target >= domain.MapCells {
					continue
				}

				src1 := y1*side + (x1 & (side - 1))
				src2 := y2*side + (x2 & (side - 1))
				if src1 >= domain.MapCells {
					continue
				}

				b := 0
				if src2 < domain.MapCells {
					b = h[src2]
				}
				h[target] = (h[src1] + b + 1) / 2
			}
		}
	}
}

// boxAverage - один проход усреднения 3x3 по копии поля.
// За краем карты берётся значение центральной клетки.
func boxAverage(h *[domain.MapCells]int) {
	src := *h
	at := func(x, y, cx, cy int) int {
		if x < 0 || x >= side || y < 0 || y >= side {
			return src[cy*side+cx]
		}
		return src[y*side+x]
	}

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			total := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					total += at(x+dx, y+dy, x, y)
				}
			}
			h[y*side+x] = total / 9
		}
	}
}

// thresholdHeights режет высоты на четыре полосы по двум порогам из потока.
func thresholdHeights(rng *utils.ByteStream, h *[domain.MapCells]int) [domain.MapCells]domain.Landscape {
	hi := int(rng.Next() & 0x0F)
	if hi < 8 {
		hi = 8
	}
	if hi > 12 {
		hi = 12
	}

	lo := int(rng.Next()&0x03) - 1
	if lo < 0 || lo > hi-3 {
		lo = hi - 3
	}

	var land [domain.MapCells]domain.Landscape
	for i, v := range h {
		switch {
		case v > hi+4:
			land[i] = domain.LandscapeMountain
		case v >= hi:
			land[i] = domain.LandscapeRock
		case v <= lo:
			land[i] = domain.LandscapeDune
		default:
			land[i] = domain.LandscapeSand
		}
	}
	return land
}

// smoothEdges вычисляет спрайты по 4-битному коду одинаковых соседей.
// За краем карты сосед считается равным клетке.
func smoothEdges(land *[domain.MapCells]domain.Landscape) [domain.MapCells]uint16 {
	var out [domain.MapCells]uint16

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			cur := land[y*side+x]
			n := [4]domain.Landscape{cur, cur, cur, cur}
			if y > 0 {
				n[domain.CardinalUp] = land[(y-1)*side+x]
			}
			if x < side-1 {
				n[domain.CardinalRight] = land[y*side+x+1]
			}
			if y < side-1 {
				n[domain.CardinalDown] = land[(y+1)*side+x]
			}
			if x > 0 {
				n[domain.CardinalLeft] = land[y*side+x-1]
			}

			code := domain.EdgeCode(cur, n)
			sprite, _ := domain.LandscapeSprite(cur, code)
			out[y*side+x] = sprite
		}
	}
	return out
}
