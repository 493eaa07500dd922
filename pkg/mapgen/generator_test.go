package mapgen

import (
	"os"
	"testing"

	"dune-core/internal/domain"
	"dune-core/pkg/logger"
	"dune-core/pkg/utils"

	"github.com/davecgh/go-spew/spew"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestGenerate_Deterministic(t *testing.T) {
	seeds := []uint32{0, 1, 42, 1234, 0xDEADBEEF}

	for _, seed := range seeds {
		a := NewWorld(seed, domain.ScaleLarge, 1)
		b := NewWorld(seed, domain.ScaleLarge, 1)

		for i := range a.Cells {
			if a.Cells[i] != b.Cells[i] {
				t.Fatalf("seed %d: cell %d differs:\n%s", seed, i, spew.Sdump(a.Cells[i], b.Cells[i]))
			}
		}
		if a.Seed != seed {
			t.Errorf("seed %d: stored seed = %d", seed, a.Seed)
		}
	}
}

func TestGenerate_SeedsProduceDifferentMaps(t *testing.T) {
	a := NewWorld(1, domain.ScaleLarge, 1)
	b := NewWorld(2, domain.ScaleLarge, 1)

	diff := 0
	for i := range a.Cells {
		if a.Cells[i].Ground != b.Cells[i].Ground {
			diff++
		}
	}
	if diff == 0 {
		t.Error("seeds 1 and 2 produced identical terrain")
	}
}

func TestGenerate_InitialCellState(t *testing.T) {
	w := NewWorld(777, domain.ScaleMedium, 1)

	for i := range w.Cells {
		c := &w.Cells[i]
		p := domain.PackedCoordinate(i)

		// 1. Всё скрыто
		if c.Revealed || c.Overlay != domain.SpriteVeiled {
			t.Fatalf("cell %v not veiled: %s", p, spew.Sdump(c))
		}
		// 2. Нет владельца и оккупанта
		if c.Owner != 0 || c.Occupant != domain.NoHandle || c.HasUnit || c.HasStructure {
			t.Fatalf("cell %v has owner/occupant: %s", p, spew.Sdump(c))
		}
		// 3. Только блоки природного ландшафта
		switch c.Landscape() {
		case domain.LandscapeSand, domain.LandscapeRock, domain.LandscapeDune,
			domain.LandscapeMountain, domain.LandscapeSpice, domain.LandscapeThickSpice:
		default:
			t.Fatalf("cell %v classified as %v (ground %#x)", p, c.Landscape(), c.Ground)
		}
		// 4. У песка нет кромок
		if c.Landscape() == domain.LandscapeSand && c.Ground != domain.SpriteSandBase {
			t.Errorf("sand cell %v has edge sprite %#x", p, c.Ground)
		}
	}

	if w.Dirty.Changed.Len() != 0 {
		t.Errorf("fresh map has %d changed tiles", w.Dirty.Changed.Len())
	}
	if w.Arena.Len() != 0 {
		t.Errorf("fresh map has %d live entities", w.Arena.Len())
	}
}

func TestGenerate_ThickSpiceSurroundedByCapableCells(t *testing.T) {
	for _, seed := range []uint32{3, 99, 2024, 65535} {
		w := NewWorld(seed, domain.ScaleLarge, 1)

		for i := range w.Cells {
			p := domain.PackedCoordinate(i)
			if w.Landscape(p) != domain.LandscapeThickSpice {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					n := p.Offset(dx, dy)
					if n == domain.InvalidPacked {
						continue
					}
					if !w.Landscape(n).Info().CanBecomeSpice {
						t.Errorf("seed %d: thick spice at %v next to %v at %v", seed, p, w.Landscape(n), n)
					}
				}
			}
		}
	}
}

func TestGenerate_EdgeCodesMatchNeighbours(t *testing.T) {
	w := NewWorld(31337, domain.ScaleLarge, 1)

	for i := range w.Cells {
		p := domain.PackedCoordinate(i)
		cur := w.Landscape(p)

		var n [4]domain.Landscape
		for _, d := range domain.Cardinals {
			np := p.Neighbor(d)
			if np == domain.InvalidPacked {
				n[d] = cur
			} else {
				n[d] = w.Landscape(np)
			}
		}

		want, _ := domain.LandscapeSprite(cur, domain.EdgeCode(cur, n))
		if got := w.Cells[i].Ground; got != want {
			t.Fatalf("cell %v (%v): ground %#x, want %#x", p, cur, got, want)
		}
	}
}

func TestMoveByRandom_StaysOnGridOrReturnsOrigin(t *testing.T) {
	rng := utils.NewByteStream(5)
	from := domain.PackXY(1, 1).ToFine()

	for i := 0; i < 500; i++ {
		got := moveByRandom(rng, from, 63)
		if got.IsValid() && got != got.Center() {
			t.Fatalf("move %d: result %+v is not centred", i, got)
		}
	}

	if got := moveByRandom(rng, from, 0); got != from {
		t.Errorf("zero limit moved the point: %+v", got)
	}
}

func TestThresholdHeights_BandsAreMonotonic(t *testing.T) {
	rank := map[domain.Landscape]int{
		domain.LandscapeDune:     0,
		domain.LandscapeSand:     1,
		domain.LandscapeRock:     2,
		domain.LandscapeMountain: 3,
	}

	for _, seed := range []uint32{1, 7, 11, 500} {
		var h [domain.MapCells]int
		for i := range h {
			h[i] = i % 20
		}
		land := thresholdHeights(utils.NewByteStream(seed), &h)

		byHeight := make(map[int]int)
		for i, v := range h {
			r, ok := rank[land[i]]
			if !ok {
				t.Fatalf("seed %d: unexpected band %v", seed, land[i])
			}
			byHeight[v] = r
		}
		for v := 1; v < 20; v++ {
			if byHeight[v] < byHeight[v-1] {
				t.Errorf("seed %d: height %d ranked below height %d", seed, v, v-1)
			}
		}
		if byHeight[19] != rank[domain.LandscapeMountain] {
			t.Errorf("seed %d: height 19 is not mountain", seed)
		}
	}
}
