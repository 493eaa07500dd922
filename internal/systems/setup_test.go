package systems

import (
	"dune-core/internal/domain"
	"dune-core/pkg/logger"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

const testPrimary domain.Faction = 1

// flatWorld создаёт большую карту, целиком покрытую одной категорией,
// без тумана.
func flatWorld(l domain.Landscape) *domain.WorldState {
	w := domain.NewWorldState(domain.ScaleLarge, testPrimary)
	sprite, _ := domain.LandscapeSprite(l, 0x0F)
	if l == domain.LandscapeSand {
		sprite = domain.SpriteSandBase
	}
	for i := range w.Cells {
		w.Cells[i] = domain.Cell{Ground: sprite}
	}
	return w
}

// setLandscape перекрашивает одну клетку без пересчёта соседей.
func setLandscape(w *domain.WorldState, p domain.PackedCoordinate, l domain.Landscape) {
	sprite, _ := domain.LandscapeSprite(l, 0)
	w.Cell(p).Ground = sprite
}
