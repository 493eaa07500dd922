package admin

import (
	"os"
	"testing"

	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/internal/systems"
	"dune-core/pkg/api"
	"dune-core/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestHandleRevealAll(t *testing.T) {
	w := domain.NewWorldState(domain.ScaleSmall, 1)
	ctx := handlers.Context{World: w}

	res, err := HandleRevealAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Data != 21*21 {
		t.Errorf("revealed %v cells, want %d", res.Data, 21*21)
	}
	if !systems.IsUnveiled(w, domain.PackXY(21, 21)) || !systems.IsUnveiled(w, domain.PackXY(41, 41)) {
		t.Error("corners of the small map are not revealed")
	}
	if systems.IsUnveiled(w, domain.PackXY(20, 20)) {
		t.Error("cell outside the active area was revealed")
	}

	res, _ = HandleRevealAll(ctx)
	if res.Data != 0 {
		t.Errorf("second reveal reported %v new cells", res.Data)
	}
}

func TestHandleViewport(t *testing.T) {
	w := domain.NewWorldState(domain.ScaleLarge, 1)
	ctx := handlers.Context{World: w}
	origin := domain.PackXY(10, 20)
	w.Dirty.ViewportDisplayed.Set(uint(origin.Index()))

	if _, err := HandleViewport(ctx, api.PositionPayload{X: 10, Y: 20}); err != nil {
		t.Fatal(err)
	}
	if w.Viewport.Origin != origin {
		t.Errorf("origin = %v, want %v", w.Viewport.Origin, origin)
	}
	if w.Dirty.ViewportDisplayed.Test(uint(origin.Index())) {
		t.Error("displayed mark not cleared")
	}
	if !w.Dirty.ViewportDirty.Test(uint(origin.Offset(14, 9).Index())) {
		t.Error("far corner of the new window not marked dirty")
	}
	if w.Dirty.ViewportDirty.Test(uint(origin.Offset(15, 0).Index())) {
		t.Error("cell outside the window marked dirty")
	}
}
