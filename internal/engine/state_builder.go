package engine

import (
	"dune-core/internal/domain"
	"dune-core/pkg/api"
)

// gridMeta описывает активную область мира для клиента.
func gridMeta(w *domain.WorldState) *api.GridMeta {
	info := w.Scale.Info()
	return &api.GridMeta{
		Scale:  w.Scale.String(),
		MinX:   info.MinX,
		MinY:   info.MinY,
		Width:  info.SizeX,
		Height: info.SizeY,
		Seed:   w.Seed,
	}
}

// toTileView конвертирует снимок клетки в DTO.
func toTileView(w *domain.WorldState, t domain.TileChange) api.TileView {
	return api.TileView{
		X:         t.Pos.X(),
		Y:         t.Pos.Y(),
		Ground:    t.Ground,
		Overlay:   t.Overlay,
		Landscape: w.Landscape(t.Pos).String(),
		Owner:     uint8(t.Owner),
		Revealed:  t.Revealed,
	}
}

// BuildSnapshot создает полный "снимок" активной области карты.
// Скрытые клетки отдаются без спрайта земли: клиент не должен видеть
// ландшафт под туманом.
func BuildSnapshot(w *domain.WorldState, tick uint32) api.ServerResponse {
	info := w.Scale.Info()
	tiles := make([]api.TileView, 0, info.SizeX*info.SizeY)

	for y := info.MinY; y < info.MinY+info.SizeY; y++ {
		for x := info.MinX; x < info.MinX+info.SizeX; x++ {
			t := w.SnapshotTile(domain.PackXY(x, y))
			tiles = append(tiles, concealed(w, t))
		}
	}

	return api.ServerResponse{
		Type:  api.TypeSnapshot,
		Tick:  tick,
		Grid:  gridMeta(w),
		Tiles: tiles,
	}
}

// BuildChanges создает ответ из кадра изменений.
func BuildChanges(w *domain.WorldState, frame domain.ChangeFrame) api.ServerResponse {
	tiles := make([]api.TileView, 0, len(frame.Tiles))
	for _, t := range frame.Tiles {
		tiles = append(tiles, concealed(w, t))
	}
	return api.ServerResponse{
		Type:      api.TypeChanges,
		Tick:      frame.Tick,
		Tiles:     tiles,
		Saturated: frame.Saturated,
	}
}

func concealed(w *domain.WorldState, t domain.TileChange) api.TileView {
	view := toTileView(w, t)
	if !t.Revealed {
		view.Ground = 0
		view.Landscape = ""
	}
	return view
}
