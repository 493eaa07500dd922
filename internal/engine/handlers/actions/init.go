package actions

import (
	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/internal/infrastructure/storage"
	"dune-core/internal/systems"
	"dune-core/pkg/api"
	"dune-core/pkg/logger"
	"dune-core/pkg/mapgen"
	"fmt"

	"github.com/sirupsen/logrus"
)

// HandleInit отдаёт клиенту полный срез карты. Если в payload есть seed,
// scale или chunk, мир сначала генерируется заново.
func HandleInit(ctx handlers.Context, p api.InitPayload) (handlers.Result, error) {
	w := ctx.World

	if p.Seed == nil && p.Scale == "" && len(p.Chunk) == 0 {
		return handlers.Result{
			Msg:      fmt.Sprintf("Карта %s, зерно %d.", w.Scale, w.Seed),
			MsgType:  "INFO",
			Snapshot: true,
		}, nil
	}

	// 1. Параметры новой карты (чего нет в payload, берём из текущей)
	seed := w.Seed
	if p.Seed != nil {
		seed = *p.Seed
	}
	if p.Scale != "" {
		scale, ok := domain.ParseMapScale(p.Scale)
		if !ok {
			return handlers.Result{}, fmt.Errorf("unknown map scale %q", p.Scale)
		}
		w.Scale = scale
	}

	// 2. Генерация
	mapgen.Generate(w, seed)
	info := w.Scale.Info()
	w.Viewport = domain.Viewport{Origin: domain.PackXY(info.MinX, info.MinY)}

	// 3. Клетки сценария
	applied := applyChunk(w, p.Chunk)

	logger.Log.WithFields(logrus.Fields{
		"component": "handlers",
		"client":    ctx.ClientID,
		"seed":      seed,
		"scale":     w.Scale.String(),
		"chunk":     applied,
	}).Info("World regenerated")

	return handlers.Result{
		Msg:      fmt.Sprintf("Новая карта %s, зерно %d.", w.Scale, seed),
		MsgType:  "WORLD",
		Snapshot: true,
		Reset:    true,
	}, nil
}

// applyChunk переносит клетки сценария на карту: спрайт земли и владелец
// записываются как есть, раскрытые клетки раскрываются через туман.
// Флаги присутствия не создают оккупантов, клетки вне активной области
// пропускаются.
func applyChunk(w *domain.WorldState, chunk map[string]string) int {
	if len(chunk) == 0 {
		return 0
	}
	cells := storage.DecodeChunk(chunk)
	applied := 0
	for _, cc := range cells {
		c := w.Cell(cc.Pos)
		if c == nil || !w.IsValidPosition(cc.Pos) {
			continue
		}
		c.Ground = cc.Ground
		c.Owner = cc.Owner
		systems.MarkDirty(w, cc.Pos)
		applied++
	}
	for _, cc := range cells {
		if cc.Revealed && w.IsValidPosition(cc.Pos) {
			systems.Unveil(w, cc.Pos, w.PrimaryFaction)
		}
	}
	return applied
}
