package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"dune-core/internal/domain"
	"dune-core/internal/engine"
	"dune-core/internal/infrastructure/storage"
	"dune-core/pkg/api"
)

const debugQueryTimeout = 2 * time.Second

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/map", h.handleMap)
	mux.HandleFunc("/debug/scheduler", h.handleScheduler)
	mux.HandleFunc("/debug/preview", h.handlePreview)
	mux.HandleFunc("/debug/chunk", h.handleChunk)
	mux.HandleFunc("/debug/arena", h.handleArena)
}

// query читает мир в горутине симуляции.
func (h *DebugHandler) query(w http.ResponseWriter, r *http.Request, fn func(world *domain.WorldState, tick uint32)) bool {
	ctx, cancel := context.WithTimeout(r.Context(), debugQueryTimeout)
	defer cancel()

	if err := h.Service.Sim.Query(ctx, fn); err != nil {
		http.Error(w, "simulation is busy: "+err.Error(), http.StatusServiceUnavailable)
		return false
	}
	return true
}

// /debug/map - полный срез активной области без тумана
func (h *DebugHandler) handleMap(w http.ResponseWriter, r *http.Request) {
	type MapDump struct {
		Tick      uint32          `json:"tick"`
		Grid      *api.GridMeta   `json:"grid"`
		Tiles     []api.TileView  `json:"tiles"`
		Viewport  domain.Viewport `json:"viewport"`
		Redraws   int             `json:"pending_redraw"`
		Dropped   uint64          `json:"hub_dropped"`
		Listeners int             `json:"listeners"`
	}

	var dump MapDump
	ok := h.query(w, r, func(world *domain.WorldState, tick uint32) {
		// Снимок без скрытия тумана: это отладочный вид
		snap := engine.BuildSnapshot(world, tick)
		for i := range snap.Tiles {
			p := domain.PackXY(snap.Tiles[i].X, snap.Tiles[i].Y)
			c := world.Cell(p)
			snap.Tiles[i].Ground = c.Ground
			snap.Tiles[i].Landscape = world.Landscape(p).String()
		}
		dump = MapDump{
			Tick:     tick,
			Grid:     snap.Grid,
			Tiles:    snap.Tiles,
			Viewport: world.Viewport,
			Redraws:  world.Dirty.PendingRedraw,
		}
	})
	if !ok {
		return
	}
	dump.Dropped = h.Service.Hub.Dropped()
	dump.Listeners = h.Service.Hub.SubscriberCount()
	writeJSON(w, dump)
}

// /debug/scheduler - состояние периодических задач
func (h *DebugHandler) handleScheduler(w http.ResponseWriter, r *http.Request) {
	type SchedulerDump struct {
		Tick    uint32              `json:"tick"`
		Preview bool                `json:"preview"`
		Tasks   []engine.TaskStatus `json:"tasks"`
	}

	var dump SchedulerDump
	ok := h.query(w, r, func(_ *domain.WorldState, tick uint32) {
		dump = SchedulerDump{
			Tick:    tick,
			Preview: h.Service.Sim.Scheduler.Preview(),
			Tasks:   h.Service.Sim.Scheduler.Snapshot(),
		}
	})
	if ok {
		writeJSON(w, dump)
	}
}

// /debug/preview?seed=42&scale=small - карта для seed без запуска симуляции
func (h *DebugHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seed, err := strconv.ParseUint(q.Get("seed"), 10, 32)
	if err != nil {
		http.Error(w, "seed must be an unsigned 32-bit number", http.StatusBadRequest)
		return
	}

	scale := domain.ScaleLarge
	if name := q.Get("scale"); name != "" {
		var ok bool
		if scale, ok = domain.ParseMapScale(name); !ok {
			http.Error(w, "unknown scale "+strconv.Quote(name), http.StatusBadRequest)
			return
		}
	}

	preview, cached := h.Service.Previews.Get(uint32(seed), scale)
	if cached {
		w.Header().Set("X-Preview-Cache", "hit")
	} else {
		w.Header().Set("X-Preview-Cache", "miss")
	}
	writeJSON(w, preview)
}

// /debug/chunk - клетки текущей карты в формате сценария (payload для INIT)
func (h *DebugHandler) handleChunk(w http.ResponseWriter, r *http.Request) {
	var chunk map[string]string
	ok := h.query(w, r, func(world *domain.WorldState, _ uint32) {
		chunk = storage.EncodeChunk(world)
	})
	if ok {
		writeJSON(w, chunk)
	}
}

// /debug/arena - живые сущности арены
func (h *DebugHandler) handleArena(w http.ResponseWriter, r *http.Request) {
	type ArenaDump struct {
		Capacity int             `json:"capacity"`
		Entities []domain.Entity `json:"entities"`
	}

	var dump ArenaDump
	ok := h.query(w, r, func(world *domain.WorldState, _ uint32) {
		dump.Capacity = world.Arena.Capacity()
		dump.Entities = make([]domain.Entity, 0, world.Arena.Len())
		world.Arena.Each(func(e *domain.Entity) {
			dump.Entities = append(dump.Entities, *e)
		})
	})
	if ok {
		writeJSON(w, dump)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
