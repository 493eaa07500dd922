package engine

import (
	"dune-core/internal/domain"
)

// StructureUpdater - внешний менеджер построек. Движок только решает,
// когда его вызывать.
type StructureUpdater interface {
	Degrade(w *domain.WorldState, tick uint32)
	UpdateEconomy(w *domain.WorldState, tick uint32)
	RunScripts(w *domain.WorldState, tick uint32)
	PalaceCountdown(w *domain.WorldState, tick uint32)
	HasPalace(w *domain.WorldState) bool
}

// UnitUpdater - внешний менеджер юнитов.
type UnitUpdater interface {
	Move(w *domain.WorldState, tick uint32)
	Rotate(w *domain.WorldState, tick uint32)
	Blink(w *domain.WorldState, tick uint32)
	RunScripts(w *domain.WorldState, tick uint32)
	DecayDeviation(w *domain.WorldState, tick uint32)
}

// Имена задач в порядке выполнения.
const (
	TaskTerrainDegrade  = "terrain_degrade"
	TaskStructureEcon   = "structure_economy"
	TaskStructureScript = "structure_script"
	TaskPalace          = "palace_countdown"
	TaskUnitMove        = "unit_move"
	TaskUnitRotate      = "unit_rotate"
	TaskUnitBlink       = "unit_blink"
	TaskUnitScript      = "unit_script"
	TaskUnitDeviation   = "unit_deviation"
)

// RegisterCoreTasks регистрирует девять периодических задач.
// Постройки обновляются раньше юнитов.
func RegisterCoreTasks(s *Scheduler, w *domain.WorldState, cfg Config, su StructureUpdater, uu UnitUpdater) {
	speed := cfg.GameSpeed

	// 1. Постройки
	s.Register(Task{
		Name: TaskTerrainDegrade,
		Interval: func() uint32 {
			return AdjustToGameSpeed(10800, 5400, 21600, true, speed)
		},
		// Деградация без бетона включается со второй кампании
		Enabled: func() bool { return cfg.CampaignID > 1 },
		Run:     func(tick uint32) { su.Degrade(w, tick) },
	})
	s.Register(Task{
		Name: TaskStructureEcon,
		Interval: func() uint32 {
			return AdjustToGameSpeed(30, 15, 60, true, speed)
		},
		Run: func(tick uint32) { su.UpdateEconomy(w, tick) },
	})
	s.Register(Task{
		Name:     TaskStructureScript,
		Interval: Fixed(5),
		Run:      func(tick uint32) { su.RunScripts(w, tick) },
	})
	s.Register(Task{
		Name:     TaskPalace,
		Interval: Fixed(60),
		Enabled:  func() bool { return su.HasPalace(w) },
		Run:      func(tick uint32) { su.PalaceCountdown(w, tick) },
	})

	// 2. Юниты
	s.Register(Task{
		Name:     TaskUnitMove,
		Interval: Fixed(3),
		Run:      func(tick uint32) { uu.Move(w, tick) },
	})
	s.Register(Task{
		Name: TaskUnitRotate,
		Interval: func() uint32 {
			return AdjustToGameSpeed(4, 2, 8, true, speed)
		},
		Run: func(tick uint32) { uu.Rotate(w, tick) },
	})
	s.Register(Task{
		Name:     TaskUnitBlink,
		Interval: Fixed(3),
		Run:      func(tick uint32) { uu.Blink(w, tick) },
	})
	s.Register(Task{
		Name:     TaskUnitScript,
		Interval: Fixed(5),
		Run:      func(tick uint32) { uu.RunScripts(w, tick) },
	})
	s.Register(Task{
		Name:     TaskUnitDeviation,
		Interval: Fixed(60),
		Run:      func(tick uint32) { uu.DecayDeviation(w, tick) },
	})
}

// NopStructures - менеджер построек по умолчанию, пока внешний не подключен.
// Дворца нет, поэтому отсчёт дворца не запускается.
type NopStructures struct{}

func (NopStructures) Degrade(*domain.WorldState, uint32)         {}
func (NopStructures) UpdateEconomy(*domain.WorldState, uint32)   {}
func (NopStructures) RunScripts(*domain.WorldState, uint32)      {}
func (NopStructures) PalaceCountdown(*domain.WorldState, uint32) {}
func (NopStructures) HasPalace(*domain.WorldState) bool          { return false }

// NopUnits - менеджер юнитов по умолчанию.
type NopUnits struct{}

func (NopUnits) Move(*domain.WorldState, uint32)           {}
func (NopUnits) Rotate(*domain.WorldState, uint32)         {}
func (NopUnits) Blink(*domain.WorldState, uint32)          {}
func (NopUnits) RunScripts(*domain.WorldState, uint32)     {}
func (NopUnits) DecayDeviation(*domain.WorldState, uint32) {}
