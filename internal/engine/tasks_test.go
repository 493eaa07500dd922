package engine

import (
	"reflect"
	"testing"

	"dune-core/internal/domain"
)

// recorder пишет имена вызванных задач по порядку.
type recorder struct {
	calls  []string
	counts map[string]int
	palace bool
}

func newRecorder() *recorder {
	return &recorder{counts: make(map[string]int)}
}

func (r *recorder) hit(name string) {
	r.calls = append(r.calls, name)
	r.counts[name]++
}

func (r *recorder) Degrade(*domain.WorldState, uint32)         { r.hit(TaskTerrainDegrade) }
func (r *recorder) UpdateEconomy(*domain.WorldState, uint32)   { r.hit(TaskStructureEcon) }
func (r *recorder) PalaceCountdown(*domain.WorldState, uint32) { r.hit(TaskPalace) }
func (r *recorder) HasPalace(*domain.WorldState) bool          { return r.palace }
func (r *recorder) Move(*domain.WorldState, uint32)            { r.hit(TaskUnitMove) }
func (r *recorder) Rotate(*domain.WorldState, uint32)          { r.hit(TaskUnitRotate) }
func (r *recorder) Blink(*domain.WorldState, uint32)           { r.hit(TaskUnitBlink) }
func (r *recorder) DecayDeviation(*domain.WorldState, uint32)  { r.hit(TaskUnitDeviation) }

// RunScripts есть у обоих интерфейсов, поэтому юниты записываются отдельным типом.
func (r *recorder) RunScripts(*domain.WorldState, uint32) { r.hit(TaskStructureScript) }

type unitRecorder struct{ *recorder }

func (u unitRecorder) RunScripts(*domain.WorldState, uint32) { u.hit(TaskUnitScript) }

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 77
	cfg.MapScale = domain.ScaleSmall
	return cfg
}

func TestRegisterCoreTasks_FirstTickOrder(t *testing.T) {
	rec := newRecorder()
	s := NewScheduler()
	RegisterCoreTasks(s, domain.NewWorldState(domain.ScaleSmall, 1), testConfig(), rec, unitRecorder{rec})

	s.Tick(1)

	want := []string{
		TaskStructureEcon, TaskStructureScript,
		TaskUnitMove, TaskUnitRotate, TaskUnitBlink, TaskUnitScript, TaskUnitDeviation,
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v\nwant  %v", rec.calls, want)
	}
	if len(s.Snapshot()) != 9 {
		t.Errorf("registered %d tasks, want 9", len(s.Snapshot()))
	}
}

func TestRegisterCoreTasks_Cadence(t *testing.T) {
	rec := newRecorder()
	s := NewScheduler()
	RegisterCoreTasks(s, domain.NewWorldState(domain.ScaleSmall, 1), testConfig(), rec, unitRecorder{rec})

	for tick := uint32(1); tick <= 60; tick++ {
		s.Tick(tick)
	}

	want := map[string]int{
		TaskStructureEcon:   2,
		TaskStructureScript: 12,
		TaskUnitMove:        20,
		TaskUnitRotate:      15,
		TaskUnitBlink:       20,
		TaskUnitScript:      12,
		TaskUnitDeviation:   1,
	}
	if !reflect.DeepEqual(rec.counts, want) {
		t.Errorf("counts = %v\nwant   %v", rec.counts, want)
	}
}

func TestRegisterCoreTasks_Gates(t *testing.T) {
	rec := newRecorder()
	rec.palace = true
	cfg := testConfig()
	cfg.CampaignID = 3

	s := NewScheduler()
	RegisterCoreTasks(s, domain.NewWorldState(domain.ScaleSmall, 1), cfg, rec, unitRecorder{rec})
	s.Tick(1)

	if rec.counts[TaskTerrainDegrade] != 1 {
		t.Error("degradation must run from the second campaign")
	}
	if rec.counts[TaskPalace] != 1 {
		t.Error("palace countdown must run when a palace exists")
	}
	if rec.calls[0] != TaskTerrainDegrade {
		t.Errorf("first task = %s, want %s", rec.calls[0], TaskTerrainDegrade)
	}
}

func TestRegisterCoreTasks_GameSpeed(t *testing.T) {
	rec := newRecorder()
	cfg := testConfig()
	cfg.GameSpeed = 4

	s := NewScheduler()
	RegisterCoreTasks(s, domain.NewWorldState(domain.ScaleSmall, 1), cfg, rec, unitRecorder{rec})
	for tick := uint32(1); tick <= 60; tick++ {
		s.Tick(tick)
	}

	// Быстрая игра: экономика каждые 15 тиков, поворот каждые 2
	if got := rec.counts[TaskStructureEcon]; got != 4 {
		t.Errorf("economy runs = %d, want 4", got)
	}
	if got := rec.counts[TaskUnitRotate]; got != 30 {
		t.Errorf("rotate runs = %d, want 30", got)
	}
}
