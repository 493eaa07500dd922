package engine

import (
	"dune-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// IntervalFunc returns the number of ticks until the task is due again.
// It is evaluated on every reschedule, so game-speed changes apply on the next run.
type IntervalFunc func() uint32

// Fixed returns an IntervalFunc with a constant cadence.
func Fixed(n uint32) IntervalFunc {
	return func() uint32 { return n }
}

// Task is one periodic subsystem update.
type Task struct {
	Name     string
	Interval IntervalFunc
	// Enabled is optional; a disabled task stays due and runs as soon as it is enabled again.
	Enabled func() bool
	Run     func(tick uint32)

	nextDue uint32
	runs    uint64
}

// TaskStatus is a read-only view of a task for debugging.
type TaskStatus struct {
	Name    string `json:"name"`
	NextDue uint32 `json:"next_due"`
	Runs    uint64 `json:"runs"`
	Enabled bool   `json:"enabled"`
}

// Scheduler runs registered tasks in declaration order when their own
// next-due counter has elapsed. It is not safe for concurrent use:
// the simulation goroutine owns it.
type Scheduler struct {
	tasks   []*Task
	preview bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make([]*Task, 0, 9)}
}

// Register appends a task. Tasks run in the order they were registered.
// A new task is due immediately.
func (s *Scheduler) Register(t Task) {
	if t.Interval == nil {
		t.Interval = Fixed(1)
	}
	s.tasks = append(s.tasks, &t)
}

// SetPreview switches the scenario-preview mode. In preview no task body
// runs, but due counters keep advancing so leaving preview does not cause a burst.
func (s *Scheduler) SetPreview(on bool) {
	if s.preview != on {
		logger.Log.WithFields(logrus.Fields{
			"component": "scheduler",
			"preview":   on,
		}).Info("Preview mode switched")
	}
	s.preview = on
}

// Preview reports whether task execution is suppressed.
func (s *Scheduler) Preview() bool {
	return s.preview
}

// Tick processes one simulation tick and returns how many tasks ran.
func (s *Scheduler) Tick(now uint32) int {
	ran := 0
	for _, t := range s.tasks {
		if now < t.nextDue {
			continue
		}
		if t.Enabled != nil && !t.Enabled() {
			continue
		}

		interval := t.Interval()
		if interval == 0 {
			interval = 1
		}
		t.nextDue = now + interval

		if s.preview {
			continue
		}
		t.Run(now)
		t.runs++
		ran++
	}
	return ran
}

// Snapshot returns the state of every task in execution order.
func (s *Scheduler) Snapshot() []TaskStatus {
	result := make([]TaskStatus, 0, len(s.tasks))
	for _, t := range s.tasks {
		result = append(result, TaskStatus{
			Name:    t.Name,
			NextDue: t.nextDue,
			Runs:    t.runs,
			Enabled: t.Enabled == nil || t.Enabled(),
		})
	}
	return result
}

// AdjustToGameSpeed scales a cadence by the game speed (0 slowest .. 4 fastest, 2 normal).
// The result is clamped to [normal/2, normal*2]. With inverse set a faster game
// yields a shorter interval.
func AdjustToGameSpeed(normal, minimum, maximum uint32, inverse bool, speed int) uint32 {
	if speed == 2 || speed < 0 || speed > 4 {
		return normal
	}
	if maximum > normal*2 {
		maximum = normal * 2
	}
	if minimum < normal/2 {
		minimum = normal / 2
	}
	if inverse {
		speed = 4 - speed
	}

	switch speed {
	case 0:
		return minimum
	case 1:
		return normal - (normal-minimum)/2
	case 3:
		return normal + (maximum-normal)/2
	default:
		return maximum
	}
}
