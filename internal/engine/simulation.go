package engine

import (
	"context"
	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/internal/engine/handlers/actions"
	"dune-core/internal/engine/handlers/admin"
	"dune-core/internal/network"
	"dune-core/pkg/api"
	"dune-core/pkg/logger"
	"dune-core/pkg/mapgen"
	"dune-core/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
)

// ChangeLogSink сохраняет журнал изменений (см. storage.ChangeLogService).
type ChangeLogSink interface {
	Save(log *domain.ChangeLog) (string, error)
}

// Simulation владеет миром и планировщиком. Все мутации мира происходят
// в горутине Run, внешние вызовы приходят через каналы.
type Simulation struct {
	World     *domain.WorldState
	Scheduler *Scheduler
	Config    Config

	// Каналы коммуникации
	CommandChan chan domain.InternalCommand // Команды от клиентов
	queryChan   chan func(w *domain.WorldState, tick uint32)

	Hub     *network.Broadcaster
	Journal *domain.ChangeLog // Лента изменений текущей карты
	Sink    ChangeLogSink     // Куда сбрасывать ленту, может быть nil

	Rng  *utils.ByteStream // Локальный генератор
	tick uint32            // Локальное время симуляции

	handlers map[domain.ActionType]handlers.HandlerFunc
}

func NewSimulation(cfg Config, hub *network.Broadcaster, su StructureUpdater, uu UnitUpdater) *Simulation {
	world := mapgen.NewWorld(cfg.Seed, cfg.MapScale, cfg.PrimaryFaction)

	s := &Simulation{
		World:       world,
		Scheduler:   NewScheduler(),
		Config:      cfg,
		CommandChan: make(chan domain.InternalCommand, 100),
		queryChan:   make(chan func(*domain.WorldState, uint32), 10),
		Hub:         hub,
		Journal:     newJournal(world),
		Rng:         utils.NewByteStream(cfg.Seed),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
	}

	RegisterCoreTasks(s.Scheduler, world, cfg, su, uu)
	s.Scheduler.SetPreview(cfg.Preview)
	s.registerHandlers()
	return s
}

func newJournal(w *domain.WorldState) *domain.ChangeLog {
	return &domain.ChangeLog{
		Seed:      w.Seed,
		Scale:     w.Scale,
		Timestamp: time.Now().Unix(),
		Frames:    make([]domain.ChangeFrame, 0),
	}
}

func (s *Simulation) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithPayload(actions.HandleInit)
	s.handlers[domain.ActionUnveil] = handlers.WithPayload(actions.HandleUnveil)
	s.handlers[domain.ActionSpice] = handlers.WithPayload(actions.HandleSpice)
	s.handlers[domain.ActionWall] = handlers.WithPayload(actions.HandleWall)
	s.handlers[domain.ActionConcrete] = handlers.WithPayload(actions.HandleConcrete)
	s.handlers[domain.ActionBloom] = handlers.WithPayload(actions.HandleBloom)
	s.handlers[domain.ActionSpawn] = handlers.WithPayload(actions.HandleSpawn)
	s.handlers[domain.ActionRemove] = handlers.WithPayload(actions.HandleRemove)
	s.handlers[domain.ActionEvaluate] = handlers.WithPayload(actions.HandleEvaluate)
	s.handlers[domain.ActionLink] = handlers.WithPayload(actions.HandleLink)
	s.handlers[domain.ActionViewport] = handlers.WithPayload(admin.HandleViewport)
	s.handlers[domain.ActionRevealAll] = handlers.WithEmptyPayload(admin.HandleRevealAll)
}

// Run запускает цикл симуляции до отмены ctx.
func (s *Simulation) Run(ctx context.Context) {
	runLogger := logger.Log.WithFields(logrus.Fields{
		"component": "simulation",
		"seed":      s.World.Seed,
		"scale":     s.World.Scale.String(),
	})
	runLogger.Info("Simulation loop started")

	ticker := time.NewTicker(s.Config.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			runLogger.WithField("tick", s.tick).Info("Simulation loop stopped")
			return

		// Команда
		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)

		// Чтение состояния снаружи (debug)
		case q := <-s.queryChan:
			q(s.World, s.tick)

		case <-ticker.C:
			s.Step()
		}
	}
}

// Step выполняет один тик: задачи планировщика и публикация изменений.
func (s *Simulation) Step() {
	s.tick++
	s.Scheduler.Tick(s.tick)
	s.publishChanges()
}

// Tick возвращает текущий тик. Только для горутины симуляции и тестов.
func (s *Simulation) Tick() uint32 {
	return s.tick
}

// publishChanges забирает экспорт изменений, пишет его в ленту
// и рассылает подписчикам.
func (s *Simulation) publishChanges() {
	frame := s.World.DrainChanges(s.tick)
	if len(frame.Tiles) == 0 {
		return
	}
	s.Journal.Append(frame)
	if s.Hub != nil {
		s.Hub.Broadcast(BuildChanges(s.World, frame))
	}
}

// Query выполняет fn в горутине симуляции и ждёт завершения.
func (s *Simulation) Query(ctx context.Context, fn func(w *domain.WorldState, tick uint32)) error {
	done := make(chan struct{})
	wrapped := func(w *domain.WorldState, tick uint32) {
		fn(w, tick)
		close(done)
	}

	select {
	case s.queryChan <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// executeCommand выполняет команду и отвечает клиенту
func (s *Simulation) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		s.reply(cmd.ClientID, api.ServerResponse{
			Type:  api.TypeError,
			Tick:  s.tick,
			Error: "unsupported action " + cmd.Action.String(),
		})
		return
	}

	ctx := handlers.Context{
		World:    s.World,
		Rng:      s.Rng,
		Tick:     s.tick,
		ClientID: cmd.ClientID,
	}

	// Изменения, накопленные до пересоздания мира, публикуются в старую ленту
	if cmd.Action == domain.ActionInit {
		s.publishChanges()
	}

	result, err := handler(ctx, cmd.Payload)
	s.logResult(cmd, result, err)

	if err != nil {
		s.reply(cmd.ClientID, api.ServerResponse{
			Type:  api.TypeError,
			Tick:  s.tick,
			Error: err.Error(),
		})
		return
	}

	if result.Reset {
		s.rotateJournal()
		if s.Hub != nil {
			s.Hub.Broadcast(BuildSnapshot(s.World, s.tick))
		}
	} else if result.Snapshot {
		s.reply(cmd.ClientID, BuildSnapshot(s.World, s.tick))
	}

	s.reply(cmd.ClientID, api.ServerResponse{
		Type:    api.TypeResult,
		Tick:    s.tick,
		Result:  result.Data,
		Message: result.Msg,
	})
}

func (s *Simulation) reply(clientID string, resp api.ServerResponse) {
	if s.Hub == nil || clientID == "" {
		return
	}
	s.Hub.SendTo(clientID, resp)
}

// rotateJournal сохраняет ленту старой карты и начинает новую.
func (s *Simulation) rotateJournal() {
	s.FlushJournal()
	s.Journal = newJournal(s.World)
}

// FlushJournal сохраняет непустую ленту через Sink.
// Вызывать из горутины симуляции или после её остановки.
func (s *Simulation) FlushJournal() {
	if s.Sink == nil || len(s.Journal.Frames) == 0 {
		return
	}
	path, err := s.Sink.Save(s.Journal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save change log")
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "simulation",
		"path":      path,
		"frames":    len(s.Journal.Frames),
	}).Info("Change log saved")
}
