package engine

import (
	"context"
	"fmt"
	"sync"

	"dune-core/internal/domain"
	"dune-core/internal/infrastructure/storage"
	"dune-core/internal/network"
	"dune-core/pkg/api"
	"dune-core/pkg/logger"
	"dune-core/pkg/mapgen"

	"github.com/sirupsen/logrus"
)

// Service связывает симуляцию с внешним миром: хаб рассылки, журнал
// изменений на диске и кэш превью.
type Service struct {
	Sim        *Simulation
	Hub        *network.Broadcaster
	Previews   *PreviewCache
	ChangeLogs *storage.ChangeLogService

	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{} // закрывается, когда цикл симуляции завершён
}

// NewService создает сервис с менеджерами построек и юнитов по умолчанию.
func NewService(cfg Config) (*Service, error) {
	return NewServiceWith(cfg, NopStructures{}, NopUnits{})
}

// NewServiceWith создает сервис с внешними менеджерами построек и юнитов.
func NewServiceWith(cfg Config, su StructureUpdater, uu UnitUpdater) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	previews, err := NewPreviewCache(cfg.PrimaryFaction)
	if err != nil {
		return nil, err
	}

	hub := network.NewBroadcaster()
	sim := NewSimulation(cfg, hub, su, uu)

	s := &Service{
		Sim:      sim,
		Hub:      hub,
		Previews: previews,
		done:     make(chan struct{}),
	}

	if cfg.ChangeLogDir != "" {
		s.ChangeLogs = storage.NewChangeLogService(cfg.ChangeLogDir)
		sim.Sink = s.ChangeLogs
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"seed":      cfg.Seed,
		"scale":     cfg.MapScale.String(),
		"speed":     cfg.GameSpeed,
		"preview":   cfg.Preview,
	}).Info("Service created")

	return s, nil
}

// Start запускает цикл симуляции в отдельной горутине.
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(s.done)
		s.Sim.Run(ctx)
	}()
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Не блокирует: если цикл остановлен или очередь полна, клиент получает ERROR.
func (s *Service) ProcessCommand(clientID string, cmd api.ClientCommand) {
	actionType := domain.ParseAction(cmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"client_id": clientID,
			"action":    cmd.Action,
		}).Warn("Unknown action")
		s.Hub.SendTo(clientID, api.ServerResponse{
			Type:  api.TypeError,
			Error: fmt.Sprintf("unknown action %q", cmd.Action),
		})
		return
	}

	select {
	case <-s.done:
		s.reject(clientID, cmd.Action, "simulation stopped")
		return
	default:
	}

	select {
	case s.Sim.CommandChan <- domain.InternalCommand{
		Action:   actionType,
		ClientID: clientID,
		Payload:  cmd.Payload,
	}:
	default:
		s.reject(clientID, cmd.Action, "command queue is full")
	}
}

func (s *Service) reject(clientID, action, reason string) {
	logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"client_id": clientID,
		"action":    action,
	}).Warn("Command dropped: " + reason)
	s.Hub.SendTo(clientID, api.ServerResponse{
		Type:  api.TypeError,
		Error: fmt.Sprintf("%s: %s", action, reason),
	})
}

// Shutdown останавливает цикл и сохраняет журнал текущей карты.
func (s *Service) Shutdown() {
	if s.cancel != nil {
		s.cancel()
		s.wg.Wait()
	}
	s.Sim.FlushJournal()
	s.Previews.Close()
}

// Replay загружает журнал и применяет его кадры к миру, сгенерированному
// из seed и масштаба журнала. Цикл симуляции должен быть остановлен.
func (s *Service) Replay(path string) (*domain.ChangeLog, error) {
	if s.ChangeLogs == nil {
		return nil, fmt.Errorf("replay %s: change log storage is disabled", path)
	}
	log, err := s.ChangeLogs.Load(path)
	if err != nil {
		return nil, err
	}

	w := s.Sim.World
	w.Scale = log.Scale
	mapgen.Generate(w, log.Seed)
	info := w.Scale.Info()
	w.Viewport = domain.Viewport{Origin: domain.PackXY(info.MinX, info.MinY)}
	for _, f := range log.Frames {
		w.ApplyFrame(f)
	}
	s.Sim.Journal = log

	logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"path":      path,
		"seed":      log.Seed,
		"frames":    len(log.Frames),
	}).Info("Change log replayed")
	return log, nil
}
