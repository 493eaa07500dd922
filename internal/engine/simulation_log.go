package engine

import (
	"dune-core/internal/domain"
	"dune-core/internal/engine/handlers"
	"dune-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// logResult пишет итог команды в лог сервера
func (s *Simulation) logResult(cmd domain.InternalCommand, result handlers.Result, err error) {
	entry := logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"tick":      s.tick,
		"client_id": cmd.ClientID,
		"action":    cmd.Action.String(),
	})

	if err != nil {
		entry.WithError(err).Warn("Command rejected")
		return
	}
	if result.Msg == "" {
		entry.Debug("Command applied")
		return
	}
	entry.WithField("log_type", result.MsgType).Info(result.Msg)
}
