package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dune-core/internal/domain"
	"dune-core/internal/engine"
	"dune-core/internal/server"
	"dune-core/internal/version"
	"dune-core/pkg/logger"

	"github.com/joho/godotenv"
)

func init() {
	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load(".env")
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed       uint64
		scaleName  string
		preview    bool
		configPath string
		replayPath string
	)
	// Читаем флаг -seed. По умолчанию 0 (значит взять из конфига или сгенерировать случайно).
	flag.Uint64Var(&seed, "seed", 0, "World seed (0 keeps config/random seed)")
	flag.StringVar(&scaleName, "scale", "", "Map scale: large, medium, small")
	flag.BoolVar(&preview, "preview", false, "Scenario preview: scheduler tasks do not run")
	flag.StringVar(&configPath, "config", "", "Path to config file (yaml/json/toml)")
	flag.StringVar(&replayPath, "replay", "", "Path to .dwcl change log to replay before start")
	flag.Parse()

	logger.Log.Info("Starting Dune core...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	if seed != 0 {
		cfg.Seed = uint32(seed)
		logger.Log.Infof("Using explicit seed: %d", cfg.Seed)
	} else {
		logger.Log.Infof("Using seed: %d", cfg.Seed)
	}
	if scaleName != "" {
		scale, ok := domain.ParseMapScale(scaleName)
		if !ok {
			logger.Log.Fatalf("Unknown map scale %q", scaleName)
		}
		cfg.MapScale = scale
	}
	if preview {
		cfg.Preview = true
	}

	// 2. Инициализация ядра с конфигом
	gameService, err := engine.NewService(cfg)
	if err != nil {
		logger.Log.Fatal("Service init error: ", err)
	}

	// Режим реплея: карта восстанавливается из журнала, дальше обычная работа
	if replayPath != "" {
		if _, err := gameService.Replay(replayPath); err != nil {
			logger.Log.Fatal("Failed to load change log: ", err)
		}
	}

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	gameService.Start(ctx)

	// 3. Запуск сервера
	srv := server.New(gameService, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown error")
	}

	// Сохраняем журнал текущей карты
	gameService.Shutdown()

	logger.Log.Info("Done.")
}
