package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dune-core/internal/domain"

	"github.com/spf13/viper"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно генерации карты.
	Seed uint32
	// MapScale - пресет размера активной области.
	MapScale domain.MapScale
	// GameSpeed - скорость игры 0..4, 2 - нормальная.
	GameSpeed int
	// CampaignID - номер кампании (деградация включается с 2).
	CampaignID int
	// PrimaryFaction - фракция, для которой ведётся туман.
	PrimaryFaction domain.Faction
	// TickRate - длительность одного тика симуляции.
	TickRate time.Duration
	// Preview - режим предпросмотра сценария: задачи не исполняются.
	Preview bool

	Port         string
	ChangeLogDir string
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:           uint32(time.Now().UnixNano()),
		MapScale:       domain.ScaleLarge,
		GameSpeed:      2,
		CampaignID:     1,
		PrimaryFaction: 1,
		TickRate:       time.Second / 60,
		Port:           "8080",
		ChangeLogDir:   "changelogs",
	}
}

// LoadConfig читает конфиг из файла path (если задан) и переменных окружения
// с префиксом DUNE_ (DUNE_SEED, DUNE_MAP_SCALE, ...). Незаданные поля
// берутся из NewConfig.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	v := viper.New()
	v.SetEnvPrefix("DUNE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("map_scale", cfg.MapScale.String())
	v.SetDefault("game_speed", cfg.GameSpeed)
	v.SetDefault("campaign_id", cfg.CampaignID)
	v.SetDefault("primary_faction", int(cfg.PrimaryFaction))
	v.SetDefault("tick_rate", cfg.TickRate)
	v.SetDefault("preview", cfg.Preview)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("changelog_dir", cfg.ChangeLogDir)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	scale, ok := domain.ParseMapScale(v.GetString("map_scale"))
	if !ok {
		return cfg, fmt.Errorf("unknown map_scale %q", v.GetString("map_scale"))
	}

	cfg.Seed = v.GetUint32("seed")
	cfg.MapScale = scale
	cfg.GameSpeed = v.GetInt("game_speed")
	cfg.CampaignID = v.GetInt("campaign_id")
	cfg.PrimaryFaction = domain.Faction(v.GetInt("primary_faction"))
	cfg.TickRate = v.GetDuration("tick_rate")
	cfg.Preview = v.GetBool("preview")
	cfg.Port = v.GetString("port")
	cfg.ChangeLogDir = v.GetString("changelog_dir")

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет диапазоны полей.
func (c Config) Validate() error {
	if c.GameSpeed < 0 || c.GameSpeed > 4 {
		return fmt.Errorf("game_speed %d out of range 0..4", c.GameSpeed)
	}
	if c.PrimaryFaction > domain.MaxFaction {
		return fmt.Errorf("primary_faction %d out of range 0..%d", c.PrimaryFaction, domain.MaxFaction)
	}
	if c.TickRate <= 0 {
		return errors.New("tick_rate must be positive")
	}
	if !c.MapScale.Valid() {
		return fmt.Errorf("invalid map scale %d", c.MapScale)
	}
	return nil
}
