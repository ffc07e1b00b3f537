package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/oomph-ac/movesim/game"
	"github.com/oomph-ac/movesim/movement"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for the movement engine and the simulator around it.
type Settings struct {
	Movement struct {
		// StepHeight overrides the step height of every actor if set. Zero keeps the value of each actor kind.
		StepHeight     float64 `toml:"step_height" env:"MOVESIM_STEP_HEIGHT"`
		WaterFlowScale float64 `toml:"water_flow_scale" env:"MOVESIM_WATER_FLOW_SCALE"`
		LavaFlowScale  float64 `toml:"lava_flow_scale" env:"MOVESIM_LAVA_FLOW_SCALE"`
		UltraWarm      bool    `toml:"ultra_warm" env:"MOVESIM_ULTRA_WARM"`
		EdgeBackOff    bool    `toml:"edge_back_off" env:"MOVESIM_EDGE_BACK_OFF"`
	} `toml:"movement"`
	Workers struct {
		// Count is the number of region workers. Zero or less starts one per CPU.
		Count int `toml:"count" env:"MOVESIM_WORKERS"`
	} `toml:"workers"`
	Log struct {
		Level string `toml:"level" env:"MOVESIM_LOG_LEVEL"`
	} `toml:"log"`
	Sentry struct {
		DSN         string `toml:"dsn" env:"MOVESIM_SENTRY_DSN"`
		Environment string `toml:"environment" env:"MOVESIM_SENTRY_ENVIRONMENT"`
	} `toml:"sentry"`
	Stats struct {
		Enabled bool   `toml:"enabled" env:"MOVESIM_STATS"`
		Addr    string `toml:"addr" env:"MOVESIM_STATS_ADDR"`
	} `toml:"stats"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Movement.WaterFlowScale = game.WaterFlowScale
	s.Movement.LavaFlowScale = game.LavaFlowScale
	s.Movement.EdgeBackOff = true
	s.Log.Level = "info"
	s.Sentry.Environment = "development"
	s.Stats.Addr = "localhost:18066"
	return s
}

// MovementOptions returns the integrator options described by the settings.
func (s Settings) MovementOptions() movement.Options {
	opts := movement.DefaultOptions()
	if s.Movement.WaterFlowScale > 0 {
		opts.WaterFlowScale = s.Movement.WaterFlowScale
	}
	if s.Movement.LavaFlowScale > 0 {
		opts.LavaFlowScale = s.Movement.LavaFlowScale
	}
	opts.UltraWarm = s.Movement.UltraWarm
	opts.EdgeBackOff = s.Movement.EdgeBackOff
	return opts
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load loads the settings from the file at path on top of the defaults, then applies any MOVESIM_* environment
// variables. An empty path skips the file.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("error reading config: %w", err)
		}
		if err := toml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("error decoding config: %w", err)
		}
	}
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("error parsing environment: %w", err)
	}
	return s, nil
}
