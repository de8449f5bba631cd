// Package config holds the parameters of a training run.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/voievodin/self-organizing-map/som"
)

type Config struct {
	MapSize       int     `json:"map_size"`
	Dimensions    int     `json:"dimensions"`
	DataPath      string  `json:"data_path"`
	SkipFirstLine bool    `json:"skip_first_line"`
	LabelsFront   bool    `json:"labels_front"`
	Steps         int     `json:"steps"`
	LearnRateMax  float64 `json:"learn_rate_max"`
	Divisor       float64 `json:"divisor"`
	// Seed of the random source, 0 seeds from the clock.
	Seed        int64  `json:"seed"`
	Workers     int    `json:"workers"`
	LogLevel    string `json:"log_level"`
	MetricsAddr string `json:"metrics_addr"`
}

// Default returns the digits demo setup: an 8x8 map over 64 features.
func Default() Config {
	return Config{
		MapSize:      8,
		Dimensions:   64,
		DataPath:     "optdigits.tes",
		Steps:        som.DefaultSteps,
		LearnRateMax: som.DefaultLearnRateMax,
		Divisor:      som.DefaultNormalizationDivisor,
		Workers:      1,
		LogLevel:     zerolog.LevelInfoValue,
	}
}

// Load reads the json file at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not load config %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("could not unmarshal config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.MapSize <= 0 {
		errs = append(errs, fmt.Errorf("map_size must be positive, got %d", c.MapSize))
	}
	if c.Dimensions <= 0 {
		errs = append(errs, fmt.Errorf("dimensions must be positive, got %d", c.Dimensions))
	}
	if c.DataPath == "" {
		errs = append(errs, errors.New("data_path is required"))
	}
	if c.Steps <= 0 {
		errs = append(errs, fmt.Errorf("steps must be positive, got %d", c.Steps))
	}
	if c.LearnRateMax <= 0 {
		errs = append(errs, fmt.Errorf("learn_rate_max must be positive, got %v", c.LearnRateMax))
	}
	if c.Divisor <= 0 {
		errs = append(errs, fmt.Errorf("divisor must be positive, got %v", c.Divisor))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
