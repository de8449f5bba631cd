package main

import (
	"flag"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voievodin/self-organizing-map/config"
	"github.com/voievodin/self-organizing-map/dataset"
	"github.com/voievodin/self-organizing-map/metrics"
	"github.com/voievodin/self-organizing-map/som"
)

func main() {
	var configPath string
	flags := config.Default()
	flag.StringVar(&configPath, "config", "", "json config file, flags override its values")
	flag.IntVar(&flags.MapSize, "size", flags.MapSize, "map side length")
	flag.IntVar(&flags.Dimensions, "dimensions", flags.Dimensions, "number of features per record")
	flag.StringVar(&flags.DataPath, "data", flags.DataPath, "comma delimited data file")
	flag.BoolVar(&flags.SkipFirstLine, "skip-first-line", flags.SkipFirstLine, "skip the header line")
	flag.BoolVar(&flags.LabelsFront, "labels-front", flags.LabelsFront, "label is the first field")
	flag.IntVar(&flags.Steps, "steps", flags.Steps, "training steps")
	flag.Float64Var(&flags.LearnRateMax, "learn-rate", flags.LearnRateMax, "initial learning rate")
	flag.Float64Var(&flags.Divisor, "divisor", flags.Divisor, "normalization divisor")
	flag.Int64Var(&flags.Seed, "seed", flags.Seed, "random seed, 0 seeds from the clock")
	flag.IntVar(&flags.Workers, "workers", flags.Workers, "parallel bmu lookups during label assignment")
	flag.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level")
	flag.StringVar(&flags.MetricsAddr, "metrics-addr", flags.MetricsAddr, "serve prometheus metrics on this address")
	flag.Parse()

	cfg := flags
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal().Err(err).Msg("could not load config")
		}
		flag.Visit(func(f *flag.Flag) {
			overrideFlag(&cfg, flags, f.Name)
		})
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	logger := log.With().Str("run", uuid.NewString()).Logger()
	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("som demo failed")
		os.Exit(1)
	}
}

func overrideFlag(cfg *config.Config, flags config.Config, name string) {
	switch name {
	case "size":
		cfg.MapSize = flags.MapSize
	case "dimensions":
		cfg.Dimensions = flags.Dimensions
	case "data":
		cfg.DataPath = flags.DataPath
	case "skip-first-line":
		cfg.SkipFirstLine = flags.SkipFirstLine
	case "labels-front":
		cfg.LabelsFront = flags.LabelsFront
	case "steps":
		cfg.Steps = flags.Steps
	case "learn-rate":
		cfg.LearnRateMax = flags.LearnRateMax
	case "divisor":
		cfg.Divisor = flags.Divisor
	case "seed":
		cfg.Seed = flags.Seed
	case "workers":
		cfg.Workers = flags.Workers
	case "log-level":
		cfg.LogLevel = flags.LogLevel
	case "metrics-addr":
		cfg.MetricsAddr = flags.MetricsAddr
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	logger.Info().Msg("SOM demo - start")

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		go func() {
			err := http.ListenAndServe(cfg.MetricsAddr, collector.Handler())
			logger.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("metrics server stopped")
		}()
	}

	set, err := dataset.Load(cfg.DataPath, dataset.Options{
		Dimensions:    cfg.Dimensions,
		SkipFirstLine: cfg.SkipFirstLine,
		LabelsFront:   cfg.LabelsFront,
		Divisor:       cfg.Divisor,
		Logger:        &logger,
	})
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	somap, err := som.New(cfg.MapSize, cfg.MapSize, cfg.Dimensions,
		som.WithRand(rand.New(rand.NewSource(seed))),
		som.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	somap.Steps = cfg.Steps
	somap.Restraint = &som.LinearRestraintFunc{MaxRate: cfg.LearnRateMax}
	somap.Workers = cfg.Workers
	somap.Observer = collector

	if err := somap.Learn(set); err != nil {
		return err
	}
	labels, err := somap.AssignLabels(set)
	if err != nil {
		return err
	}
	collector.ObserveLabels(labels)

	if err := som.Report(os.Stdout, labels); err != nil {
		return err
	}
	logger.Info().Msg("SOM demo - end")
	return nil
}
