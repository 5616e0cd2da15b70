package main

import (
	"antics/config"
	"antics/experiments"
	"antics/logger"
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "experiment YAML file")
	preset := flag.String("experiment", "depth", "built-in experiment when no config is given: depth or evaluation")
	games := flag.Int("games", 0, "games per matchup, overrides the experiment")
	output := flag.String("output", "", "results directory, overrides the experiment")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to read .env")
	}
	closeLog := logger.Init()
	defer closeLog()

	exp, err := loadExperiment(*configPath, *preset)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid experiment")
	}
	if *games > 0 {
		exp.Games = *games
	}
	if *output != "" {
		exp.Output = *output
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dir, err := experiments.Run(ctx, exp)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", exp.Name)
	}
	log.Info().Str("dir", dir).Msgf("%s experiment results stored", exp.Name)
}

func loadExperiment(path, preset string) (*config.Experiment, error) {
	if path != "" {
		return config.Load(path)
	}
	switch preset {
	case "depth":
		return experiments.DepthExperiment(), nil
	case "evaluation":
		return experiments.EvaluationExperiment(), nil
	default:
		return nil, errors.Errorf("unknown experiment %q", preset)
	}
}
