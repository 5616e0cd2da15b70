package experiments

import (
	"antics/agent"
	"antics/config"
	"antics/engine"
	"antics/experiments/metrics"
	"antics/game"
	"antics/heuristic"
	"antics/searcher"
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var baseline = agent.Config{ID: 0, Kind: agent.RandomKind}

// DepthExperiment pairs search agents of increasing depth against the random baseline.
func DepthExperiment() *config.Experiment {
	exp := &config.Experiment{Name: "depth", Agents: []agent.Config{baseline}, Alternate: true}
	for depth := 0; depth <= 3; depth++ {
		cfg := agent.Config{ID: depth + 1, Depth: depth, Evaluation: heuristic.DifferentialName, ExcludeQueenMoves: true}
		exp.Agents = append(exp.Agents, cfg)
		exp.MatchUps = append(exp.MatchUps, [2]int{baseline.ID, cfg.ID})
	}
	return exp
}

// EvaluationExperiment plays every strategy, aggregation and prune combination against the baseline.
func EvaluationExperiment() *config.Experiment {
	exp := &config.Experiment{Name: "evaluation", Agents: []agent.Config{baseline}, Alternate: true}
	id := 1
	for _, evaluation := range []string{heuristic.DifferentialName, heuristic.PositionalName} {
		for _, aggregation := range []searcher.AggregationMode{searcher.Mean, searcher.Max} {
			for _, prune := range []searcher.PruneMode{searcher.Full, searcher.ThirdBestFirst} {
				cfg := agent.Config{
					ID:                id,
					Depth:             searcher.DefaultDepth,
					Evaluation:        evaluation,
					Aggregation:       aggregation.String(),
					Prune:             prune.String(),
					ExcludeQueenMoves: true,
				}
				exp.Agents = append(exp.Agents, cfg)
				exp.MatchUps = append(exp.MatchUps, [2]int{baseline.ID, id})
				id++
			}
		}
	}
	return exp
}

// Run plays every matchup of exp and writes the results, returning the output directory.
func Run(ctx context.Context, exp *config.Experiment) (string, error) {
	exp.ApplyDefaults()
	if err := exp.Validate(); err != nil {
		return "", err
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchUp := range exp.MatchUps {
		config1, _ := exp.Agent(matchUp[0])
		config2, _ := exp.Agent(matchUp[1])

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), config1, config2)

		for i := 0; i < exp.Games; i++ {
			// Seats swap every other game so neither agent always moves first
			first, second := config1, config2
			if exp.Alternate && i%2 == 1 {
				first, second = config2, config1
			}
			count++

			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(exp.MatchUps), i+1, exp.Games)

			winner, gameMetric, moveMetrics, err := runGame(ctx, exp, first, second, count)
			if err != nil {
				return "", errors.WithMessagef(err, "matchup %d game %d", mi+1, i+1)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.MatchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	return store(exp, gameRecords, moveRecords)
}

func store(exp *config.Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(exp.Output, exp.Name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}

	// Store experiment metadata
	configs := make([]metrics.AgentConfig, 0, len(exp.Agents))
	for _, cfg := range exp.Agents {
		configs = append(configs, cfg.Metrics())
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", errors.Wrap(err, "failed to store agent configs")
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", errors.Wrap(err, "failed to write game records")
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", errors.Wrap(err, "failed to write move records")
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame executes a single game between two agents, first seated as player one.
func runGame(ctx context.Context, exp *config.Experiment, first, second agent.Config, gameID int) (game.PlayerID, metrics.GameMetric, []metrics.MoveMetric, error) {
	rules := game.NewStandardRules()
	agents := []agent.Agent{}
	for player, cfg := range []agent.Config{first, second} {
		cfg.Player = game.PlayerID(player)
		if cfg.Seed != 0 {
			// Seeded agents still vary from game to game
			cfg.Seed += uint64(gameID)
		}
		a, err := agent.New(cfg, rules)
		if err != nil {
			return game.NoPlayer, metrics.GameMetric{}, nil, err
		}
		agents = append(agents, a)
	}

	options := []engine.Option{engine.WithMaxMoves(exp.MaxMoves)}
	if exp.MoveTimeout > 0 {
		options = append(options, engine.WithMoveTimeout(exp.MoveTimeout))
	}
	return engine.NewLocalEngine(rules, agents, options...).Run(ctx)
}
