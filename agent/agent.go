package agent

import (
	"antics/experiments/metrics"
	"antics/game"
	"antics/heuristic"
	"antics/meta"
	"antics/searcher"
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

const (
	SearchKind = "search"
	RandomKind = "random"
)

type Agent interface {
	// FindMove returns the action to play in state and the metrics of the search that chose it (if collected)
	FindMove(ctx context.Context, state *game.State) (game.Action, metrics.SearchMetric, error)
	// Placement returns the tiles to place on in the current setup phase
	Placement(state *game.State) []game.Coord
	// Attack picks one of the non-empty targets in range of attacker
	Attack(state *game.State, attacker game.Coord, targets []game.Coord) game.Coord
}

// Config describes one agent. Empty tags fall back to a differential search with mean
// aggregation and full pruning. Depth 0 is a greedy one-ply search.
type Config struct {
	ID                int           `yaml:"id"`
	Player            game.PlayerID `yaml:"player"`
	Kind              string        `yaml:"kind"`
	Depth             int           `yaml:"depth"`
	Evaluation        string        `yaml:"evaluation"`
	Aggregation       string        `yaml:"aggregation"`
	Prune             string        `yaml:"prune"`
	ExcludeQueenMoves bool          `yaml:"exclude_queen_moves"`
	Goroutines        int           `yaml:"goroutines"`
	Seed              uint64        `yaml:"seed"` // 0 seeds from the clock
}

func (c Config) withDefaults() Config {
	if c.Kind == "" {
		c.Kind = SearchKind
	}
	if c.Evaluation == "" {
		c.Evaluation = heuristic.DifferentialName
	}
	if c.Aggregation == "" {
		c.Aggregation = searcher.Mean.String()
	}
	if c.Prune == "" {
		c.Prune = searcher.Full.String()
	}
	if c.Goroutines <= 0 {
		c.Goroutines = meta.GO_ROUTINES
	}
	return c
}

// Metrics returns the row describing this agent in experiment output.
func (c Config) Metrics() metrics.AgentConfig {
	c = c.withDefaults()
	return metrics.AgentConfig{
		ID:                c.ID,
		Kind:              c.Kind,
		Depth:             c.Depth,
		Evaluation:        c.Evaluation,
		Aggregation:       c.Aggregation,
		Prune:             c.Prune,
		ExcludeQueenMoves: c.ExcludeQueenMoves,
	}
}

// New validates cfg and builds the agent it describes.
func New(cfg Config, rules game.Rules) (Agent, error) {
	if rules == nil {
		return nil, errors.New("agent needs rules")
	}
	cfg = cfg.withDefaults()
	if !cfg.Player.Valid() {
		return nil, errors.Errorf("agent %d: invalid player %d", cfg.ID, cfg.Player)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	p := policy{player: cfg.Player, rng: rand.New(rand.NewSource(seed))}

	switch cfg.Kind {
	case RandomKind:
		return &RandomAgent{policy: p, rules: rules}, nil
	case SearchKind:
		options, err := searchOptions(cfg, p.rng)
		if err != nil {
			return nil, errors.WithMessagef(err, "agent %d", cfg.ID)
		}
		strategy, err := heuristic.New(cfg.Evaluation, rules)
		if err != nil {
			return nil, errors.WithMessagef(err, "agent %d", cfg.ID)
		}
		return &SearchAgent{
			policy: p,
			search: searcher.New(rules, strategy, cfg.Player, options...),
		}, nil
	default:
		return nil, errors.Errorf("agent %d: unknown kind %q", cfg.ID, cfg.Kind)
	}
}

func searchOptions(cfg Config, rng *rand.Rand) ([]searcher.Option, error) {
	if cfg.Depth < 0 {
		return nil, errors.Errorf("depth must be non-negative, got %d", cfg.Depth)
	}
	aggregation, err := searcher.ParseAggregation(cfg.Aggregation)
	if err != nil {
		return nil, err
	}
	prune, err := searcher.ParsePrune(cfg.Prune)
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{
		searcher.WithDepth(cfg.Depth),
		searcher.WithAggregation(aggregation),
		searcher.WithPruneMode(prune),
		searcher.WithGoroutines(cfg.Goroutines),
		searcher.WithRand(rng),
		searcher.WithMetrics(),
	}
	if cfg.ExcludeQueenMoves {
		options = append(options, searcher.WithExcludeQueenMoves())
	}
	return options, nil
}

// SearchAgent plays the action chosen by a depth-limited search.
type SearchAgent struct {
	policy
	search *searcher.Search
}

func (a *SearchAgent) FindMove(ctx context.Context, state *game.State) (game.Action, metrics.SearchMetric, error) {
	return a.search.Choose(ctx, state)
}
