package searcher

import (
	"antics/experiments/metrics"
	"antics/game"
	"antics/heuristic"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Search)

// Search is a depth-limited, best-first pruned search over the acting player's own
// continuations. Opponent replies are not modeled.
type Search struct {
	rules             game.Rules
	evaluate          heuristic.Strategy
	player            game.PlayerID
	depth             int
	aggregation       AggregationMode
	prune             PruneMode
	excludeQueenMoves bool
	goroutines        int
	rng               *rand.Rand
	metrics           metrics.Collector
}

func WithDepth(depth int) Option {
	return func(s *Search) {
		if depth >= 0 {
			s.depth = depth
		}
	}
}

func WithAggregation(mode AggregationMode) Option {
	return func(s *Search) {
		s.aggregation = mode
	}
}

func WithPruneMode(mode PruneMode) Option {
	return func(s *Search) {
		s.prune = mode
	}
}

// WithExcludeQueenMoves keeps the search from moving the player's queen.
func WithExcludeQueenMoves() Option {
	return func(s *Search) {
		s.excludeQueenMoves = true
	}
}

// WithGoroutines builds and evaluates sibling children on up to n goroutines.
func WithGoroutines(n int) Option {
	return func(s *Search) {
		if n > 0 {
			s.goroutines = n
		}
	}
}

// WithRand sets the source used to break ties between the best root children.
func WithRand(rng *rand.Rand) Option {
	return func(s *Search) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithMetrics() Option {
	return func(s *Search) {
		s.metrics = metrics.NewCollector()
	}
}

func New(rules game.Rules, evaluate heuristic.Strategy, player game.PlayerID, options ...Option) *Search {
	if rules == nil || evaluate == nil {
		panic("Must specify rules and an evaluation strategy")
	}
	s := &Search{ // Default values
		rules:       rules,
		evaluate:    evaluate,
		player:      player,
		depth:       DefaultDepth,
		aggregation: Mean,
		prune:       Full,
		goroutines:  1,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Choose returns the action to play from state, or the end turn action when the player has
// nothing else to do. A done ctx stops further deepening; children keep their shallow scores.
func (s *Search) Choose(ctx context.Context, state *game.State) (game.Action, metrics.SearchMetric, error) {
	s.metrics.Start(s.depth, s.evaluate.Name(), s.aggregation.String(), s.prune.String())

	root := NewNode(nil, state, nil, 0)
	children, _, err := s.expand(ctx, root, 0)
	if err != nil {
		return game.Action{}, s.metrics.Complete(), err
	}
	if len(children) == 0 {
		log.Debug().Str("player", s.player.String()).Msg("no continuation, ending turn")
		return game.EndTurnAction(), s.metrics.Complete(), nil
	}

	best := s.pickBest(children)
	log.Debug().
		Str("player", s.player.String()).
		Stringer("action", best.Action).
		Float64("score", best.Score).
		Int("children", len(children)).
		Msg("chose action")
	return *best.Action, s.metrics.Complete(), nil
}

// expand builds, scores and possibly deepens the children of parent, returning them
// sorted best first together with their aggregate.
func (s *Search) expand(ctx context.Context, parent *Node, depth int) ([]*Node, float64, error) {
	s.metrics.AddExpansion(depth)

	children, err := s.buildChildren(parent, s.candidateActions(parent.State))
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Score > children[j].Score
	})

	candidates := children
	if s.prune == ThirdBestFirst {
		candidates = children[:thirdOf(len(children))]
	}

	// Greedy and order dependent: a child is deepened only if it scores at least as well as
	// the previous candidate. The threshold starts at 0, which assumes non-negative scores.
	// Finished games are never deepened and keep their evaluator score.
	bestSoFar := 0.0
	for _, child := range candidates {
		if depth < s.depth && child.Score >= bestSoFar && child.State.Winner() == game.NoPlayer {
			if ctx.Err() != nil {
				s.metrics.SetDeadlineHit()
			} else {
				_, score, err := s.expand(ctx, child, depth+1)
				if err != nil {
					return nil, 0, err
				}
				child.Score = score
			}
		}
		bestSoFar = child.Score
	}

	return children, Aggregate(children, s.aggregation), nil
}

// candidateActions drops the end turn action and, if configured, moves of the player's queen.
func (s *Search) candidateActions(state *game.State) []game.Action {
	var queen *game.Coord
	if s.excludeQueenMoves {
		if q, ok := state.Queen(s.player); ok {
			queen = &q.Coord
		}
	}

	legal := s.rules.LegalActions(state)
	actions := make([]game.Action, 0, len(legal))
	for _, action := range legal {
		if action.Type == game.EndTurn {
			continue
		}
		if queen != nil && action.Type == game.MoveAnt && action.From == *queen {
			continue
		}
		actions = append(actions, action)
	}
	return actions
}

func (s *Search) buildChildren(parent *Node, actions []game.Action) ([]*Node, error) {
	children := make([]*Node, len(actions))
	build := func(i int) error {
		action := actions[i]
		next, err := s.rules.Apply(parent.State, action)
		if err != nil {
			return errors.Wrapf(err, "rules rejected legal action %s", action)
		}
		children[i] = NewNode(&action, next, parent, s.evaluate.Evaluate(next, s.player))
		s.metrics.AddNode()
		return nil
	}

	if s.goroutines <= 1 || len(actions) < 2 {
		for i := range actions {
			if err := build(i); err != nil {
				return nil, err
			}
		}
		return children, nil
	}

	task := make(chan int, len(actions))
	for i := range actions {
		task <- i
	}
	close(task)

	errs := make([]error, len(actions))
	var wg sync.WaitGroup
	for i := 0; i < min(s.goroutines, len(actions)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				errs[i] = build(i)
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return children, nil
}

// pickBest breaks ties between the best children uniformly at random.
func (s *Search) pickBest(children []*Node) *Node {
	bestScore := children[0].Score
	for _, child := range children[1:] {
		bestScore = max(bestScore, child.Score)
	}

	tied := []*Node{}
	for _, child := range children {
		if child.Score == bestScore {
			tied = append(tied, child)
		}
	}
	s.metrics.SetTies(len(tied))
	return tied[s.rng.Intn(len(tied))]
}

// thirdOf rounds up so that small sets keep at least one candidate
func thirdOf(n int) int {
	return (n + 2) / 3
}
