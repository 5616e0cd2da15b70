package searcher

import (
	"antics/game"
	"antics/heuristic"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

/**
Tests the depth-limited search on mock trees:
- depth 0: children keep their evaluator scores, best child wins
- depth 1: deeper aggregates replace evaluator scores (mean and max)
- pruning: bestSoFar threshold, best third candidates
- root: empty continuation, random tie-break, determinism under a seed
- failures: rules errors propagate, done context stops deepening
- finished games: winning children are never deepened
and on real Antics positions:
- legality of the returned action, queen move exclusion
*/

func TestChooseDepthZero(t *testing.T) {
	rules := newMockRules(map[int][]int{
		0: {1, 2, 3},
		1: {4},
		2: {5},
		3: {6},
	})
	scores := map[int]float64{1: 0.2, 2: 0.9, 3: 0.5, 4: 1, 5: 0, 6: 0}
	s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(0), WithSeed(1), WithMetrics())

	action, metric, err := s.Choose(context.Background(), mockState(0))

	require.NoError(t, err)
	require.Equal(t, mockAction(0, 2), action, "Should pick the best shallow score")
	require.Equal(t, []int{0}, rules.expandedIDs(), "Should never deepen at depth 0")
	require.Equal(t, 3, metric.Nodes)
	require.Equal(t, 1, metric.Expansions)
	require.Equal(t, 1, metric.Ties)
}

func TestChooseDepthOne(t *testing.T) {
	tree := map[int][]int{
		0: {1, 2, 3},
		1: {11, 12},
		2: {21, 22},
		3: {},
	}
	scores := map[int]float64{
		1: 0.2, 2: 0.9, 3: 0.5,
		11: 0.9, 12: 0.7,
		21: 0.1, 22: 0.3,
	}

	t.Run("mean aggregation replaces shallow scores", func(t *testing.T) {
		rules := newMockRules(tree)
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(1), WithSeed(1))

		action, _, err := s.Choose(context.Background(), mockState(0))

		require.NoError(t, err)
		// 2 deepens to 0.2 and 3 to 0 (no continuation), so 1 deepens to 0.8 and wins
		require.Equal(t, mockAction(0, 1), action)
		require.Equal(t, []int{0, 2, 3, 1}, rules.expandedIDs(), "Should deepen in descending shallow order")
	})

	t.Run("max aggregation", func(t *testing.T) {
		rules := newMockRules(tree)
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(1), WithAggregation(Max), WithSeed(1))

		root := NewNode(nil, mockState(0), nil, 0)
		children, overall, err := s.expand(context.Background(), root, 0)

		require.NoError(t, err)
		got := map[int]float64{}
		for _, child := range children {
			got[child.Action.To.X] = child.Score
			require.Same(t, root, child.Parent)
		}
		require.Equal(t, map[int]float64{1: 0.9, 2: 0.3, 3: 0}, got)
		require.Equal(t, 0.9, overall)
	})

	t.Run("non-root expansion returns the aggregate", func(t *testing.T) {
		rules := newMockRules(tree)
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(1))

		_, overall, err := s.expand(context.Background(), NewNode(nil, mockState(1), nil, 0), 1)

		require.NoError(t, err)
		require.InDelta(t, 0.8, overall, 1e-9)
		require.Equal(t, []int{1}, rules.expandedIDs(), "Should not deepen past the depth limit")
	})
}

func TestChoosePruning(t *testing.T) {
	t.Run("children below the running threshold are not deepened", func(t *testing.T) {
		rules := newMockRules(map[int][]int{
			0: {1, 2, 3},
			1: {11},
			2: {21},
			3: {31},
		})
		scores := map[int]float64{1: 0.8, 2: 0.6, 3: 0.4, 11: 0.7, 21: 1, 31: 1}
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(1), WithSeed(1))

		action, _, err := s.Choose(context.Background(), mockState(0))

		require.NoError(t, err)
		require.Equal(t, []int{0, 1}, rules.expandedIDs(), "0.6 < 0.7 and 0.4 < 0.6 should stop deepening")
		require.Equal(t, mockAction(0, 1), action)
	})

	t.Run("third best first only deepens the best third", func(t *testing.T) {
		tree := map[int][]int{0: {1, 2, 3, 4, 5, 6}}
		scores := map[int]float64{1: 0.1, 2: 0.6, 3: 0.3, 4: 0.5, 5: 0.2, 6: 0.4}
		for id := 1; id <= 6; id++ {
			tree[id] = []int{10 * id}
			tree[10*id] = []int{100 * id}
			scores[10*id] = 1
			scores[100*id] = 1
		}
		rules := newMockRules(tree)
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(3), WithPruneMode(ThirdBestFirst), WithSeed(1))

		_, _, err := s.Choose(context.Background(), mockState(0))

		require.NoError(t, err)
		for _, id := range rules.expandedIDs() {
			root := id
			for root >= 10 {
				root /= 10
			}
			require.Contains(t, []int{0, 2, 4}, root, "Expanded %d outside the best third", id)
		}
		require.Contains(t, rules.expandedIDs(), 200, "Best child should be searched to the depth limit")
	})

	t.Run("third best first keeps one candidate for small sets", func(t *testing.T) {
		rules := newMockRules(map[int][]int{0: {1, 2}, 1: {11}, 2: {21}})
		scores := map[int]float64{1: 0.4, 2: 0.2, 11: 0, 21: 0}
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(1), WithPruneMode(ThirdBestFirst), WithSeed(1))

		action, _, err := s.Choose(context.Background(), mockState(0))

		require.NoError(t, err)
		require.Equal(t, []int{0, 1}, rules.expandedIDs())
		require.Equal(t, mockAction(0, 2), action, "Deepened child fell to 0 below the untouched 0.2")
	})
}

func TestChooseFinishedGames(t *testing.T) {
	t.Run("winning children keep their score", func(t *testing.T) {
		for _, mode := range []AggregationMode{Mean, Max} {
			rules := newMockRules(map[int][]int{0: {1, 2}, 1: {11}, 2: {21}})
			rules.won[1] = true
			scores := map[int]float64{1: 1, 2: 0.5, 11: 0, 21: 0.9}
			s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(1), WithAggregation(mode), WithSeed(1))

			action, _, err := s.Choose(context.Background(), mockState(0))

			require.NoError(t, err)
			require.Equal(t, mockAction(0, 1), action, "Should take the win with %s aggregation", mode)
			require.Equal(t, []int{0}, rules.expandedIDs(), "Finished games should not be searched further")
		}
	})

	t.Run("winning child first under third best first", func(t *testing.T) {
		tree := map[int][]int{0: {1, 2, 3, 4, 5, 6}}
		scores := map[int]float64{1: 0.1, 2: 0.2, 3: 1, 4: 0.4, 5: 0.5, 6: 0.3}
		for id := 1; id <= 6; id++ {
			tree[id] = []int{10 * id}
		}
		rules := newMockRules(tree)
		rules.won[3] = true
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(2), WithPruneMode(ThirdBestFirst), WithSeed(1))

		action, _, err := s.Choose(context.Background(), mockState(0))

		require.NoError(t, err)
		require.Equal(t, mockAction(0, 3), action)
		require.NotContains(t, rules.expandedIDs(), 3)
		require.NotContains(t, rules.expandedIDs(), 5, "0.5 falls below the winning threshold")
	})

	t.Run("takes an immediate food victory", func(t *testing.T) {
		rules := game.NewStandardRules()
		state := newGame(t, rules)
		state.Inventories[game.PlayerOne].Food = game.FoodGoal - 1
		for i, ant := range state.Inventories[game.PlayerOne].Ants {
			if ant.Type == game.Worker {
				state.Inventories[game.PlayerOne].Ants[i].Coord = game.Coord{X: 8, Y: 0}
				state.Inventories[game.PlayerOne].Ants[i].Carrying = true
			}
		}
		deposit := game.MoveAction(game.Coord{X: 8, Y: 0}, game.Coord{X: 7, Y: 0})
		next, err := rules.Apply(state, deposit)
		require.NoError(t, err)
		require.Equal(t, game.PlayerOne, next.Winner())

		for _, depth := range []int{0, 1, 2} {
			for _, mode := range []AggregationMode{Mean, Max} {
				for _, prune := range []PruneMode{Full, ThirdBestFirst} {
					s := New(rules, heuristic.NewDifferential(heuristic.DefaultWeights()), game.PlayerOne,
						WithDepth(depth), WithAggregation(mode), WithPruneMode(prune), WithSeed(1))

					action, _, err := s.Choose(context.Background(), state)

					require.NoError(t, err)
					require.Equal(t, deposit, action, "depth %d %s %s", depth, mode, prune)
				}
			}
		}
	})
}

func TestChooseRoot(t *testing.T) {
	t.Run("ends the turn without continuations", func(t *testing.T) {
		rules := newMockRules(map[int][]int{})
		s := New(rules, scoreTable(nil), game.PlayerOne, WithSeed(1))

		action, _, err := s.Choose(context.Background(), mockState(0))

		require.NoError(t, err)
		require.Equal(t, game.EndTurnAction(), action)
	})

	t.Run("breaks ties uniformly", func(t *testing.T) {
		rules := newMockRules(map[int][]int{0: {1, 2, 3}})
		scores := map[int]float64{1: 0.5, 2: 0.3, 3: 0.5}
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(0), WithSeed(7))

		const trials = 2000
		counts := map[game.Action]int{}
		for i := 0; i < trials; i++ {
			action, _, err := s.Choose(context.Background(), mockState(0))
			require.NoError(t, err)
			counts[action]++
		}

		require.Zero(t, counts[mockAction(0, 2)], "Lower scored child should never be chosen")
		require.InDelta(t, trials/2, counts[mockAction(0, 1)], trials*0.1)
		require.InDelta(t, trials/2, counts[mockAction(0, 3)], trials*0.1)
	})

	t.Run("same seed gives the same choices", func(t *testing.T) {
		tree := map[int][]int{0: {1, 2, 3, 4}, 1: {5}, 2: {5}, 3: {5}, 4: {5}}
		scores := map[int]float64{1: 0.5, 2: 0.5, 3: 0.5, 4: 0.5, 5: 0.5}
		first := New(newMockRules(tree), scoreTable(scores), game.PlayerOne, WithDepth(1), WithSeed(42))
		second := New(newMockRules(tree), scoreTable(scores), game.PlayerOne, WithDepth(1), WithSeed(42))

		for i := 0; i < 20; i++ {
			a1, _, err := first.Choose(context.Background(), mockState(0))
			require.NoError(t, err)
			a2, _, err := second.Choose(context.Background(), mockState(0))
			require.NoError(t, err)
			require.Equal(t, a1, a2)
		}
	})

	t.Run("parallel children match sequential search", func(t *testing.T) {
		tree := map[int][]int{0: {1, 2, 3, 4, 5}}
		scores := map[int]float64{1: 0.3, 2: 0.1, 3: 0.8, 4: 0.8, 5: 0.2}
		for id := 1; id <= 5; id++ {
			tree[id] = []int{10 * id, 10*id + 1}
			scores[10*id] = float64(id) / 10
			scores[10*id+1] = 0.5
		}
		sequential := New(newMockRules(tree), scoreTable(scores), game.PlayerOne, WithDepth(1), WithSeed(3))
		parallel := New(newMockRules(tree), scoreTable(scores), game.PlayerOne, WithDepth(1), WithSeed(3), WithGoroutines(4))

		for i := 0; i < 10; i++ {
			want, _, err := sequential.Choose(context.Background(), mockState(0))
			require.NoError(t, err)
			got, _, err := parallel.Choose(context.Background(), mockState(0))
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})
}

func TestChooseFailures(t *testing.T) {
	t.Run("rules failures propagate", func(t *testing.T) {
		rules := newMockRules(map[int][]int{0: {1, 2}, 2: {21}})
		rules.failOn = 21
		scores := map[int]float64{1: 0.1, 2: 0.5}
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(1))

		_, _, err := s.Choose(context.Background(), mockState(0))

		require.Error(t, err)
		require.True(t, errors.Is(err, errMockApply))
	})

	t.Run("rules failures propagate from parallel children", func(t *testing.T) {
		rules := newMockRules(map[int][]int{0: {1, 2, 3}})
		rules.failOn = 2
		s := New(rules, scoreTable(nil), game.PlayerOne, WithGoroutines(3))

		_, _, err := s.Choose(context.Background(), mockState(0))

		require.True(t, errors.Is(err, errMockApply))
	})

	t.Run("done context stops deepening", func(t *testing.T) {
		rules := newMockRules(map[int][]int{0: {1, 2}, 1: {11}, 2: {21}})
		scores := map[int]float64{1: 0.4, 2: 0.6, 11: 1, 21: 0}
		s := New(rules, scoreTable(scores), game.PlayerOne, WithDepth(2), WithSeed(1), WithMetrics())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		action, metric, err := s.Choose(ctx, mockState(0))

		require.NoError(t, err)
		require.Equal(t, mockAction(0, 2), action, "Shallow scores should decide")
		require.Equal(t, []int{0}, rules.expandedIDs())
		require.True(t, metric.DeadlineHit)
	})
}

// newGame plays both setup phases with fixed placements.
func newGame(t *testing.T, rules game.Rules) *game.State {
	state := game.NewState()
	place := func(player game.PlayerID, coords []game.Coord) {
		var err error
		state, err = rules.Place(state, player, coords)
		require.NoError(t, err)
	}
	setup := func(hillRow, grassRow int) []game.Coord {
		coords := []game.Coord{{X: 2, Y: hillRow}, {X: 7, Y: hillRow}}
		for x := 0; len(coords) < game.SetupPhase1Count; x++ {
			coords = append(coords, game.Coord{X: x, Y: grassRow})
		}
		return coords
	}

	place(game.PlayerOne, setup(0, 1))
	place(game.PlayerTwo, setup(9, 8))
	place(game.PlayerOne, []game.Coord{{X: 0, Y: 6}, {X: 9, Y: 6}})
	place(game.PlayerTwo, []game.Coord{{X: 0, Y: 3}, {X: 9, Y: 3}})
	return state
}

func TestChooseOnAntics(t *testing.T) {
	rules := game.NewStandardRules()

	t.Run("returns a legal action", func(t *testing.T) {
		configs := [][]Option{
			{WithDepth(1)},
			{WithDepth(2), WithPruneMode(ThirdBestFirst), WithAggregation(Max)},
			{WithDepth(1), WithExcludeQueenMoves(), WithGoroutines(4)},
		}
		strategies := []heuristic.Strategy{
			heuristic.NewDifferential(heuristic.DefaultWeights()),
			heuristic.NewPositional(rules),
		}
		state := newGame(t, rules)
		legal := rules.LegalActions(state)

		for _, strategy := range strategies {
			for _, options := range configs {
				s := New(rules, strategy, game.PlayerOne, append(options, WithSeed(5))...)
				action, _, err := s.Choose(context.Background(), state)
				require.NoError(t, err)
				require.Contains(t, legal, action)
				require.NotEqual(t, game.EndTurnAction(), action)
			}
		}
	})

	t.Run("excludes queen moves", func(t *testing.T) {
		state := newGame(t, rules)
		queen, _ := state.Queen(game.PlayerOne)
		queenDistance := heuristic.Func(func(s *game.State, p game.PlayerID) float64 {
			q, _ := s.Queen(p)
			return float64(q.Coord.X + q.Coord.Y)
		})

		greedy := New(rules, queenDistance, game.PlayerOne, WithDepth(0), WithSeed(1))
		action, _, err := greedy.Choose(context.Background(), state)
		require.NoError(t, err)
		require.Equal(t, game.MoveAction(queen.Coord, game.Coord{X: 4, Y: 0}), action)

		guarded := New(rules, queenDistance, game.PlayerOne, WithDepth(0), WithSeed(1), WithExcludeQueenMoves())
		for i := 0; i < 20; i++ {
			action, _, err := guarded.Choose(context.Background(), state)
			require.NoError(t, err)
			require.NotEqual(t, queen.Coord, action.From)
		}
	})

	t.Run("never mutates the input state", func(t *testing.T) {
		state := newGame(t, rules)
		before := state.Copy()
		s := New(rules, heuristic.NewPositional(rules), game.PlayerOne, WithDepth(2), WithSeed(1))

		_, _, err := s.Choose(context.Background(), state)

		require.NoError(t, err)
		require.Equal(t, before, state)
	})
}
