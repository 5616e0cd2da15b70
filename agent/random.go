package agent

import (
	"antics/experiments/metrics"
	"antics/game"
	"context"
	"time"
)

// MaxRandomArmy is the ant count from which the random agent stops building.
const MaxRandomArmy = 3

// RandomAgent plays uniformly random legal actions. It is the baseline opponent for experiments.
type RandomAgent struct {
	policy
	rules game.Rules
}

func (a *RandomAgent) FindMove(ctx context.Context, state *game.State) (game.Action, metrics.SearchMetric, error) {
	start := time.Now()
	legal := a.rules.LegalActions(state)
	if len(legal) == 0 {
		return game.EndTurnAction(), metrics.SearchMetric{}, nil
	}

	// Rerolls end: the end turn action is always legal
	action := legal[a.rng.Intn(len(legal))]
	for action.Type == game.Build && len(state.Ants(a.player)) >= MaxRandomArmy {
		action = legal[a.rng.Intn(len(legal))]
	}
	return action, metrics.SearchMetric{Duration: time.Since(start), Nodes: len(legal)}, nil
}
