package engine

import (
	"antics/experiments/metrics"
	"antics/game"
	"context"
)

type Engine interface {
	// Run plays a game till there's a winner or the max number of moves is reached
	Run(ctx context.Context) (winner game.PlayerID, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
