package engine

import (
	"antics/agent"
	"antics/experiments/metrics"
	"antics/game"
	"antics/meta"
	"antics/utils"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ Engine = (*LocalEngine)(nil)

type Option func(e *LocalEngine)

// LocalEngine runs both agents in process, through both setup phases and the play phase.
type LocalEngine struct {
	State       *game.State
	agents      []agent.Agent // Indexed by PlayerID
	rules       game.Rules
	maxMoves    int
	moveTimeout time.Duration
}

func WithMaxMoves(n int) Option {
	return func(e *LocalEngine) {
		if n > 0 {
			e.maxMoves = n
		}
	}
}

// WithMoveTimeout bounds each FindMove call; searches past the deadline stop deepening.
func WithMoveTimeout(d time.Duration) Option {
	return func(e *LocalEngine) {
		e.moveTimeout = d
	}
}

func NewLocalEngine(rules game.Rules, agents []agent.Agent, options ...Option) *LocalEngine {
	if rules == nil {
		panic("must specify rules")
	}
	if len(agents) != 2 {
		panic("need exactly two agents")
	}

	e := &LocalEngine{
		State:    game.NewState(),
		agents:   agents,
		rules:    rules,
		maxMoves: meta.MAX_MOVES,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until a winner is found.
func (e *LocalEngine) Run(ctx context.Context) (game.PlayerID, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.State.WhoseTurn),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("%s is starting", e.State.WhoseTurn)

	if err := e.setup(); err != nil {
		return game.NoPlayer, gameMetric, nil, err
	}

	// Loop until there's a winner
	step := 0
	moveMetrics := []metrics.MoveMetric{}
	for e.State.Winner() == game.NoPlayer && step < e.maxMoves {
		if err := ctx.Err(); err != nil {
			return game.NoPlayer, gameMetric, moveMetrics, err
		}
		player := e.State.WhoseTurn
		step++

		action, searchMetric, err := e.findMove(ctx, player)
		if err != nil {
			return game.NoPlayer, gameMetric, moveMetrics, errors.WithMessagef(err, "%s at step %d", player, step)
		}
		next, err := e.rules.Apply(e.State, action)
		if err != nil {
			return game.NoPlayer, gameMetric, moveMetrics, errors.WithMessagef(err, "%s at step %d", player, step)
		}
		if action.Type == game.MoveAnt {
			next, err = e.attack(next, player, action.To)
			if err != nil {
				return game.NoPlayer, gameMetric, moveMetrics, errors.WithMessagef(err, "%s at step %d", player, step)
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Action:       action.String(),
			SearchMetric: searchMetric,
		})
		log.Debug().Int("step", step).Str("player", player.String()).Stringer("action", action).Msg("played")
		e.State = next
	}

	winner := e.State.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	if winner != game.NoPlayer {
		gameMetric.Winner = winner.String()
		log.Info().Msgf("game ended after %d moves with winner %s", step, winner)
	} else {
		log.Info().Msgf("stopped after %d moves without a winner", step)
	}
	return winner, gameMetric, moveMetrics, nil
}

func (e *LocalEngine) setup() error {
	for e.State.Phase != game.PlayPhase {
		player := e.State.WhoseTurn
		next, err := e.rules.Place(e.State, player, e.agents[player].Placement(e.State))
		if err != nil {
			return errors.WithMessagef(err, "%s setup", player)
		}
		e.State = next
	}
	return nil
}

func (e *LocalEngine) findMove(ctx context.Context, player game.PlayerID) (game.Action, metrics.SearchMetric, error) {
	if e.moveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.moveTimeout)
		defer cancel()
	}
	return e.agents[player].FindMove(ctx, e.State)
}

// attack lets the ant that just moved to at strike one enemy in range, if any.
func (e *LocalEngine) attack(state *game.State, player game.PlayerID, at game.Coord) (*game.State, error) {
	targets := e.rules.AttackTargets(state, at)
	if len(targets) == 0 {
		return state, nil
	}
	target := e.agents[player].Attack(state, at, targets)
	if !utils.Contains(targets, target) {
		return nil, errors.Wrapf(game.ErrIllegalAction, "%s is not a target of %s", target, at)
	}
	return e.rules.Attack(state, at, target)
}
