package heuristic

import (
	"antics/game"
	"math"
)

const (
	FoodWeight     = 24 // Points per unit of food stored
	DistanceWeight = 12 // Points for a worker standing on its target, minus one per step away
	CarryBonus     = 12 // Points for a worker holding food
)

type PositionalOption func(p *Positional)

// WithSymmetry subtracts the opponent's positional score from the perspective player's.
func WithSymmetry() PositionalOption {
	return func(p *Positional) {
		p.symmetric = true
	}
}

// Positional rewards stored food and workers heading the right way: empty workers toward
// the nearest uncovered food pile, loaded workers toward the nearest uncovered anthill or tunnel.
//
// By default only the perspective player's position is scored: the opponent's food and workers
// never lower it. WithSymmetry subtracts the opponent's position. Food victories override the
// score with exactly 1 or 0, which sits below most positional scores on this scale.
type Positional struct {
	rules     game.Rules
	symmetric bool
}

func NewPositional(rules game.Rules, options ...PositionalOption) *Positional {
	p := &Positional{rules: rules}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Positional) Name() string { return PositionalName }

func (p *Positional) Evaluate(s *game.State, perspective game.PlayerID) float64 {
	opponent := perspective.Opponent()
	if s.Food(perspective) >= foodGoal {
		return Win
	}
	if s.Food(opponent) >= foodGoal {
		return Loss
	}

	score := p.position(s, perspective)
	if p.symmetric {
		score -= p.position(s, opponent)
	}
	return score
}

func (p *Positional) position(s *game.State, player game.PlayerID) float64 {
	score := float64(FoodWeight * s.Food(player))

	piles := s.Constructions(game.Neutral, game.Food)
	homes := s.Constructions(player, game.Anthill, game.Tunnel)
	for _, worker := range s.Ants(player, game.Worker) {
		if !worker.Carrying {
			if dist, ok := p.nearestUncovered(s, worker, piles); ok {
				score += approach(dist)
			}
			continue
		}
		score += CarryBonus
		if dist, ok := p.nearestUncovered(s, worker, homes); ok {
			score += approach(dist)
		}
	}
	return score
}

// nearestUncovered returns the approach distance to the closest target that no other ant stands on.
func (p *Positional) nearestUncovered(s *game.State, worker game.Ant, targets []game.Construction) (int, bool) {
	best := math.MaxInt
	for _, target := range targets {
		if occupant, covered := s.AntAt(target.Coord); covered && occupant.Coord != worker.Coord {
			continue
		}
		if dist := p.rules.ApproxDistance(s, worker.Coord, target.Coord); dist < best {
			best = dist
		}
	}
	return best, best != math.MaxInt
}

// approach never goes negative: distances of DistanceWeight or more score nothing
func approach(dist int) float64 {
	return float64(max(DistanceWeight-dist, 0))
}
