package heuristic

import "antics/game"

const (
	Win      = 1.0
	Loss     = 0.0
	Even     = 0.5
	Weight   = 0.125 // Default weight of each differential factor
	foodGoal = game.FoodGoal
)

// Weights scale each (mine - theirs) / (mine + theirs) factor.
type Weights struct {
	QueenHealth   float64
	AnthillHealth float64
	Food          float64
	ArmyCost      float64
}

func DefaultWeights() Weights {
	return Weights{
		QueenHealth:   Weight,
		AnthillHealth: Weight,
		Food:          Weight,
		ArmyCost:      Weight,
	}
}

// Differential scores a position around 0.5 from the difference between both sides.
// Terminal positions score exactly 0 or 1, queen deaths taking precedence over food victories.
// The sum is not clamped, so only the relative order of scores is meaningful.
type Differential struct {
	weights Weights
}

func NewDifferential(weights Weights) *Differential {
	return &Differential{weights: weights}
}

func (d *Differential) Name() string { return DifferentialName }

func (d *Differential) Evaluate(s *game.State, perspective game.PlayerID) float64 {
	opponent := perspective.Opponent()

	myQueen, theirQueen := queenHealth(s, perspective), queenHealth(s, opponent)
	if myQueen == 0 {
		return Loss
	}
	if theirQueen == 0 {
		return Win
	}

	myFood, theirFood := float64(s.Food(perspective)), float64(s.Food(opponent))
	if myFood >= foodGoal {
		return Win
	}
	if theirFood >= foodGoal {
		return Loss
	}

	// Each term is skipped by normalize when both sides are at zero
	score := Even
	score += d.weights.QueenHealth * normalize(myQueen, theirQueen)
	score += d.weights.AnthillHealth * normalize(anthillHealth(s, perspective), anthillHealth(s, opponent))
	score += d.weights.Food * normalize(myFood, theirFood)
	score += d.weights.ArmyCost * normalize(armyCost(s, perspective), armyCost(s, opponent))
	return score
}

// queenHealth is 0 for a dead or missing queen
func queenHealth(s *game.State, player game.PlayerID) float64 {
	queen, ok := s.Queen(player)
	if !ok || queen.Health <= 0 {
		return 0
	}
	return float64(queen.Health)
}

func anthillHealth(s *game.State, player game.PlayerID) float64 {
	hill, ok := s.Anthill(player)
	if !ok {
		return 0
	}
	return float64(hill.CaptureHealth)
}

// armyCost totals the build cost of every ant except the queen
func armyCost(s *game.State, player game.PlayerID) float64 {
	total := 0
	for _, ant := range s.Ants(player, game.Buildable...) {
		total += ant.Type.Cost()
	}
	return float64(total)
}
