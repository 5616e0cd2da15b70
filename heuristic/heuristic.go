// Package heuristic scores Antics positions for one player. Higher scores are better for the
// perspective player; scores are only comparable within one strategy.
package heuristic

import (
	"antics/game"

	"github.com/pkg/errors"
)

const (
	DifferentialName = "differential"
	PositionalName   = "positional"
)

// Strategy is a static evaluation function. Implementations are pure and deterministic.
type Strategy interface {
	Name() string
	Evaluate(s *game.State, perspective game.PlayerID) float64
}

// Func adapts a plain function to a Strategy.
type Func func(s *game.State, perspective game.PlayerID) float64

func (f Func) Name() string { return "func" }

func (f Func) Evaluate(s *game.State, perspective game.PlayerID) float64 {
	return f(s, perspective)
}

// New returns the strategy registered under name.
func New(name string, rules game.Rules) (Strategy, error) {
	switch name {
	case DifferentialName:
		return NewDifferential(DefaultWeights()), nil
	case PositionalName:
		if rules == nil {
			return nil, errors.New("positional evaluation needs rules for approach distances")
		}
		return NewPositional(rules), nil
	default:
		return nil, errors.Errorf("unknown evaluation strategy %q", name)
	}
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
