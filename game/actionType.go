package game

import "fmt"

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	EndTurn ActionType = iota
	MoveAnt
	Build
)

func (t ActionType) String() string {
	switch t {
	case EndTurn:
		return "end_turn"
	case MoveAnt:
		return "move"
	case Build:
		return "build"
	default:
		return "unknown"
	}
}

// Action represents an action taken by the player whose turn it is.
// Actions are comparable: equal actions have the same effect on the same state.
type Action struct {
	Type ActionType
	From Coord    // Moving ant, or the anthill when building
	To   Coord    // Destination of a move
	Unit UnitType // Unit to build
}

// EndTurnAction returns the no-op action that passes the turn.
func EndTurnAction() Action {
	return Action{Type: EndTurn}
}

func MoveAction(from, to Coord) Action {
	return Action{Type: MoveAnt, From: from, To: to}
}

func BuildAction(anthill Coord, unit UnitType) Action {
	return Action{Type: Build, From: anthill, Unit: unit}
}

func (a Action) String() string {
	switch a.Type {
	case MoveAnt:
		return fmt.Sprintf("move %s->%s", a.From, a.To)
	case Build:
		return fmt.Sprintf("build %s@%s", a.Unit, a.From)
	default:
		return a.Type.String()
	}
}
