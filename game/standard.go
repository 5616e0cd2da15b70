package game

import (
	"antics/utils"

	"github.com/pkg/errors"
)

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrWrongPhase    = errors.New("wrong game phase")
	ErrGameOver      = errors.New("game is over")
)

// StandardRules implements the Antics rules on a 10x10 board.
type StandardRules struct{}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

func (sr *StandardRules) LegalActions(s *State) []Action {
	if s.Phase != PlayPhase || s.Winner() != NoPlayer {
		return nil
	}
	player := s.WhoseTurn
	actions := []Action{}

	// Move actions
	for _, ant := range s.Ants(player) {
		if ant.HasMoved {
			continue
		}
		for _, to := range sr.destinations(s, ant) {
			actions = append(actions, MoveAction(ant.Coord, to))
		}
	}

	// Build actions
	if hill, ok := s.Anthill(player); ok {
		if _, occupied := s.AntAt(hill.Coord); !occupied {
			for _, unit := range Buildable {
				if unit.Cost() <= s.Food(player) {
					actions = append(actions, BuildAction(hill.Coord, unit))
				}
			}
		}
	}

	return append(actions, EndTurnAction())
}

func (sr *StandardRules) Apply(s *State, a Action) (*State, error) {
	if s.Phase != PlayPhase {
		return nil, errors.Wrapf(ErrWrongPhase, "cannot apply %s during %s", a, s.Phase)
	}
	if winner := s.Winner(); winner != NoPlayer {
		return nil, errors.Wrapf(ErrGameOver, "cannot apply %s, %s has won", a, winner)
	}

	switch a.Type {
	case EndTurn:
		return sr.endTurn(s), nil
	case MoveAnt:
		return sr.move(s, a)
	case Build:
		return sr.build(s, a)
	default:
		return nil, errors.Errorf("unknown action type %d", a.Type)
	}
}

// ApproxDistance counts orthogonal steps, ignoring grass and blocking ants.
func (sr *StandardRules) ApproxDistance(_ *State, from, to Coord) int {
	return manhattan(from, to)
}

func (sr *StandardRules) AttackTargets(s *State, attacker Coord) []Coord {
	ant, ok := s.AntAt(attacker)
	if !ok {
		return nil
	}
	reach := ant.Type.Stats().Range

	targets := []Coord{}
	for _, enemy := range s.Ants(ant.Player.Opponent()) {
		if manhattan(attacker, enemy.Coord) <= reach {
			targets = append(targets, enemy.Coord)
		}
	}
	sortCoords(targets)
	return targets
}

func (sr *StandardRules) Attack(s *State, attacker, target Coord) (*State, error) {
	if !utils.Contains(sr.AttackTargets(s, attacker), target) {
		return nil, errors.Wrapf(ErrIllegalAction, "ant at %s cannot attack %s", attacker, target)
	}
	ant, _ := s.AntAt(attacker)

	next := s.Copy()
	victim := next.antRef(target)
	victim.Health -= ant.Type.Stats().Attack
	if victim.Health <= 0 {
		next.removeAnt(target)
	}
	return next, nil
}

// Place applies one player's setup placement. In the first setup phase the first two
// coordinates are the anthill and tunnel and the rest are grass; a queen starts on the
// anthill and a worker on the tunnel. In the second phase every coordinate is a food pile.
func (sr *StandardRules) Place(s *State, player PlayerID, coords []Coord) (*State, error) {
	if s.Phase != SetupPhase1 && s.Phase != SetupPhase2 {
		return nil, errors.Wrapf(ErrWrongPhase, "cannot place constructions during %s", s.Phase)
	}
	if player != s.WhoseTurn {
		return nil, errors.Wrapf(ErrIllegalAction, "%s placed out of turn", player)
	}
	if want := SetupCount(s.Phase); len(coords) != want {
		return nil, errors.Wrapf(ErrIllegalAction, "expected %d placements, got %d", want, len(coords))
	}

	region := SetupRegion(s.Phase, player)
	for i, c := range coords {
		if !utils.Contains(region, c) {
			return nil, errors.Wrapf(ErrIllegalAction, "%s is outside the %s region of %s", c, s.Phase, player)
		}
		if utils.FindIndex(coords, c) != i {
			return nil, errors.Wrapf(ErrIllegalAction, "%s placed twice", c)
		}
		if _, taken := s.ConstructionAt(c); taken {
			return nil, errors.Wrapf(ErrIllegalAction, "%s is already occupied", c)
		}
	}

	next := s.Copy()
	if s.Phase == SetupPhase1 {
		own := next.inventory(player)
		own.Constructions = append(own.Constructions,
			Construction{Coord: coords[0], Type: Anthill, Player: player, CaptureHealth: AnthillCaptureHealth},
			Construction{Coord: coords[1], Type: Tunnel, Player: player},
		)
		own.Ants = append(own.Ants,
			newAnt(coords[0], Queen, player),
			newAnt(coords[1], Worker, player),
		)
		for _, c := range coords[2:] {
			next.Neutral.Constructions = append(next.Neutral.Constructions, Construction{Coord: c, Type: Grass, Player: Neutral})
		}
	} else {
		for _, c := range coords {
			next.Neutral.Constructions = append(next.Neutral.Constructions, Construction{Coord: c, Type: Food, Player: Neutral})
		}
	}

	// Player two closes each setup phase
	if player == PlayerOne {
		next.WhoseTurn = PlayerTwo
	} else {
		next.Phase++
		next.WhoseTurn = PlayerOne
	}
	return next, nil
}

// destinations returns every tile the ant can reach this turn. Grass costs extra movement,
// ants block, and queens never leave their own side.
func (sr *StandardRules) destinations(s *State, ant Ant) []Coord {
	budget := ant.Type.Stats().Movement
	cost := map[Coord]int{ant.Coord: 0}
	frontier := []Coord{ant.Coord}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, n := range current.Neighbors() {
			if _, occupied := s.AntAt(n); occupied {
				continue
			}
			if ant.Type == Queen && !OnSide(n, ant.Player) {
				continue
			}
			step := 1
			if c, ok := s.ConstructionAt(n); ok && c.Type == Grass {
				step = GrassMoveCost
			}
			total := cost[current] + step
			if total > budget {
				continue
			}
			if seen, ok := cost[n]; ok && seen <= total {
				continue
			}
			cost[n] = total
			frontier = append(frontier, n)
		}
	}

	dests := make([]Coord, 0, len(cost))
	for c := range cost {
		if c != ant.Coord {
			dests = append(dests, c)
		}
	}
	sortCoords(dests)
	return dests
}

func (sr *StandardRules) move(s *State, a Action) (*State, error) {
	ant, ok := s.AntAt(a.From)
	if !ok || ant.Player != s.WhoseTurn {
		return nil, errors.Wrapf(ErrIllegalAction, "%s: no ant of %s to move", a, s.WhoseTurn)
	}
	if ant.HasMoved {
		return nil, errors.Wrapf(ErrIllegalAction, "%s: ant already moved", a)
	}
	if !utils.Contains(sr.destinations(s, ant), a.To) {
		return nil, errors.Wrapf(ErrIllegalAction, "%s: destination unreachable", a)
	}

	next := s.Copy()
	moved := next.antRef(a.From)
	moved.Coord = a.To
	moved.HasMoved = true

	// Workers pick up food from piles and drop it at their anthill or tunnel
	if moved.Type == Worker {
		if con, ok := next.ConstructionAt(a.To); ok {
			switch {
			case !moved.Carrying && con.Type == Food:
				moved.Carrying = true
			case moved.Carrying && con.Player == moved.Player && (con.Type == Anthill || con.Type == Tunnel):
				moved.Carrying = false
				next.inventory(moved.Player).Food++
			}
		}
	}
	return next, nil
}

func (sr *StandardRules) build(s *State, a Action) (*State, error) {
	player := s.WhoseTurn
	hill, ok := s.Anthill(player)
	if !ok || hill.Coord != a.From {
		return nil, errors.Wrapf(ErrIllegalAction, "%s: not the anthill of %s", a, player)
	}
	if _, occupied := s.AntAt(hill.Coord); occupied {
		return nil, errors.Wrapf(ErrIllegalAction, "%s: anthill is occupied", a)
	}
	if !utils.Contains(Buildable, a.Unit) {
		return nil, errors.Wrapf(ErrIllegalAction, "%s: unit cannot be built", a)
	}
	if a.Unit.Cost() > s.Food(player) {
		return nil, errors.Wrapf(ErrIllegalAction, "%s: needs %d food, has %d", a, a.Unit.Cost(), s.Food(player))
	}

	next := s.Copy()
	inv := next.inventory(player)
	ant := newAnt(hill.Coord, a.Unit, player)
	ant.HasMoved = true
	inv.Ants = append(inv.Ants, ant)
	inv.Food -= a.Unit.Cost()
	return next, nil
}

// endTurn resolves anthill captures for the current player and passes the turn.
func (sr *StandardRules) endTurn(s *State) *State {
	next := s.Copy()
	player := s.WhoseTurn
	opponent := player.Opponent()

	// An enemy anthill loses capture health while one of our ants stands on it
	if hill, ok := next.Anthill(opponent); ok {
		ref := next.constructionRef(hill.Coord)
		if occupant, occupied := next.AntAt(hill.Coord); occupied && occupant.Player == player {
			ref.CaptureHealth = max(ref.CaptureHealth-1, 0)
		}
	}
	// Our own anthill recovers when no enemy stands on it
	if hill, ok := next.Anthill(player); ok {
		if occupant, occupied := next.AntAt(hill.Coord); !occupied || occupant.Player == player {
			next.constructionRef(hill.Coord).CaptureHealth = AnthillCaptureHealth
		}
	}

	inv := next.inventory(player)
	for i := range inv.Ants {
		inv.Ants[i].HasMoved = false
	}
	next.WhoseTurn = opponent
	return next
}

func newAnt(c Coord, unit UnitType, player PlayerID) Ant {
	return Ant{
		Coord:  c,
		Type:   unit,
		Player: player,
		Health: unit.Stats().Health,
	}
}
