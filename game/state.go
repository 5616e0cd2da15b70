package game

import "antics/utils"

// Ant is a unit on the board.
type Ant struct {
	Coord    Coord
	Type     UnitType
	Player   PlayerID
	Health   int
	Carrying bool // Workers only: holding a unit of food
	HasMoved bool
}

// Construction is a structure on the board. Anthills lose capture health while an enemy stands on them.
type Construction struct {
	Coord         Coord
	Type          ConstructionType
	Player        PlayerID
	CaptureHealth int
}

// Inventory holds everything a player (or the neutral side) owns.
type Inventory struct {
	Player        PlayerID
	Ants          []Ant
	Constructions []Construction
	Food          int
}

func (inv Inventory) copy() Inventory {
	// Copy ants
	ants := make([]Ant, len(inv.Ants))
	copy(ants, inv.Ants)

	// Copy constructions
	constructions := make([]Construction, len(inv.Constructions))
	copy(constructions, inv.Constructions)

	return Inventory{
		Player:        inv.Player,
		Ants:          ants,
		Constructions: constructions,
		Food:          inv.Food,
	}
}

// State represents the full game position at one point in time.
// Callers treat a State as immutable: rules operations always return a new copy.
type State struct {
	Phase       Phase
	WhoseTurn   PlayerID
	Inventories [2]Inventory // Indexed by PlayerID
	Neutral     Inventory    // Grass and food piles
}

// NewState returns an empty board at the start of the first setup phase.
func NewState() *State {
	return &State{
		Phase:     SetupPhase1,
		WhoseTurn: PlayerOne,
		Inventories: [2]Inventory{
			{Player: PlayerOne},
			{Player: PlayerTwo},
		},
		Neutral: Inventory{Player: Neutral},
	}
}

// Copy returns a deep copy of the state.
func (s *State) Copy() *State {
	return &State{
		Phase:       s.Phase,
		WhoseTurn:   s.WhoseTurn,
		Inventories: [2]Inventory{s.Inventories[0].copy(), s.Inventories[1].copy()},
		Neutral:     s.Neutral.copy(),
	}
}

func (s *State) inventory(player PlayerID) *Inventory {
	switch player {
	case PlayerOne, PlayerTwo:
		return &s.Inventories[player]
	case Neutral:
		return &s.Neutral
	default:
		return nil
	}
}

// Ants returns the player's ants, filtered to the given types when any are provided.
func (s *State) Ants(player PlayerID, types ...UnitType) []Ant {
	inv := s.inventory(player)
	if inv == nil {
		return nil
	}
	ants := make([]Ant, 0, len(inv.Ants))
	for _, ant := range inv.Ants {
		if len(types) == 0 || utils.Contains(types, ant.Type) {
			ants = append(ants, ant)
		}
	}
	return ants
}

// Constructions returns the player's constructions, filtered to the given types when any are provided.
func (s *State) Constructions(player PlayerID, types ...ConstructionType) []Construction {
	inv := s.inventory(player)
	if inv == nil {
		return nil
	}
	constructions := make([]Construction, 0, len(inv.Constructions))
	for _, c := range inv.Constructions {
		if len(types) == 0 || utils.Contains(types, c.Type) {
			constructions = append(constructions, c)
		}
	}
	return constructions
}

// Food returns the player's food count.
func (s *State) Food(player PlayerID) int {
	inv := s.inventory(player)
	if inv == nil {
		return 0
	}
	return inv.Food
}

// Queen returns the player's queen, or false once she has been killed.
func (s *State) Queen(player PlayerID) (Ant, bool) {
	queens := s.Ants(player, Queen)
	if len(queens) == 0 {
		return Ant{}, false
	}
	return queens[0], true
}

// Anthill returns the player's anthill, or false before it has been placed.
func (s *State) Anthill(player PlayerID) (Construction, bool) {
	hills := s.Constructions(player, Anthill)
	if len(hills) == 0 {
		return Construction{}, false
	}
	return hills[0], true
}

// AntAt returns the ant standing on the tile, if any.
func (s *State) AntAt(c Coord) (Ant, bool) {
	for _, inv := range s.Inventories {
		for _, ant := range inv.Ants {
			if ant.Coord == c {
				return ant, true
			}
		}
	}
	return Ant{}, false
}

// ConstructionAt returns the construction on the tile, if any.
func (s *State) ConstructionAt(c Coord) (Construction, bool) {
	for _, inv := range []*Inventory{&s.Inventories[0], &s.Inventories[1], &s.Neutral} {
		for _, con := range inv.Constructions {
			if con.Coord == c {
				return con, true
			}
		}
	}
	return Construction{}, false
}

// Winner returns the player who has won, or NoPlayer while the game continues.
// A dead queen or a captured anthill loses before a food victory is considered.
func (s *State) Winner() PlayerID {
	if s.Phase != PlayPhase {
		return NoPlayer
	}
	for _, player := range []PlayerID{PlayerOne, PlayerTwo} {
		if queen, ok := s.Queen(player); !ok || queen.Health <= 0 {
			return player.Opponent()
		}
		if hill, ok := s.Anthill(player); !ok || hill.CaptureHealth <= 0 {
			return player.Opponent()
		}
	}
	for _, player := range []PlayerID{PlayerOne, PlayerTwo} {
		if s.Food(player) >= FoodGoal {
			return player
		}
	}
	return NoPlayer
}

// antRef locates a mutable ant in the state, only for use on a private copy.
func (s *State) antRef(c Coord) *Ant {
	for i := range s.Inventories {
		inv := &s.Inventories[i]
		for j := range inv.Ants {
			if inv.Ants[j].Coord == c {
				return &inv.Ants[j]
			}
		}
	}
	return nil
}

// constructionRef locates a mutable construction in the state, only for use on a private copy.
func (s *State) constructionRef(c Coord) *Construction {
	for _, inv := range []*Inventory{&s.Inventories[0], &s.Inventories[1], &s.Neutral} {
		for j := range inv.Constructions {
			if inv.Constructions[j].Coord == c {
				return &inv.Constructions[j]
			}
		}
	}
	return nil
}

func (s *State) removeAnt(c Coord) {
	for i := range s.Inventories {
		inv := &s.Inventories[i]
		for j := range inv.Ants {
			if inv.Ants[j].Coord == c {
				inv.Ants = append(inv.Ants[:j], inv.Ants[j+1:]...)
				return
			}
		}
	}
}
