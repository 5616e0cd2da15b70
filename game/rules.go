package game

// Rules enumerates and applies actions. Every operation leaves its input state untouched.
type Rules interface {
	// LegalActions lists every action available to the player whose turn it is
	LegalActions(s *State) []Action
	// Apply returns the state reached by playing a legal action
	Apply(s *State, a Action) (*State, error)
	// ApproxDistance estimates the movement cost between two tiles
	ApproxDistance(s *State, from, to Coord) int
	// AttackTargets lists the enemy tiles the ant on attacker can hit
	AttackTargets(s *State, attacker Coord) []Coord
	Attack(s *State, attacker, target Coord) (*State, error)
	// Place applies a setup phase placement for player
	Place(s *State, player PlayerID, coords []Coord) (*State, error)
}
