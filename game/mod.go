package game

// PlayerID identifies the owner of ants and constructions.
type PlayerID int

const (
	PlayerOne PlayerID = iota
	PlayerTwo
	Neutral // Owner of grass and food piles

	NoPlayer PlayerID = -1
)

// Opponent returns the other player of a two-player game
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return NoPlayer
	}
}

func (p PlayerID) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

func (p PlayerID) String() string {
	switch p {
	case PlayerOne:
		return "player1"
	case PlayerTwo:
		return "player2"
	case Neutral:
		return "neutral"
	default:
		return "none"
	}
}

type Phase int

const (
	SetupPhase1 Phase = iota // Anthill, tunnel and grass on own side
	SetupPhase2              // Food on the opponent's side
	PlayPhase
)

func (p Phase) String() string {
	switch p {
	case SetupPhase1:
		return "setup1"
	case SetupPhase2:
		return "setup2"
	case PlayPhase:
		return "play"
	default:
		return "unknown"
	}
}

const (
	BoardSize = 10
	SideRows  = 4 // Rows owned by each player during setup

	FoodGoal = 11 // Food count that wins the game outright

	AnthillCaptureHealth = 3
	GrassMoveCost        = 2

	SetupPhase1Count = 11 // 1 anthill, 1 tunnel, 9 grass
	SetupPhase2Count = 2  // Food piles
)
