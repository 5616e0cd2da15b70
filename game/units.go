package game

type UnitType int

const (
	Queen UnitType = iota
	Worker
	Drone
	Soldier
	RangedSoldier
)

func (u UnitType) String() string {
	switch u {
	case Queen:
		return "queen"
	case Worker:
		return "worker"
	case Drone:
		return "drone"
	case Soldier:
		return "soldier"
	case RangedSoldier:
		return "ranged_soldier"
	default:
		return "unknown"
	}
}

// UnitStats are the fixed attributes of a unit type.
type UnitStats struct {
	Movement int
	Health   int
	Attack   int
	Range    int
	Cost     int // Food needed to build, 0 for units that cannot be built
}

var unitStats = map[UnitType]UnitStats{
	Queen:         {Movement: 2, Health: 10, Attack: 4, Range: 1, Cost: 0},
	Worker:        {Movement: 2, Health: 4, Attack: 1, Range: 1, Cost: 1},
	Drone:         {Movement: 3, Health: 5, Attack: 2, Range: 1, Cost: 2},
	Soldier:       {Movement: 2, Health: 10, Attack: 4, Range: 1, Cost: 3},
	RangedSoldier: {Movement: 1, Health: 4, Attack: 2, Range: 3, Cost: 4},
}

// Buildable lists the unit types an anthill can produce, cheapest first.
var Buildable = []UnitType{Worker, Drone, Soldier, RangedSoldier}

// Stats returns the attributes of the unit type.
func (u UnitType) Stats() UnitStats {
	return unitStats[u]
}

// Cost returns the food cost of the unit type.
func (u UnitType) Cost() int {
	return unitStats[u].Cost
}

type ConstructionType int

const (
	Anthill ConstructionType = iota
	Tunnel
	Grass
	Food
)

func (c ConstructionType) String() string {
	switch c {
	case Anthill:
		return "anthill"
	case Tunnel:
		return "tunnel"
	case Grass:
		return "grass"
	case Food:
		return "food"
	default:
		return "unknown"
	}
}
