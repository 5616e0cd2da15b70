package game

import (
	"fmt"
	"sort"
)

// Coord is a tile on the board, x is the column and y the row.
type Coord struct {
	X int
	Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// OnBoard reports whether the coordinate lies within the board.
func (c Coord) OnBoard() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}

// Neighbors returns the orthogonally adjacent tiles on the board
func (c Coord) Neighbors() []Coord {
	candidates := []Coord{
		{X: c.X, Y: c.Y - 1},
		{X: c.X - 1, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
	}
	neighbors := make([]Coord, 0, len(candidates))
	for _, n := range candidates {
		if n.OnBoard() {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// manhattan counts orthogonal steps between two tiles
func manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SideOf returns the first and last row belonging to a player's side of the board.
func SideOf(player PlayerID) (first, last int) {
	if player == PlayerTwo {
		return BoardSize - SideRows, BoardSize - 1
	}
	return 0, SideRows - 1
}

// OnSide reports whether a tile is on the given player's side of the board.
func OnSide(c Coord, player PlayerID) bool {
	first, last := SideOf(player)
	return c.Y >= first && c.Y <= last
}

// SetupRegion returns every tile a player may place constructions on during a setup phase.
// Phase 1 places on the player's own side, phase 2 places food on the opponent's side.
func SetupRegion(phase Phase, player PlayerID) []Coord {
	side := player
	switch phase {
	case SetupPhase1:
	case SetupPhase2:
		side = player.Opponent()
	default:
		return nil
	}

	first, last := SideOf(side)
	region := make([]Coord, 0, BoardSize*SideRows)
	for y := first; y <= last; y++ {
		for x := 0; x < BoardSize; x++ {
			region = append(region, Coord{X: x, Y: y})
		}
	}
	return region
}

// SetupCount returns the number of placements a player makes during a setup phase.
func SetupCount(phase Phase) int {
	switch phase {
	case SetupPhase1:
		return SetupPhase1Count
	case SetupPhase2:
		return SetupPhase2Count
	default:
		return 0
	}
}

func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
}
