package agent

import (
	"antics/game"

	"golang.org/x/exp/rand"
)

// policy holds the placement and attack choices shared by every agent: both are uniformly random.
type policy struct {
	player game.PlayerID
	rng    *rand.Rand
}

func (p *policy) Placement(state *game.State) []game.Coord {
	free := []game.Coord{}
	for _, c := range game.SetupRegion(state.Phase, p.player) {
		if _, taken := state.ConstructionAt(c); taken {
			continue
		}
		if _, occupied := state.AntAt(c); occupied {
			continue
		}
		free = append(free, c)
	}

	p.rng.Shuffle(len(free), func(i, j int) {
		free[i], free[j] = free[j], free[i]
	})
	return free[:min(game.SetupCount(state.Phase), len(free))]
}

func (p *policy) Attack(_ *game.State, _ game.Coord, targets []game.Coord) game.Coord {
	return targets[p.rng.Intn(len(targets))]
}
