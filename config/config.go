// Package config reads experiment descriptions from YAML files.
package config

import (
	"antics/agent"
	"antics/game"
	"antics/meta"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Experiment is a set of agents and the matchups played between them.
type Experiment struct {
	Name        string         `yaml:"name"`
	Games       int            `yaml:"games"`     // Per matchup
	MaxMoves    int            `yaml:"max_moves"` // Per game
	MoveTimeout time.Duration  `yaml:"move_timeout"`
	Output      string         `yaml:"output"`
	Alternate   bool           `yaml:"alternate"` // Swap seats every other game
	Agents      []agent.Config `yaml:"agents"`
	MatchUps    [][2]int       `yaml:"matchups"` // Pairs of agent IDs
}

// Load reads and validates the experiment at path.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read experiment")
	}
	exp, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "experiment %s", path)
	}
	return exp, nil
}

func Parse(data []byte) (*Experiment, error) {
	exp := &Experiment{}
	if err := yaml.Unmarshal(data, exp); err != nil {
		return nil, errors.Wrap(err, "failed to parse experiment")
	}
	exp.ApplyDefaults()
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return exp, nil
}

// ApplyDefaults fills unset game counts, move caps and the output directory from meta.
func (e *Experiment) ApplyDefaults() {
	if e.Games <= 0 {
		e.Games = meta.NUM_GAMES
	}
	if e.MaxMoves <= 0 {
		e.MaxMoves = meta.MAX_MOVES
	}
	if e.Output == "" {
		e.Output = meta.RESULTS_DIR
	}
}

// Validate checks that every agent can be built and every matchup names known agents.
func (e *Experiment) Validate() error {
	if e.Name == "" {
		return errors.New("experiment needs a name")
	}
	if len(e.MatchUps) == 0 {
		return errors.Errorf("experiment %s has no matchups", e.Name)
	}

	rules := game.NewStandardRules()
	ids := map[int]bool{}
	for _, cfg := range e.Agents {
		if ids[cfg.ID] {
			return errors.Errorf("duplicate agent id %d", cfg.ID)
		}
		ids[cfg.ID] = true
		if _, err := agent.New(cfg, rules); err != nil {
			return err
		}
	}
	for _, matchUp := range e.MatchUps {
		for _, id := range matchUp {
			if !ids[id] {
				return errors.Errorf("matchup %v names unknown agent %d", matchUp, id)
			}
		}
	}
	return nil
}

// Agent returns the agent configured under id.
func (e *Experiment) Agent(id int) (agent.Config, bool) {
	for _, cfg := range e.Agents {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return agent.Config{}, false
}
