package experiments

import (
	"antics/agent"
	"antics/config"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	exp := &config.Experiment{
		Name:      "smoke",
		Games:     2,
		MaxMoves:  30,
		Output:    t.TempDir(),
		Alternate: true,
		Agents: []agent.Config{
			{ID: 0, Kind: agent.RandomKind, Seed: 1},
			{ID: 1, Depth: 1, Evaluation: "positional", Seed: 2},
		},
		MatchUps: [][2]int{{0, 1}},
	}

	dir, err := Run(context.Background(), exp)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(exp.Output, "smoke"), filepath.Dir(dir))

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 3)
	require.Equal(t, []string{"1", "search", "1", "positional", "mean", "full", "false"}, configs[2])

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 3)
	require.Equal(t, []string{"1", "0", "1"}, games[1][:3])
	require.Equal(t, []string{"2", "1", "0"}, games[2][:3], "Seats should alternate")

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Greater(t, len(moves), 1)
	require.Equal(t, "game", moves[0][0])
}

func TestRunRejectsInvalidExperiments(t *testing.T) {
	exp := &config.Experiment{
		Name:     "broken",
		Output:   t.TempDir(),
		Agents:   []agent.Config{{ID: 0, Prune: "alphabeta"}},
		MatchUps: [][2]int{{0, 0}},
	}

	_, err := Run(context.Background(), exp)
	require.ErrorContains(t, err, "alphabeta")
}

func TestPresets(t *testing.T) {
	for _, exp := range []*config.Experiment{DepthExperiment(), EvaluationExperiment()} {
		t.Run(exp.Name, func(t *testing.T) {
			require.NoError(t, exp.Validate())
			for _, matchUp := range exp.MatchUps {
				require.Equal(t, baseline.ID, matchUp[0])
			}
		})
	}
	require.Len(t, EvaluationExperiment().MatchUps, 8)
}
