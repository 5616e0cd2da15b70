// meta/meta.go
package meta

// GO_ROUTINES defines the default number of goroutines a search fans children out to.
const GO_ROUTINES = 1

// MAX_MOVES caps the number of actions in one game, end turn actions included.
const MAX_MOVES = 1000

// NUM_GAMES defines the number of games per matchup.
const NUM_GAMES = 10

// RESULTS_DIR is where experiment CSV files are written.
const RESULTS_DIR = "results"
