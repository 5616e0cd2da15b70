package searcher

import "antics/game"

// Node links a candidate action to the state it produces and that state's score.
// The root has no action and no parent. Nodes live only for one search.
type Node struct {
	Action *game.Action
	State  *game.State
	Parent *Node
	Score  float64 // Evaluator estimate, replaced by the aggregate of a deeper search
}

func NewNode(action *game.Action, state *game.State, parent *Node, score float64) *Node {
	return &Node{
		Action: action,
		State:  state,
		Parent: parent,
		Score:  score,
	}
}

// Aggregate reduces sibling scores to one value for their parent.
// An empty set has no continuation and scores 0 in every mode.
func Aggregate(nodes []*Node, mode AggregationMode) float64 {
	if len(nodes) == 0 {
		return 0
	}

	switch mode {
	case Max:
		best := nodes[0].Score
		for _, node := range nodes[1:] {
			best = max(best, node.Score)
		}
		return best
	default:
		total := 0.0
		for _, node := range nodes {
			total += node.Score
		}
		return total / float64(len(nodes))
	}
}
