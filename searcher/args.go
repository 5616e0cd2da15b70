package searcher

import "github.com/pkg/errors"

// Hyperparameters for the search

const DefaultDepth = 2

// AggregationMode selects how sibling scores reduce to their parent's score.
type AggregationMode int

const (
	Mean AggregationMode = iota
	Max
)

func (m AggregationMode) String() string {
	switch m {
	case Mean:
		return "mean"
	case Max:
		return "max"
	default:
		return "unknown"
	}
}

func ParseAggregation(name string) (AggregationMode, error) {
	switch name {
	case "mean":
		return Mean, nil
	case "max":
		return Max, nil
	default:
		return Mean, errors.Errorf("unknown aggregation mode %q", name)
	}
}

// PruneMode selects which children are candidates for deeper search.
type PruneMode int

const (
	Full           PruneMode = iota // Every child is a candidate
	ThirdBestFirst                  // Only the best third of the children are candidates
)

func (m PruneMode) String() string {
	switch m {
	case Full:
		return "full"
	case ThirdBestFirst:
		return "thirdBestFirst"
	default:
		return "unknown"
	}
}

func ParsePrune(name string) (PruneMode, error) {
	switch name {
	case "full":
		return Full, nil
	case "thirdBestFirst":
		return ThirdBestFirst, nil
	default:
		return Full, errors.Errorf("unknown prune mode %q", name)
	}
}
