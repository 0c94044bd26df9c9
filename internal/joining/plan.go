package joining

import (
	"samplekit/internal/discovery"
	"samplekit/internal/pairing"
)

// Plan lists the work found under a root.
type Plan struct {
	Root    string
	Pending []pairing.Pair
	Skipped []pairing.Pair
}

// Total returns the number of pairs discovered.
func (p Plan) Total() int {
	return len(p.Pending) + len(p.Skipped)
}

// BuildPlan discovers fragments under root, pairs them and separates pairs
// whose target already exists.
func BuildPlan(root string, conv pairing.Convention) (Plan, error) {
	files, err := discovery.AllFiles(root)
	if err != nil {
		return Plan{}, err
	}
	pairs, err := pairing.Match(files.Sorted(), conv)
	if err != nil {
		return Plan{}, err
	}
	pending, skipped, err := pairing.SplitExisting(pairs)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Root: root, Pending: pending, Skipped: skipped}, nil
}
