package regressor

import (
	"context"
	"fmt"
)

const leaf = -1

// Tree is one fitted regression tree in parallel-array form. Node i is a leaf
// when ChildrenLeft[i] == -1; otherwise x[Feature[i]] <= Threshold[i] goes left.
type Tree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

func (t *Tree) predict(x []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// validate checks array shapes and that every walk from the root terminates
// in a leaf, so predict never indexes out of range or loops.
func (t *Tree) validate(nFeatures int) error {
	n := len(t.Value)
	if n == 0 {
		return fmt.Errorf("%w: empty tree", ErrInvalidModel)
	}
	if len(t.ChildrenLeft) != n || len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n {
		return fmt.Errorf("%w: tree arrays have different lengths", ErrInvalidModel)
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf {
			if r != leaf {
				return fmt.Errorf("%w: node %d has only one child", ErrInvalidModel, i)
			}
			continue
		}
		// children always come after their parent in the node arrays
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("%w: node %d has out of range children", ErrInvalidModel, i)
		}
		if f := t.Feature[i]; f < 0 || f >= nFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d", ErrInvalidModel, i, f)
		}
	}
	return nil
}

// Forest averages the output of its trees.
type Forest struct {
	Trees []Tree `json:"trees"`

	nFeatures int
}

func (m *Forest) Predict(_ context.Context, x []float64) (float64, error) {
	if err := checkWidth(x, m.nFeatures); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range m.Trees {
		sum += m.Trees[i].predict(x)
	}
	return sum / float64(len(m.Trees)), nil
}

func (m *Forest) validate(nFeatures int) error {
	if len(m.Trees) == 0 {
		return fmt.Errorf("%w: forest has no trees", ErrInvalidModel)
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(nFeatures); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	m.nFeatures = nFeatures
	return nil
}
