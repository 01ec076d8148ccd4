package model

import (
	"fmt"

	"cogniLearn/domain"
)

const leafChild = -1

// TreeNode follows the flattened array layout of exported CART trees:
// children are referenced by index and a leaf has both children set to -1.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Class     int     `json:"class"`
}

func (n TreeNode) isLeaf() bool {
	return n.Left == leafChild && n.Right == leafChild
}

type DecisionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t DecisionTree) Validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%w: empty tree", ErrInvalidModel)
	}

	for i, n := range t.Nodes {
		if n.isLeaf() {
			continue
		}
		if n.Feature < 0 || n.Feature >= FeatureDim {
			return fmt.Errorf("%w: node %d feature %d out of range", ErrInvalidModel, i, n.Feature)
		}
		// children must come after their parent, which also rules out cycles
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("%w: node %d has invalid children (%d, %d)", ErrInvalidModel, i, n.Left, n.Right)
		}
	}

	return nil
}

func (t DecisionTree) Predict(x domain.FeatureVector) int {
	i := 0
	for {
		n := t.Nodes[i]
		if n.isLeaf() {
			return n.Class
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// RandomForest classifies by majority vote over its trees. Ties go to the
// smallest class label.
type RandomForest struct {
	Trees []DecisionTree `json:"trees"`
}

func (rf *RandomForest) Validate() error {
	if len(rf.Trees) == 0 {
		return fmt.Errorf("%w: forest has no trees", ErrInvalidModel)
	}
	for i, t := range rf.Trees {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

func (rf *RandomForest) Predict(x domain.FeatureVector) int {
	votes := make(map[int]int, 4)
	for _, t := range rf.Trees {
		votes[t.Predict(x)]++
	}

	best, bestVotes := 0, -1
	for class, n := range votes {
		if n > bestVotes || (n == bestVotes && class < best) {
			best, bestVotes = class, n
		}
	}
	return best
}
