package model

import (
	"fmt"

	"cogniLearn/domain"
)

// KMeans assigns the index of the nearest centroid (squared euclidean).
type KMeans struct {
	Centroids [][]float64 `json:"centroids"`
}

func (km *KMeans) Validate() error {
	if len(km.Centroids) == 0 {
		return fmt.Errorf("%w: no centroids", ErrInvalidModel)
	}
	for i, c := range km.Centroids {
		if len(c) != FeatureDim {
			return fmt.Errorf("%w: centroid %d has %d dims, want %d", ErrInvalidModel, i, len(c), FeatureDim)
		}
	}
	return nil
}

func (km *KMeans) Predict(x domain.FeatureVector) int {
	best := 0
	bestDist := -1.0
	for i, c := range km.Centroids {
		var d float64
		for j := range c {
			diff := x[j] - c[j]
			d += diff * diff
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
