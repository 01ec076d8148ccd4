package model

import (
	"fmt"
	"math"

	"cogniLearn/domain"
)

// LogisticRegression is a binary classifier: 1 when the decision function
// w·x + b is positive.
type LogisticRegression struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func (lr *LogisticRegression) Validate() error {
	if len(lr.Coefficients) != FeatureDim {
		return fmt.Errorf("%w: %d coefficients, want %d", ErrInvalidModel, len(lr.Coefficients), FeatureDim)
	}
	return nil
}

func (lr *LogisticRegression) Decision(x domain.FeatureVector) float64 {
	z := lr.Intercept
	for i, w := range lr.Coefficients {
		z += w * x[i]
	}
	return z
}

func (lr *LogisticRegression) Probability(x domain.FeatureVector) float64 {
	return 1 / (1 + math.Exp(-lr.Decision(x)))
}

func (lr *LogisticRegression) Predict(x domain.FeatureVector) int {
	if lr.Decision(x) > 0 {
		return 1
	}
	return 0
}
