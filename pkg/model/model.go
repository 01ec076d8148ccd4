// Package model holds the offline-trained classifiers used for behavior
// analysis and their JSON loaders. Every classifier is validated at load
// time, so Predict never fails and is safe for concurrent use.
package model

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"cogniLearn/domain"
)

// FeatureDim is the width every loaded model must accept.
const FeatureDim = len(domain.FeatureVector{})

const (
	PatternModelFile = "rf_learning_pattern.json"
	GroupModelFile   = "kmeans_learner_groups.json"
	RiskModelFile    = "logreg_risk.json"
)

var ErrInvalidModel = errors.New("invalid model")

type validator interface {
	Validate() error
}

func loadJSON(path string, dst validator) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode model %s: %w", path, err)
	}

	if err := dst.Validate(); err != nil {
		return fmt.Errorf("validate model %s: %w", path, err)
	}

	return nil
}

func LoadRandomForest(path string) (*RandomForest, error) {
	var rf RandomForest
	if err := loadJSON(path, &rf); err != nil {
		return nil, err
	}
	return &rf, nil
}

func LoadKMeans(path string) (*KMeans, error) {
	var km KMeans
	if err := loadJSON(path, &km); err != nil {
		return nil, err
	}
	return &km, nil
}

func LoadLogisticRegression(path string) (*LogisticRegression, error) {
	var lr LogisticRegression
	if err := loadJSON(path, &lr); err != nil {
		return nil, err
	}
	return &lr, nil
}
