package analyzer

import (
	"errors"
	"path/filepath"

	"cogniLearn/pkg/logger"
	"cogniLearn/pkg/model"
)

// ErrModelUnavailable wraps any failure to load the behavior models.
var ErrModelUnavailable = errors.New("behavior models unavailable")

// LoadModels reads the three classifiers from dir.
func LoadModels(dir string) (Models, error) {
	rf, err := model.LoadRandomForest(filepath.Join(dir, model.PatternModelFile))
	if err != nil {
		return Models{}, errors.Join(ErrModelUnavailable, err)
	}

	km, err := model.LoadKMeans(filepath.Join(dir, model.GroupModelFile))
	if err != nil {
		return Models{}, errors.Join(ErrModelUnavailable, err)
	}

	lr, err := model.LoadLogisticRegression(filepath.Join(dir, model.RiskModelFile))
	if err != nil {
		return Models{}, errors.Join(ErrModelUnavailable, err)
	}

	return Models{Pattern: rf, Group: km, Risk: lr}, nil
}

// NewFromDir loads the models once. On failure it logs a single warning and
// returns an analyzer that serves the fallback result for every call.
func NewFromDir(dir string) *Analyzer {
	models, err := LoadModels(dir)
	if err != nil {
		logger.Warn("AI models could not be loaded, serving fallback analysis", "models_dir", dir, "error", err.Error())
		return NewUnavailable()
	}

	logger.Info("AI models loaded", "models_dir", dir)
	return New(models)
}
