package analyzer

import (
	"strconv"

	"cogniLearn/domain"
)

// Scorer is an opaque pre-trained classifier.
type Scorer interface {
	Predict(x domain.FeatureVector) int
}

// Models bundles the three classifiers the analyzer needs.
type Models struct {
	Pattern Scorer // multi-class, codes 0..2
	Group   Scorer // k-means cluster id
	Risk    Scorer // binary, 1 = at risk
}

func (m Models) complete() bool {
	return m.Pattern != nil && m.Group != nil && m.Risk != nil
}

type Result struct {
	LearningPattern LearningPattern `json:"learning_pattern"`
	LearnerGroup    int             `json:"learner_group"`
	AtRisk          bool            `json:"at_risk"`
	Recommendations []string        `json:"recommendations"`
}

const fallbackGroup = 1

func fallbackResult() Result {
	return Result{
		LearningPattern: PatternVisual,
		LearnerGroup:    fallbackGroup,
		AtRisk:          false,
		Recommendations: []string{FallbackRecommendation},
	}
}

// Analyzer turns a behavior sample into an analysis result. Its state is
// fixed at construction: either all three models are present, or it serves
// the fallback result for the rest of the process lifetime.
type Analyzer struct {
	models    Models
	available bool
}

// New builds an analyzer over already-loaded models. A nil model puts the
// analyzer in fallback mode.
func New(models Models) *Analyzer {
	a := &Analyzer{
		models:    models,
		available: models.complete(),
	}

	recordAvailability(a.available)
	return a
}

// NewUnavailable returns an analyzer that only serves the fallback result.
func NewUnavailable() *Analyzer {
	return New(Models{})
}

func (a *Analyzer) Available() bool {
	return a.available
}

// Analyze classifies one behavior sample. Inputs are not validated.
func (a *Analyzer) Analyze(responseTime float64, retryCount, mistakes int, focusScore float64) Result {
	if !a.available {
		analysesTotal.WithLabelValues("fallback", "false").Inc()
		return fallbackResult()
	}

	x := domain.NewFeatureVector(responseTime, retryCount, mistakes, focusScore)

	// 1) learning pattern
	pattern := PatternFromCode(a.models.Pattern.Predict(x))

	// 2) learner group
	group := a.models.Group.Predict(x)

	// 3) risk
	atRisk := a.models.Risk.Predict(x) == 1

	// 4) rule-based recommendations
	recs := buildRecommendations(pattern, atRisk, mistakes, focusScore)

	analysesTotal.WithLabelValues(pattern.String(), strconv.FormatBool(atRisk)).Inc()

	return Result{
		LearningPattern: pattern,
		LearnerGroup:    group,
		AtRisk:          atRisk,
		Recommendations: recs,
	}
}
