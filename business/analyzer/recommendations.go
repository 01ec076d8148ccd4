package analyzer

const (
	RecommendVisual      = "Use diagrams, infographics and video walkthroughs for upcoming topics."
	RecommendAuditory    = "Listen to educational podcasts and verbal explanations of each lesson."
	RecommendKinesthetic = "Engage in hands-on interactive tasks and practical simulations."
	RecommendHighMistake = "High mistake rate detected. Switching to integrated practice mode and suggesting 1-on-1 tutoring."
	RecommendLowFocus    = "Focus score is low. Study in short, frequent 15-minute sessions with breaks."

	FallbackRecommendation = "Fallback recommendation: Practice more."
)

const (
	highMistakeThreshold = 5
	lowFocusThreshold    = 50
)

// buildRecommendations applies every rule in order; a rule appends at most
// one string and never stops the ones after it.
func buildRecommendations(pattern LearningPattern, risk bool, mistakes int, focusScore float64) []string {
	recs := make([]string, 0, 3)

	switch pattern {
	case PatternVisual:
		recs = append(recs, RecommendVisual)
	case PatternAuditory:
		recs = append(recs, RecommendAuditory)
	case PatternKinesthetic:
		recs = append(recs, RecommendKinesthetic)
	}

	if risk || mistakes > highMistakeThreshold {
		recs = append(recs, RecommendHighMistake)
	}

	if focusScore < lowFocusThreshold {
		recs = append(recs, RecommendLowFocus)
	}

	return recs
}
