package analyzer

// LearningPattern is the closed set of pedagogical style labels.
type LearningPattern string

const (
	PatternVisual      LearningPattern = "Visual"
	PatternAuditory    LearningPattern = "Auditory"
	PatternKinesthetic LearningPattern = "Kinesthetic"
	// PatternMixed is assigned when the classifier emits a code outside the
	// known mapping.
	PatternMixed LearningPattern = "Mixed"
)

// PatternFromCode maps a pattern classifier output to its label.
func PatternFromCode(code int) LearningPattern {
	switch code {
	case 0:
		return PatternVisual
	case 1:
		return PatternAuditory
	case 2:
		return PatternKinesthetic
	default:
		return PatternMixed
	}
}

func (p LearningPattern) String() string {
	return string(p)
}
