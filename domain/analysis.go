package domain

// FeatureVector is one behavior observation in model input order:
// response_time, retry_count, mistakes, focus_score.
type FeatureVector [4]float64

func NewFeatureVector(responseTime float64, retryCount, mistakes int, focusScore float64) FeatureVector {
	return FeatureVector{responseTime, float64(retryCount), float64(mistakes), focusScore}
}
