package analyzer

const (
	curiosityMin = 0.0
	curiosityMax = 100.0
)

// CuriosityIndex scores focus against mistakes on a 0-100 scale:
// focus + (10 - mistakes) * 2, clamped at both ends.
func CuriosityIndex(focusScore float64, mistakes int) float64 {
	raw := focusScore + float64(10-mistakes)*2

	// the negated compare also sends NaN to the floor
	if !(raw > curiosityMin) {
		return curiosityMin
	}
	if raw > curiosityMax {
		return curiosityMax
	}
	return raw
}
