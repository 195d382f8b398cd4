package interview

// OverallScore folds the answers into the running session score: 0 for an
// empty list, otherwise the unrounded arithmetic mean of all answer scores.
// It is recomputed from scratch on every append.
func OverallScore(answers []Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	sum := 0
	for _, a := range answers {
		sum += a.Score
	}
	return float64(sum) / float64(len(answers))
}

// RatingLabel maps an overall score onto the label shown in the report.
func RatingLabel(score float64) string {
	switch {
	case score >= 9:
		return "Outstanding"
	case score >= 8:
		return "Strong Hire"
	case score >= 7:
		return "Good"
	case score >= 6:
		return "Average"
	default:
		return "Needs Improvement"
	}
}
