package assessment

// normalizedPercent maps a raw score onto the 0-100 scale of its indicator.
func normalizedPercent(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return score / max * 100
}

// computeOverallScore is the mean of the normalized indicator percentages.
// Indicators with different maximums therefore carry equal weight in the
// final number. An assessment without scores stays at zero.
func computeOverallScore(scores []Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, sc := range scores {
		sum += normalizedPercent(sc.Value, sc.MaxValue)
	}
	return sum / float64(len(scores))
}
