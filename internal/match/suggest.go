package match

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.5

// Closest returns the candidate most similar to name. Ties keep the earlier
// candidate. ok is false when no candidate reaches MinSimilarity or name
// already is a candidate.
func Closest(name string, candidates []string) (best string, ok bool) {
	bestScore := MinSimilarity

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		if score := Similarity(name, c); score >= bestScore && (!ok || score > bestScore) {
			best, bestScore, ok = c, score, true
		}
	}

	return best, ok
}

// Hint renders the "did you mean" suffix for name, or "" without a
// suggestion.
func Hint(name string, candidates []string) string {
	best, ok := Closest(name, candidates)
	if !ok {
		return ""
	}

	return "; did you mean " + best + "?"
}
