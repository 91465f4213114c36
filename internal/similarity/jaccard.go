package similarity

import "strings"

// jaccardMetric scores two texts by word-set overlap: the size of the
// intersection of their lower-cased word sets over the size of the union.
type jaccardMetric struct {
	stopwords map[string]struct{}
}

// NewJaccardMetric creates a word-overlap metric. Words in stopwords are
// excluded from both sets before comparison (case-insensitive).
func NewJaccardMetric(stopwords []string) *jaccardMetric {
	m := &jaccardMetric{}
	if len(stopwords) > 0 {
		m.stopwords = make(map[string]struct{}, len(stopwords))
		for _, w := range stopwords {
			m.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
	return m
}

func (m *jaccardMetric) Name() string { return string(KindJaccard) }

func (m *jaccardMetric) Calculate(a, b string) float64 {
	wordsA := m.wordSet(a)
	wordsB := m.wordSet(b)

	// Two empty responses are identical by convention.
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1.0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection

	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func (m *jaccardMetric) wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := m.stopwords[w]; skip {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
