package similarity

// levenshteinMetric scores two texts by normalized edit distance:
// 1 - distance/maxLen, computed over runes. More sensitive to word order and
// small edits than the word-overlap metric, at O(len(a)*len(b)) cost.
type levenshteinMetric struct{}

// NewLevenshteinMetric creates an edit-distance metric.
func NewLevenshteinMetric() *levenshteinMetric {
	return &levenshteinMetric{}
}

func (m *levenshteinMetric) Name() string { return string(KindLevenshtein) }

func (m *levenshteinMetric) Calculate(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := editDistance(ra, rb)
	return 1.0 - float64(dist)/float64(maxLen)
}

// editDistance computes the Levenshtein distance with a two-row DP table.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
