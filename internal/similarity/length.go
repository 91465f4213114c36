package similarity

// lengthRatioMetric scores two texts purely by how close their character
// lengths are: min(len)/max(len). A crude but fast proxy for structural
// consistency.
type lengthRatioMetric struct{}

// NewLengthRatioMetric creates a length-ratio metric.
func NewLengthRatioMetric() *lengthRatioMetric {
	return &lengthRatioMetric{}
}

func (m *lengthRatioMetric) Name() string { return string(KindLength) }

func (m *lengthRatioMetric) Calculate(a, b string) float64 {
	lenA := len(a)
	lenB := len(b)

	if lenA == 0 && lenB == 0 {
		return 1.0
	}

	minLen, maxLen := lenA, lenB
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}

	if maxLen == 0 {
		return 0.0
	}
	return float64(minLen) / float64(maxLen)
}
