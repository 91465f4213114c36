package similarity

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Kind identifies a similarity metric implementation.
type Kind string

const (
	KindJaccard     Kind = "jaccard"
	KindLength      Kind = "length"
	KindLevenshtein Kind = "levenshtein"
)

// Metric compares two response texts and returns a bounded similarity score.
//
// Implementations must be pure and total, return values in [0, 1], be
// symmetric (Calculate(a, b) == Calculate(b, a)) and score identical inputs
// as 1.0. Any strategy satisfying this contract is substitutable.
type Metric interface {
	// Name returns the metric identifier used in results and error messages.
	Name() string

	// Calculate returns the similarity of two texts in [0, 1].
	Calculate(a, b string) float64
}

// Create builds the metric identified by kind, decoding any metric-specific
// parameters.
func Create(kind Kind, params map[string]any) (Metric, error) {
	switch kind {
	case KindJaccard:
		var v struct {
			Stopwords []string `mapstructure:"stopwords"`
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		return NewJaccardMetric(v.Stopwords), nil
	case KindLength:
		return NewLengthRatioMetric(), nil
	case KindLevenshtein:
		return NewLevenshteinMetric(), nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid similarity metric", kind)
	}
}
