package source

import (
	"math/rand"
	"strings"
	"sync"
)

// Synthetic derives responses from the prompt text itself, with a tunable
// instability knob that drops and swaps words between calls. It produces
// demonstration datasets with a known amount of disagreement, without any
// model or network.
type Synthetic struct {
	name        string
	instability float64

	mu  sync.Mutex
	rng *rand.Rand
}

// SyntheticOption configures a Synthetic source.
type SyntheticOption func(*Synthetic)

// WithInstability sets the per-word probability of a perturbation, clamped
// to [0, 1]. Zero makes every response to a prompt identical.
func WithInstability(p float64) SyntheticOption {
	return func(s *Synthetic) {
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		s.instability = p
	}
}

// WithSourceSeed makes the perturbation sequence reproducible. A negative
// seed keeps the default nondeterministic source.
func WithSourceSeed(seed int64) SyntheticOption {
	return func(s *Synthetic) {
		if seed >= 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// NewSynthetic creates a synthetic source with the given agent name.
func NewSynthetic(name string, opts ...SyntheticOption) *Synthetic {
	s := &Synthetic{
		name:        name,
		instability: 0.2,
		rng:         rand.New(rand.NewSource(rand.Int63())),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Synthetic) Name() string {
	return s.name
}

// Respond builds a canonical answer from the prompt and perturbs it.
func (s *Synthetic) Respond(prompt string) (string, error) {
	words := strings.Fields(baseAnswer(prompt))

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]string, 0, len(words))
	dropped := 0
	for _, w := range words {
		// Keep a floor of two words so the response never collapses to
		// something the similarity metrics treat as degenerate.
		if len(words)-dropped > 2 && s.rng.Float64() < s.instability {
			dropped++
			continue
		}
		kept = append(kept, w)
	}

	if len(kept) > 2 && s.rng.Float64() < s.instability {
		i := s.rng.Intn(len(kept) - 1)
		kept[i], kept[i+1] = kept[i+1], kept[i]
	}

	return strings.Join(kept, " "), nil
}

func baseAnswer(prompt string) string {
	topic := strings.ToLower(strings.TrimRight(strings.TrimSpace(prompt), "?.!"))
	return "in short " + topic + " comes down to a few points worth noting here"
}
