package stability

import (
	"fmt"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/steadyeval/steady/internal/models"
	"github.com/steadyeval/steady/internal/similarity"
)

// agentSeedStride separates the derived random streams of consecutive agents
// (and their workers) when a base seed is set.
const agentSeedStride = 1_000_003

// Calculator turns a list of responses from one agent to one prompt into a
// distribution of stability scores via Monte-Carlo resampling, then
// summarizes that distribution.
type Calculator struct {
	metric similarity.Metric

	// seed controls the pseudo-random source. Negative means
	// nondeterministic; reproducibility is opt-in.
	seed int64

	// sampleSize, when positive, fixes the per-trial sample size for plain
	// Monte-Carlo averaging. Zero keeps the full set. Dispersion estimation
	// always uses the halved policy; the two sampling modes are deliberately
	// kept separate.
	sampleSize int

	// workers parallelizes the trial loop when > 1. Each worker owns an
	// independent random stream, so a seeded run stays reproducible.
	workers int
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithSeed makes every Monte-Carlo run of this calculator reproducible.
// A negative seed restores the default nondeterministic source.
func WithSeed(seed int64) Option {
	return func(c *Calculator) { c.seed = seed }
}

// WithSampleSize fixes the per-trial sample size used by plain Monte-Carlo
// averaging (MonteCarloStability). It does not affect the halved policy used
// for dispersion estimation.
func WithSampleSize(n int) Option {
	return func(c *Calculator) { c.sampleSize = n }
}

// WithWorkers parallelizes the trial loop across n goroutines.
func WithWorkers(n int) Option {
	return func(c *Calculator) { c.workers = n }
}

// NewCalculator creates a calculator using the given similarity metric.
func NewCalculator(metric similarity.Metric, opts ...Option) *Calculator {
	c := &Calculator{
		metric: metric,
		seed:   -1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PairwiseSimilarities computes the similarity of every unordered response
// pair (i < j), in index order. For n responses this yields n*(n-1)/2 values.
func (c *Calculator) PairwiseSimilarities(responses []string) []float64 {
	n := len(responses)
	if n < 2 {
		return nil
	}

	similarities := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			similarities = append(similarities, c.metric.Calculate(responses[i], responses[j]))
		}
	}
	return similarities
}

// StabilityScore is the mean pairwise similarity of the response list.
// A single response scores 1.0: one sample cannot disagree with itself,
// a definitional edge case rather than evidence of stability.
func (c *Calculator) StabilityScore(responses []string) float64 {
	if len(responses) < 2 {
		return 1.0
	}

	similarities := c.PairwiseSimilarities(responses)
	if len(similarities) == 0 {
		return 0.0
	}
	return Mean(similarities)
}

// MonteCarloStability returns, per agent, the mean stability score across
// nIterations trials. Each trial scores either the full response list or, if
// a fixed sample size was configured, a without-replacement sample of that
// size.
func (c *Calculator) MonteCarloStability(responseSets map[string][]string, nIterations int) (map[string]float64, error) {
	if err := c.validate(nIterations); err != nil {
		return nil, err
	}

	results := make(map[string]float64, len(responseSets))

	for i, agent := range sortedAgents(responseSets) {
		responses := responseSets[agent]
		if len(responses) < 2 {
			results[agent] = 1.0
			continue
		}

		rng := c.newRand(int64(i) * agentSeedStride)
		scores := make([]float64, nIterations)
		for k := range scores {
			sampled := responses
			if c.sampleSize > 0 && c.sampleSize < len(responses) {
				sampled = resampleTrial(rng, responses, c.sampleSize)
			}
			scores[k] = c.StabilityScore(sampled)
		}
		results[agent] = Mean(scores)
	}

	return results, nil
}

// ComprehensiveStability runs nIterations resampling trials per agent using
// the halved-size policy and summarizes the resulting score distribution.
// The spread of the trial scores is itself the signal: it answers how
// sensitive the stability estimate is to which responses happened to be
// observed. Groups with fewer than two responses get the fixed degenerate
// metric.
func (c *Calculator) ComprehensiveStability(responseSets map[string][]string, nIterations int) (map[string]models.StabilityMetrics, error) {
	if err := c.validate(nIterations); err != nil {
		return nil, err
	}

	results := make(map[string]models.StabilityMetrics, len(responseSets))

	// Agents are processed in sorted name order so that a seeded run
	// assigns the same random streams on every invocation.
	for i, agent := range sortedAgents(responseSets) {
		responses := responseSets[agent]
		if len(responses) < 2 {
			results[agent] = models.DegenerateMetrics()
			continue
		}

		scores := c.collectTrialScores(responses, nIterations, int64(i)*agentSeedStride)

		lo, hi := MinMax(scores)
		results[agent] = models.StabilityMetrics{
			MeanStability: Mean(scores),
			Variance:      Variance(scores),
			StdDev:        StdDev(scores),
			MinStability:  lo,
			MaxStability:  hi,
		}
	}

	return results, nil
}

// collectTrialScores runs the trial loop, sequentially or across workers.
// Trials are embarrassingly parallel: each one only reads the shared response
// list and writes one score, and the downstream aggregation is
// order-independent.
func (c *Calculator) collectTrialScores(responses []string, nIterations int, seedOffset int64) []float64 {
	sampleSize := halvedSampleSize(len(responses))
	scores := make([]float64, nIterations)

	if c.workers <= 1 {
		rng := c.newRand(seedOffset)
		for k := range scores {
			scores[k] = c.StabilityScore(resampleTrial(rng, responses, sampleSize))
		}
		return scores
	}

	workers := c.workers
	if workers > nIterations {
		workers = nIterations
	}

	var g errgroup.Group
	chunk := nIterations / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if w == workers-1 {
			end = nIterations
		}
		// Each worker draws from its own stream to avoid correlated
		// sampling between workers.
		rng := c.newRand(seedOffset + int64(w) + 1)
		g.Go(func() error {
			for k := start; k < end; k++ {
				scores[k] = c.StabilityScore(resampleTrial(rng, responses, sampleSize))
			}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	return scores
}

func (c *Calculator) validate(nIterations int) error {
	if nIterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", nIterations)
	}
	if c.sampleSize < 0 {
		return fmt.Errorf("sample size must not be negative, got %d", c.sampleSize)
	}
	if c.workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.workers)
	}
	return nil
}

func (c *Calculator) newRand(offset int64) *rand.Rand {
	if c.seed >= 0 {
		return rand.New(rand.NewSource(c.seed + offset))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

func sortedAgents(responseSets map[string][]string) []string {
	agents := make([]string, 0, len(responseSets))
	for agent := range responseSets {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	return agents
}
