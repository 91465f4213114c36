package evaluator

import (
	"fmt"

	"github.com/steadyeval/steady/internal/aggregate"
	"github.com/steadyeval/steady/internal/models"
	"github.com/steadyeval/steady/internal/similarity"
	"github.com/steadyeval/steady/internal/stability"
)

// Evaluator orchestrates aggregation and stability calculation into a
// report-ready structure. Feed it records with Load, then run EvaluateAll
// (or EvaluatePrompt for a single prompt) and summarize with Summarize.
type Evaluator struct {
	agg  *aggregate.Aggregator
	calc *stability.Calculator

	iterations int
	prompt     string
}

// Option configures an Evaluator.
type Option func(*evalConfig)

type evalConfig struct {
	iterations int
	seed       int64
	sampleSize int
	workers    int
	prompt     string
}

// WithIterations sets the number of Monte-Carlo trials per group.
func WithIterations(n int) Option {
	return func(c *evalConfig) { c.iterations = n }
}

// WithSeed makes every evaluation of this Evaluator reproducible. A negative
// seed restores the default nondeterministic source.
func WithSeed(seed int64) Option {
	return func(c *evalConfig) { c.seed = seed }
}

// WithSampleSize fixes the per-trial sample size used by plain Monte-Carlo
// averaging.
func WithSampleSize(n int) Option {
	return func(c *evalConfig) { c.sampleSize = n }
}

// WithWorkers parallelizes each group's trial loop across n goroutines.
func WithWorkers(n int) Option {
	return func(c *evalConfig) { c.workers = n }
}

// WithPrompt restricts EvaluateAll to a single base prompt.
func WithPrompt(prompt string) Option {
	return func(c *evalConfig) { c.prompt = prompt }
}

// New creates an Evaluator using the given similarity metric.
func New(metric similarity.Metric, opts ...Option) *Evaluator {
	cfg := evalConfig{
		iterations: models.DefaultIterations,
		seed:       -1,
	}
	for _, o := range opts {
		o(&cfg)
	}

	return &Evaluator{
		agg: aggregate.NewAggregator(),
		calc: stability.NewCalculator(metric,
			stability.WithSeed(cfg.seed),
			stability.WithSampleSize(cfg.sampleSize),
			stability.WithWorkers(cfg.workers)),
		iterations: cfg.iterations,
		prompt:     cfg.prompt,
	}
}

// Load replaces the evaluator's grouped state with the given records.
// Malformed records are dropped, not rejected.
func (e *Evaluator) Load(records []models.ResponseRecord) {
	e.agg = aggregate.NewAggregator()
	e.agg.AddAll(records)
}

// Dropped returns the number of malformed records skipped by the last Load.
func (e *Evaluator) Dropped() int {
	return e.agg.Dropped()
}

// Prompts returns the loaded base prompts in first-observation order.
func (e *Evaluator) Prompts() []string {
	return e.agg.Prompts()
}

// EvaluateAll computes comprehensive stability metrics for every loaded
// prompt, or only the configured prompt when one was set. Prompts whose
// records were all filtered out are omitted from the result, not reported as
// zero. Empty input yields an empty result, not an error.
func (e *Evaluator) EvaluateAll() (models.EvaluationResult, error) {
	prompts := e.agg.Prompts()
	if e.prompt != "" {
		prompts = []string{e.prompt}
	}

	result := make(models.EvaluationResult, len(prompts))
	for _, prompt := range prompts {
		pr, ok, err := e.evaluate(prompt)
		if err != nil {
			return nil, err
		}
		if ok {
			result[prompt] = pr
		}
	}
	return result, nil
}

// EvaluatePrompt computes comprehensive stability metrics for one prompt.
// An unseen prompt is an error here, unlike in EvaluateAll where the scope
// is derived from the loaded data.
func (e *Evaluator) EvaluatePrompt(prompt string) (models.PromptResult, error) {
	pr, ok, err := e.evaluate(prompt)
	if err != nil {
		return models.PromptResult{}, err
	}
	if !ok {
		return models.PromptResult{}, fmt.Errorf("no responses recorded for prompt %q", prompt)
	}
	return pr, nil
}

func (e *Evaluator) evaluate(prompt string) (models.PromptResult, bool, error) {
	sets := e.agg.ResponseSets(prompt)
	if len(sets) == 0 {
		return models.PromptResult{}, false, nil
	}

	metrics, err := e.calc.ComprehensiveStability(sets, e.iterations)
	if err != nil {
		return models.PromptResult{}, false, err
	}

	counts := make(map[string]int, len(sets))
	for agent, responses := range sets {
		counts[agent] = len(responses)
	}

	return models.PromptResult{
		StabilityMetrics:     metrics,
		NumResponsesPerAgent: counts,
	}, true, nil
}

// Summarize flattens every agent's mean stability across every prompt into
// cross-prompt summary statistics. An empty result produces zero overall
// figures and an empty agent map rather than dividing by zero.
func Summarize(result models.EvaluationResult) models.Summary {
	summary := models.Summary{
		AgentAverages: map[string]float64{},
	}

	var all []float64
	perAgent := make(map[string][]float64)
	for _, pr := range result {
		for agent, m := range pr.StabilityMetrics {
			all = append(all, m.MeanStability)
			perAgent[agent] = append(perAgent[agent], m.MeanStability)
		}
	}

	if len(all) == 0 {
		return summary
	}

	lo, hi := stability.MinMax(all)
	summary.OverallMeanStability = stability.Mean(all)
	summary.OverallMinStability = lo
	summary.OverallMaxStability = hi
	for agent, means := range perAgent {
		summary.AgentAverages[agent] = stability.Mean(means)
	}
	return summary
}
