package models

// StabilityMetrics summarizes the distribution of stability scores collected
// across Monte-Carlo trials for one (prompt, agent) group. Every stability
// value lies in [0, 1]; Variance and StdDev are population moments.
type StabilityMetrics struct {
	MeanStability float64 `json:"mean_stability"`
	Variance      float64 `json:"variance"`
	StdDev        float64 `json:"std_dev"`
	MinStability  float64 `json:"min_stability"`
	MaxStability  float64 `json:"max_stability"`
}

// DegenerateMetrics is the fixed result for a group with fewer than two
// responses: a single observation is trivially self-consistent by convention.
func DegenerateMetrics() StabilityMetrics {
	return StabilityMetrics{
		MeanStability: 1.0,
		Variance:      0.0,
		StdDev:        0.0,
		MinStability:  1.0,
		MaxStability:  1.0,
	}
}

// PromptResult holds the per-agent stability metrics and response counts for
// one base prompt.
type PromptResult struct {
	StabilityMetrics     map[string]StabilityMetrics `json:"stability_metrics"`
	NumResponsesPerAgent map[string]int              `json:"num_responses_per_agent"`
}

// EvaluationResult maps each evaluated base prompt to its per-agent results.
// Prompts whose response sets were entirely filtered out are absent, not
// reported as zero.
type EvaluationResult map[string]PromptResult

// Summary flattens every agent's mean stability across every prompt into
// cross-prompt aggregates.
type Summary struct {
	OverallMeanStability float64            `json:"overall_mean_stability"`
	OverallMinStability  float64            `json:"overall_min_stability"`
	OverallMaxStability  float64            `json:"overall_max_stability"`
	AgentAverages        map[string]float64 `json:"agent_averages"`
}
