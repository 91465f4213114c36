package evaluator

import (
	"reflect"
	"testing"

	"github.com/steadyeval/steady/internal/models"
	"github.com/steadyeval/steady/internal/similarity"
)

func mustMetric(t *testing.T, kind similarity.Kind) similarity.Metric {
	t.Helper()
	m, err := similarity.Create(kind, nil)
	if err != nil {
		t.Fatalf("Create(%s): %v", kind, err)
	}
	return m
}

func rec(prompt, agent, response string) models.ResponseRecord {
	return models.ResponseRecord{
		BasePrompt: prompt,
		AgentName:  agent,
		Response:   response,
	}
}

func TestEvaluateAll_MixedResponses(t *testing.T) {
	// Two identical responses and one differing one: the stability estimate
	// must land strictly between the extremes once enough trials mix the
	// identical and the differing pairs.
	ev := New(mustMetric(t, similarity.KindJaccard),
		WithIterations(500),
		WithSeed(42))
	ev.Load([]models.ResponseRecord{
		rec("Tell me about X", "agentA", "cats are great"),
		rec("Tell me about X", "agentA", "cats are great"),
		rec("Tell me about X", "agentA", "dogs are nice"),
	})

	result, err := ev.EvaluateAll()
	if err != nil {
		t.Fatalf("EvaluateAll: %v", err)
	}

	pr, ok := result["Tell me about X"]
	if !ok {
		t.Fatalf("result missing prompt, got %v", result)
	}
	if got := pr.NumResponsesPerAgent["agentA"]; got != 3 {
		t.Errorf("num responses = %d, want 3", got)
	}

	m := pr.StabilityMetrics["agentA"]
	if m.MeanStability <= 0 || m.MeanStability >= 1 {
		t.Errorf("mean stability = %v, want strictly inside (0, 1)", m.MeanStability)
	}
	if m.MinStability > m.MeanStability || m.MeanStability > m.MaxStability {
		t.Errorf("metric ordering violated: %+v", m)
	}
}

func TestEvaluateAll_EmptyInput(t *testing.T) {
	ev := New(mustMetric(t, similarity.KindJaccard))
	ev.Load(nil)

	result, err := ev.EvaluateAll()
	if err != nil {
		t.Fatalf("EvaluateAll: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("EvaluateAll on empty input = %v, want empty", result)
	}

	summary := Summarize(result)
	if summary.OverallMeanStability != 0.0 {
		t.Errorf("overall mean = %v, want 0.0", summary.OverallMeanStability)
	}
	if len(summary.AgentAverages) != 0 {
		t.Errorf("agent averages = %v, want empty", summary.AgentAverages)
	}
}

func TestEvaluateAll_DropsMalformedRecords(t *testing.T) {
	ev := New(mustMetric(t, similarity.KindJaccard),
		WithIterations(50), WithSeed(1))
	ev.Load([]models.ResponseRecord{
		rec("p", "a", "one response"),
		rec("p", "a", "another response"),
		{BasePrompt: "p", AgentName: "a"}, // missing response
	})

	if got := ev.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1", got)
	}

	result, err := ev.EvaluateAll()
	if err != nil {
		t.Fatalf("EvaluateAll: %v", err)
	}
	if got := result["p"].NumResponsesPerAgent["a"]; got != 2 {
		t.Errorf("num responses = %d, want 2 (malformed record excluded)", got)
	}
}

func TestEvaluateAll_SeededIdempotence(t *testing.T) {
	records := []models.ResponseRecord{
		rec("p1", "a", "alpha beta gamma"),
		rec("p1", "a", "alpha beta delta"),
		rec("p1", "a", "epsilon zeta"),
		rec("p1", "b", "one two three"),
		rec("p1", "b", "one two four"),
		rec("p2", "a", "lorem ipsum dolor"),
		rec("p2", "a", "lorem ipsum amet"),
		rec("p2", "a", "sit amet"),
	}

	run := func() models.EvaluationResult {
		ev := New(mustMetric(t, similarity.KindJaccard),
			WithIterations(200), WithSeed(7))
		ev.Load(records)
		result, err := ev.EvaluateAll()
		if err != nil {
			t.Fatalf("EvaluateAll: %v", err)
		}
		return result
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("seeded evaluations differ:\n%v\n%v", first, second)
	}
}

func TestEvaluateAll_PromptScope(t *testing.T) {
	records := []models.ResponseRecord{
		rec("keep", "a", "x y"),
		rec("keep", "a", "x z"),
		rec("skip", "a", "q r"),
		rec("skip", "a", "q s"),
	}

	ev := New(mustMetric(t, similarity.KindJaccard),
		WithIterations(20), WithSeed(3), WithPrompt("keep"))
	ev.Load(records)

	result, err := ev.EvaluateAll()
	if err != nil {
		t.Fatalf("EvaluateAll: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("result = %v, want only the scoped prompt", result)
	}
	if _, ok := result["keep"]; !ok {
		t.Errorf("result missing scoped prompt, got %v", result)
	}
}

func TestEvaluatePrompt_Unseen(t *testing.T) {
	ev := New(mustMetric(t, similarity.KindJaccard))
	ev.Load([]models.ResponseRecord{rec("p", "a", "r")})

	if _, err := ev.EvaluatePrompt("never-seen"); err == nil {
		t.Error("EvaluatePrompt on unseen prompt succeeded, want error")
	}
}

func TestEvaluateAll_InvalidIterations(t *testing.T) {
	ev := New(mustMetric(t, similarity.KindJaccard), WithIterations(0))
	ev.Load([]models.ResponseRecord{
		rec("p", "a", "one"),
		rec("p", "a", "two"),
	})

	if _, err := ev.EvaluateAll(); err == nil {
		t.Error("EvaluateAll with zero iterations succeeded, want error")
	}
}

func TestSummarize(t *testing.T) {
	result := models.EvaluationResult{
		"p1": {
			StabilityMetrics: map[string]models.StabilityMetrics{
				"a": {MeanStability: 0.8},
				"b": {MeanStability: 0.4},
			},
		},
		"p2": {
			StabilityMetrics: map[string]models.StabilityMetrics{
				"a": {MeanStability: 0.6},
			},
		},
	}

	summary := Summarize(result)
	if want := (0.8 + 0.4 + 0.6) / 3; !almostEqual(summary.OverallMeanStability, want) {
		t.Errorf("overall mean = %v, want %v", summary.OverallMeanStability, want)
	}
	if summary.OverallMinStability != 0.4 || summary.OverallMaxStability != 0.8 {
		t.Errorf("overall min/max = %v/%v, want 0.4/0.8",
			summary.OverallMinStability, summary.OverallMaxStability)
	}
	if want := 0.7; !almostEqual(summary.AgentAverages["a"], want) {
		t.Errorf("agent a average = %v, want %v", summary.AgentAverages["a"], want)
	}
	if want := 0.4; !almostEqual(summary.AgentAverages["b"], want) {
		t.Errorf("agent b average = %v, want %v", summary.AgentAverages["b"], want)
	}
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	diff := a - b
	return diff < eps && diff > -eps
}
