package aggregate

import (
	"log/slog"

	"github.com/steadyeval/steady/internal/models"
)

// Aggregator groups a flat, order-preserving sequence of response records by
// base prompt and agent. It is rebuilt fully on every load; there is no
// incremental mutation across runs.
type Aggregator struct {
	groups  map[string]map[string][]string
	prompts []string
	dropped int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		groups: make(map[string]map[string][]string),
	}
}

// Add appends a record's response text under its (prompt, agent) group.
// Records missing a required field are silently dropped, not rejected: the
// upstream store may contain legacy or partially-written entries. Drops are
// counted so callers can observe the tolerance policy at work.
func (a *Aggregator) Add(record models.ResponseRecord) {
	if !record.Valid() {
		a.dropped++
		slog.Debug("dropping malformed record",
			"base_prompt", record.BasePrompt,
			"agent_name", record.AgentName,
			"has_response", record.Response != "")
		return
	}

	agents, ok := a.groups[record.BasePrompt]
	if !ok {
		agents = make(map[string][]string)
		a.groups[record.BasePrompt] = agents
		a.prompts = append(a.prompts, record.BasePrompt)
	}

	agents[record.AgentName] = append(agents[record.AgentName], record.Response)
}

// AddAll feeds every record through Add.
func (a *Aggregator) AddAll(records []models.ResponseRecord) {
	for _, r := range records {
		a.Add(r)
	}
}

// ResponseSets returns the per-agent response lists for one prompt, in
// observation order. Returns an empty map when the prompt was never observed.
func (a *Aggregator) ResponseSets(basePrompt string) map[string][]string {
	agents, ok := a.groups[basePrompt]
	if !ok {
		return map[string][]string{}
	}

	sets := make(map[string][]string, len(agents))
	for agent, responses := range agents {
		sets[agent] = responses
	}
	return sets
}

// Prompts returns every distinct base prompt seen, in first-observation order.
func (a *Aggregator) Prompts() []string {
	return a.prompts
}

// Dropped returns the number of malformed records skipped so far.
func (a *Aggregator) Dropped() int {
	return a.dropped
}
