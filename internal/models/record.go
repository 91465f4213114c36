package models

// ResponseRecord is one observed agent response to a styled variant of a base
// prompt. Records are produced by a response source, persisted by a store,
// and consumed read-only by the aggregation layer; only BasePrompt, AgentName
// and Response matter for grouping, everything else is carried verbatim.
type ResponseRecord struct {
	BasePrompt       string             `json:"base_prompt"`
	AgentName        string             `json:"agent_name"`
	Response         string             `json:"response"`
	FullPrompt       string             `json:"full_prompt,omitempty"`
	StyleCombination string             `json:"style_combination,omitempty"`
	Sentiment        map[string]float64 `json:"sentiment,omitempty"`
	Timestamp        string             `json:"timestamp,omitempty"`
}

// Valid reports whether the record carries every field required for
// aggregation. Invalid records are tolerated input, not errors: the upstream
// store may contain legacy or partially-written entries.
func (r ResponseRecord) Valid() bool {
	return r.BasePrompt != "" && r.AgentName != "" && r.Response != ""
}
