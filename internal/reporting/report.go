// Package reporting renders evaluation results as plain-text reports. The
// engine output stays structured data; everything here is presentation.
package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/steadyeval/steady/internal/models"
)

const lineWidth = 80

// maxAgentCol bounds the agent-name column in the summary table.
const maxAgentCol = 40

// FormatReport renders the full per-prompt, per-agent stability report.
// Prompts and agents are listed in sorted order so the report is stable
// across runs.
func FormatReport(result models.EvaluationResult, iterations int) string {
	banner := strings.Repeat("=", lineWidth)
	rule := strings.Repeat("-", lineWidth)

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("PROMPT STABILITY EVALUATION REPORT\n")
	b.WriteString(banner + "\n\n")
	fmt.Fprintf(&b, "Monte-Carlo Iterations: %d\n", iterations)
	fmt.Fprintf(&b, "Total Prompts Evaluated: %d\n\n", len(result))

	for _, prompt := range sortedKeys(result) {
		pr := result[prompt]
		b.WriteString(rule + "\n")
		fmt.Fprintf(&b, "Base Prompt: %s\n", truncateName(prompt, lineWidth-len("Base Prompt: ")))
		b.WriteString(rule + "\n")

		for _, agent := range sortedKeys(pr.StabilityMetrics) {
			m := pr.StabilityMetrics[agent]
			fmt.Fprintf(&b, "\nAgent: %s\n", agent)
			fmt.Fprintf(&b, "  Number of Responses: %d\n", pr.NumResponsesPerAgent[agent])
			fmt.Fprintf(&b, "  Mean Stability: %.4f\n", m.MeanStability)
			fmt.Fprintf(&b, "  Stability Std Dev: %.4f\n", m.StdDev)
			fmt.Fprintf(&b, "  Stability Variance: %.4f\n", m.Variance)
			fmt.Fprintf(&b, "  Min Stability: %.4f\n", m.MinStability)
			fmt.Fprintf(&b, "  Max Stability: %.4f\n", m.MaxStability)
		}
		b.WriteString("\n")
	}

	b.WriteString(banner + "\n")
	return b.String()
}

// FormatSummary renders the cross-prompt summary with a per-agent table.
func FormatSummary(summary models.Summary) string {
	banner := strings.Repeat("=", lineWidth)

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("SUMMARY\n")
	b.WriteString(banner + "\n\n")
	fmt.Fprintf(&b, "Overall Mean Stability: %.4f\n", summary.OverallMeanStability)
	fmt.Fprintf(&b, "Overall Min Stability:  %.4f\n", summary.OverallMinStability)
	fmt.Fprintf(&b, "Overall Max Stability:  %.4f\n", summary.OverallMaxStability)

	if len(summary.AgentAverages) == 0 {
		return b.String()
	}

	agents := sortedKeys(summary.AgentAverages)
	col := 0
	for _, agent := range agents {
		if w := runewidth.StringWidth(agent); w > col {
			col = w
		}
	}
	if col > maxAgentCol {
		col = maxAgentCol
	}

	b.WriteString("\nPer-Agent Average Stability:\n")
	for _, agent := range agents {
		name := padRight(truncateName(agent, maxAgentCol), col)
		fmt.Fprintf(&b, "  %s  %.4f\n", name, summary.AgentAverages[agent])
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
