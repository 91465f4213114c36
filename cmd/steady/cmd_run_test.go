package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureRecords = `[
  {"base_prompt": "Tell me about X", "agent_name": "agentA", "response": "cats are great"},
  {"base_prompt": "Tell me about X", "agent_name": "agentA", "response": "cats are great"},
  {"base_prompt": "Tell me about X", "agent_name": "agentA", "response": "dogs are nice"},
  {"base_prompt": "Tell me about Y", "agent_name": "agentB", "response": "the sky is blue"},
  {"base_prompt": "Tell me about Y", "agent_name": "agentB", "response": "the sky is blue today"}
]`

const fixtureEval = `name: test-eval
data: responses.json
metric:
  type: jaccard
config:
  iterations: 200
  seed: 42
`

func writeRunFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "responses.json"), []byte(fixtureRecords), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eval.yaml"), []byte(fixtureEval), 0644))
	return dir
}

func runSteady(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunCommand_PrintsReport(t *testing.T) {
	dir := writeRunFixture(t)

	out, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "PROMPT STABILITY EVALUATION REPORT")
	assert.Contains(t, out, "Monte-Carlo Iterations: 200")
	assert.Contains(t, out, "Total Prompts Evaluated: 2")
	assert.Contains(t, out, "Base Prompt: Tell me about X")
	assert.Contains(t, out, "Agent: agentA")
	assert.Contains(t, out, "Number of Responses: 3")
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "Per-Agent Average Stability:")
}

func TestRunCommand_SummaryOnly(t *testing.T) {
	dir := writeRunFixture(t)

	out, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"), "--summary-only")
	require.NoError(t, err)

	assert.NotContains(t, out, "PROMPT STABILITY EVALUATION REPORT")
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "Overall Mean Stability:")
}

func TestRunCommand_PromptScope(t *testing.T) {
	dir := writeRunFixture(t)

	out, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"), "--prompt", "Tell me about Y")
	require.NoError(t, err)

	assert.Contains(t, out, "Base Prompt: Tell me about Y")
	assert.NotContains(t, out, "Base Prompt: Tell me about X")
	assert.Contains(t, out, "Total Prompts Evaluated: 1")
}

func TestRunCommand_SavesOutput(t *testing.T) {
	dir := writeRunFixture(t)
	outPath := filepath.Join(dir, "results.json")

	out, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"), "--output", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Results saved to")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var saved runOutput
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Contains(t, saved.Results, "Tell me about X")
	assert.Greater(t, saved.Summary.OverallMeanStability, 0.0)
}

func TestRunCommand_SeededRunsMatch(t *testing.T) {
	dir := writeRunFixture(t)

	first, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"))
	require.NoError(t, err)
	second, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunCommand_UnknownMetric(t *testing.T) {
	dir := writeRunFixture(t)

	_, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"), "--metric", "cosine")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid similarity metric")
}

func TestRunCommand_InvalidIterations(t *testing.T) {
	dir := writeRunFixture(t)

	_, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"), "--iterations", "0")
	require.Error(t, err)
}

func TestRunCommand_MissingDataFile(t *testing.T) {
	dir := t.TempDir()
	eval := "name: empty\ndata: nothing.json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eval.yaml"), []byte(eval), 0644))

	out, err := runSteady(t, "run", filepath.Join(dir, "eval.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "Total Prompts Evaluated: 0")
	assert.Contains(t, out, "Overall Mean Stability: 0.0000")
}

func TestRunCommand_MissingSpec(t *testing.T) {
	_, err := runSteady(t, "run", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
