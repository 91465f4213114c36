package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	records := `[
  {"base_prompt": "p1", "agent_name": "a", "response": "r1"},
  {"base_prompt": "p1", "agent_name": "a", "response": "r2"},
  {"base_prompt": "p1", "agent_name": "b", "response": "r3"},
  {"base_prompt": "p2", "agent_name": "a", "response": "r4"},
  {"base_prompt": "p2", "agent_name": "a"}
]`
	path := filepath.Join(dir, "responses.json")
	require.NoError(t, os.WriteFile(path, []byte(records), 0644))

	out, err := runSteady(t, "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Records: 5")
	assert.Contains(t, out, "Prompts: 2")
	assert.Contains(t, out, "Malformed (ignored): 1")
	assert.Contains(t, out, "p1")
	assert.Contains(t, out, "a: 2 response(s)")
	assert.Contains(t, out, "b: 1 response(s)")
}

func TestInspectCommand_MissingFile(t *testing.T) {
	out, err := runSteady(t, "inspect", filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "Records: 0")
	assert.Contains(t, out, "Prompts: 0")
	assert.NotContains(t, out, "Malformed")
}
