package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const validEvalYAML = `name: stability-check
description: Compare agents on paraphrased prompts
data: responses.json
metric:
  type: jaccard
config:
  iterations: 500
  seed: 42
`

const invalidEvalYAML = `description: Missing name and data
metric:
  type: cosine
config:
  iterations: 0
`

const validRecordsJSON = `[
  {
    "base_prompt": "Tell me about X",
    "agent_name": "agentA",
    "response": "cats are great",
    "timestamp": "2026-08-30T12:00:00Z"
  }
]`

const invalidRecordsJSON = `[
  {
    "base_prompt": 42,
    "agent_name": "agentA",
    "response": "numeric prompt",
    "sentiment": {"positive": "high"}
  }
]`

func TestValidateEvalBytes_Valid(t *testing.T) {
	errs := ValidateEvalBytes([]byte(validEvalYAML))
	require.Empty(t, errs, "valid eval should have no errors")
}

func TestValidateEvalBytes_Invalid(t *testing.T) {
	errs := ValidateEvalBytes([]byte(invalidEvalYAML))
	require.NotEmpty(t, errs, "invalid eval should report errors")
}

func TestValidateEvalBytes_BadYAML(t *testing.T) {
	errs := ValidateEvalBytes([]byte("name: [unclosed"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateRecordsBytes_Valid(t *testing.T) {
	errs := ValidateRecordsBytes([]byte(validRecordsJSON))
	require.Empty(t, errs, "valid records should have no errors")
}

func TestValidateRecordsBytes_Invalid(t *testing.T) {
	errs := ValidateRecordsBytes([]byte(invalidRecordsJSON))
	require.NotEmpty(t, errs, "records with mistyped fields should report errors")
}

func TestValidateRecordsBytes_MissingFieldsPass(t *testing.T) {
	// Field presence is the aggregator's tolerance policy, not the schema's:
	// only structural violations fail here.
	errs := ValidateRecordsBytes([]byte(`[{"base_prompt": "p"}]`))
	require.Empty(t, errs)
}

func TestValidateRecordsBytes_BadJSON(t *testing.T) {
	errs := ValidateRecordsBytes([]byte("{not json"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "JSON parse error")
}
