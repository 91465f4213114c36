// Package schemas holds the embedded JSON Schemas that ship with the binary.
package schemas

import _ "embed"

// RecordsSchemaJSON is the JSON Schema for response record files.
//
//go:embed records.schema.json
var RecordsSchemaJSON string

// EvalSchemaJSON is the JSON Schema for eval.yaml files.
//
//go:embed eval.schema.json
var EvalSchemaJSON string
