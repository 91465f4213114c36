// Package source defines the response source boundary. The evaluation engine
// never calls a source directly; sources exist to build record datasets
// without any model backend.
package source

// Source supplies response texts for prompts. How a response is produced is
// no concern of the engine.
type Source interface {
	// Name identifies the agent this source stands in for.
	Name() string
	// Respond produces one response to the given prompt.
	Respond(prompt string) (string, error)
}
