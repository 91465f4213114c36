package source

import (
	"fmt"
	"sync"
)

// Scripted replays canned responses per prompt, round-robin. Useful as a
// stand-in agent in tests and demonstrations.
type Scripted struct {
	name    string
	scripts map[string][]string

	mu   sync.Mutex
	next map[string]int
}

// NewScripted creates a scripted source. scripts maps each prompt to the
// responses it cycles through.
func NewScripted(name string, scripts map[string][]string) *Scripted {
	return &Scripted{
		name:    name,
		scripts: scripts,
		next:    make(map[string]int),
	}
}

func (s *Scripted) Name() string {
	return s.name
}

// Respond returns the next scripted response for the prompt, wrapping around
// when the script runs out. A prompt with no script is an error.
func (s *Scripted) Respond(prompt string) (string, error) {
	responses := s.scripts[prompt]
	if len(responses) == 0 {
		return "", fmt.Errorf("no scripted responses for prompt %q", prompt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.next[prompt]
	s.next[prompt] = i + 1
	return responses[i%len(responses)], nil
}
