package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultIterations is the number of Monte-Carlo trials used when a spec
// leaves the iteration count unset.
const DefaultIterations = 1000

// EvalSpec is a complete stability evaluation specification, loaded from an
// eval.yaml file.
type EvalSpec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	DataPath    string       `yaml:"data"`
	Metric      MetricConfig `yaml:"metric"`
	Config      RunConfig    `yaml:"config"`
	// Prompts optionally narrows evaluation to specific base prompts.
	// Empty means evaluate everything in the data file.
	Prompts []string `yaml:"prompts,omitempty"`
}

// MetricConfig selects and configures the similarity metric.
type MetricConfig struct {
	Kind       string         `yaml:"type"`
	Parameters map[string]any `yaml:"config,omitempty"`
}

// RunConfig controls the Monte-Carlo run.
type RunConfig struct {
	Iterations int `yaml:"iterations"`
	// Seed makes a run reproducible. Omitted, zero or negative means a
	// nondeterministic source.
	Seed int64 `yaml:"seed,omitempty"`
	// SampleSize fixes the per-trial sample size for plain Monte-Carlo
	// averaging. Zero keeps the default policy (full set for averaging,
	// halved for comprehensive metrics).
	SampleSize int  `yaml:"sample_size,omitempty"`
	Parallel   bool `yaml:"parallel,omitempty"`
	Workers    int  `yaml:"max_workers,omitempty"`
}

// LoadEvalSpec loads a spec from a YAML file, applies defaults, and validates.
func LoadEvalSpec(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	spec.ApplyDefaults()

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

// ApplyDefaults fills unset fields with their documented defaults. An omitted
// iteration count becomes DefaultIterations; an explicitly negative one is
// left alone so Validate can reject it.
func (s *EvalSpec) ApplyDefaults() {
	if s.Config.Iterations == 0 {
		s.Config.Iterations = DefaultIterations
	}
	if s.Config.Seed == 0 {
		s.Config.Seed = -1
	}
	if s.Metric.Kind == "" {
		s.Metric.Kind = "jaccard"
	}
}

// Validate checks that the spec is well-formed. Invalid configuration fails
// fast, before any computation starts.
func (s *EvalSpec) Validate() error {
	if s.DataPath == "" {
		return fmt.Errorf("data path is required")
	}
	if s.Config.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", s.Config.Iterations)
	}
	if s.Config.SampleSize < 0 {
		return fmt.Errorf("sample_size must not be negative, got %d", s.Config.SampleSize)
	}
	if s.Config.Workers < 0 {
		return fmt.Errorf("max_workers must not be negative, got %d", s.Config.Workers)
	}
	return nil
}
