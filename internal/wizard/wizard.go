package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/steadyeval/steady/internal/models"
)

// EvalDraft holds all fields collected during the interactive wizard.
type EvalDraft struct {
	Name        string
	Description string
	DataPath    string
	Metric      string
	Iterations  int
	Seed        int64
}

const evalYAMLTemplate = `name: {{ .Name }}
{{- if .Description }}
description: {{ .Description }}
{{- end }}
data: {{ .DataPath }}
metric:
  type: {{ .Metric }}
config:
  iterations: {{ .Iterations }}
{{- if ge .Seed 0 }}
  seed: {{ .Seed }}
{{- end }}
`

// RunEvalWizard runs an interactive huh form to collect an evaluation
// definition. If initialName is non-empty, it pre-populates the name field.
func RunEvalWizard(in io.Reader, out io.Writer, initialName string) (*EvalDraft, error) {
	var (
		name          = initialName
		description   string
		dataPath      = "responses.json"
		metric        string
		iterationsRaw = strconv.Itoa(models.DefaultIterations)
		seedRaw       string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Evaluation name").
				Description("A short name for this evaluation").
				Placeholder("my-stability-check").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("evaluation name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Description("What is being compared? (optional)").
				Value(&description),
			huh.NewInput().
				Title("Data file").
				Description("Path to the response record JSON file").
				Placeholder("responses.json").
				Value(&dataPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("data file path is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Similarity metric").
				Options(
					huh.NewOption("jaccard (word overlap)", "jaccard"),
					huh.NewOption("length (length ratio)", "length"),
					huh.NewOption("levenshtein (edit distance)", "levenshtein"),
				).
				Value(&metric),
			huh.NewInput().
				Title("Monte-Carlo iterations").
				Description("Trials per (prompt, agent) group").
				Value(&iterationsRaw).
				Validate(validateIterations),
			huh.NewInput().
				Title("Random seed").
				Description("Leave empty for a nondeterministic run").
				Value(&seedRaw).
				Validate(validateSeed),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	iterations, _ := strconv.Atoi(strings.TrimSpace(iterationsRaw))
	seed := int64(-1)
	if s := strings.TrimSpace(seedRaw); s != "" {
		seed, _ = strconv.ParseInt(s, 10, 64)
	}

	return &EvalDraft{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		DataPath:    strings.TrimSpace(dataPath),
		Metric:      metric,
		Iterations:  iterations,
		Seed:        seed,
	}, nil
}

// GenerateEvalYAML renders an eval.yaml from the given draft.
func GenerateEvalYAML(draft *EvalDraft) (string, error) {
	tmpl, err := template.New("evalyaml").Parse(evalYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, draft); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func validateIterations(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("iterations must be a number")
	}
	if n < 1 {
		return fmt.Errorf("iterations must be at least 1")
	}
	return nil
}

func validateSeed(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return fmt.Errorf("seed must be an integer")
	}
	return nil
}
