package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/steadyeval/steady/internal/models"
	"github.com/steadyeval/steady/internal/storage"
	"github.com/steadyeval/steady/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new evaluation",
		Long: `Initialize a new stability evaluation.

Creates an eval.yaml definition and a sample responses.json record file so
'steady run eval.yaml' works out of the box.

Use --interactive to run a guided wizard that collects the evaluation
settings instead of writing defaults.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run guided evaluation setup wizard")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	var evalYAML string
	dataFile := "responses.json"

	if interactive {
		draft, err := wizard.RunEvalWizard(cmd.InOrStdin(), cmd.OutOrStdout(), "")
		if err != nil {
			return err
		}
		content, err := wizard.GenerateEvalYAML(draft)
		if err != nil {
			return fmt.Errorf("failed to generate eval.yaml: %w", err)
		}
		evalYAML = content
		dataFile = draft.DataPath
	} else {
		spec := models.EvalSpec{
			Name:        "my-stability-eval",
			Description: "Measure how consistently agents answer restyled prompts.",
			DataPath:    dataFile,
			Metric:      models.MetricConfig{Kind: "jaccard"},
			Config:      models.RunConfig{Iterations: models.DefaultIterations},
		}
		data, err := yaml.Marshal(&spec)
		if err != nil {
			return fmt.Errorf("failed to generate eval.yaml: %w", err)
		}
		evalYAML = string(data)
	}

	evalPath := filepath.Join(dir, "eval.yaml")
	if err := os.WriteFile(evalPath, []byte(evalYAML), 0o644); err != nil {
		return fmt.Errorf("failed to write eval.yaml: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %s\n", evalPath)

	dataPath := filepath.Join(dir, dataFile)
	if _, err := os.Stat(dataPath); err == nil {
		fmt.Fprintf(out, "  %s (exists, kept)\n", dataPath)
		return nil
	}

	store := storage.NewJSONStore(dataPath)
	if err := store.AppendAll(sampleRecords()); err != nil {
		return fmt.Errorf("failed to write sample records: %w", err)
	}
	fmt.Fprintf(out, "  %s (sample data)\n", dataPath)
	return nil
}

// sampleRecords is a small dataset with one very consistent agent and one
// noticeably inconsistent one, so the first report shows a contrast.
func sampleRecords() []models.ResponseRecord {
	mk := func(agent, response string) models.ResponseRecord {
		return models.ResponseRecord{
			BasePrompt:       "Tell me about renewable energy",
			AgentName:        agent,
			Response:         response,
			FullPrompt:       "Tell me about renewable energy Please answer in a somewhat formal manner.",
			StyleCombination: "somewhat formal",
		}
	}

	return []models.ResponseRecord{
		mk("steady-agent", "renewable energy comes from sources that replenish naturally"),
		mk("steady-agent", "renewable energy comes from sources that replenish naturally"),
		mk("steady-agent", "renewable energy comes from natural sources that replenish"),
		mk("drifty-agent", "solar panels convert sunlight into electricity"),
		mk("drifty-agent", "wind turbines are a popular choice in coastal regions"),
		mk("drifty-agent", "hydropower has been used for over a century"),
	}
}
