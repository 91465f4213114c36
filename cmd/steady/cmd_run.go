package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/steadyeval/steady/internal/evaluator"
	"github.com/steadyeval/steady/internal/models"
	"github.com/steadyeval/steady/internal/reporting"
	"github.com/steadyeval/steady/internal/similarity"
	"github.com/steadyeval/steady/internal/storage"
)

// runOutput is the structure written by --output.
type runOutput struct {
	Results models.EvaluationResult `json:"results"`
	Summary models.Summary          `json:"summary"`
}

func newRunCommand() *cobra.Command {
	var (
		metricName  string
		iterations  int
		seed        int64
		sampleSize  int
		parallel    bool
		workers     int
		promptScope string
		outputPath  string
		summaryOnly bool
	)

	cmd := &cobra.Command{
		Use:   "run <eval.yaml>",
		Short: "Run a stability evaluation",
		Long: `Run a stability evaluation from a definition file.

The definition names the response record file, the similarity metric, and
the Monte-Carlo configuration. Flags override the file's settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specPath := args[0]

			spec, err := models.LoadEvalSpec(specPath)
			if err != nil {
				return fmt.Errorf("failed to load eval definition: %w", err)
			}

			// Flags override the definition file.
			if cmd.Flags().Changed("metric") {
				spec.Metric.Kind = metricName
			}
			if cmd.Flags().Changed("iterations") {
				spec.Config.Iterations = iterations
			}
			if cmd.Flags().Changed("seed") {
				spec.Config.Seed = seed
			}
			if cmd.Flags().Changed("sample-size") {
				spec.Config.SampleSize = sampleSize
			}
			if parallel {
				spec.Config.Parallel = true
			}
			if workers > 0 {
				spec.Config.Workers = workers
			}
			if promptScope != "" {
				spec.Prompts = []string{promptScope}
			}
			if err := spec.Validate(); err != nil {
				return err
			}

			metric, err := similarity.Create(similarity.Kind(spec.Metric.Kind), spec.Metric.Parameters)
			if err != nil {
				return err
			}

			store := storage.NewJSONStore(resolveDataPath(specPath, spec.DataPath))
			records, err := store.Load()
			if err != nil {
				return err
			}
			records = filterPrompts(records, spec.Prompts)

			ev := evaluator.New(metric,
				evaluator.WithIterations(spec.Config.Iterations),
				evaluator.WithSeed(spec.Config.Seed),
				evaluator.WithSampleSize(spec.Config.SampleSize),
				evaluator.WithWorkers(evalWorkers(spec.Config)))
			ev.Load(records)

			slog.Debug("records loaded",
				"path", store.Path(),
				"records", len(records),
				"prompts", len(ev.Prompts()),
				"dropped", ev.Dropped())

			result, err := ev.EvaluateAll()
			if err != nil {
				return err
			}
			summary := evaluator.Summarize(result)

			out := cmd.OutOrStdout()
			if !summaryOnly {
				fmt.Fprint(out, reporting.FormatReport(result, spec.Config.Iterations))
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, reporting.FormatSummary(summary))

			if outputPath != "" {
				if err := saveResults(result, summary, outputPath); err != nil {
					return fmt.Errorf("failed to save results: %w", err)
				}
				fmt.Fprintf(out, "\nResults saved to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metricName, "metric", "", "Similarity metric: jaccard, length, levenshtein")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "Monte-Carlo trials per (prompt, agent) group")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Random seed for a reproducible run")
	cmd.Flags().IntVar(&sampleSize, "sample-size", 0, "Fixed per-trial sample size override")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run trial loops concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().StringVar(&promptScope, "prompt", "", "Evaluate a single base prompt")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for results")
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "Print only the cross-prompt summary")

	return cmd
}

// resolveDataPath interprets a relative data path relative to the definition
// file, not the working directory.
func resolveDataPath(specPath, dataPath string) string {
	if filepath.IsAbs(dataPath) {
		return dataPath
	}
	return filepath.Join(filepath.Dir(specPath), dataPath)
}

func filterPrompts(records []models.ResponseRecord, prompts []string) []models.ResponseRecord {
	if len(prompts) == 0 {
		return records
	}

	keep := make(map[string]bool, len(prompts))
	for _, p := range prompts {
		keep[p] = true
	}

	filtered := make([]models.ResponseRecord, 0, len(records))
	for _, r := range records {
		if keep[r.BasePrompt] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func evalWorkers(cfg models.RunConfig) int {
	if !cfg.Parallel {
		return 0
	}
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return 4
}

func saveResults(result models.EvaluationResult, summary models.Summary, path string) error {
	data, err := json.MarshalIndent(runOutput{Results: result, Summary: summary}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
