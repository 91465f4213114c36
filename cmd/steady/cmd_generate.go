package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/steadyeval/steady/internal/models"
	"github.com/steadyeval/steady/internal/source"
	"github.com/steadyeval/steady/internal/storage"
	"github.com/steadyeval/steady/internal/styles"
)

func newGenerateCommand() *cobra.Command {
	var (
		prompts     []string
		agents      []string
		runs        int
		styleAxes   int
		seed        int64
		instability float64
	)

	cmd := &cobra.Command{
		Use:   "generate <data.json>",
		Short: "Generate a synthetic response dataset",
		Long: `Generate response records without any model backend and append them to a
record file.

Each prompt gets a random style combination; each synthetic agent then
answers the styled prompt several times with a tunable amount of
disagreement between answers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(prompts) == 0 {
				return fmt.Errorf("at least one --prompt is required")
			}
			if runs < 1 {
				return fmt.Errorf("runs must be at least 1, got %d", runs)
			}

			rng := rand.New(rand.NewSource(seed))
			if seed < 0 {
				rng = rand.New(rand.NewSource(rand.Int63()))
			}

			sources := make([]*source.Synthetic, len(agents))
			for i, agent := range agents {
				opts := []source.SyntheticOption{source.WithInstability(instability)}
				if seed >= 0 {
					opts = append(opts, source.WithSourceSeed(seed+int64(i)+1))
				}
				sources[i] = source.NewSynthetic(agent, opts...)
			}

			var records []models.ResponseRecord
			for _, prompt := range prompts {
				comb := styles.RandomCombination(rng, styleAxes)
				full := styles.Apply(prompt, comb)

				for _, src := range sources {
					for r := 0; r < runs; r++ {
						response, err := src.Respond(full)
						if err != nil {
							return err
						}
						records = append(records, models.ResponseRecord{
							BasePrompt:       prompt,
							AgentName:        src.Name(),
							Response:         response,
							FullPrompt:       full,
							StyleCombination: comb,
						})
					}
				}
			}

			store := storage.NewJSONStore(args[0])
			if err := store.AppendAll(records); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Appended %d record(s) to %s\n", len(records), store.Path())
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&prompts, "prompt", nil, "Base prompt to generate responses for (can be repeated)")
	cmd.Flags().StringArrayVar(&agents, "agent", []string{"synthetic-a", "synthetic-b"}, "Agent name (can be repeated)")
	cmd.Flags().IntVar(&runs, "runs", 3, "Responses per agent per prompt")
	cmd.Flags().IntVar(&styleAxes, "styles", 3, "Number of style axes per combination")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Random seed for a reproducible dataset")
	cmd.Flags().Float64Var(&instability, "instability", 0.2, "Per-word perturbation probability in [0, 1]")

	return cmd
}
