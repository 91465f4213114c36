package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/steadyeval/steady/internal/aggregate"
	"github.com/steadyeval/steady/internal/storage"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <data.json>",
		Short: "Show what a response record file contains",
		Long: `Show the prompts, agents, and per-group response counts of a record
file without running any evaluation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewJSONStore(args[0])
			records, err := store.Load()
			if err != nil {
				return err
			}

			agg := aggregate.NewAggregator()
			agg.AddAll(records)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Records: %d\n", len(records))
			fmt.Fprintf(out, "Prompts: %d\n", len(agg.Prompts()))
			if dropped := agg.Dropped(); dropped > 0 {
				fmt.Fprintf(out, "Malformed (ignored): %d\n", dropped)
			}

			for _, prompt := range agg.Prompts() {
				fmt.Fprintf(out, "\n%s\n", prompt)

				sets := agg.ResponseSets(prompt)
				agents := make([]string, 0, len(sets))
				for agent := range sets {
					agents = append(agents, agent)
				}
				sort.Strings(agents)

				for _, agent := range agents {
					fmt.Fprintf(out, "  %s: %d response(s)\n", agent, len(sets[agent]))
				}
			}
			return nil
		},
	}

	return cmd
}
