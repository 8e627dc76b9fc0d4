package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iopipeline"
	"github.com/spf13/cobra"
)

// getPrioritiesCmd returns the priorities command.
func getPrioritiesCmd() *cobra.Command {
	var reference, candidates, output string

	prioritiesCmd := &cobra.Command{
		Use:   "priorities",
		Short: "Score candidate sequences by similarity to a reference set",
		Long: `Compute priority scores of candidate sequences.

Every candidate gets a score from the proportion of mismatches to the
reference sequences, gaps and ambiguous bases are ignored. Identical sequences get the
highest score. Both files must be aligned to the same length.

The result is a TSV table without a header: identifier and score.

Examples:
  gnsubsample priorities -r focal.fasta -c context.fasta -o priorities.tsv
  gnsubsample priorities -r focal.fasta -c context.fasta --method mean`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Update(flagOptions(cmd, priorityFlags()...))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			scores, err := iopipeline.Priorities(
				ctx, cfg, reference, candidates, output, output != "",
			)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if output != "" {
				gn.Info("Scored %s candidates into <em>%s</em>",
					humanize.Comma(int64(len(scores))), output)
			}
			return nil
		},
	}

	prioritiesCmd.Flags().StringVarP(&reference, "reference", "r", "",
		"reference (focal) sequences")
	prioritiesCmd.Flags().StringVarP(&candidates, "candidates", "c", "",
		"candidate sequences")
	prioritiesCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (default: stdout)")
	prioritiesCmd.MarkFlagRequired("reference")
	prioritiesCmd.MarkFlagRequired("candidates")
	addPriorityFlags(prioritiesCmd)

	return prioritiesCmd
}
