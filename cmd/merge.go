package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iopipeline"
	"github.com/spf13/cobra"
)

// getMergeCmd returns the merge command.
func getMergeCmd() *cobra.Command {
	var output string

	mergeCmd := &cobra.Command{
		Use:   "merge file.fasta [file.fasta...]",
		Short: "Merge FASTA files without duplicates",
		Long: `Concatenate FASTA files keeping every sequence identifier once.

When an identifier appears in several files, the record from the first
file is kept.

Examples:
  gnsubsample merge focus.fasta context.fasta -o alignment.fasta`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := iopipeline.Merge(args, output)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if output != "" {
				gn.Info("Wrote %s sequences to <em>%s</em>",
					humanize.Comma(int64(n)), output)
			}
			return nil
		},
	}

	mergeCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (default: stdout)")

	return mergeCmd
}
