package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iopipeline"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [region-token]",
		Short: "Run the full subsampling pipeline",
		Long: `Select focal and context samples and merge them into one alignment.

The region token follows the file-naming convention: words separated by
'_', with an optional leading '_'. Without a token, or with the global
token, every sequence is sampled with the global quota.

Output files are written to the output directory only when every stage
succeeded:
  subsample_focus_<token>.fasta
  subsample_context_<token>.fasta
  subsampled_alignment_<token>.fasta
  priorities_<token>.tsv
  metadata_adjusted_<token>.tsv
  report_<token>.json

Examples:
  # Focal run for Europe
  gnsubsample run europe -s aligned.fasta -m metadata.tsv

  # Global run into a directory
  gnsubsample run -s aligned.fasta.xz -m metadata.tsv.gz -o results

  # Always keep reference strains
  gnsubsample run north_america -s aligned.fasta -m metadata.tsv -i include.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRun(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	runCmd.Flags().StringP("sequences", "s", "", "aligned sequences (FASTA)")
	runCmd.Flags().StringP("metadata", "m", "", "metadata table (TSV)")
	runCmd.Flags().StringP("include", "i", "",
		"identifiers that are always selected, one per line")
	runCmd.Flags().StringP("output-dir", "o", ".", "directory for output files")
	runCmd.Flags().StringSlice("focal-group-by", nil,
		"grouping fields of the focal sample")
	runCmd.Flags().StringSlice("context-group-by", nil,
		"grouping fields of the context sample")
	runCmd.Flags().Int("quota-global", 0, "sequences per group in a global run")
	runCmd.Flags().Int("quota-focal", 0, "sequences per focal group")
	runCmd.Flags().Int("quota-context", 0, "sequences per context group")
	runCmd.Flags().String("id-column", "", "identifier column of metadata")
	runCmd.Flags().Bool("reset-cache", false,
		"remove cached priorities before the run")
	addPriorityFlags(runCmd)

	return runCmd
}

func runRun(cmd *cobra.Command, args []string) error {
	flags := append([]flagOption{
		stringFlag("sequences", config.OptRunSequences),
		stringFlag("metadata", config.OptRunMetadata),
		stringFlag("include", config.OptRunInclude),
		stringFlag("output-dir", config.OptRunOutputDir),
		fieldsFlag("focal-group-by", config.OptSubsampleFocalGroupBy),
		fieldsFlag("context-group-by", config.OptSubsampleContextGroupBy),
		intFlag("quota-global", config.OptSubsampleQuotaGlobal),
		intFlag("quota-focal", config.OptSubsampleQuotaFocal),
		intFlag("quota-context", config.OptSubsampleQuotaContext),
		stringFlag("id-column", config.OptSubsampleIDColumn),
	}, priorityFlags()...)

	runOpts := flagOptions(cmd, flags...)
	if len(args) > 0 {
		runOpts = append(runOpts, config.OptRunRegion(args[0]))
	}
	cfg.Update(runOpts)

	if reset, _ := cmd.Flags().GetBool("reset-cache"); reset {
		if err := iopipeline.ResetCache(cfg); err != nil {
			return err
		}
		gn.Info("Priority cache is cleaned")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err := iopipeline.New().Run(ctx, cfg)
	return err
}
