package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iopipeline"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/spf13/cobra"
)

// getSampleCmd returns the sample command.
func getSampleCmd() *cobra.Command {
	var si iopipeline.SampleInput

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Select at most N sequences per metadata group",
		Long: `Run one grouped quota sampling pass.

Sequences are grouped by the values of --group-by fields. Virtual fields
'year' and 'month' are taken from the date column when the table has no
such columns. Inside a group sequences with higher priority are selected
first, ties keep the file order.

Examples:
  gnsubsample sample -s aligned.fasta -m metadata.tsv \
    --group-by country,year,month --quota 20 -o sample.fasta

  gnsubsample sample -s aligned.fasta -m metadata.tsv --exclude-region europe \
    --priorities priorities.tsv --quota 5 -o context.fasta`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Update(flagOptions(cmd,
				stringFlag("id-column", config.OptSubsampleIDColumn),
			))

			_, stats, err := iopipeline.Sample(cfg, si)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if si.Output != "" {
				gn.Info("Selected %s of %s sequences in %s groups",
					humanize.Comma(int64(stats.Selected)),
					humanize.Comma(int64(stats.Candidates)),
					humanize.Comma(int64(stats.Groups)),
				)
			}
			return nil
		},
	}

	f := sampleCmd.Flags()
	f.StringVarP(&si.Sequences, "sequences", "s", "", "aligned sequences (FASTA)")
	f.StringVarP(&si.Metadata, "metadata", "m", "", "metadata table (TSV)")
	f.StringVarP(&si.Priorities, "priorities", "p", "",
		"priority table, higher scores are selected first")
	f.StringVarP(&si.Include, "include", "i", "",
		"identifiers that are always selected, one per line")
	f.StringVarP(&si.Output, "output", "o", "", "output file (default: stdout)")
	f.StringSliceVarP(&si.GroupBy, "group-by", "g",
		[]string{"country", "year", "month"}, "grouping fields")
	f.IntVarP(&si.Quota, "quota", "q", 20, "sequences per group")
	f.StringVar(&si.Region, "region", "", "keep only this region")
	f.StringVar(&si.ExcludeRegion, "exclude-region", "", "drop this region")
	f.String("id-column", "", "identifier column of metadata")
	sampleCmd.MarkFlagRequired("sequences")
	sampleCmd.MarkFlagRequired("metadata")

	return sampleCmd
}
