package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dzenilee/presidential/orchestrator"
)

func newFeaturizeCmd(o *options) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "featurize",
		Short: "Append feature columns to a segment table",
		Long: "Reads a CSV with segment, speaker and debate columns, extracts the lexical, " +
			"syntactic and readability features of every segment and writes the table back " +
			"with the feature columns appended. --out may be a local path or an s3:// URI.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := orchestrator.NewPipeline(o.conf)
			if err != nil {
				return err
			}
			m, err := p.Run(cmd.Context(), in, out)
			if err != nil {
				return err
			}
			cmd.Printf("%d rows written to %s (%d unparsed)\n", m.Rows, m.OutputPath, len(m.Unparsed))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input segment table (CSV)")
	cmd.Flags().StringVar(&out, "out", "", "output path or s3:// URI (default: new session dir under paths.outputs)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
