package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dzenilee/presidential/orchestrator"
)

func newPreprocessCmd(o *options) *cobra.Command {
	var dir, out string
	cmd := &cobra.Command{
		Use:   "preprocess",
		Short: "Turn plain-text transcripts into a segment table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = o.conf.Paths.Data
			}
			p, err := orchestrator.NewPipeline(o.conf)
			if err != nil {
				return err
			}
			n, err := p.Preprocess(dir, out)
			if err != nil {
				return err
			}
			cmd.Printf("%d segments written to %s\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of *.txt transcripts (default paths.data)")
	cmd.Flags().StringVar(&out, "out", "segments.csv", "output segment table")
	return cmd
}
