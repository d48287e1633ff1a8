package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dzenilee/presidential/orchestrator"
)

func newScrapeCmd(o *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Download the configured debate transcripts into a segment table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(o.conf.Debates) == 0 {
				return fmt.Errorf("no debates configured")
			}
			p, err := orchestrator.NewPipeline(o.conf)
			if err != nil {
				return err
			}
			n, err := p.Scrape(cmd.Context(), out)
			if err != nil {
				return err
			}
			cmd.Printf("%d segments from %d debates written to %s\n", n, len(o.conf.Debates), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "segments.csv", "output segment table")
	return cmd
}
