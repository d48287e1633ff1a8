package cmd

import (
	"github.com/spf13/cobra"

	cfg "github.com/dzenilee/presidential/config"
	"github.com/dzenilee/presidential/logging"
)

// options is shared by every subcommand; conf is filled in before any of
// them runs.
type options struct {
	configPath string
	conf       *cfg.Root
}

// NewRootCmd creates the root command for presidential.
func NewRootCmd() *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:           "presidential",
		Short:         "Debate transcript feature extraction",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if o.configPath != "" {
				o.conf, err = cfg.LoadFile(o.configPath)
			} else {
				o.conf, err = cfg.Load()
			}
			if err != nil {
				return err
			}
			logging.Setup(o.conf.Pipeline.LogLvl, o.conf.Pipeline.LogFormat)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default config/$CONFIG_ENV/config.yaml or ./config.yaml)")

	rootCmd.AddCommand(newFeaturizeCmd(o))
	rootCmd.AddCommand(newPreprocessCmd(o))
	rootCmd.AddCommand(newScrapeCmd(o))

	return rootCmd
}
