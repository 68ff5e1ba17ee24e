package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/banshee-data/polarization.train/internal/config"
	"github.com/banshee-data/polarization.train/internal/monitoring"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "polartrain",
		Short:         "Evaluate polarization through a train of optical elements",
		Long:          `polartrain snaps element positions to the placement grid, works out which elements sit on the beam, and composes their Jones matrices against an input polarization state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				monitoring.SetLogger(log.Printf)
			} else {
				monitoring.SetLogger(nil)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Editor config JSON (defaults built in)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log each recomputation to stderr")

	cmd.AddCommand(newEvalCmd(opts), newSnapCmd(opts), newSweepCmd(opts), newVersionCmd())
	return cmd
}

// loadConfig returns the config named by --config, or the built-in defaults.
func (o *rootOptions) loadConfig() (*config.EditorConfig, error) {
	if o.configPath == "" {
		return config.DefaultEditorConfig(), nil
	}
	return config.LoadEditorConfig(o.configPath)
}
