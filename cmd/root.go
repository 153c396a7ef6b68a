package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bosh-code/injectcss/core/config"
	"github.com/bosh-code/injectcss/core/logger"
	"github.com/bosh-code/injectcss/core/models"
	"github.com/bosh-code/injectcss/core/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "injectcss",
	Short: "Restore stylesheet imports in bundled library output",
	Long: `injectcss re-inserts the stylesheet import statements a bundler
strips from compiled chunks. It correlates each output chunk with the
source modules folded into it, resolves the stylesheets those modules
declared, and splices import (or require) statements back in so library
consumers keep the module-to-stylesheet association.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if logfile != "" {
			f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			logger.AddOutput(f)
		}
		return nil
	},
}

var (
	logfile string
	verbose bool
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}

// pipelineOptions translates the file config into per-build options.
func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Sourcemap:  cfg.Sourcemap,
		Format:     models.Format(cfg.Format),
		Extensions: cfg.Extensions,
	}
}
