package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bosh-code/injectcss/core/bundler"
	"github.com/bosh-code/injectcss/core/config"
	"github.com/bosh-code/injectcss/core/logger"
)

var metafilePath string

var injectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Inject stylesheet imports into an existing build output",
	Long: `Reads the bundler metafile produced by a finished build, resolves
each chunk's stylesheet dependencies and splices import statements into the
chunk files in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("inject called")
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		if metafilePath != "" {
			cfg.Metafile = metafilePath
		}

		meta, err := bundler.ReadMetafile(cfg.Metafile)
		if err != nil {
			return err
		}

		if err := bundler.Apply(wd, meta, pipelineOptions(cfg)); err != nil {
			return fmt.Errorf("failed to inject stylesheet imports: %w", err)
		}
		return nil
	},
}

func init() {
	injectCmd.Flags().StringVar(&metafilePath, "metafile", "", "Bundler metafile path (overrides config)")
	rootCmd.AddCommand(injectCmd)
}
