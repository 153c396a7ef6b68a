package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bosh-code/injectcss/core/bundler"
	"github.com/bosh-code/injectcss/core/config"
	"github.com/bosh-code/injectcss/core/logger"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundle the configured entry points and inject stylesheet imports",
	Long: `Runs a code-split esbuild bundle of the configured entry points,
then restores the stylesheet imports the bundle stripped from each chunk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("build called")
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}

		return buildAndInject(wd, cfg)
	},
}

// buildAndInject runs one full build cycle with a fresh pipeline. The dev
// command reuses it per rebuild.
func buildAndInject(wd string, cfg *config.Config) error {
	meta, err := bundler.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to bundle: %w", err)
	}
	logger.Info("Bundled %d input(s) into %d output file(s)", len(meta.Inputs), len(meta.Outputs))

	if err := bundler.Apply(wd, meta, pipelineOptions(cfg)); err != nil {
		return fmt.Errorf("failed to inject stylesheet imports: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
