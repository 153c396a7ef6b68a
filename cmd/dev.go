package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bosh-code/injectcss/core/config"
	"github.com/bosh-code/injectcss/core/logger"
	"github.com/bosh-code/injectcss/core/watcher"
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Watch the source tree and rebuild on change",
	Long: `Watches the working directory and re-runs the full build-and-inject
cycle whenever a source file changes. Every rebuild starts from fresh state,
so chunk and module associations never leak between builds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("dev called")
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}

		if err := buildAndInject(wd, cfg); err != nil {
			logger.Error("Initial build failed: %v", err)
		}

		exclude := append([]string{cfg.Dist}, cfg.Exclude...)
		w, err := watcher.New(wd, exclude, func() error {
			return buildAndInject(wd, cfg)
		})
		if err != nil {
			return err
		}
		defer w.Close()

		logger.Info("Watching %s for changes", wd)
		return w.Watch()
	},
}

func init() {
	rootCmd.AddCommand(devCmd)
}
