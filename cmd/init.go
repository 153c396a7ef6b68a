package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bosh-code/injectcss/core/config"
	"github.com/bosh-code/injectcss/core/logger"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default injectcss.yaml to the working directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		path := filepath.Join(wd, "injectcss.yaml")
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Printf("%s already exists. Use --force to overwrite.\n", path)
			return nil
		}

		cfg := config.Default()
		cfg.Entries = []string{filepath.Join("src", "index.js")}
		if err := cfg.Write(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
