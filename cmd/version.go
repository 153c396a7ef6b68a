package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bosh-code/injectcss/core/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of injectcss",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("injectcss %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
