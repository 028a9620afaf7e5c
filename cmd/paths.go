package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show paths used by the application",
	Example: `  # Show all application paths
  ytorg paths`,
	Run: func(cmd *cobra.Command, args []string) {
		configFile := config.ConfigFile
		if configFile == "" {
			configFile = "(none)"
		}
		fmt.Printf("Config directory: %s\n", config.ConfigDir)
		fmt.Printf("Config file: %s\n", configFile)
		fmt.Printf("Cache directory: %s\n", config.CacheDir)
		fmt.Printf("Download directory: %s\n", config.BaseDir)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
