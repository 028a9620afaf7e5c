package cmd

import (
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // overridden at build time via -ldflags
	commit  = ""
	date    = ""
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Example: `  # Show version information
  ytorg version

  # Include the yt-dlp version that downloads are delegated to
  ytorg version --engine`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "ytorg v%s (commit: %s, built %s)\n", version, commit, date)

		engine, _ := cmd.Flags().GetBool("engine")
		if !engine {
			return nil
		}

		result, err := ytdlp.New().Version(cmd.Context())
		if err != nil {
			return fmt.Errorf("querying yt-dlp version: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "yt-dlp %s\n", strings.TrimSpace(result.Stdout))
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("engine", false, "Also print the yt-dlp version")
	rootCmd.AddCommand(versionCmd)
}
