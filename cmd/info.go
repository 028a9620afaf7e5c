package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytorg/internal"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [URL]",
	Short: "Show where a video would be stored without downloading it",
	Example: `  # Plan an mp3 download into Music
  ytorg info "https://www.youtube.com/watch?v=tAP1eZYEuKA" -f mp3 -c music

  # Numeric keys work too, and the output can be saved
  ytorg info "https://youtu.be/tAP1eZYEuKA" -f 2 -c 3 -o plan.json --pretty`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		internal.EnsureEngine(cmd.Context())

		app := internal.NewApp(config,
			internal.WithEngine(internal.NewYouTube(os.Stderr, config.Verbose)),
			internal.WithOutput(os.Stderr),
		)
		req, err := internal.RequestFromFlags(cmd, app.Options(), args[0])
		if err != nil {
			return err
		}

		plan, err := app.Plan(cmd.Context(), req)
		if err != nil {
			return err
		}

		var jsonData []byte
		pretty, _ := cmd.Flags().GetBool("pretty")
		if pretty {
			jsonData, err = json.MarshalIndent(plan, "", "  ")
		} else {
			jsonData, err = json.Marshal(plan)
		}
		if err != nil {
			return fmt.Errorf("error converting plan to JSON: %w", err)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, jsonData, 0644)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return err
	},
}

func init() {
	internal.AddPlanFlags(infoCmd)
	infoCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	infoCmd.Flags().Bool("pretty", false, "Format output as pretty JSON")
	rootCmd.AddCommand(infoCmd)
}
