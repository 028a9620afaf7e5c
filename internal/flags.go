package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddSessionFlags adds flags for the interactive download session
func AddSessionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("clipboard", false, "Use the clipboard URL when the URL prompt is left empty")
}

// AddPlanFlags adds the format and category selectors used by non-interactive commands
func AddPlanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", string(FormatMP3), "Format to plan for (number or name)")
	cmd.Flags().StringP("category", "c", string(CategoryOther), "Category to plan for (number or name)")
}

// RequestFromFlags normalizes the --format and --category flags for a URL
func RequestFromFlags(cmd *cobra.Command, options Options, youtubeURL string) (Request, error) {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return Request{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	categoryFlag, err := cmd.Flags().GetString("category")
	if err != nil {
		return Request{}, fmt.Errorf("failed to get category flag: %w", err)
	}

	format, err := options.Formats.Normalize(formatFlag)
	if err != nil {
		return Request{}, err
	}
	category, err := options.Categories.Normalize(categoryFlag)
	if err != nil {
		return Request{}, err
	}

	return Request{URL: youtubeURL, Format: format, Category: category}, nil
}
