package internal

import (
	"context"
	"fmt"
	"strings"
)

// FFmpeg checks for the tools yt-dlp needs for post-processing
type FFmpeg struct {
	cmdRunner CommandRunner
	verbose   bool
}

// NewFFmpeg creates a new checker
func NewFFmpeg(cmdRunner CommandRunner, verbose bool) *FFmpeg {
	return &FFmpeg{
		cmdRunner: cmdRunner,
		verbose:   verbose,
	}
}

// Version returns the first line of `ffmpeg -version`
func (f *FFmpeg) Version(ctx context.Context) (string, error) {
	output, err := f.cmdRunner.Run(ctx, "ffmpeg", "-hide_banner", "-version")
	if err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(line), nil
}

// Check returns an error describing what will not work without ffmpeg
func (f *FFmpeg) Check(ctx context.Context) error {
	version, err := f.Version(ctx)
	if err != nil {
		return fmt.Errorf("ffmpeg not found, mp3 extraction and mp4 merging will fail: %w", err)
	}
	if f.verbose {
		fmt.Printf("Found %s\n", version)
	}
	return nil
}
