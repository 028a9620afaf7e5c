package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ErrNotYouTubeURL is returned for links that do not point at YouTube
var ErrNotYouTubeURL = errors.New("this script is only meant for youtube links")

// IsYouTubeURL reports whether the input looks like a YouTube link
func IsYouTubeURL(input string) bool {
	return strings.Contains(input, "youtube.com") || strings.Contains(input, "youtu.be")
}

// ValidateURL returns ErrNotYouTubeURL for anything IsYouTubeURL rejects
func ValidateURL(input string) error {
	if !IsYouTubeURL(input) {
		return ErrNotYouTubeURL
	}
	return nil
}

// StripQuery drops everything from the first '&' on, which removes
// playlist and timestamp parameters from watch URLs
func StripQuery(youtubeURL string) string {
	before, _, _ := strings.Cut(youtubeURL, "&")
	return before
}

// TargetDir returns base/Category/uploader
func TargetDir(baseDir string, category Category, uploader string) string {
	return filepath.Join(baseDir, category.DirName(), uploader)
}

// MediaFilename returns the on-disk name for a title in a format
func MediaFilename(title string, format Format) string {
	return fmt.Sprintf("%s.%s", title, format)
}

// FindDuplicates lists files with the same name for the same uploader
// under every category other than the requested one
func FindDuplicates(baseDir string, categories []Category, category Category, uploader, filename string) []string {
	var found []string
	for _, other := range categories {
		if other == category {
			continue
		}
		path := filepath.Join(TargetDir(baseDir, other, uploader), filename)
		if FileExists(path) {
			found = append(found, path)
		}
	}
	return found
}

// FileExists reports whether filename can be stat'ed. Paths that fail for
// any reason, such as a permission error or a file in place of a directory,
// count as missing.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// EnsureDirs creates directories if needed
func EnsureDirs(dir ...string) error {
	for _, dir := range dir {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// RenderMarkdown renders markdown content with glamour
func RenderMarkdown(content string) (string, error) {
	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}
