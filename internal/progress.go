package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// UIManager handles all user interface concerns (status, verbose output, spinners)
type UIManager interface {
	NewSpinner(description string) ProgressBar
	NewProgressBar(description string) ProgressBar

	// Verbose output
	Verbose(format string, args ...any)

	// Status messages
	Printf(format string, args ...any)
	Println(args ...any)

	// Summary shows what is about to be downloaded
	Summary(plan *Plan)
}

// ProgressBar interface abstracts progress bar operations
type ProgressBar interface {
	Set(percent float64)
	Describe(description string)
	Finish()
}

// StandardUIManager handles normal UI operations
type StandardUIManager struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

func NewUIManager(out io.Writer, verbose, quiet bool) UIManager {
	return &StandardUIManager{
		out:     out,
		verbose: verbose,
		quiet:   quiet,
	}
}

// NewSpinner shows an indeterminate status line while the engine works
func (ui *StandardUIManager) NewSpinner(description string) ProgressBar {
	if ui.quiet || !isTerminal(ui.out) {
		return &SilentProgressBar{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.RenderBlank()
	return &VisibleProgressBar{bar: bar}
}

// NewProgressBar shows a percentage bar for a running download
func (ui *StandardUIManager) NewProgressBar(description string) ProgressBar {
	if ui.quiet || !isTerminal(ui.out) {
		return &SilentProgressBar{}
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(ui.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.RenderBlank()
	return &VisibleProgressBar{bar: bar}
}

// Verbose Output Methods
func (ui *StandardUIManager) Verbose(format string, args ...any) {
	if ui.verbose {
		fmt.Fprintf(ui.out, format, args...)
	}
}

// Status Message Methods
func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprintf(ui.out, format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...any) {
	if !ui.quiet {
		fmt.Fprintln(ui.out, args...)
	}
}

// Summary renders the uploader, title and target directory. Terminals get
// markdown through glamour, everything else plain lines.
func (ui *StandardUIManager) Summary(plan *Plan) {
	if isTerminal(ui.out) {
		content := fmt.Sprintf("**Video Uploader:** %s\n\n**Video Title:** %s\n\n**Target:** `%s`\n",
			plan.Uploader, plan.Title, plan.TargetDir)
		if rendered, err := RenderMarkdown(content); err == nil {
			fmt.Fprint(ui.out, rendered)
			return
		}
	}

	fmt.Fprintf(ui.out, "Video Uploader: %s\n", plan.Uploader)
	fmt.Fprintf(ui.out, "Video Title: %s\n", plan.Title)
}

// VisibleProgressBar wraps the actual progress bar
type VisibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *VisibleProgressBar) Set(percent float64) {
	_ = v.bar.Set(int(percent))
}

func (v *VisibleProgressBar) Describe(description string) {
	v.bar.Describe(description)
}

func (v *VisibleProgressBar) Finish() {
	_ = v.bar.Finish()
}

// SilentProgressBar implements a silent progress bar
type SilentProgressBar struct{}

func (s *SilentProgressBar) Set(percent float64) {}

func (s *SilentProgressBar) Describe(description string) {}

func (s *SilentProgressBar) Finish() {}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
