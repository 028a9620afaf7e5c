package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// App holds the application state and dependencies
type App struct {
	engine    Engine
	prompter  Prompter
	ui        UIManager
	clipboard ClipboardReader
	options   Options
	config    *Config
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	app := &App{
		engine:    NewYouTube(os.Stdout, config.Verbose),
		prompter:  NewConsolePrompter(os.Stdin, os.Stdout),
		ui:        NewUIManager(os.Stdout, config.Verbose, config.Quiet),
		clipboard: SystemClipboard{},
		options:   DefaultOptions(),
		config:    config,
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithEngine sets a custom media engine
func WithEngine(engine Engine) AppOption {
	return func(a *App) {
		a.engine = engine
	}
}

// WithPrompter sets the confirmation provider
func WithPrompter(prompter Prompter) AppOption {
	return func(a *App) {
		a.prompter = prompter
	}
}

// WithUI sets a custom UI manager
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// WithOutput routes status output to w
func WithOutput(w io.Writer) AppOption {
	return func(a *App) {
		a.ui = NewUIManager(w, a.config.Verbose, a.config.Quiet)
	}
}

// WithClipboard sets the clipboard used for the empty-URL fallback
func WithClipboard(clipboard ClipboardReader) AppOption {
	return func(a *App) {
		a.clipboard = clipboard
	}
}

// WithOptions replaces the format and category tables
func WithOptions(options Options) AppOption {
	return func(a *App) {
		a.options = options
	}
}

// Options returns the format and category tables the app was built with
func (app *App) Options() Options {
	return app.options
}

// Plan probes the video and computes where it would be stored. It does not
// create directories or ask anything.
func (app *App) Plan(ctx context.Context, req Request) (*Plan, error) {
	if err := ValidateURL(req.URL); err != nil {
		return nil, err
	}

	youtubeURL := StripQuery(req.URL)

	spinner := app.ui.NewSpinner("Fetching video info...")
	metadata, err := app.engine.Probe(ctx, youtubeURL)
	spinner.Finish()
	if err != nil {
		return nil, err
	}

	uploader := CleanFilename(metadata.Uploader)
	title := CleanFilename(metadata.Title)
	targetDir := TargetDir(app.config.BaseDir, req.Category, uploader)
	filename := MediaFilename(title, req.Format)

	return &Plan{
		URL:            youtubeURL,
		Format:         req.Format,
		Category:       req.Category,
		Metadata:       metadata,
		Uploader:       uploader,
		Title:          title,
		TargetDir:      targetDir,
		Filename:       filename,
		OutputTemplate: filepath.Join(targetDir, title+".%(ext)s"),
		Duplicates:     FindDuplicates(app.config.BaseDir, app.options.Categories.Values(), req.Category, uploader, filename),
	}, nil
}

// Download runs one download attempt from probe to fetch. Declines and
// probe failures are reported as outcomes, not errors.
func (app *App) Download(ctx context.Context, req Request) (Outcome, error) {
	plan, err := app.Plan(ctx, req)
	if err != nil {
		if errors.Is(err, ErrNotYouTubeURL) {
			return OutcomeUnknown, err
		}
		app.ui.Println("Failed to retrieve video info. Please check the URL.")
		app.ui.Verbose("Probe error: %v\n", err)
		return OutcomeProbeFailed, nil
	}

	if err := EnsureDirs(plan.TargetDir); err != nil {
		return OutcomeUnknown, fmt.Errorf("creating target directory: %w", err)
	}

	for _, duplicate := range plan.Duplicates {
		app.ui.Printf("This file exists under %s.\n", duplicate)
		proceed, err := app.prompter.Confirm(fmt.Sprintf("Do you still want to download it to %s?", req.Category.DirName()))
		if err != nil {
			return OutcomeUnknown, err
		}
		if !proceed {
			app.ui.Println("This file will not be downloaded")
			return OutcomeDuplicateDeclined, nil
		}
	}

	app.ui.Summary(plan)
	proceed, err := app.prompter.Confirm(fmt.Sprintf("Are you sure you want to download this file under: %s", plan.TargetDir))
	if err != nil {
		return OutcomeUnknown, err
	}
	if !proceed {
		app.ui.Println("This file will not be downloaded")
		return OutcomeDeclined, nil
	}

	app.ui.Printf("Downloading to %s...\n", plan.TargetDir)
	bar := app.ui.NewProgressBar("Downloading")
	err = app.engine.Fetch(ctx, plan.URL, FetchOptions{
		Format:         plan.Format,
		OutputTemplate: plan.OutputTemplate,
		AudioQuality:   app.config.AudioQuality,
		Progress:       progressReporter(bar),
	})
	bar.Finish()
	if err != nil {
		return OutcomeUnknown, fmt.Errorf("fetching media: %w", err)
	}
	app.ui.Println("Download complete")

	return OutcomeDownloaded, nil
}

// progressReporter feeds engine updates into bar. mp4 downloads fetch video
// and audio separately, so the bar restarts for each file.
func progressReporter(bar ProgressBar) func(DownloadProgress) {
	return func(p DownloadProgress) {
		switch p.Status {
		case "post_processing":
			bar.Describe("Converting")
		case "downloading":
			bar.Describe("Downloading")
		}
		bar.Set(p.Percent)
	}
}
