package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RunInteractive prompts for downloads until the user stops or input ends
func (app *App) RunInteractive(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := app.readRequest()
		if errors.Is(err, io.EOF) {
			app.ui.Println("\nGoodbye")
			return nil
		}
		if err != nil {
			var invalid *InvalidChoiceError
			if errors.Is(err, ErrNotYouTubeURL) || errors.As(err, &invalid) {
				app.ui.Printf("Error: %v\n", err)
				continue
			}
			return err
		}

		outcome, err := app.Download(ctx, *req)
		if errors.Is(err, io.EOF) {
			app.ui.Println("\nGoodbye")
			return nil
		}
		if err != nil {
			app.ui.Printf("Error: %v\n", err)
		}
		app.ui.Verbose("Outcome: %s\n", outcome)

		again, err := app.prompter.Confirm("\nDownload another video?")
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if !again {
			app.ui.Println("Goodbye")
			return nil
		}
	}
}

// readRequest asks for URL, format and category and validates each answer
// before the next question
func (app *App) readRequest() (*Request, error) {
	youtubeURL, err := app.prompter.Ask("\nEnter the URL for the YouTube video: ")
	if err != nil {
		return nil, err
	}
	if youtubeURL == "" && app.config.Clipboard {
		youtubeURL = app.urlFromClipboard()
	}
	if err := ValidateURL(youtubeURL); err != nil {
		return nil, err
	}

	formatInput, err := app.prompter.Ask(menu(app.options.Formats, func(f Format) string {
		return strings.ToUpper(string(f))
	}))
	if err != nil {
		return nil, err
	}
	format, err := app.options.Formats.Normalize(strings.ToLower(formatInput))
	if err != nil {
		return nil, err
	}

	categoryInput, err := app.prompter.Ask(menu(app.options.Categories, Category.DirName))
	if err != nil {
		return nil, err
	}
	category, err := app.options.Categories.Normalize(strings.ToLower(categoryInput))
	if err != nil {
		return nil, err
	}

	return &Request{URL: youtubeURL, Format: format, Category: category}, nil
}

func (app *App) urlFromClipboard() string {
	text, err := app.clipboard.ReadAll()
	if err != nil {
		app.ui.Verbose("Reading clipboard: %v\n", err)
		return ""
	}
	text = strings.TrimSpace(text)
	if !IsYouTubeURL(text) {
		return ""
	}
	app.ui.Printf("Using URL from clipboard: %s\n", text)
	return text
}

// menu renders a choice table as a numbered prompt
func menu[T ~string](choices Choices[T], label func(T) string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSelect a %s:\n", choices.Kind())
	for _, c := range choices.Entries() {
		fmt.Fprintf(&sb, "    %s: %s\n", c.Key, label(c.Value))
	}
	fmt.Fprintf(&sb, "Enter the number or name of the %s: ", choices.Kind())
	return sb.String()
}
