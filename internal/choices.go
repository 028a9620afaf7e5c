package internal

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is the target media container
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatMP4 Format = "mp4"
)

// Category is the topical folder a download is filed under
type Category string

const (
	CategoryMusic    Category = "music"
	CategoryPodcast  Category = "podcast"
	CategoryTutorial Category = "tutorial"
	CategoryStories  Category = "stories"
	CategoryOther    Category = "other"
)

// DirName returns the folder name used for the category on disk
func (c Category) DirName() string {
	return cases.Title(language.Und).String(string(c))
}

// ErrInvalidChoice is wrapped by every InvalidChoiceError
var ErrInvalidChoice = errors.New("invalid choice")

// InvalidChoiceError reports a selection that matches neither a key nor a value
type InvalidChoiceError struct {
	Kind   string
	Input  string
	Keys   []string
	Values []string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid %s %q. Enter one of: [%s] or [%s]",
		e.Kind, e.Input, strings.Join(e.Values, " "), strings.Join(e.Keys, " "))
}

func (e *InvalidChoiceError) Unwrap() error {
	return ErrInvalidChoice
}

// Choice is one selectable entry of a menu
type Choice[T ~string] struct {
	Key   string
	Value T
}

// Choices is an ordered, read-only key to value table
type Choices[T ~string] struct {
	kind    string
	entries []Choice[T]
}

// NewChoices builds a table; the entries slice is copied
func NewChoices[T ~string](kind string, entries ...Choice[T]) Choices[T] {
	return Choices[T]{
		kind:    kind,
		entries: append([]Choice[T](nil), entries...),
	}
}

// Kind names what is being chosen, e.g. "format"
func (c Choices[T]) Kind() string {
	return c.kind
}

// Entries returns a copy of the table in menu order
func (c Choices[T]) Entries() []Choice[T] {
	return append([]Choice[T](nil), c.entries...)
}

// Values returns the canonical names in menu order
func (c Choices[T]) Values() []T {
	values := make([]T, 0, len(c.entries))
	for _, e := range c.entries {
		values = append(values, e.Value)
	}
	return values
}

// Keys returns the menu keys in order
func (c Choices[T]) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Normalize maps a key or a value (case-insensitive) to its canonical value
func (c Choices[T]) Normalize(input string) (T, error) {
	input = strings.TrimSpace(input)

	for _, e := range c.entries {
		if input == e.Key {
			return e.Value, nil
		}
	}

	for _, e := range c.entries {
		if strings.EqualFold(input, string(e.Value)) {
			return e.Value, nil
		}
	}

	var zero T
	values := make([]string, 0, len(c.entries))
	for _, v := range c.Values() {
		values = append(values, string(v))
	}
	return zero, &InvalidChoiceError{
		Kind:   c.kind,
		Input:  input,
		Keys:   c.Keys(),
		Values: values,
	}
}

// Options holds the option tables the App is built with
type Options struct {
	Formats    Choices[Format]
	Categories Choices[Category]
}

// DefaultOptions returns fresh format and category tables
func DefaultOptions() Options {
	return Options{
		Formats: NewChoices("format",
			Choice[Format]{Key: "1", Value: FormatMP3},
			Choice[Format]{Key: "2", Value: FormatMP4},
		),
		Categories: NewChoices("category",
			Choice[Category]{Key: "1", Value: CategoryMusic},
			Choice[Category]{Key: "2", Value: CategoryPodcast},
			Choice[Category]{Key: "3", Value: CategoryTutorial},
			Choice[Category]{Key: "4", Value: CategoryStories},
			Choice[Category]{Key: "5", Value: CategoryOther},
		),
	}
}
