package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user for input. The App never reads stdin directly so
// sessions can be scripted in tests.
type Prompter interface {
	// Ask shows message and returns the trimmed answer
	Ask(message string) (string, error)
	// Confirm shows a yes/no question and reports whether the answer was yes
	Confirm(message string) (bool, error)
}

// ConsolePrompter reads answers line by line
type ConsolePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsolePrompter creates a prompter reading from in and writing prompts to out
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (p *ConsolePrompter) Ask(message string) (string, error) {
	fmt.Fprint(p.out, message)
	if p.scanner.Scan() {
		return strings.TrimSpace(p.scanner.Text()), nil
	}
	if err := p.scanner.Err(); err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return "", io.EOF
}

func (p *ConsolePrompter) Confirm(message string) (bool, error) {
	answer, err := p.Ask(message + " (Y/N): ")
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// IsYes accepts "y" and "yes" in any case
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
