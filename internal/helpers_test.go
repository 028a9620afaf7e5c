package internal

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeEngine records calls and writes an empty media file on Fetch
type fakeEngine struct {
	metadata *VideoMetadata
	probeErr error
	fetchErr error

	// progress is replayed through FetchOptions.Progress before the file is written
	progress []DownloadProgress

	probed  []string
	fetched []FetchOptions
}

func (f *fakeEngine) Probe(ctx context.Context, youtubeURL string) (*VideoMetadata, error) {
	f.probed = append(f.probed, youtubeURL)
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	m := *f.metadata
	return &m, nil
}

func (f *fakeEngine) Fetch(ctx context.Context, youtubeURL string, opts FetchOptions) error {
	f.fetched = append(f.fetched, opts)
	if opts.Progress != nil {
		for _, p := range f.progress {
			opts.Progress(p)
		}
	}
	if f.fetchErr != nil {
		return f.fetchErr
	}
	path := strings.Replace(opts.OutputTemplate, "%(ext)s", string(opts.Format), 1)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, nil, 0644)
}

// scriptedPrompter answers from a fixed list and returns io.EOF when it runs out
type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Ask(message string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return strings.TrimSpace(answer), nil
}

func (p *scriptedPrompter) Confirm(message string) (bool, error) {
	answer, err := p.Ask(message)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (p *scriptedPrompter) askedContaining(substr string) int {
	n := 0
	for _, m := range p.asked {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}

// recordingUI wraps a UIManager and keeps the download bars it hands out
type recordingUI struct {
	UIManager
	bars []*recordingBar
}

func (ui *recordingUI) NewProgressBar(description string) ProgressBar {
	bar := &recordingBar{descriptions: []string{description}}
	ui.bars = append(ui.bars, bar)
	return bar
}

type recordingBar struct {
	values       []float64
	descriptions []string
	finished     bool
}

func (b *recordingBar) Set(percent float64) { b.values = append(b.values, percent) }

func (b *recordingBar) Describe(description string) {
	b.descriptions = append(b.descriptions, description)
}

func (b *recordingBar) Finish() { b.finished = true }

type fakeClipboard struct {
	text string
	err  error
}

func (c fakeClipboard) ReadAll() (string, error) {
	return c.text, c.err
}

type testApp struct {
	*App
	engine   *fakeEngine
	prompter *scriptedPrompter
	out      *bytes.Buffer
	baseDir  string
}

func newTestApp(t *testing.T, answers ...string) *testApp {
	t.Helper()

	baseDir := t.TempDir()
	engine := &fakeEngine{metadata: &VideoMetadata{
		ID:       "abc123",
		Uploader: "UploaderX",
		Title:    "Title",
	}}
	prompter := &scriptedPrompter{answers: answers}
	out := &bytes.Buffer{}

	app := NewApp(&Config{BaseDir: baseDir, AudioQuality: DefaultAudioQuality},
		WithEngine(engine),
		WithPrompter(prompter),
		WithOutput(out),
		WithClipboard(fakeClipboard{}),
	)

	return &testApp{App: app, engine: engine, prompter: prompter, out: out, baseDir: baseDir}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
