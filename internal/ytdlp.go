package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

const (
	defaultUploader = "UnknownUploader"
	defaultTitle    = "UnknownTitle"

	progressInterval = 500 * time.Millisecond
)

// engineRuns counts yt-dlp processes currently started by this package
var engineRuns atomic.Int32

// VideoMetadata contains the YouTube video fields used for organizing
type VideoMetadata struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Channel    string  `json:"channel"`
	Duration   float64 `json:"duration"`
	WebpageURL string  `json:"webpage_url"`
}

// FetchOptions control a single media download
type FetchOptions struct {
	Format         Format
	OutputTemplate string
	AudioQuality   string

	// Progress, when set, receives updates while yt-dlp downloads. It is
	// called from another goroutine.
	Progress func(DownloadProgress)
}

// DownloadProgress is a point-in-time snapshot of a running fetch
type DownloadProgress struct {
	Status          string
	Filename        string
	DownloadedBytes int
	TotalBytes      int
	Percent         float64
}

// Engine resolves and downloads media
type Engine interface {
	Probe(ctx context.Context, youtubeURL string) (*VideoMetadata, error)
	Fetch(ctx context.Context, youtubeURL string, opts FetchOptions) error
}

// YouTube drives yt-dlp through go-ytdlp
type YouTube struct {
	out     io.Writer
	verbose bool
}

// NewYouTube creates a yt-dlp backed engine; engine output goes to out
func NewYouTube(out io.Writer, verbose bool) *YouTube {
	return &YouTube{
		out:     out,
		verbose: verbose,
	}
}

// Probe fetches video details without downloading anything
func (yt *YouTube) Probe(ctx context.Context, youtubeURL string) (*VideoMetadata, error) {
	dl := ytdlp.New().
		DumpSingleJSON(). // Get all info in JSON format
		NoPlaylist().     // Don't process playlists
		SkipDownload()    // Don't download the actual video

	done := trackEngineRun()
	result, err := dl.Run(ctx, youtubeURL)
	done()
	if err != nil {
		if yt.verbose && result != nil {
			fmt.Fprintf(yt.out, "Metadata extraction error: %v\n", err)
			fmt.Fprintf(yt.out, "Stderr: %s\n", result.Stderr)
		}
		return nil, fmt.Errorf("extracting video metadata: %w", err)
	}

	return parseMetadata([]byte(result.Stdout))
}

// Fetch downloads the media and lets yt-dlp post-process it
func (yt *YouTube) Fetch(ctx context.Context, youtubeURL string, opts FetchOptions) error {
	profile, err := profileFor(opts)
	if err != nil {
		return err
	}

	dl := ytdlp.New().
		Format(profile.Selector).
		NoPlaylist().
		Output(opts.OutputTemplate)

	if profile.ExtractAudio {
		dl = dl.
			ExtractAudio().
			AudioFormat(profile.AudioFormat).
			AudioQuality(profile.AudioQuality)
	}

	if opts.Progress != nil {
		dl = dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			opts.Progress(progressFromUpdate(update))
		})
	}

	done := trackEngineRun()
	result, err := dl.Run(ctx, youtubeURL)
	done()
	// progress is reported live; the full log only matters when debugging
	if yt.verbose && result != nil && result.Stdout != "" {
		fmt.Fprint(yt.out, result.Stdout)
	}
	if err != nil {
		if result != nil {
			return fmt.Errorf("yt-dlp failed: %w\nOutput: %s", err, result.Stderr)
		}
		return fmt.Errorf("yt-dlp failed: %w", err)
	}

	return nil
}

func progressFromUpdate(update ytdlp.ProgressUpdate) DownloadProgress {
	return DownloadProgress{
		Status:          string(update.Status),
		Filename:        update.Filename,
		DownloadedBytes: update.DownloadedBytes,
		TotalBytes:      update.TotalBytes,
		Percent:         update.Percent(),
	}
}

func trackEngineRun() func() {
	engineRuns.Add(1)
	return func() { engineRuns.Add(-1) }
}

// EngineRunning reports whether a yt-dlp process is in flight
func EngineRunning() bool {
	return engineRuns.Load() > 0
}

// WaitEngineIdle blocks until no yt-dlp process is in flight or timeout
// passes, and reports whether the engine went idle
func WaitEngineIdle(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for EngineRunning() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(50 * time.Millisecond)
	}
	return true
}

// downloadProfile is the yt-dlp selection and post-processing for one format
type downloadProfile struct {
	Selector     string
	ExtractAudio bool
	AudioFormat  string
	AudioQuality string
}

func profileFor(opts FetchOptions) (downloadProfile, error) {
	switch opts.Format {
	case FormatMP3:
		quality := opts.AudioQuality
		if quality == "" {
			quality = DefaultAudioQuality
		}
		return downloadProfile{
			Selector:     "bestaudio/best",
			ExtractAudio: true,
			AudioFormat:  "mp3",
			AudioQuality: quality,
		}, nil
	case FormatMP4:
		return downloadProfile{
			Selector: "bestvideo[ext=mp4]+bestaudio[ext=m4a]/mp4",
		}, nil
	default:
		return downloadProfile{}, fmt.Errorf("unsupported format: %q", opts.Format)
	}
}

// parseMetadata decodes yt-dlp's JSON and applies placeholder names
func parseMetadata(data []byte) (*VideoMetadata, error) {
	var metadata VideoMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	if metadata.Uploader == "" {
		metadata.Uploader = defaultUploader
	}
	if metadata.Title == "" {
		metadata.Title = defaultTitle
	}

	return &metadata, nil
}
