package internal

// Outcome describes how a download attempt ended
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeDownloaded
	OutcomeDeclined
	OutcomeDuplicateDeclined
	OutcomeProbeFailed
)

// String returns a human-readable representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeDeclined:
		return "declined"
	case OutcomeDuplicateDeclined:
		return "duplicate declined"
	case OutcomeProbeFailed:
		return "probe failed"
	default:
		return "unknown"
	}
}

// Request is a single validated download request
type Request struct {
	URL      string
	Format   Format
	Category Category
}

// Plan is everything computed for a request before anything touches disk
type Plan struct {
	URL            string         `json:"url"`
	Format         Format         `json:"format"`
	Category       Category       `json:"category"`
	Metadata       *VideoMetadata `json:"metadata"`
	Uploader       string         `json:"uploader"`
	Title          string         `json:"title"`
	TargetDir      string         `json:"target_dir"`
	Filename       string         `json:"filename"`
	OutputTemplate string         `json:"output_template"`
	Duplicates     []string       `json:"duplicates"`
}
