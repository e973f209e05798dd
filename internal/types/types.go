package types

import "strings"

// Word is a single transcribed word with absolute timestamps in seconds.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Line is a subtitle-sized chunk of transcript, kept for reporting.
type Line struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type Transcript struct {
	Words               []Word  `json:"words"`
	Lines               []Line  `json:"lines,omitempty"`
	Language            string  `json:"language,omitempty"`
	LanguageProbability float64 `json:"language_probability,omitempty"`
}

func (t Transcript) FullText() string {
	parts := make([]string, 0, len(t.Words))
	for _, w := range t.Words {
		if s := strings.TrimSpace(w.Word); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// TotalDuration is the narration length in seconds, taken from the last
// word's end time.
func (t Transcript) TotalDuration() float64 {
	var max float64
	for _, w := range t.Words {
		if w.End > max {
			max = w.End
		}
	}
	return max
}

// VideoFile is one encoded variant of a stock clip.
type VideoFile struct {
	Width   int
	Height  int
	Quality string
	Link    string
}

// VideoCandidate is one search result prior to scoring and selection.
type VideoCandidate struct {
	ID       int64
	Duration float64 // native duration, seconds
	URL      string  // video page URL, used as a lexical signal
	Uploader string
	Files    []VideoFile
}

// VideoSegment is a selected, not-yet-downloaded clip reference.
// Width/Height describe the chosen file variant, not the original clip.
type VideoSegment struct {
	Keyword  string  `json:"keyword"`
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	URL      string  `json:"url"`
	Quality  string  `json:"quality,omitempty"`
	VideoID  int64   `json:"video_id"`
}

type SearchRequest struct {
	Query       string
	Orientation string
	MinDuration int // seconds, inclusive
	MaxDuration int // seconds, inclusive
	Page        int
	PerPage     int
}

// Skip records work that was dropped without aborting the run.
type Skip struct {
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
}

// SelectionReport makes skipped keywords and downloads observable instead of
// leaving them buried in logs.
type SelectionReport struct {
	Segments []VideoSegment `json:"segments,omitempty"`
	Skips    []Skip         `json:"skips,omitempty"`
}

// ClipSet is the uniform contract both clip producers hand to assembly:
// local files in timeline order plus the report of how they were obtained.
type ClipSet struct {
	Files  []string
	Report SelectionReport
}

// ExportOptions bound the output format for mobile playback.
type ExportOptions struct {
	Width        int
	Height       int
	FPS          int
	VideoBitrate string
	AudioBitrate string
}
