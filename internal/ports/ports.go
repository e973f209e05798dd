package ports

import (
	"context"
	"time"

	"github.com/smartgain/reelgen/internal/types"
)

// Transcriber turns a mono 16kHz WAV file into word-level timestamps.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (types.Transcript, error)
}

// KeywordSource extracts visual search keywords from transcript text.
// Output is raw and must be normalized by the caller.
type KeywordSource interface {
	Keywords(ctx context.Context, transcript string) ([]string, error)
}

// ScenePrompter turns transcript text into n text-to-video scene prompts.
type ScenePrompter interface {
	ScenePrompts(ctx context.Context, transcript string, n int) ([]string, error)
}

// VideoSearcher queries a stock-video backend. Results are ranked by the
// backend and are not guaranteed unique across pages or queries.
type VideoSearcher interface {
	Search(ctx context.Context, req types.SearchRequest) ([]types.VideoCandidate, error)
}

type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// VideoGenerator renders a single clip from a text prompt.
type VideoGenerator interface {
	Generate(ctx context.Context, prompt, dest string) error
}

// MediaTool is the media-processing capability boundary. The pipeline is a
// pure orchestration layer over it and performs no pixel or sample work.
type MediaTool interface {
	ExtractAudioMono16k(ctx context.Context, in, outWav string) error
	ProbeDuration(ctx context.Context, in string) (time.Duration, error)
	// FitClip loops the input loops times, trims the result to clipTo,
	// strips native audio and scales to width x height.
	FitClip(ctx context.Context, in, out string, loops int, clipTo time.Duration, width, height int) error
	// ConcatWithFades concatenates equally-long clips with fade-in on the
	// first, fade-out on the last and both on interior clips.
	ConcatWithFades(ctx context.Context, ins []string, clipDur, fade time.Duration, out string) error
	// MixAudio mixes narration with an optional background bed (looped or
	// trimmed to total, attenuated by musicGain). Empty music means
	// narration only.
	MixAudio(ctx context.Context, narration, music, out string, musicGain float64, total time.Duration) error
	// Export attaches the audio track, burns the subtitle file if given and
	// writes the final container.
	Export(ctx context.Context, video, audio, subtitles, out string, opts types.ExportOptions) error
}

// ClipProducer is the uniform upstream contract shared by the stock-footage
// and generative paths: transcript in, local clip files out.
type ClipProducer interface {
	Produce(ctx context.Context, tr types.Transcript, target time.Duration, workDir string) (types.ClipSet, error)
}
