// Package usecase contains the reel assembly orchestration. It depends only
// on ports and domain logic; all media work happens behind MediaTool.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartgain/reelgen/internal/domain/captions"
	"github.com/smartgain/reelgen/internal/domain/timeline"
	"github.com/smartgain/reelgen/internal/ports"
	"github.com/smartgain/reelgen/internal/types"
)

// ErrNoClips aborts assembly before any encoding work when the producer came
// back empty-handed.
var ErrNoClips = errors.New("no clips produced")

const crossfade = 500 * time.Millisecond

type Deps struct {
	Media    ports.MediaTool
	ASR      ports.Transcriber
	Producer ports.ClipProducer
	Log      zerolog.Logger
}

type Input struct {
	AudioPath  string
	WorkDir    string
	OutDir     string
	OutputName string

	MusicPath string
	MusicGain float64

	// TargetDuration 0 means follow the narration length.
	TargetDuration time.Duration

	Width  int
	Height int
	FPS    int
}

type Result struct {
	OutputPath string
	Transcript types.Transcript
	Report     types.SelectionReport
}

// Run executes the full pipeline: transcribe, produce clips, fit each clip to
// its slot, concatenate with crossfades, mix audio, burn captions, export.
func Run(ctx context.Context, d Deps, in Input) (Result, error) {
	wav := filepath.Join(in.WorkDir, "narration.wav")
	if err := d.Media.ExtractAudioMono16k(ctx, in.AudioPath, wav); err != nil {
		return Result{}, fmt.Errorf("extract audio: %w", err)
	}

	tr, err := d.ASR.Transcribe(ctx, wav)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}
	d.Log.Info().
		Int("words", len(tr.Words)).
		Str("language", tr.Language).
		Float64("duration", tr.TotalDuration()).
		Msg("transcription complete")

	target := in.TargetDuration
	if target <= 0 {
		target = time.Duration(tr.TotalDuration() * float64(time.Second))
	}
	if target <= 0 {
		return Result{}, errors.New("could not determine target duration")
	}

	// The report survives every failure below so skipped keywords and
	// downloads stay observable even when the run dies.
	clips, err := d.Producer.Produce(ctx, tr, target, in.WorkDir)
	res := Result{Transcript: tr, Report: clips.Report}
	if err != nil {
		return res, fmt.Errorf("produce clips: %w", err)
	}
	if len(clips.Files) == 0 {
		return res, ErrNoClips
	}

	// Every clip gets an equal share of the target; looping covers clips
	// whose native length falls short of their slot.
	slot := target / time.Duration(len(clips.Files))
	fitted := make([]string, 0, len(clips.Files))
	for i, clip := range clips.Files {
		native, err := d.Media.ProbeDuration(ctx, clip)
		if err != nil {
			return res, fmt.Errorf("probe %s: %w", clip, err)
		}
		plan := timeline.Fit(native, slot)
		out := filepath.Join(in.WorkDir, fmt.Sprintf("fitted_%02d.mp4", i))
		if err := d.Media.FitClip(ctx, clip, out, plan.Loops, plan.ClipTo, in.Width, in.Height); err != nil {
			return res, fmt.Errorf("fit clip %s: %w", clip, err)
		}
		fitted = append(fitted, out)
	}

	video := filepath.Join(in.WorkDir, "timeline.mp4")
	if err := d.Media.ConcatWithFades(ctx, fitted, slot, crossfade, video); err != nil {
		return res, fmt.Errorf("concatenate clips: %w", err)
	}

	// The concat output is the authoritative length; the audio bed must
	// match it exactly or export truncates on -shortest.
	total, err := d.Media.ProbeDuration(ctx, video)
	if err != nil {
		return res, fmt.Errorf("probe timeline: %w", err)
	}

	music := in.MusicPath
	if music != "" {
		if _, err := os.Stat(music); err != nil {
			d.Log.Warn().Str("path", music).Msg("background music not found, using narration only")
			music = ""
		}
	}
	audio := filepath.Join(in.WorkDir, "mix.m4a")
	if err := d.Media.MixAudio(ctx, in.AudioPath, music, audio, in.MusicGain, total); err != nil {
		return res, fmt.Errorf("mix audio: %w", err)
	}

	subtitles := ""
	if elems := captions.BuildElements(tr.Words); len(elems) > 0 {
		subtitles = filepath.Join(in.WorkDir, "captions.ass")
		if err := os.WriteFile(subtitles, []byte(captions.Render(elems, in.Width, in.Height)), 0o644); err != nil {
			return res, fmt.Errorf("write captions: %w", err)
		}
	} else {
		d.Log.Warn().Msg("no caption elements, exporting without subtitles")
	}

	if err := os.MkdirAll(in.OutDir, 0o755); err != nil {
		return res, fmt.Errorf("create output directory: %w", err)
	}
	outPath := filepath.Join(in.OutDir, in.OutputName)
	opts := types.ExportOptions{
		Width:        in.Width,
		Height:       in.Height,
		FPS:          in.FPS,
		VideoBitrate: "3M",
		AudioBitrate: "128k",
	}
	if err := d.Media.Export(ctx, video, audio, subtitles, outPath, opts); err != nil {
		return res, fmt.Errorf("export: %w", err)
	}

	d.Log.Info().Str("output", outPath).Dur("duration", total).Msg("reel exported")
	res.OutputPath = outPath
	return res, nil
}
