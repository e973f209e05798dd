package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/smartgain/reelgen/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, in, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", in,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, in string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		in,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

// FitClip repeats the input loops times, trims to clipTo, drops native audio
// and scales to width x height. The trim makes the result duration exact to
// frame tolerance, which downstream concatenation relies on.
func (a *Adapter) FitClip(ctx context.Context, in, out string, loops int, clipTo time.Duration, width, height int) error {
	args := []string{"-y"}
	if loops > 1 {
		args = append(args, "-stream_loop", strconv.Itoa(loops-1))
	}
	args = append(args,
		"-i", in,
		"-t", fmtSeconds(clipTo),
		"-an",
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		out,
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg fit clip: %w\n%s", err, string(b))
	}
	return nil
}

// ConcatWithFades joins equally-long clips: fade-in on the first, fade-out on
// the last, both on interior clips. clipDur is the uniform per-clip duration.
func (a *Adapter) ConcatWithFades(ctx context.Context, ins []string, clipDur, fade time.Duration, out string) error {
	if len(ins) == 0 {
		return errors.New("ffmpeg concat: no input clips")
	}

	args := []string{"-y"}
	for _, in := range ins {
		args = append(args, "-i", in)
	}

	last := len(ins) - 1
	outStart := clipDur - fade
	var fc strings.Builder
	for i := range ins {
		fadeIn := i == 0 || i != last
		fadeOut := i == last || i != 0
		var filters []string
		if fadeIn {
			filters = append(filters, fmt.Sprintf("fade=t=in:st=0:d=%s", fmtSeconds(fade)))
		}
		if fadeOut {
			filters = append(filters, fmt.Sprintf("fade=t=out:st=%s:d=%s", fmtSeconds(outStart), fmtSeconds(fade)))
		}
		fmt.Fprintf(&fc, "[%d:v]%s[v%d];", i, strings.Join(filters, ","), i)
	}
	for i := range ins {
		fmt.Fprintf(&fc, "[v%d]", i)
	}
	fmt.Fprintf(&fc, "concat=n=%d:v=1:a=0[v]", len(ins))

	args = append(args,
		"-filter_complex", fc.String(),
		"-map", "[v]",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		out,
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg concat: %w\n%s", err, string(b))
	}
	return nil
}

// MixAudio lays an optional background bed under the narration. The bed is
// looped indefinitely and the mix trimmed to total, which is the same
// trim-or-loop rule clips use. musicGain scales the bed only.
func (a *Adapter) MixAudio(ctx context.Context, narration, music, out string, musicGain float64, total time.Duration) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, mixAudioArgs(narration, music, out, musicGain, total)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg mix audio: %w\n%s", err, string(b))
	}
	return nil
}

// mixAudioArgs pads the narration with trailing silence so the mix always
// spans total, even when the timeline runs longer than the spoken audio.
// Export maps streams with -shortest, so a short audio track would truncate
// the video.
func mixAudioArgs(narration, music, out string, musicGain float64, total time.Duration) []string {
	if music == "" {
		return []string{
			"-y",
			"-i", narration,
			"-af", "apad",
			"-t", fmtSeconds(total),
			"-c:a", "aac",
			out,
		}
	}
	filter := fmt.Sprintf(
		"[0:a]apad[sp];[1:a]volume=%s[bg];[sp][bg]amix=inputs=2:duration=longest:dropout_transition=0[a]",
		strconv.FormatFloat(musicGain, 'f', 2, 64),
	)
	return []string{
		"-y",
		"-i", narration,
		"-stream_loop", "-1",
		"-i", music,
		"-filter_complex", filter,
		"-map", "[a]",
		"-t", fmtSeconds(total),
		"-c:a", "aac",
		out,
	}
}

// Export attaches the mixed audio, burns the subtitle file if given and
// writes a mobile-friendly progressive-download container.
func (a *Adapter) Export(ctx context.Context, video, audio, subtitles, out string, opts types.ExportOptions) error {
	args := []string{
		"-y",
		"-i", video,
		"-i", audio,
		"-map", "0:v",
		"-map", "1:a",
	}
	if subtitles != "" {
		args = append(args, "-vf", "subtitles="+escapeFilterPath(subtitles))
	}
	args = append(args,
		"-r", strconv.Itoa(opts.FPS),
		"-c:v", "libx264",
		"-preset", "medium",
		"-b:v", opts.VideoBitrate,
		"-c:a", "aac",
		"-b:a", opts.AudioBitrate,
		"-movflags", "+faststart",
		"-shortest",
		out,
	)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg export: %w\n%s", err, string(b))
	}
	return nil
}

func fmtSeconds(d time.Duration) string {
	sec := float64(d) / float64(time.Second)
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
