// Package captions builds word-level burned-in caption elements and renders
// them as an ASS subtitle document for the ffmpeg subtitles filter.
package captions

import (
	"fmt"
	"strings"
	"time"

	"github.com/smartgain/reelgen/internal/types"
)

// Layout constants for vertical short-form frames: captions sit in the lower
// portion of the frame, not at the very bottom, with an outline stroke so
// they stay legible against arbitrary stock footage.
const (
	fontScale    = 0.075 // fraction of frame height
	baselineFrac = 0.78  // vertical position as fraction of frame height
	outlinePx    = 6
	shadowPx     = 2
)

// Element is one time-bounded on-screen word.
type Element struct {
	Text  string
	Start time.Duration
	End   time.Duration
}

// BuildElements converts transcript words into caption elements in input
// order. Words that are empty after trimming, or carry inverted timestamps,
// are skipped rather than failing the run.
func BuildElements(words []types.Word) []Element {
	out := make([]Element, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		start := dur(w.Start)
		end := dur(w.End)
		if end < start {
			continue
		}
		out = append(out, Element{Text: sanitizeASS(text), Start: start, End: end})
	}
	return out
}

// Render produces a complete ASS document with one Dialogue event per
// element, bottom-center aligned for the given frame size.
func Render(elems []Element, width, height int) string {
	var b strings.Builder
	b.WriteString(header(width, height))
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, e := range elems {
		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(e.Start))
		b.WriteString(",")
		b.WriteString(assTime(e.End))
		b.WriteString(",Reel,,0,0,0,,")
		b.WriteString(e.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func header(width, height int) string {
	fontSize := int(float64(height) * fontScale)
	// Alignment 2 is bottom-center; MarginV lifts the baseline off the very
	// bottom of the frame.
	marginV := int(float64(height) * (1 - baselineFrac))
	return strings.TrimSpace(fmt.Sprintf(`
[Script Info]
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Reel, Arial, %d, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,%d,%d,2, 40,40,%d,1
`, width, height, fontSize, outlinePx, shadowPx, marginV))
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
