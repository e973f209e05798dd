package captions

import (
	"strings"
	"testing"
	"time"

	"github.com/smartgain/reelgen/internal/types"
)

func TestBuildElements_PreservesOrderAndIntervals(t *testing.T) {
	t.Parallel()

	words := []types.Word{
		{Word: "ciao", Start: 0.1, End: 0.5},
		{Word: "  ", Start: 0.5, End: 0.7},
		{Word: "a", Start: 0.7, End: 0.6}, // inverted, dropped
		{Word: "tutti", Start: 0.8, End: 1.2},
	}
	elems := BuildElements(words)
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	if elems[0].Text != "ciao" || elems[1].Text != "tutti" {
		t.Fatalf("unexpected element order: %+v", elems)
	}
	var prev time.Duration
	for _, e := range elems {
		if e.Start > e.End {
			t.Fatalf("element %q has start after end", e.Text)
		}
		if e.Start < prev {
			t.Fatalf("elements out of transcript order at %q", e.Text)
		}
		prev = e.Start
	}
}

func TestBuildElements_SanitizesOverrideBraces(t *testing.T) {
	t.Parallel()

	elems := BuildElements([]types.Word{{Word: "{x}", Start: 0, End: 1}})
	if len(elems) != 1 || elems[0].Text != "(x)" {
		t.Fatalf("expected sanitized text, got %+v", elems)
	}
}

func TestRender_OneDialoguePerWord(t *testing.T) {
	t.Parallel()

	elems := BuildElements([]types.Word{
		{Word: "hello", Start: 0.0, End: 0.4},
		{Word: "world", Start: 0.4, End: 0.9},
	})
	doc := Render(elems, 1080, 1920)

	if got := strings.Count(doc, "Dialogue: "); got != 2 {
		t.Fatalf("expected 2 dialogue events, got %d:\n%s", got, doc)
	}
	if !strings.Contains(doc, "PlayResX: 1080") || !strings.Contains(doc, "PlayResY: 1920") {
		t.Fatalf("expected frame size in header:\n%s", doc)
	}
	// 7.5% of 1920 is a 144pt font.
	if !strings.Contains(doc, "Style: Reel, Arial, 144,") {
		t.Fatalf("expected scaled font size in style:\n%s", doc)
	}
	if !strings.Contains(doc, "0:00:00.00,0:00:00.40") {
		t.Fatalf("expected word-timed event:\n%s", doc)
	}
}

func TestRender_EmptyElements(t *testing.T) {
	t.Parallel()

	doc := Render(nil, 1080, 1920)
	if strings.Contains(doc, "Dialogue:") {
		t.Fatalf("expected no dialogue events:\n%s", doc)
	}
}

func TestAssTime_Format(t *testing.T) {
	t.Parallel()

	if got := assTime(61*time.Second + 234*time.Millisecond); got != "0:01:01.23" {
		t.Fatalf("unexpected assTime: %s", got)
	}
	if got := assTime(-time.Second); got != "0:00:00.00" {
		t.Fatalf("negative times clamp to zero, got %s", got)
	}
}
