package selection

import (
	"testing"

	"github.com/smartgain/reelgen/internal/types"
)

func TestScore_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    types.VideoCandidate
		want int
	}{
		{
			name: "neutral",
			c:    types.VideoCandidate{URL: "https://example.com/videos/1", Uploader: "someone", Duration: 20},
			want: 0,
		},
		{
			name: "one positive indicator",
			c:    types.VideoCandidate{URL: "https://example.com/office-scene-1", Duration: 20},
			want: 2,
		},
		{
			name: "one negative indicator",
			c:    types.VideoCandidate{URL: "https://example.com/beach-sunset", Duration: 20},
			want: -3,
		},
		{
			name: "good duration bonus",
			c:    types.VideoCandidate{URL: "https://example.com/videos/1", Duration: 10},
			want: 1,
		},
		{
			name: "uploader counts toward the haystack",
			c:    types.VideoCandidate{URL: "https://example.com/videos/1", Uploader: "Corporate Films", Duration: 20},
			want: 2,
		},
		{
			name: "mixed signals sum",
			c:    types.VideoCandidate{URL: "https://example.com/business-meeting-yoga", Duration: 9},
			want: 2 + 2 - 3 + 1,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tt.c); got != tt.want {
				t.Fatalf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScore_PositiveBeatsNeutral(t *testing.T) {
	t.Parallel()

	neutral := types.VideoCandidate{URL: "https://example.com/videos/42", Duration: 20}
	positive := neutral
	positive.URL = "https://example.com/videos/42-boardroom"

	if Score(positive) <= Score(neutral) {
		t.Fatalf("candidate with a positive indicator must outscore the neutral one: %d vs %d",
			Score(positive), Score(neutral))
	}
}

func TestRankByScore_StableOnTies(t *testing.T) {
	t.Parallel()

	cands := []types.VideoCandidate{
		{ID: 1, URL: "https://example.com/a", Duration: 20},
		{ID: 2, URL: "https://example.com/b", Duration: 20},
		{ID: 3, URL: "https://example.com/office", Duration: 20},
	}
	ranked := rankByScore(cands)
	if ranked[0].ID != 3 {
		t.Fatalf("expected scored candidate first, got id %d", ranked[0].ID)
	}
	if ranked[1].ID != 1 || ranked[2].ID != 2 {
		t.Fatalf("expected backend order preserved on ties, got %d then %d", ranked[1].ID, ranked[2].ID)
	}
}
