package selection

import (
	"math/rand"
	"testing"

	"github.com/smartgain/reelgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPick_NeverReturnsUsedWhileFreshRemain(t *testing.T) {
	t.Parallel()

	cands := []types.VideoCandidate{
		{ID: 1, URL: "https://example.com/office"},
		{ID: 2, URL: "https://example.com/meeting"},
		{ID: 3, URL: "https://example.com/boardroom"},
		{ID: 4, URL: "https://example.com/team"},
	}
	used := UsedIDs{1: {}, 2: {}, 3: {}}

	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		got := Pick(rng, cands, used)
		if got.ID != 4 {
			t.Fatalf("seed %d: picked used candidate %d", seed, got.ID)
		}
	}
}

func TestPick_FallsBackToUsedWhenAllUsed(t *testing.T) {
	t.Parallel()

	cands := []types.VideoCandidate{{ID: 1}, {ID: 2}}
	used := UsedIDs{1: {}, 2: {}}
	rng := rand.New(rand.NewSource(1))

	got := Pick(rng, cands, used)
	assert.Contains(t, []int64{1, 2}, got.ID, "reuse is preferred over failure")
}

func TestPick_DrawsFromTopThree(t *testing.T) {
	t.Parallel()

	// Scores: id1=4, id2=2, id3=1, id4=0, id5=0.
	cands := []types.VideoCandidate{
		{ID: 1, URL: "https://example.com/office-meeting", Duration: 20},
		{ID: 2, URL: "https://example.com/office", Duration: 20},
		{ID: 3, URL: "https://example.com/plain", Duration: 10},
		{ID: 4, URL: "https://example.com/plain", Duration: 20},
		{ID: 5, URL: "https://example.com/plain2", Duration: 20},
	}
	seen := map[int64]int{}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 300; i++ {
		seen[Pick(rng, cands, UsedIDs{}).ID]++
	}
	assert.Zero(t, seen[4], "candidate outside top 3 must never be drawn")
	assert.Zero(t, seen[5], "candidate outside top 3 must never be drawn")
	assert.Positive(t, seen[1])
	assert.Positive(t, seen[2])
	assert.Positive(t, seen[3], "pick should vary within the top 3")
}

func TestBestFile_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    []types.VideoFile
		wantLink string
		wantOK   bool
	}{
		{
			name:   "no variants",
			files:  nil,
			wantOK: false,
		},
		{
			name: "portrait hd preferred",
			files: []types.VideoFile{
				{Width: 1920, Height: 1080, Quality: "hd", Link: "landscape-hd"},
				{Width: 720, Height: 1280, Quality: "sd", Link: "portrait-sd"},
				{Width: 1080, Height: 1920, Quality: "hd", Link: "portrait-hd"},
			},
			wantLink: "portrait-hd",
			wantOK:   true,
		},
		{
			name: "portrait without hd takes first portrait",
			files: []types.VideoFile{
				{Width: 1920, Height: 1080, Quality: "hd", Link: "landscape-hd"},
				{Width: 720, Height: 1280, Quality: "sd", Link: "portrait-sd"},
			},
			wantLink: "portrait-sd",
			wantOK:   true,
		},
		{
			name: "no portrait falls back to largest area",
			files: []types.VideoFile{
				{Width: 1280, Height: 720, Quality: "sd", Link: "small"},
				{Width: 1920, Height: 1080, Quality: "sd", Link: "large"},
			},
			wantLink: "large",
			wantOK:   true,
		},
		{
			name: "no portrait prefers hd over larger sd",
			files: []types.VideoFile{
				{Width: 3840, Height: 2160, Quality: "uhd", Link: "uhd"},
				{Width: 1920, Height: 1080, Quality: "hd", Link: "hd"},
			},
			wantLink: "hd",
			wantOK:   true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, ok := BestFile(types.VideoCandidate{Files: tt.files})
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantLink, f.Link)
			}
		})
	}
}
