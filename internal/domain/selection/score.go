package selection

import (
	"sort"
	"strings"

	"github.com/smartgain/reelgen/internal/types"
)

// Scoring weights are empirical tuning constants.
const (
	positiveWeight = 2
	negativeWeight = -3
	durationBonus  = 1

	goodDurationMin = 8.0  // seconds, inclusive
	goodDurationMax = 15.0 // seconds, inclusive
)

// Text search returns thematically wrong results; lexical indicators on the
// URL and uploader name correct for that.
var positiveIndicators = []string{
	"business", "office", "meeting", "corporate", "professional",
	"team", "executive", "suit", "boardroom", "presentation",
	"handshake", "desk", "computer", "conference", "entrepreneur",
	"startup", "workspace", "colleagues", "manager",
}

var negativeIndicators = []string{
	"food", "cooking", "kitchen", "travel", "beach",
	"fitness", "gym", "workout", "yoga", "nature",
	"mountain", "forest", "animal", "pet", "sport",
	"party", "wedding", "baby", "dance", "concert",
}

// Score rates a candidate's thematic and duration fit.
func Score(c types.VideoCandidate) int {
	haystack := strings.ToLower(c.URL + " " + c.Uploader)

	score := 0
	for _, term := range positiveIndicators {
		if strings.Contains(haystack, term) {
			score += positiveWeight
		}
	}
	for _, term := range negativeIndicators {
		if strings.Contains(haystack, term) {
			score += negativeWeight
		}
	}
	if c.Duration >= goodDurationMin && c.Duration <= goodDurationMax {
		score += durationBonus
	}
	return score
}

// rankByScore returns the candidates sorted by score descending, stable over
// the backend's own ranking.
func rankByScore(cands []types.VideoCandidate) []types.VideoCandidate {
	out := make([]types.VideoCandidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool {
		return Score(out[i]) > Score(out[j])
	})
	return out
}
