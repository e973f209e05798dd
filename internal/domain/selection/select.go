package selection

import (
	"math/rand"
	"sort"

	"github.com/smartgain/reelgen/internal/types"
)

// UsedIDs is the caller-owned set of already-chosen source identifiers for
// one run. Threading it explicitly keeps selection reentrant.
type UsedIDs map[int64]struct{}

// topPickPool bounds the random pick: quality bias with run-to-run variety.
const topPickPool = 3

// Pick chooses one candidate: used identifiers are filtered out unless that
// empties the list (reuse beats failure), then a uniform draw among the top
// 3 by score. cands must be non-empty.
func Pick(rng *rand.Rand, cands []types.VideoCandidate, used UsedIDs) types.VideoCandidate {
	fresh := make([]types.VideoCandidate, 0, len(cands))
	for _, c := range cands {
		if _, ok := used[c.ID]; !ok {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		fresh = cands
	}

	ranked := rankByScore(fresh)
	pool := topPickPool
	if pool > len(ranked) {
		pool = len(ranked)
	}
	return ranked[rng.Intn(pool)]
}

// BestFile picks the encoded variant to download: true-portrait variants
// first, otherwise everything by pixel area descending; "hd" wins within
// the chosen subset.
func BestFile(c types.VideoCandidate) (types.VideoFile, bool) {
	if len(c.Files) == 0 {
		return types.VideoFile{}, false
	}

	portrait := make([]types.VideoFile, 0, len(c.Files))
	for _, f := range c.Files {
		if f.Height > f.Width {
			portrait = append(portrait, f)
		}
	}
	pool := portrait
	if len(pool) == 0 {
		pool = make([]types.VideoFile, len(c.Files))
		copy(pool, c.Files)
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Width*pool[i].Height > pool[j].Width*pool[j].Height
		})
	}

	for _, f := range pool {
		if f.Quality == "hd" {
			return f, true
		}
	}
	return pool[0], true
}
