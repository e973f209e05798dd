package selection

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/smartgain/reelgen/internal/domain/queryplan"
	"github.com/smartgain/reelgen/internal/domain/timeline"
	"github.com/smartgain/reelgen/internal/ports"
	"github.com/smartgain/reelgen/internal/types"
)

const (
	maxSegments = 5
	minSegments = 3
	maxFallback = 2

	searchPerPage = 80
	maxSearchPage = 3 // random page in [1,maxSearchPage] widens the pool
	slotSlackSec  = 5

	fallbackMinSec = 8
	fallbackMaxSec = 12
)

// Rotating base terms used when keyword search comes up short.
var fallbackTerms = []string{
	"business meeting",
	"corporate office",
	"professional team",
	"digital marketing",
	"entrepreneur working",
}

// Selector orchestrates per-keyword query planning, retrieval, scoring and
// fallback. One keyword's failure never aborts the run.
type Selector struct {
	search ports.VideoSearcher
	plan   queryplan.Planner
	rng    *rand.Rand
	log    zerolog.Logger
}

func NewSelector(search ports.VideoSearcher, rng *rand.Rand, log zerolog.Logger) *Selector {
	return &Selector{
		search: search,
		plan:   queryplan.New(rng),
		rng:    rng,
		log:    log,
	}
}

// SelectSegments picks at most 5 segments for the given keywords, in input
// order. used is owned by the caller and grows with every chosen identifier.
func (s *Selector) SelectSegments(
	ctx context.Context,
	kws []string,
	target time.Duration,
	used UsedIDs,
) ([]types.VideoSegment, []types.Skip) {
	slot := timeline.SlotDuration(target, len(kws))
	minSec := int(slot / time.Second)
	maxSec := minSec + slotSlackSec

	var segments []types.VideoSegment
	var skips []types.Skip
	for _, kw := range kws {
		seg, reason := s.selectOne(ctx, kw, kw, minSec, maxSec, used)
		if reason != "" {
			skips = append(skips, types.Skip{Keyword: kw, Reason: reason})
			s.log.Warn().Str("keyword", kw).Str("reason", reason).Msg("keyword skipped")
			continue
		}
		segments = append(segments, seg)
		s.log.Info().Str("keyword", kw).Float64("duration", seg.Duration).Msg("segment selected")
	}

	if len(segments) < minSegments {
		s.log.Warn().Int("segments", len(segments)).Msg("not enough segments, adding fallbacks")
		fallbacks := 0
		for _, term := range fallbackTerms {
			if fallbacks >= maxFallback {
				break
			}
			label := fmt.Sprintf("fallback_%d", fallbacks+1)
			seg, reason := s.selectOne(ctx, term, label, fallbackMinSec, fallbackMaxSec, used)
			if reason != "" {
				skips = append(skips, types.Skip{Keyword: label, Reason: reason})
				continue
			}
			segments = append(segments, seg)
			fallbacks++
		}
	}

	if len(segments) > maxSegments {
		segments = segments[:maxSegments]
	}
	return segments, skips
}

// selectOne runs one seed term through the planner, retrieves a candidate
// page and picks a segment. A non-empty reason means no segment.
func (s *Selector) selectOne(
	ctx context.Context,
	seed, label string,
	minSec, maxSec int,
	used UsedIDs,
) (types.VideoSegment, string) {
	req := types.SearchRequest{
		Query:       s.plan.Plan(seed),
		Orientation: "portrait",
		MinDuration: minSec,
		MaxDuration: maxSec,
		Page:        1 + s.rng.Intn(maxSearchPage),
		PerPage:     searchPerPage,
	}
	cands, err := s.search.Search(ctx, req)
	if err != nil {
		return types.VideoSegment{}, fmt.Sprintf("search: %v", err)
	}
	if len(cands) == 0 {
		return types.VideoSegment{}, "no candidates"
	}

	c := Pick(s.rng, cands, used)
	f, ok := BestFile(c)
	if !ok {
		return types.VideoSegment{}, "no usable file variant"
	}

	used[c.ID] = struct{}{}
	return types.VideoSegment{
		Keyword:  label,
		Duration: c.Duration,
		Width:    f.Width,
		Height:   f.Height,
		URL:      f.Link,
		Quality:  f.Quality,
		VideoID:  c.ID,
	}, ""
}
