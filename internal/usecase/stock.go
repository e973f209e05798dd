package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartgain/reelgen/internal/domain/keywords"
	"github.com/smartgain/reelgen/internal/domain/selection"
	"github.com/smartgain/reelgen/internal/ports"
	"github.com/smartgain/reelgen/internal/types"
)

// ErrNoSegments means keyword search, fallbacks included, found nothing
// usable.
var ErrNoSegments = errors.New("no segments selected")

// StockProducer implements the stock-footage path: keyword extraction,
// search and selection, then download of the chosen variants.
type StockProducer struct {
	Keywords   ports.KeywordSource
	Selector   *selection.Selector
	Downloader ports.Downloader
	Log        zerolog.Logger
}

var _ ports.ClipProducer = (*StockProducer)(nil)

func (p *StockProducer) Produce(ctx context.Context, tr types.Transcript, target time.Duration, workDir string) (types.ClipSet, error) {
	kws := p.extractKeywords(ctx, tr)
	p.Log.Info().Strs("keywords", kws).Msg("keywords ready")

	used := make(selection.UsedIDs)
	segments, skips := p.Selector.SelectSegments(ctx, kws, target, used)
	if len(segments) == 0 {
		return types.ClipSet{Report: types.SelectionReport{Skips: skips}}, ErrNoSegments
	}

	set := types.ClipSet{Report: types.SelectionReport{Skips: skips}}
	for _, seg := range segments {
		dest := filepath.Join(workDir, fmt.Sprintf("pexels_%d_%s.mp4", seg.VideoID, seg.Keyword))
		if err := p.Downloader.Download(ctx, seg.URL, dest); err != nil {
			p.Log.Warn().Err(err).Str("keyword", seg.Keyword).Msg("download failed, dropping segment")
			set.Report.Skips = append(set.Report.Skips, types.Skip{
				Keyword: seg.Keyword,
				Reason:  fmt.Sprintf("download: %v", err),
			})
			continue
		}
		set.Files = append(set.Files, dest)
		set.Report.Segments = append(set.Report.Segments, seg)
	}
	if len(set.Files) == 0 {
		return set, errors.New("all segment downloads failed")
	}
	return set, nil
}

// extractKeywords never fails: extraction errors degrade to the deterministic
// fallback list, short lists get topped up.
func (p *StockProducer) extractKeywords(ctx context.Context, tr types.Transcript) []string {
	raw, err := p.Keywords.Keywords(ctx, tr.FullText())
	if err != nil {
		p.Log.Warn().Err(err).Msg("keyword extraction failed, using fallback list")
		return keywords.Fallback()
	}
	kws := keywords.Clean(raw)
	if len(kws) == 0 {
		p.Log.Warn().Strs("raw", raw).Msg("no usable keywords after cleaning, using fallback list")
		return keywords.Fallback()
	}
	return keywords.Fill(kws)
}
