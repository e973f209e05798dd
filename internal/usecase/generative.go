package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartgain/reelgen/internal/ports"
	"github.com/smartgain/reelgen/internal/types"
)

// Generated clips come out around five seconds each.
const sceneLength = 5 * time.Second

// GenerativeProducer implements the text-to-video path: the transcript is
// turned into scene prompts and each prompt is rendered into a clip.
type GenerativeProducer struct {
	Prompts   ports.ScenePrompter
	Generator ports.VideoGenerator
	Log       zerolog.Logger
}

var _ ports.ClipProducer = (*GenerativeProducer)(nil)

func (p *GenerativeProducer) Produce(ctx context.Context, tr types.Transcript, target time.Duration, workDir string) (types.ClipSet, error) {
	n := int(target / sceneLength)
	if n < 1 {
		n = 1
	}
	prompts, err := p.Prompts.ScenePrompts(ctx, tr.FullText(), n)
	if err != nil {
		return types.ClipSet{}, fmt.Errorf("scene prompts: %w", err)
	}

	var set types.ClipSet
	for i, prompt := range prompts {
		dest := filepath.Join(workDir, fmt.Sprintf("t2v_%02d.mp4", i))
		if err := p.Generator.Generate(ctx, prompt, dest); err != nil {
			p.Log.Warn().Err(err).Int("scene", i).Msg("scene generation failed, skipping")
			set.Report.Skips = append(set.Report.Skips, types.Skip{
				Keyword: fmt.Sprintf("scene_%d", i+1),
				Reason:  fmt.Sprintf("generate: %v", err),
			})
			continue
		}
		set.Files = append(set.Files, dest)
	}
	if len(set.Files) == 0 {
		return set, errors.New("all scene generations failed")
	}
	p.Log.Info().Int("clips", len(set.Files)).Msg("generative clips ready")
	return set, nil
}
