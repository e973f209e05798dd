// Package pipeline wires configuration, adapters and the usecase together
// into a single runnable job.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartgain/reelgen/internal/domain/selection"
	"github.com/smartgain/reelgen/internal/ports"
	"github.com/smartgain/reelgen/internal/ports/adapters/cohere"
	"github.com/smartgain/reelgen/internal/ports/adapters/ffmpeg"
	"github.com/smartgain/reelgen/internal/ports/adapters/httpdl"
	"github.com/smartgain/reelgen/internal/ports/adapters/pexels"
	"github.com/smartgain/reelgen/internal/ports/adapters/t2v"
	"github.com/smartgain/reelgen/internal/ports/adapters/whisperhttp"
	"github.com/smartgain/reelgen/internal/types"
	"github.com/smartgain/reelgen/internal/usecase"
)

// Reels are fixed-format vertical video for mobile feeds.
const (
	outputWidth  = 1080
	outputHeight = 1920
	outputFPS    = 30

	maxMusicGain = 0.5
)

const (
	SourceStock      = "stock"
	SourceGenerative = "t2v"
)

type Config struct {
	AudioPath  string
	OutDir     string
	OutputName string

	// Source selects the clip producer: SourceStock or SourceGenerative.
	Source string

	// TargetDuration 0 means follow the narration length.
	TargetDuration time.Duration

	MusicPath string
	MusicGain float64

	// CacheDir is the base directory for per-run scratch space. If empty,
	// defaults to ".cache".
	CacheDir string

	// Seed 0 means non-deterministic clip selection.
	Seed int64

	FFmpegPath  string
	FFprobePath string

	WhisperURL string

	CohereAPIKey       string
	CohereModel        string
	CohereBaseURL      string
	CohereAllowedHosts []string

	PexelsAPIKey  string
	PexelsBaseURL string

	T2VURL string

	Logger zerolog.Logger
}

func (c Config) Validate() error {
	if c.AudioPath == "" {
		return errors.New("audio input is empty")
	}
	if _, err := os.Stat(c.AudioPath); err != nil {
		return fmt.Errorf("stat audio input: %w", err)
	}
	switch c.Source {
	case SourceStock:
		if c.PexelsAPIKey == "" {
			return errors.New("PEXELS_API_KEY is required for stock footage")
		}
	case SourceGenerative:
		if c.T2VURL == "" {
			return errors.New("T2V_URL is required for generative video")
		}
	default:
		return fmt.Errorf("unknown source %q (want %q or %q)", c.Source, SourceStock, SourceGenerative)
	}
	if c.WhisperURL == "" {
		return errors.New("WHISPER_URL is required")
	}
	if c.CohereAPIKey == "" {
		return errors.New("CO_API_KEY is required")
	}
	if c.MusicGain < 0 || c.MusicGain > maxMusicGain {
		return fmt.Errorf("music gain %.2f out of range [0, %.1f]", c.MusicGain, maxMusicGain)
	}
	return cohere.ValidateBaseURL(c.CohereBaseURL, c.CohereAllowedHosts)
}

// Run executes one job and returns the path of the exported reel.
func Run(ctx context.Context, cfg Config) (string, error) {
	log := cfg.Logger

	media := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	asr := whisperhttp.New(cfg.WhisperURL)
	llm := cohere.New(cfg.CohereAPIKey, cfg.CohereModel, cfg.CohereBaseURL)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var producer ports.ClipProducer
	switch cfg.Source {
	case SourceGenerative:
		producer = &usecase.GenerativeProducer{
			Prompts:   llm,
			Generator: t2v.New(cfg.T2VURL),
			Log:       log,
		}
	default:
		producer = &usecase.StockProducer{
			Keywords:   llm,
			Selector:   selection.NewSelector(pexels.New(cfg.PexelsAPIKey, cfg.PexelsBaseURL), rng, log),
			Downloader: httpdl.New(),
			Log:        log,
		}
	}

	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	workDir := filepath.Join(baseCache, "runs", uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Warn().Err(err).Str("dir", workDir).Msg("workspace cleanup failed")
		}
	}()
	log.Info().Str("workspace", workDir).Int64("seed", seed).Msg("workspace ready")

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.AudioPath, time.Now().UTC())

	outputName := cfg.OutputName
	if outputName == "" {
		outputName = "reel.mp4"
	}

	res, runErr := usecase.Run(ctx, usecase.Deps{
		Media:    media,
		ASR:      asr,
		Producer: producer,
		Log:      log,
	}, usecase.Input{
		AudioPath:      cfg.AudioPath,
		WorkDir:        workDir,
		OutDir:         runOutDir,
		OutputName:     outputName,
		MusicPath:      cfg.MusicPath,
		MusicGain:      cfg.MusicGain,
		TargetDuration: cfg.TargetDuration,
		Width:          outputWidth,
		Height:         outputHeight,
		FPS:            outputFPS,
	})

	// The skip ledger is written even for failed runs; it is usually the
	// only record of why a run came up empty.
	if len(res.Report.Segments) > 0 || len(res.Report.Skips) > 0 {
		if err := writeReport(runOutDir, res.Report, log); err != nil {
			if runErr == nil {
				return "", err
			}
			log.Warn().Err(err).Msg("selection report not written")
		}
	}
	if runErr != nil {
		return "", runErr
	}
	return res.OutputPath, nil
}

func writeReport(runOutDir string, report types.SelectionReport, log zerolog.Logger) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	reportPath := filepath.Join(runOutDir, "report.json")
	if err := os.WriteFile(reportPath, b, 0o644); err != nil {
		return err
	}
	log.Info().
		Int("segments", len(report.Segments)).
		Int("skips", len(report.Skips)).
		Str("report", reportPath).
		Msg("selection report written")
	return nil
}

func buildRunOutDir(outRoot, audioPath string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", audioPath, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*whisperhttp.Adapter)(nil)
var _ ports.KeywordSource = (*cohere.Adapter)(nil)
var _ ports.ScenePrompter = (*cohere.Adapter)(nil)
var _ ports.VideoSearcher = (*pexels.Adapter)(nil)
var _ ports.Downloader = (*httpdl.Downloader)(nil)
var _ ports.VideoGenerator = (*t2v.Adapter)(nil)
