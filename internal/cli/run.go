package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smartgain/reelgen/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	outDir, _ := cmd.Flags().GetString("out")
	name, _ := cmd.Flags().GetString("name")
	source, _ := cmd.Flags().GetString("source")
	music, _ := cmd.Flags().GetString("music")
	durationSec, _ := cmd.Flags().GetInt("duration")
	seed, _ := cmd.Flags().GetInt64("seed")
	musicGain, _ := cmd.Flags().GetFloat64("music-gain")

	cohereKey := os.Getenv("CO_API_KEY")
	if cohereKey == "" {
		return errors.New("CO_API_KEY is required (set it in .env)")
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	if music == "" {
		music = os.Getenv("BACKGROUND_MUSIC_PATH")
	}
	outDir = resolveOutDir(cmd.Flags().Changed("out"), outDir)

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		AudioPath:      absIn,
		OutDir:         outDir,
		OutputName:     name,
		Source:         source,
		TargetDuration: time.Duration(durationSec) * time.Second,
		MusicPath:      music,
		MusicGain:      musicGain,
		Seed:           seed,

		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",

		WhisperURL: getenvDefault("WHISPER_URL", "http://localhost:8000"),

		CohereAPIKey:  cohereKey,
		CohereModel:   os.Getenv("CO_MODEL"),
		CohereBaseURL: getenvDefault("CO_BASE_URL", "https://api.cohere.com"),

		PexelsAPIKey:  os.Getenv("PEXELS_API_KEY"),
		PexelsBaseURL: os.Getenv("PEXELS_BASE_URL"),

		T2VURL: os.Getenv("T2V_URL"),

		Logger: log,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// resolveOutDir lets OUTPUT_DIRECTORY stand in for the flag default; an
// explicitly passed --out always wins, even when it equals the default.
func resolveOutDir(explicit bool, flagValue string) string {
	if !explicit {
		if v := os.Getenv("OUTPUT_DIRECTORY"); v != "" {
			return v
		}
	}
	return flagValue
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
