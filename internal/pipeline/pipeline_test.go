package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartgain/reelgen/internal/types"
)

func TestBuildRunOutDir(t *testing.T) {
	now := time.Date(2026, 8, 12, 10, 30, 45, 1234, time.UTC)
	got := buildRunOutDir("out", "/tmp/My Cool.Audio.mp3", now)
	base := filepath.Base(got)
	if filepath.Dir(got) != "out" {
		t.Fatalf("unexpected parent dir: %s", got)
	}
	if !strings.HasPrefix(base, "my-cool-audio-20260812-103045Z-") {
		t.Fatalf("unexpected run dir format: %s", base)
	}
	if len(base) != len("my-cool-audio-20260812-103045Z-")+6 {
		t.Fatalf("unexpected run dir suffix length: %s", base)
	}
}

func TestNormalizePathSegment(t *testing.T) {
	tests := map[string]string{
		"  My Cool.Audio  ": "my-cool-audio",
		"___":               "",
		"abc123":            "abc123",
		"Name (v2)!":        "name-v2",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := normalizePathSegment(in); got != want {
				t.Fatalf("normalizePathSegment(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

func TestWriteReport_CreatesRunDir(t *testing.T) {
	// The run output dir does not exist when assembly fails early; the
	// report write must still land.
	dir := filepath.Join(t.TempDir(), "voice-20260829-000000Z-abc123")
	report := types.SelectionReport{
		Skips: []types.Skip{{Keyword: "office", Reason: "no candidates"}},
	}
	if err := writeReport(dir, report, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "no candidates") {
		t.Fatalf("report missing skip reason: %s", b)
	}
}

func validConfig(t *testing.T) Config {
	t.Helper()
	audio := filepath.Join(t.TempDir(), "narration.mp3")
	if err := os.WriteFile(audio, []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}
	return Config{
		AudioPath:    audio,
		Source:       SourceStock,
		WhisperURL:   "http://localhost:8000",
		CohereAPIKey: "co-key",
		PexelsAPIKey: "px-key",
		MusicGain:    0.25,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid stock", func(*Config) {}, ""},
		{"valid t2v", func(c *Config) {
			c.Source = SourceGenerative
			c.PexelsAPIKey = ""
			c.T2VURL = "http://localhost:8100"
		}, ""},
		{"empty audio", func(c *Config) { c.AudioPath = "" }, "audio input is empty"},
		{"missing audio file", func(c *Config) { c.AudioPath = "/nonexistent/a.mp3" }, "stat audio input"},
		{"unknown source", func(c *Config) { c.Source = "webcam" }, "unknown source"},
		{"stock without pexels key", func(c *Config) { c.PexelsAPIKey = "" }, "PEXELS_API_KEY"},
		{"t2v without url", func(c *Config) {
			c.Source = SourceGenerative
			c.T2VURL = ""
		}, "T2V_URL"},
		{"missing whisper url", func(c *Config) { c.WhisperURL = "" }, "WHISPER_URL"},
		{"missing cohere key", func(c *Config) { c.CohereAPIKey = "" }, "CO_API_KEY"},
		{"music gain too loud", func(c *Config) { c.MusicGain = 0.6 }, "music gain"},
		{"negative music gain", func(c *Config) { c.MusicGain = -0.1 }, "music gain"},
		{"bad cohere base url", func(c *Config) { c.CohereBaseURL = "http://api.cohere.com" }, "CO_BASE_URL"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %v does not contain %q", err, tt.wantErr)
			}
		})
	}
}
