// Package whisperhttp is a client for the HTTP-exposed Whisper transcription
// service. Audio goes up as base64 mono 16kHz WAV, word and line timestamps
// come back.
package whisperhttp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/smartgain/reelgen/internal/types"
)

const requestTimeout = 120 * time.Second

type Adapter struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: requestTimeout + 10*time.Second},
	}
}

type wordPayload struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type linePayload struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type response struct {
	WordLevel           []wordPayload `json:"word_level"`
	LineLevel           []linePayload `json:"line_level"`
	DetectedLanguage    string        `json:"detected_language"`
	LanguageProbability float64       `json:"language_probability"`
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath string) (types.Transcript, error) {
	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("read audio: %w", err)
	}

	body, err := json.Marshal(map[string]string{
		"audio_data": base64.StdEncoding.EncodeToString(audio),
	})
	if err != nil {
		return types.Transcript{}, fmt.Errorf("marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", a.baseURL+"/process_audio", bytes.NewReader(body))
	if err != nil {
		return types.Transcript{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return types.Transcript{}, fmt.Errorf("whisper service status %d: %s", resp.StatusCode, truncate(string(rb), 400))
	}

	var raw response
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return types.Transcript{}, fmt.Errorf("decode whisper response: %w", err)
	}
	return buildTranscript(raw), nil
}

// buildTranscript trims word text and restores temporal order. Downstream
// caption timing requires words sorted by start time; the service promises
// it, this does not trust it.
func buildTranscript(raw response) types.Transcript {
	tr := types.Transcript{
		Language:            raw.DetectedLanguage,
		LanguageProbability: raw.LanguageProbability,
	}
	for _, w := range raw.WordLevel {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		tr.Words = append(tr.Words, types.Word{Word: text, Start: w.Start, End: w.End})
	}
	sort.SliceStable(tr.Words, func(i, j int) bool {
		return tr.Words[i].Start < tr.Words[j].Start
	})
	for _, l := range raw.LineLevel {
		tr.Lines = append(tr.Lines, types.Line{Text: strings.TrimSpace(l.Text), Start: l.Start, End: l.End})
	}
	return tr
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
