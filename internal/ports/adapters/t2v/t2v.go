// Package t2v is a client for a self-hosted text-to-video generation service.
package t2v

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Generation runs on GPU and can take minutes per clip.
const requestTimeout = 10 * time.Minute

type Adapter struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Generate renders one clip for prompt and writes the MP4 to dest.
func (a *Adapter) Generate(ctx context.Context, prompt, dest string) error {
	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/generate_video", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("t2v request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("t2v status %d: %s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var out struct {
		VideoData string `json:"video_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode t2v response: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(out.VideoData)
	if err != nil {
		return fmt.Errorf("decode video data: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("t2v returned empty video for prompt %q", truncate(prompt, 80))
	}
	if err := os.WriteFile(dest, raw, 0o644); err != nil {
		return fmt.Errorf("write generated clip: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
