// Package pexels is a client for the Pexels video search API.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/smartgain/reelgen/internal/types"
)

const (
	defaultBaseURL = "https://api.pexels.com/videos"
	requestTimeout = 30 * time.Second
)

type Adapter struct {
	key     string
	baseURL string
	client  *http.Client
}

func New(apiKey, baseURL string) *Adapter {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		key:     apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type searchResponse struct {
	Videos []struct {
		ID       int64   `json:"id"`
		Duration float64 `json:"duration"`
		URL      string  `json:"url"`
		User     struct {
			Name string `json:"name"`
		} `json:"user"`
		VideoFiles []struct {
			Width   int    `json:"width"`
			Height  int    `json:"height"`
			Quality string `json:"quality"`
			Link    string `json:"link"`
		} `json:"video_files"`
	} `json:"videos"`
}

// Search runs one filtered query. The API does native orientation/duration
// filtering; size=large biases toward HD sources.
func (a *Adapter) Search(ctx context.Context, req types.SearchRequest) ([]types.VideoCandidate, error) {
	q := url.Values{}
	q.Set("query", req.Query)
	if req.Orientation != "" {
		q.Set("orientation", req.Orientation)
	}
	q.Set("size", "large")
	if req.MinDuration > 0 {
		q.Set("min_duration", strconv.Itoa(req.MinDuration))
	}
	if req.MaxDuration > 0 {
		q.Set("max_duration", strconv.Itoa(req.MaxDuration))
	}
	if req.Page > 1 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(req.PerPage))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", a.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", a.key)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("pexels request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("pexels status %d: %s", resp.StatusCode, truncate(string(rb), 400))
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode pexels response: %w", err)
	}

	out := make([]types.VideoCandidate, 0, len(raw.Videos))
	for _, v := range raw.Videos {
		c := types.VideoCandidate{
			ID:       v.ID,
			Duration: v.Duration,
			URL:      v.URL,
			Uploader: v.User.Name,
		}
		for _, f := range v.VideoFiles {
			c.Files = append(c.Files, types.VideoFile{
				Width:   f.Width,
				Height:  f.Height,
				Quality: f.Quality,
				Link:    f.Link,
			})
		}
		out = append(out, c)
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
