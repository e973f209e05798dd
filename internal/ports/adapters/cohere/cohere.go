// Package cohere talks to the Cohere chat API for keyword extraction and
// text-to-video scene prompt generation.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultModel   = "command-r-plus"
	requestTimeout = 60 * time.Second

	keywordTemperature = 0.3
	sceneTemperature   = 0.4
)

const keywordSystemPrompt = `You are a business video content analyzer for stock video searches.

Extract 4-5 VISUAL English keywords from Italian business content for stock video search.

FOCUS ON CONCRETE VISUALS that appear in business stock videos:
- PEOPLE: businessman, businesswoman, executive, professional, team, entrepreneur
- SETTINGS: office, conference room, meeting room, workspace, boardroom, desk
- ACTIVITIES: meeting, presentation, handshake, collaboration, discussion, planning
- OBJECTS: suit, computer, documents, whiteboard, projector

AVOID ABSTRACT CONCEPTS like "transparency", "innovation", "growth" - these do not translate to stock footage.

Return ONLY comma-separated keywords.
Example: "businessman, office, meeting, presentation, team"`

const sceneSystemPrompt = `You are a professional video director specializing in business content.

Create simple, clear visual scene prompts for AI video generation from an Italian business transcript. Each prompt describes ONE professional business scene in 15-25 words: modern offices, meetings, presentations, handshakes. No abstract concepts, no outdoor or casual scenes.

Return a JSON object: {"video_sequence": [{"prompt": "..."}, ...]} and nothing else.`

// Deterministic scene prompts keep the generative path usable when the model
// returns garbage.
var fallbackScenePrompts = []string{
	"Professional businesswoman presenting financial charts to executive team in bright conference room",
	"Two business executives shaking hands across modern glass meeting table",
	"Corporate team collaborating on project around whiteboard in contemporary office",
	"Business manager reviewing documents with client in professional consultation setting",
	"Executive giving presentation using digital display in modern boardroom",
	"Professional team celebrating successful deal in office environment",
	"Business advisor explaining strategy to colleagues around conference table",
	"Corporate professionals discussing plans in bright modern workspace",
}

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	return &Adapter{
		key:     apiKey,
		model:   model,
		baseURL: normalizeBaseURL(baseURL),
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

// Keywords asks the model for comma-separated visual keywords. Output is raw
// model text split on commas; normalization is the caller's job.
func (a *Adapter) Keywords(ctx context.Context, transcript string) ([]string, error) {
	content, err := a.chat(ctx, keywordSystemPrompt,
		fmt.Sprintf("Italian transcript: %s\n\nExtract 4-5 English keywords for finding relevant business videos:", transcript),
		keywordTemperature,
	)
	if err != nil {
		return nil, err
	}

	// Some models wrap the list in prose or a JSON array; take the comma
	// list either way.
	if arr := gjson.Get(content, "keywords"); arr.IsArray() {
		var out []string
		arr.ForEach(func(_, v gjson.Result) bool {
			out = append(out, v.String())
			return true
		})
		return out, nil
	}
	parts := strings.Split(content, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out, nil
}

// ScenePrompts asks for n scene prompts for the generative clip path. Parse
// failures fall back to deterministic prompt templates instead of erroring.
func (a *Adapter) ScenePrompts(ctx context.Context, transcript string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	user := fmt.Sprintf("Italian business transcript:\n%q\n\nCreate exactly %d scene prompts that visually support the spoken content.", transcript, n)
	content, err := a.chat(ctx, sceneSystemPrompt, user, sceneTemperature)
	if err != nil {
		return nil, err
	}

	prompts := parseScenePrompts(content)
	if len(prompts) == 0 {
		prompts = fallbackPrompts(n)
	}
	if len(prompts) > n {
		prompts = prompts[:n]
	}
	for len(prompts) < n {
		prompts = append(prompts, fallbackScenePrompts[len(prompts)%len(fallbackScenePrompts)])
	}
	return prompts, nil
}

func parseScenePrompts(content string) []string {
	obj, err := extractJSONObject(content)
	if err != nil {
		return nil
	}
	var out []string
	gjson.Get(obj, "video_sequence.#.prompt").ForEach(func(_, v gjson.Result) bool {
		if p := strings.TrimSpace(v.String()); len(p) >= 10 {
			out = append(out, p)
		}
		return true
	})
	return out
}

func fallbackPrompts(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fallbackScenePrompts[i%len(fallbackScenePrompts)])
	}
	return out
}

// chat posts one system+user exchange and returns the assistant text.
func (a *Adapter) chat(ctx context.Context, system, user string, temperature float64) (string, error) {
	payload := map[string]any{
		"model":       a.model,
		"temperature": temperature,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", a.baseURL+"/v2/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cohere request: %w", err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read cohere response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("cohere status %d: %s", resp.StatusCode, truncate(redactSecrets(string(rb), a.key), 400))
	}

	content := messageText(string(rb))
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("cohere: empty message content")
	}
	return content, nil
}

// messageText joins the text blocks of a v2 chat response.
func messageText(body string) string {
	var b strings.Builder
	gjson.Get(body, "message.content").ForEach(func(_, v gjson.Result) bool {
		b.WriteString(v.Get("text").String())
		return true
	})
	return b.String()
}
