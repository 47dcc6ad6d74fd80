package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Razgrits/Suno-Battler/internal/constants"

	"golang.org/x/oauth2/google"
)

// Gemini talks to the generateContent endpoint. With an API key it sends
// the key header; without one it authenticates with Google Application
// Default Credentials.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGemini(ctx context.Context, opts Options) (*Gemini, error) {
	model := opts.Model
	if model == "" {
		model = constants.GeminiModel
	}
	base := opts.BaseURL
	if base == "" {
		base = constants.GeminiBaseURL
	}
	g := &Gemini{apiKey: opts.APIKey, model: model, baseURL: strings.TrimRight(base, "/")}
	if opts.APIKey != "" {
		g.client = &http.Client{Timeout: opts.Timeout}
		return g, nil
	}
	client, err := google.DefaultClient(ctx, constants.GeminiScopeURL)
	if err != nil {
		return nil, fmt.Errorf("%s not set and no application default credentials: %w", constants.EnvGeminiAPIKey, err)
	}
	client.Timeout = opts.Timeout
	g.client = client
	return g, nil
}

func (c *Gemini) Model() string { return c.model }

func (c *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"role": "user", "parts": []map[string]string{{"text": prompt}}},
		},
		"tools":            []map[string]interface{}{{"googleSearch": map[string]interface{}{}}},
		"generationConfig": map[string]interface{}{"temperature": 0.7},
	}

	b, _ := json.Marshal(payload)
	url := c.baseURL + "/v1beta/models/" + c.model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if c.apiKey != "" {
		req.Header.Set(constants.HeaderGoogAPIKey, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error: %d %s", resp.StatusCode, string(body))
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode Gemini response: %w", err)
	}
	var sb strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
