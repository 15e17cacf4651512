package mt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nicksukie/livesub/internal/core"
)

// LibreTranslate targets a self-hosted or public LibreTranslate instance;
// baseURL defaults to the public demo instance when empty.
type LibreTranslate struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewLibreTranslate(baseURL, apiKey string) *LibreTranslate {
	if baseURL == "" {
		baseURL = "https://libretranslate.com"
	}
	return &LibreTranslate{baseURL: baseURL, apiKey: apiKey, client: &http.Client{Timeout: defaultTimeout}}
}

func (l *LibreTranslate) Name() string { return "libretranslate" }

func (l *LibreTranslate) IsLLM() bool { return false }

func (l *LibreTranslate) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	source := "auto"
	if req.SourceLang != "" {
		source = string(req.SourceLang)
	}
	payload := map[string]interface{}{
		"q":      req.SourceText,
		"source": source,
		"target": string(req.TargetLang),
		"format": "text",
	}
	if l.apiKey != "" {
		payload["api_key"] = l.apiKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", l.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("libretranslate error (status %d)", resp.StatusCode)
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("empty translation from libretranslate")
	}
	return result.TranslatedText, nil
}

var _ core.Translator = (*LibreTranslate)(nil)
