package mt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nicksukie/livesub/internal/core"
)

type Google struct {
	apiKey string
	url    string
	client *http.Client
}

func NewGoogle(apiKey string) *Google {
	return &Google{apiKey: apiKey, url: "https://translation.googleapis.com/language/translate/v2", client: &http.Client{Timeout: defaultTimeout}}
}

func (g *Google) Name() string { return "google" }

func (g *Google) IsLLM() bool { return false }

func (g *Google) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	if g.apiKey == "" {
		return "", core.ErrProviderUnavailable
	}
	params := url.Values{}
	params.Set("q", req.SourceText)
	params.Set("target", string(req.TargetLang))
	params.Set("key", g.apiKey)
	params.Set("format", "text")
	if req.SourceLang != "" {
		params.Set("source", string(req.SourceLang))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.url+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate error (status %d)", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("no translations returned from google")
	}
	return result.Data.Translations[0].TranslatedText, nil
}

var _ core.Translator = (*Google)(nil)
