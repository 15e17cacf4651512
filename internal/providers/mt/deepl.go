// Package mt implements the classical machine-translation providers that
// make up the dispatcher's fallback chain, ported from the teacher's
// chat-completion HTTP-client style (see internal/providers/llm) and the
// original per-provider request shapes (auth scheme, endpoint, field names).
package mt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

const defaultTimeout = 10 * time.Second

type DeepL struct {
	authKey string
	url     string
	client  *http.Client
}

func NewDeepL(authKey string) *DeepL {
	return &DeepL{authKey: authKey, url: "https://api-free.deepl.com/v2/translate", client: &http.Client{Timeout: defaultTimeout}}
}

func (d *DeepL) Name() string { return "deepl" }

func (d *DeepL) IsLLM() bool { return false }

func (d *DeepL) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	if d.authKey == "" {
		return "", core.ErrProviderUnavailable
	}
	payload := map[string]interface{}{
		"text":        []string{req.SourceText},
		"target_lang": string(req.TargetLang),
	}
	if req.SourceLang != "" {
		payload["source_lang"] = string(req.SourceLang)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", d.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+d.authKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl error (status %d)", resp.StatusCode)
	}

	var result struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Translations) == 0 {
		return "", fmt.Errorf("no translations returned from deepl")
	}
	return result.Translations[0].Text, nil
}

var _ core.Translator = (*DeepL)(nil)
