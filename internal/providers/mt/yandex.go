package mt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nicksukie/livesub/internal/core"
)

type Yandex struct {
	apiKey string
	url    string
	client *http.Client
}

func NewYandex(apiKey string) *Yandex {
	return &Yandex{apiKey: apiKey, url: "https://translate.api.cloud.yandex.net/translate/v2/translate", client: &http.Client{Timeout: defaultTimeout}}
}

func (y *Yandex) Name() string { return "yandex" }

func (y *Yandex) IsLLM() bool { return false }

func (y *Yandex) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	if y.apiKey == "" {
		return "", core.ErrProviderUnavailable
	}
	form := url.Values{}
	form.Set("text", req.SourceText)
	lang := string(req.TargetLang)
	if req.SourceLang != "" {
		lang = string(req.SourceLang) + "-" + string(req.TargetLang)
	}
	form.Set("lang", lang)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", y.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Api-Key "+y.apiKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := y.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yandex translate error (status %d)", resp.StatusCode)
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
		return "", fmt.Errorf("no translations returned from yandex")
	}
	return result.Translations[0].Text, nil
}

var _ core.Translator = (*Yandex)(nil)
