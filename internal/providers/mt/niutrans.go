package mt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nicksukie/livesub/internal/core"
)

// Niutrans (小牛翻译) sits last in the MT fallback chain — a final resort
// with broad language coverage when every higher-priority provider fails.
type Niutrans struct {
	apiKey string
	url    string
	client *http.Client
}

func NewNiutrans(apiKey string) *Niutrans {
	return &Niutrans{apiKey: apiKey, url: "https://api.niutrans.com/NiuTransServer/translation", client: &http.Client{Timeout: defaultTimeout}}
}

func (n *Niutrans) Name() string { return "niutrans" }

func (n *Niutrans) IsLLM() bool { return false }

func (n *Niutrans) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	if n.apiKey == "" {
		return "", core.ErrProviderUnavailable
	}
	from := "auto"
	if req.SourceLang != "" {
		from = string(req.SourceLang)
	}
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", string(req.TargetLang))
	params.Set("apikey", n.apiKey)
	params.Set("src_text", req.SourceText)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", n.url+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := n.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("niutrans error (status %d)", resp.StatusCode)
	}

	var result struct {
		TgtText string `json:"tgt_text"`
		ErrorMsg string `json:"error_msg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.ErrorMsg != "" {
		return "", fmt.Errorf("niutrans error: %s", result.ErrorMsg)
	}
	if result.TgtText == "" {
		return "", fmt.Errorf("empty translation from niutrans")
	}
	return result.TgtText, nil
}

var _ core.Translator = (*Niutrans)(nil)
