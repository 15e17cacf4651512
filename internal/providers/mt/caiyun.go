package mt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nicksukie/livesub/internal/core"
)

// Caiyun targets Caiyun Xiaoyi's (彩云小译) translation API, mainly useful
// as a zh<->en/ja fallback when the larger providers are unavailable.
type Caiyun struct {
	token  string
	url    string
	client *http.Client
}

func NewCaiyun(token string) *Caiyun {
	return &Caiyun{token: token, url: "https://api.interpreter.caiyunai.com/v1/translator", client: &http.Client{Timeout: defaultTimeout}}
}

func (c *Caiyun) Name() string { return "caiyun" }

func (c *Caiyun) IsLLM() bool { return false }

func (c *Caiyun) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	if c.token == "" {
		return "", core.ErrProviderUnavailable
	}
	direction := caiyunDirection(req.SourceLang, req.TargetLang)
	payload := map[string]interface{}{
		"source":      []string{req.SourceText},
		"trans_type":  direction,
		"request_id":  "livesub",
		"detect":      true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Authorization", "token "+c.token)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caiyun error (status %d)", resp.StatusCode)
	}

	var result struct {
		Target []string `json:"target"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Target) == 0 {
		return "", fmt.Errorf("no target returned from caiyun")
	}
	return result.Target[0], nil
}

func caiyunDirection(source, target core.Language) string {
	if source.IsCJK() {
		return "zh2" + string(target)
	}
	return string(source) + "2zh"
}

var _ core.Translator = (*Caiyun)(nil)
