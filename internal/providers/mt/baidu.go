package mt

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/nicksukie/livesub/internal/core"
)

type Baidu struct {
	appID  string
	secret string
	url    string
	client *http.Client
}

func NewBaidu(appID, secret string) *Baidu {
	return &Baidu{appID: appID, secret: secret, url: "https://api.fanyi.baidu.com/api/trans/vip/translate", client: &http.Client{Timeout: defaultTimeout}}
}

func (b *Baidu) Name() string { return "baidu" }

func (b *Baidu) IsLLM() bool { return false }

func (b *Baidu) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	if b.appID == "" || b.secret == "" {
		return "", core.ErrProviderUnavailable
	}
	salt := uuid.NewString()[:16]
	signRaw := b.appID + req.SourceText + salt + b.secret
	sum := md5.Sum([]byte(signRaw))
	sign := hex.EncodeToString(sum[:])

	from := "auto"
	if req.SourceLang != "" {
		from = string(req.SourceLang)
	}
	params := url.Values{}
	params.Set("q", req.SourceText)
	params.Set("from", from)
	params.Set("to", string(req.TargetLang))
	params.Set("appid", b.appID)
	params.Set("salt", salt)
	params.Set("sign", sign)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", b.url+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("baidu translate error (status %d)", resp.StatusCode)
	}

	var result struct {
		ErrorCode string `json:"error_code"`
		ErrorMsg  string `json:"error_msg"`
		TransResult []struct {
			Dst string `json:"dst"`
		} `json:"trans_result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.ErrorCode != "" {
		return "", fmt.Errorf("baidu translate error: %s", result.ErrorMsg)
	}
	if len(result.TransResult) == 0 {
		return "", fmt.Errorf("no result returned from baidu")
	}
	return result.TransResult[0].Dst, nil
}

var _ core.Translator = (*Baidu)(nil)
