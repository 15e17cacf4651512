package mt

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nicksukie/livesub/internal/core"
)

type Youdao struct {
	appKey    string
	appSecret string
	url       string
	client    *http.Client
}

func NewYoudao(appKey, appSecret string) *Youdao {
	return &Youdao{appKey: appKey, appSecret: appSecret, url: "https://openapi.youdao.com/api", client: &http.Client{Timeout: defaultTimeout}}
}

func (y *Youdao) Name() string { return "youdao" }

func (y *Youdao) IsLLM() bool { return false }

func (y *Youdao) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	if y.appKey == "" || y.appSecret == "" {
		return "", core.ErrProviderUnavailable
	}
	salt := uuid.NewString()
	curtime := strconv.FormatInt(time.Now().Unix(), 10)
	text := req.SourceText
	signInput := text
	if len([]rune(text)) > 20 {
		r := []rune(text)
		signInput = string(r[:10]) + strconv.Itoa(len(r)) + string(r[len(r)-10:])
	}
	signRaw := y.appKey + signInput + salt + curtime + y.appSecret
	sum := sha256.Sum256([]byte(signRaw))
	sign := hex.EncodeToString(sum[:])

	from := "auto"
	if req.SourceLang != "" {
		from = string(req.SourceLang)
	}

	form := url.Values{}
	form.Set("q", text)
	form.Set("from", from)
	form.Set("to", string(req.TargetLang))
	form.Set("appKey", y.appKey)
	form.Set("salt", salt)
	form.Set("sign", sign)
	form.Set("signType", "v3")
	form.Set("curtime", curtime)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", y.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := y.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youdao error (status %d)", resp.StatusCode)
	}

	var result struct {
		ErrorCode   string   `json:"errorCode"`
		Translation []string `json:"translation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.ErrorCode != "0" {
		return "", fmt.Errorf("youdao error code %s", result.ErrorCode)
	}
	if len(result.Translation) == 0 {
		return "", fmt.Errorf("no translation returned from youdao")
	}
	return result.Translation[0], nil
}

var _ core.Translator = (*Youdao)(nil)
