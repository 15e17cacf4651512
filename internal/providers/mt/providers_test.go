package mt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nicksukie/livesub/internal/core"
)

func req() core.TranslateRequest {
	return core.TranslateRequest{SourceText: "你好", SourceLang: core.LanguageZh, TargetLang: core.LanguageEn}
}

func TestDeepLTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "DeepL-Auth-Key key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"translations": []map[string]string{{"text": "hello"}},
		})
	}))
	defer server.Close()

	d := &DeepL{authKey: "key", url: server.URL, client: server.Client()}
	got, err := d.Translate(context.Background(), req())
	if err != nil || got != "hello" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestDeepLMissingKey(t *testing.T) {
	d := NewDeepL("")
	if _, err := d.Translate(context.Background(), req()); err != core.ErrProviderUnavailable {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestGoogleTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"translations": []map[string]string{{"translatedText": "hello"}},
			},
		})
	}))
	defer server.Close()

	g := &Google{apiKey: "key", url: server.URL, client: server.Client()}
	got, err := g.Translate(context.Background(), req())
	if err != nil || got != "hello" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestBaiduTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"trans_result": []map[string]string{{"dst": "hello"}},
		})
	}))
	defer server.Close()

	b := &Baidu{appID: "id", secret: "secret", url: server.URL, client: server.Client()}
	got, err := b.Translate(context.Background(), req())
	if err != nil || got != "hello" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestBaiduErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"error_code": "54001", "error_msg": "Invalid Sign"})
	}))
	defer server.Close()

	b := &Baidu{appID: "id", secret: "secret", url: server.URL, client: server.Client()}
	if _, err := b.Translate(context.Background(), req()); err == nil {
		t.Fatal("expected an error on a Baidu error_code response")
	}
}

func TestYoudaoTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errorCode":   "0",
			"translation": []string{"hello"},
		})
	}))
	defer server.Close()

	y := &Youdao{appKey: "key", appSecret: "secret", url: server.URL, client: server.Client()}
	got, err := y.Translate(context.Background(), req())
	if err != nil || got != "hello" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestYandexTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"translations": []map[string]string{{"text": "hello"}},
		})
	}))
	defer server.Close()

	y := &Yandex{apiKey: "key", url: server.URL, client: server.Client()}
	got, err := y.Translate(context.Background(), req())
	if err != nil || got != "hello" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestLibreTranslateTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "hello"})
	}))
	defer server.Close()

	l := NewLibreTranslate(server.URL, "")
	l.client = server.Client()
	got, err := l.Translate(context.Background(), req())
	if err != nil || got != "hello" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestCaiyunTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"target": []string{"hello"}})
	}))
	defer server.Close()

	c := &Caiyun{token: "token", url: server.URL, client: server.Client()}
	got, err := c.Translate(context.Background(), req())
	if err != nil || got != "hello" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestNiutransTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"tgt_text": "hello"})
	}))
	defer server.Close()

	n := &Niutrans{apiKey: "key", url: server.URL, client: server.Client()}
	got, err := n.Translate(context.Background(), req())
	if err != nil || got != "hello" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestNiutransErrorMsg(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"error_msg": "quota exceeded"})
	}))
	defer server.Close()

	n := &Niutrans{apiKey: "key", url: server.URL, client: server.Client()}
	if _, err := n.Translate(context.Background(), req()); err == nil {
		t.Fatal("expected an error on a niutrans error_msg response")
	}
}
