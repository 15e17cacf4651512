package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nicksukie/livesub/internal/core"
)

func TestAnthropicLLMTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"text": "bonjour le monde"}},
		})
	}))
	defer server.Close()

	l := &AnthropicLLM{apiKey: "test-key", url: server.URL, model: "claude", client: server.Client()}

	resp, err := l.Translate(context.Background(), core.TranslateRequest{
		SourceText: "hello world",
		TargetLang: core.LanguageFr,
		Context:    []core.ContextPair{{Source: "hi", Translation: "salut"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "bonjour le monde" {
		t.Errorf("expected 'bonjour le monde', got %q", resp)
	}
}

func TestAnthropicLLMEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"content": []map[string]string{}})
	}))
	defer server.Close()

	l := &AnthropicLLM{apiKey: "test-key", url: server.URL, model: "claude", client: server.Client()}
	if _, err := l.Translate(context.Background(), core.TranslateRequest{SourceText: "hi", TargetLang: core.LanguageEn}); err == nil {
		t.Fatal("expected an error on empty content")
	}
}
