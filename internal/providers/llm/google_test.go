package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nicksukie/livesub/internal/core"
)

func TestGoogleLLMTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "key=test-key") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "hello world"}}}},
			},
		})
	}))
	defer server.Close()

	l := &GoogleLLM{apiKey: "test-key", url: server.URL, model: "gemini", client: server.Client()}

	resp, err := l.Translate(context.Background(), core.TranslateRequest{SourceText: "你好", TargetLang: core.LanguageEn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "hello world" {
		t.Errorf("expected 'hello world', got %q", resp)
	}
}

func TestGoogleLLMErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))
	defer server.Close()

	l := &GoogleLLM{apiKey: "test-key", url: server.URL, model: "gemini", client: server.Client()}
	if _, err := l.Translate(context.Background(), core.TranslateRequest{SourceText: "hi", TargetLang: core.LanguageEn}); err == nil {
		t.Fatal("expected an error on a non-200 response")
	}
}
