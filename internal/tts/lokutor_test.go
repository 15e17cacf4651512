package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/nicksukie/livesub/internal/core"
)

func TestLokutorTTSSpeakCompletesOnEOS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "closing")

		var req map[string]interface{}
		if err := wsjson.Read(r.Context(), conn, &req); err != nil {
			return
		}

		conn.Write(r.Context(), websocket.MessageBinary, []byte{1, 2, 3})
		conn.Write(r.Context(), websocket.MessageText, []byte("EOS"))
	}))
	defer server.Close()

	tts := &LokutorTTS{apiKey: "test-key", host: strings.TrimPrefix(server.URL, "http://"), scheme: "ws"}

	if err := tts.Speak(context.Background(), "hello", core.LanguageEn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tts.Name() != "lokutor" {
		t.Fatalf("expected lokutor, got %s", tts.Name())
	}
	if err := tts.Shutdown(); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

func TestLokutorTTSPropagatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "closing")

		var req map[string]interface{}
		if err := wsjson.Read(r.Context(), conn, &req); err != nil {
			return
		}
		conn.Write(r.Context(), websocket.MessageText, []byte("ERR:synthesis failed"))
	}))
	defer server.Close()

	tts := &LokutorTTS{apiKey: "test-key", host: strings.TrimPrefix(server.URL, "http://"), scheme: "ws"}

	if err := tts.Speak(context.Background(), "hello", core.LanguageEn); err == nil {
		t.Fatal("expected an error from an ERR: server message")
	}
}
