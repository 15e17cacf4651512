// Package tts implements the optional text-to-speech read-aloud channel's
// engine, adapted from the teacher's pkg/providers/tts LokutorTTS: same
// websocket streaming-synthesis protocol, rehomed onto core.TTSEngine's
// Speak/Stop/Shutdown shape instead of the teacher's
// Synthesize/StreamSynthesize/Close conversation-turn API.
package tts

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/nicksukie/livesub/internal/core"
)

type LokutorTTS struct {
	apiKey string
	host   string
	scheme string // "wss" in production; tests override to "ws" against an httptest server

	mu       sync.Mutex
	conn     *websocket.Conn
	stopping bool
}

func NewLokutorTTS(apiKey string) *LokutorTTS {
	return &LokutorTTS{apiKey: apiKey, host: "api.lokutor.com", scheme: "wss"}
}

func (t *LokutorTTS) getConn(ctx context.Context) (*websocket.Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return t.conn, nil
	}
	u := url.URL{Scheme: t.scheme, Host: t.host, Path: "/ws", RawQuery: "api_key=" + t.apiKey}
	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("lokutor dial: %w", err)
	}
	t.conn = conn
	return conn, nil
}

// Speak synthesizes text and streams it to completion or until Stop is
// called; the pipeline treats TTS as fire-and-forget (spec's TTS-isolation
// note), so callers invoke this from their own goroutine.
func (t *LokutorTTS) Speak(ctx context.Context, text string, lang core.Language) error {
	conn, err := t.getConn(ctx)
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"text":    text,
		"voice":   "default",
		"lang":    string(lang),
		"speed":   1.05,
		"steps":   5,
		"version": "versa-1.0",
	}
	if err := wsjson.Write(ctx, conn, req); err != nil {
		t.dropConn(conn)
		return fmt.Errorf("lokutor send: %w", err)
	}

	for {
		t.mu.Lock()
		stopping := t.stopping
		t.mu.Unlock()
		if stopping {
			return nil
		}

		messageType, payload, err := conn.Read(ctx)
		if err != nil {
			t.dropConn(conn)
			return fmt.Errorf("lokutor read: %w", err)
		}
		switch messageType {
		case websocket.MessageText:
			msg := string(payload)
			if msg == "EOS" {
				return nil
			}
			if len(msg) >= 4 && msg[:4] == "ERR:" {
				return fmt.Errorf("lokutor error: %s", msg)
			}
		case websocket.MessageBinary:
			// audio chunk: playback is owned by the single persistent
			// output stream described in the concurrency model, not by
			// this engine.
		}
	}
}

// Stop is cooperative: it signals the in-flight Speak call to return at its
// next read, without blocking on the network.
func (t *LokutorTTS) Stop() {
	t.mu.Lock()
	t.stopping = true
	t.mu.Unlock()
}

func (t *LokutorTTS) Shutdown() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		err := t.conn.Close(websocket.StatusNormalClosure, "")
		t.conn = nil
		return err
	}
	return nil
}

func (t *LokutorTTS) dropConn(conn *websocket.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == conn {
		t.conn = nil
	}
	conn.Close(websocket.StatusAbnormalClosure, "lokutor stream error")
}

func (t *LokutorTTS) Name() string { return "lokutor" }

var _ core.TTSEngine = (*LokutorTTS)(nil)
