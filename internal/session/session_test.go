package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

func TestLogFlushesOnTenthEntry(t *testing.T) {
	dir := t.TempDir()
	meta := core.SessionMetadata{SessionID: "s1", SessionStart: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)}
	l := New(dir, meta, nil)

	for i := 0; i < 9; i++ {
		l.Append(Entry{SourceText: "x", Translation: "y", Model: "deepl", TimestampEpoch: 1})
	}
	if l.Path() != "" {
		t.Fatal("expected no flush before the 10th entry")
	}

	l.Append(Entry{SourceText: "x", Translation: "y", Model: "deepl", TimestampEpoch: 1})
	if l.Path() == "" {
		t.Fatal("expected a flush on the 10th entry")
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("expected the session file to exist: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("expected valid JSON: %v", err)
	}
	if len(doc.Entries) != 10 {
		t.Fatalf("expected 10 entries in the flushed document, got %d", len(doc.Entries))
	}
}

func TestLogPathIsChosenOnceAndOverwritten(t *testing.T) {
	dir := t.TempDir()
	meta := core.SessionMetadata{SessionID: "s1", SessionStart: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)}
	l := New(dir, meta, nil)

	if err := l.Flush(); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}
	first := l.Path()
	l.Append(Entry{SourceText: "a", Translation: "b"})
	if err := l.Flush(); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}
	if l.Path() != first {
		t.Fatalf("expected the session path to stay fixed across flushes, got %q then %q", first, l.Path())
	}

	expected := filepath.Join(dir, "session_20260305_090000.json")
	if first != expected {
		t.Fatalf("expected path %q, got %q", expected, first)
	}
}

func TestEntryFromCommitOmitsRawWhenUnchanged(t *testing.T) {
	commit := core.CommitEvent{Text: "hello", RawSource: "hello"}
	result := core.TranslationResult{TranslatedText: "你好", ProviderName: "deepl"}
	entry := EntryFromCommit(commit, result, time.Unix(100, 0))
	if entry.OCRRaw != nil {
		t.Fatal("expected OCRRaw to be nil when it matches the committed text")
	}
	if entry.TimestampEpoch != 100 {
		t.Fatalf("expected epoch 100, got %d", entry.TimestampEpoch)
	}
}

func TestEntryFromCommitCarriesRawWhenDifferent(t *testing.T) {
	commit := core.CommitEvent{Text: "hello world", RawSource: "hello wor"}
	result := core.TranslationResult{TranslatedText: "你好世界", ProviderName: "google"}
	entry := EntryFromCommit(commit, result, time.Unix(200, 0))
	if entry.OCRRaw == nil || *entry.OCRRaw != "hello wor" {
		t.Fatalf("expected OCRRaw carried through, got %+v", entry.OCRRaw)
	}
}
