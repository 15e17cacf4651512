// Package session implements the append-only session log (spec §4.10): an
// in-memory buffer that periodically serializes its full contents, plus the
// settings snapshot, to a single JSON file chosen once per run.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

const flushEvery = 10

// Entry is one committed translation, matching spec's
// {ocr_raw|null, source_text, translation, model, timestamp_epoch_seconds}.
type Entry struct {
	OCRRaw         *string `json:"ocr_raw"`
	SourceText     string  `json:"source_text"`
	Translation    string  `json:"translation"`
	Model          string  `json:"model"`
	TimestampEpoch int64   `json:"timestamp_epoch_seconds"`
}

// Document is the whole-file JSON shape written on every flush.
type Document struct {
	Metadata core.SessionMetadata `json:"metadata"`
	Entries  []Entry               `json:"entries"`
}

// Log is the append-only in-memory buffer plus its on-disk mirror. Touched
// only by the translation worker and the UI-tick task, per the
// shared-collection ownership rule.
type Log struct {
	mu       sync.Mutex
	dir      string
	metadata core.SessionMetadata
	entries  []Entry
	path     string
	log      core.Logger
}

func New(dir string, metadata core.SessionMetadata, logger core.Logger) *Log {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Log{dir: dir, metadata: metadata, log: logger}
}

// Append adds one entry and flushes to disk once the buffer reaches
// flushEvery entries since the last flush.
func (l *Log) Append(entry Entry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	shouldFlush := len(l.entries)%flushEvery == 0
	l.mu.Unlock()

	if shouldFlush {
		if err := l.Flush(); err != nil {
			l.log.Warn("session: flush failed", "error", err)
		}
	}
}

// Flush serializes the whole buffer to the session's path, choosing that
// path on the first call (session_<YYYYMMDD_HHMMSS>.json) and overwriting
// it on every subsequent call via an atomic temp-file rename.
func (l *Log) Flush() error {
	l.mu.Lock()
	if l.path == "" {
		l.path = filepath.Join(l.dir, "session_"+l.metadata.SessionStart.Format("20060102_150405")+".json")
	}
	doc := Document{Metadata: l.metadata, Entries: append([]Entry{}, l.entries...)}
	path := l.path
	l.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the chosen session file path, empty until the first flush.
func (l *Log) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// EntryFromCommit builds a session-log Entry from a commit/translation pair,
// carrying the raw pre-reconciliation OCR text only when it differs from the
// committed text (audio mode has no separate raw form).
func EntryFromCommit(commit core.CommitEvent, result core.TranslationResult, now time.Time) Entry {
	var raw *string
	if commit.RawSource != "" && commit.RawSource != commit.Text {
		r := commit.RawSource
		raw = &r
	}
	return Entry{
		OCRRaw:         raw,
		SourceText:     commit.Text,
		Translation:    result.TranslatedText,
		Model:          result.ProviderName,
		TimestampEpoch: now.Unix(),
	}
}
