package config

import (
	"os"
	"testing"

	"github.com/nicksukie/livesub/internal/core"
)

type fakeStore struct{ values map[string]string }

func (f *fakeStore) Get(key string) (string, bool) { v, ok := f.values[key]; return v, ok }
func (f *fakeStore) Set(key, value string) error   { f.values[key] = value; return nil }

func TestLoadAppliesSettingsOverDefaults(t *testing.T) {
	store := &fakeStore{values: map[string]string{
		"transcription_mode":        "audio",
		"detect_mixed_content":      "false",
		"llm_context_count":         "5",
		"ocr_mt_reconciler_stability": "1.2s",
	}}
	cfg := Load(store)

	if cfg.Mode != core.ModeAudio {
		t.Fatalf("expected mode audio, got %q", cfg.Mode)
	}
	if cfg.DetectMixedContent {
		t.Fatal("expected detect_mixed_content to be overridden to false")
	}
	if cfg.LLMContextCount != 5 {
		t.Fatalf("expected llm_context_count 5, got %d", cfg.LLMContextCount)
	}
	if cfg.OCRMTReconcilerStability.Milliseconds() != 1200 {
		t.Fatalf("expected 1.2s stability, got %v", cfg.OCRMTReconcilerStability)
	}
}

func TestLoadDefaultsWhenSettingsEmpty(t *testing.T) {
	cfg := Load(&fakeStore{values: map[string]string{}})
	if cfg.Mode != core.ModeOCR {
		t.Fatalf("expected default mode ocr, got %q", cfg.Mode)
	}
	if cfg.LLMContextCount != 3 {
		t.Fatalf("expected default llm_context_count 3, got %d", cfg.LLMContextCount)
	}
}

func TestLoadEnvOverridesAPIKeys(t *testing.T) {
	os.Setenv("DEEPL_API_KEY", "test-key-123")
	defer os.Unsetenv("DEEPL_API_KEY")

	cfg := Load(&fakeStore{values: map[string]string{}})
	if cfg.DeepLAPIKey != "test-key-123" {
		t.Fatalf("expected env DEEPL_API_KEY to populate config, got %q", cfg.DeepLAPIKey)
	}
}
