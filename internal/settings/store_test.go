package settings

import (
	"path/filepath"
	"testing"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Get("mode"); ok {
		t.Fatal("expected no value for an unset key")
	}
}

func TestSetPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set("target_lang", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error on reopen: %v", err)
	}
	v, ok := reopened.Get("target_lang")
	if !ok || v != "en" {
		t.Fatalf("expected target_lang=en after reopen, got %q (ok=%v)", v, ok)
	}
}

func TestSetOverwritesExistingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s, _ := Open(path)
	_ = s.Set("use_large_model", "true")
	_ = s.Set("use_large_model", "false")

	v, ok := s.Get("use_large_model")
	if !ok || v != "false" {
		t.Fatalf("expected the latest value to win, got %q (ok=%v)", v, ok)
	}
}
