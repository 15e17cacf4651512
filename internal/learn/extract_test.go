package learn

import (
	"context"
	"testing"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

func TestExtractEmitsBatchForCJKText(t *testing.T) {
	var got Batch
	calls := 0
	e := NewExtractor([]core.DictionaryLookup{NewBundledDictionary()}, nil, func(b Batch) {
		calls++
		got = b
	})

	e.Extract(context.Background(), "你好，今天天气很好。", core.LanguageEn, time.Unix(0, 0))
	if calls != 1 {
		t.Fatalf("expected exactly one batch emitted, got %d", calls)
	}
	if len(got.Keywords) == 0 {
		t.Fatal("expected at least one keyword in the batch")
	}
}

func TestExtractSkipsNonCJKText(t *testing.T) {
	calls := 0
	e := NewExtractor(nil, nil, func(Batch) { calls++ })
	e.Extract(context.Background(), "hello world", core.LanguageEn, time.Unix(0, 0))
	if calls != 0 {
		t.Fatalf("expected no batch for non-CJK text, got %d calls", calls)
	}
}

func TestExtractSuppressesRepeatedBatch(t *testing.T) {
	calls := 0
	e := NewExtractor([]core.DictionaryLookup{NewBundledDictionary()}, nil, func(Batch) { calls++ })

	text := "学校老师和朋友一起工作。"
	e.Extract(context.Background(), text, core.LanguageEn, time.Unix(0, 0))
	e.Extract(context.Background(), text, core.LanguageEn, time.Unix(1, 0))

	if calls != 1 {
		t.Fatalf("expected the second identical batch to be suppressed, got %d calls", calls)
	}
}

func TestExtractUsesFallbackOnDictionaryMiss(t *testing.T) {
	var fallbackCalledWith string
	fallback := func(ctx context.Context, word string, targetLang core.Language) (string, error) {
		fallbackCalledWith = word
		return "fallback definition", nil
	}

	var got Batch
	e := NewExtractor(nil, fallback, func(b Batch) { got = b })
	e.Extract(context.Background(), "你好", core.LanguageEn, time.Unix(0, 0))

	if fallbackCalledWith == "" {
		t.Fatal("expected the fallback to be invoked for a dictionary miss")
	}
	if len(got.Keywords) == 0 || got.Keywords[0].Definition != "fallback definition" {
		t.Fatalf("expected the fallback definition to be used, got %+v", got.Keywords)
	}
}

func TestOverlapRatioComputesFractionOfCurrentInPrior(t *testing.T) {
	current := []string{"a", "b", "c", "d"}
	prior := []string{"a", "b", "c", "z"}
	if got := overlapRatio(current, prior); got != 0.75 {
		t.Fatalf("expected 0.75 overlap, got %v", got)
	}
}
