package recognize

import (
	"context"
	"testing"

	"github.com/nicksukie/livesub/internal/core"
)

func TestReplaySourceYieldsScriptedResults(t *testing.T) {
	src := NewReplaySource(nil,
		core.RecognitionResult{Text: "hello there"},
		core.RecognitionResult{Text: "<|zh|>你好"},
	)

	r1, err := src.Process(context.Background(), core.RecognitionInput{})
	if err != nil || r1.Text != "hello there" {
		t.Fatalf("expected first scripted result, got %+v err=%v", r1, err)
	}

	r2, err := src.Process(context.Background(), core.RecognitionInput{})
	if err != nil || r2.Text != "你好" {
		t.Fatalf("expected second scripted result with tags stripped, got %+v err=%v", r2, err)
	}

	r3, err := src.Process(context.Background(), core.RecognitionInput{})
	if err != nil || !r3.Empty() {
		t.Fatalf("expected an empty result once the script is exhausted, got %+v", r3)
	}
}

func TestReplaySourceDropsHallucinations(t *testing.T) {
	src := NewReplaySource(nil, core.RecognitionResult{Text: "again again again again again"})
	r, err := src.Process(context.Background(), core.RecognitionInput{})
	if err != nil || !r.Empty() {
		t.Fatalf("expected the hallucination to be filtered out, got %+v", r)
	}
}

func TestReplaySourceAppliesPerStepPrompt(t *testing.T) {
	src := NewReplaySource(nil, core.RecognitionResult{Text: "translate this"}).
		WithPrompts([]string{"translate this"})

	r, err := src.Process(context.Background(), core.RecognitionInput{})
	if err != nil || !r.Empty() {
		t.Fatalf("expected a prompt echo to be filtered via the per-step prompt, got %+v", r)
	}
}

func TestReplaySourceReset(t *testing.T) {
	src := NewReplaySource(nil, core.RecognitionResult{Text: "one"}, core.RecognitionResult{Text: "two"})
	_, _ = src.Process(context.Background(), core.RecognitionInput{})
	src.Reset()
	r, _ := src.Process(context.Background(), core.RecognitionInput{})
	if r.Text != "one" {
		t.Fatalf("expected reset to rewind to the first scripted result, got %+v", r)
	}
}
