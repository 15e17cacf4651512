package recognize

import (
	"context"

	"github.com/nicksukie/livesub/internal/core"
)

// ReplaySource is a deterministic Recognizer test double: it yields a fixed
// sequence of results (already filtered through Chain), one per call to
// Process, then returns an empty result forever. Mirrors the teacher's
// approach of driving ManagedStream from a scripted STTProvider in tests
// rather than a real backend.
type ReplaySource struct {
	Filter *Chain

	results []core.RecognitionResult
	prompts []string
	pos     int
}

// NewReplaySource builds a ReplaySource over a fixed script of raw
// recognition results. prompt, if non-empty, is applied uniformly to every
// step's prompt-echo check; use WithPrompts to vary it per step.
func NewReplaySource(filter *Chain, results ...core.RecognitionResult) *ReplaySource {
	if filter == nil {
		filter = NewChain(nil)
	}
	return &ReplaySource{Filter: filter, results: results}
}

// WithPrompts attaches a per-step prompt script, aligned by index with the
// results passed to NewReplaySource.
func (r *ReplaySource) WithPrompts(prompts []string) *ReplaySource {
	r.prompts = prompts
	return r
}

func (r *ReplaySource) Name() string { return "replay" }

// Process returns the next scripted result, filtered, or an empty result
// once the script is exhausted.
func (r *ReplaySource) Process(ctx context.Context, in core.RecognitionInput) (core.RecognitionResult, error) {
	if r.pos >= len(r.results) {
		return core.RecognitionResult{}, nil
	}
	raw := r.results[r.pos]
	prompt := in.Prompt
	if prompt == "" && r.pos < len(r.prompts) {
		prompt = r.prompts[r.pos]
	}
	r.pos++

	cleaned, ok := r.Filter.Apply(raw.Text, prompt)
	if !ok {
		return core.RecognitionResult{}, nil
	}
	raw.Text = cleaned
	return raw, nil
}

// Reset rewinds the script to its start.
func (r *ReplaySource) Reset() { r.pos = 0 }

var _ core.Recognizer = (*ReplaySource)(nil)
