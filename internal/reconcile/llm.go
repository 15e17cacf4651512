package reconcile

import (
	"strings"
	"sync"
	"time"
)

const (
	DefaultLLMStabilityThreshold = 120 * time.Millisecond
	DefaultLLMMaxBufferTime      = 600 * time.Millisecond

	llmMinSendLength = 2
)

// LLMReconciler accumulates longer before committing than MTReconciler,
// since an LLM can accept bigger contextual units (spec §4.5). It shares
// Merge with the MT variant; only the commit policy differs.
type LLMReconciler struct {
	mu sync.Mutex

	StabilityThreshold time.Duration
	MaxBufferTime      time.Duration

	buffer         string
	lastFrame      string
	stabilityStart *time.Time
	bufferStart    *time.Time
}

func NewLLMReconciler(stabilityThreshold, maxBufferTime time.Duration) *LLMReconciler {
	if stabilityThreshold <= 0 {
		stabilityThreshold = DefaultLLMStabilityThreshold
	}
	if maxBufferTime <= 0 {
		maxBufferTime = DefaultLLMMaxBufferTime
	}
	return &LLMReconciler{StabilityThreshold: stabilityThreshold, MaxBufferTime: maxBufferTime}
}

func (r *LLMReconciler) Ingest(newText string, now time.Time) (shouldCommit bool, text string, isFinal bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newText = strings.TrimSpace(newText)
	if newText == "" {
		return false, "", false
	}

	merged := Merge(r.buffer, newText)

	if merged != "" && r.buffer == "" {
		t := now
		r.bufferStart = &t
	}
	if merged != r.buffer {
		t := now
		r.stabilityStart = &t
	}
	r.buffer = merged
	r.lastFrame = newText

	if r.stabilityStart != nil {
		elapsed := now.Sub(*r.stabilityStart)
		if elapsed >= r.StabilityThreshold && merged != "" {
			out := strings.TrimSpace(merged)
			r.reset()
			return true, out, true
		}
	}

	if merged != "" && len(strings.TrimSpace(merged)) >= llmMinSendLength && r.bufferStart != nil {
		if now.Sub(*r.bufferStart) >= r.MaxBufferTime {
			if merged == newText {
				out := strings.TrimSpace(merged)
				r.buffer = ""
				r.bufferStart = nil
				return true, out, true
			}
		}
	}

	return false, "", false
}

func (r *LLMReconciler) reset() {
	r.buffer = ""
	r.bufferStart = nil
	r.stabilityStart = nil
}

func (r *LLMReconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
	r.lastFrame = ""
}
