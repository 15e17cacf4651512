package reconcile

import (
	"strings"
	"sync"
	"time"
)

const (
	// DefaultMTStabilityThreshold is the MT reconciler's commit-stability
	// window.
	DefaultMTStabilityThreshold = 200 * time.Millisecond

	mtEarlyCommitMinStable = 200 * time.Millisecond
	mtEarlyCommitMinLen    = 6

	mtStableBufferCapacity = 5
)

// MTReconciler implements the stricter-commit streaming reconciler used by
// the classical-MT translation path (spec §4.4). It is a plain value; the
// caller supplies the clock on every call so the state machine is testable
// without a real timer.
type MTReconciler struct {
	mu sync.Mutex

	StabilityThreshold time.Duration

	unstableBuffer      string
	stableBuffer        []string
	lastFrame           string
	stabilityStart      *time.Time
	unstableStart       *time.Time
}

func NewMTReconciler(stabilityThreshold time.Duration) *MTReconciler {
	if stabilityThreshold <= 0 {
		stabilityThreshold = DefaultMTStabilityThreshold
	}
	return &MTReconciler{StabilityThreshold: stabilityThreshold}
}

// Ingest processes one incoming recognition frame and reports whether a
// commit occurred.
func (r *MTReconciler) Ingest(newText string, now time.Time) (shouldCommit bool, text string, isFinal bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newText = strings.TrimSpace(newText)
	if newText == "" {
		return false, "", false
	}

	if newText == r.lastFrame {
		if r.stabilityStart == nil {
			t := now
			r.stabilityStart = &t
		}
		elapsed := now.Sub(*r.stabilityStart)
		if elapsed >= r.StabilityThreshold && r.unstableBuffer != "" {
			committed := r.unstableBuffer
			r.commit()
			return true, committed, true
		}
	} else {
		wasEmpty := r.unstableBuffer == ""
		r.unstableBuffer = Merge(r.unstableBuffer, newText)
		s := now
		r.stabilityStart = &s
		if wasEmpty && r.unstableBuffer != "" {
			t := now
			r.unstableStart = &t
		}
	}
	r.lastFrame = newText

	// Timeout commit: buffer has existed long enough regardless of
	// stability.
	if r.unstableBuffer != "" && r.unstableStart != nil {
		if now.Sub(*r.unstableStart) >= 2*r.StabilityThreshold {
			committed := r.unstableBuffer
			r.commit()
			return true, committed, true
		}
	}

	// Early commit: short stable window plus a substantial buffer.
	if r.unstableBuffer != "" && newText == r.lastFrame && r.stabilityStart != nil {
		elapsed := now.Sub(*r.stabilityStart)
		if elapsed >= mtEarlyCommitMinStable && len(r.unstableBuffer) >= mtEarlyCommitMinLen {
			if elapsed >= r.StabilityThreshold {
				committed := r.unstableBuffer
				r.commit()
				return true, committed, true
			}
		}
	}

	return false, "", false
}

func (r *MTReconciler) commit() {
	if r.unstableBuffer == "" {
		return
	}
	r.stableBuffer = append(r.stableBuffer, r.unstableBuffer)
	if len(r.stableBuffer) > mtStableBufferCapacity {
		r.stableBuffer = r.stableBuffer[len(r.stableBuffer)-mtStableBufferCapacity:]
	}
	r.unstableBuffer = ""
	r.stabilityStart = nil
	r.unstableStart = nil
}

// StableBuffer returns a copy of the short local-context history.
func (r *MTReconciler) StableBuffer() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.stableBuffer))
	copy(out, r.stableBuffer)
	return out
}

// Reset clears all buffers and timers, e.g. on region change.
func (r *MTReconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unstableBuffer = ""
	r.stableBuffer = nil
	r.lastFrame = ""
	r.stabilityStart = nil
	r.unstableStart = nil
}
