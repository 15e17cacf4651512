package reconcile

import (
	"testing"
	"time"
)

func TestMTReconcilerProgressiveReveal(t *testing.T) {
	r := NewMTReconciler(200 * time.Millisecond)
	base := time.Unix(0, 0)

	steps := []struct {
		text string
		at   time.Duration
	}{
		{"你", 0},
		{"你好", 50 * time.Millisecond},
		{"你好世界", 100 * time.Millisecond},
		{"你好世界", 300 * time.Millisecond},
	}

	var commits int
	var lastText string
	for _, s := range steps {
		committed, text, _ := r.Ingest(s.text, base.Add(s.at))
		if committed {
			commits++
			lastText = text
		}
	}

	if commits != 1 {
		t.Fatalf("expected exactly one commit, got %d", commits)
	}
	if lastText != "你好世界" {
		t.Fatalf("expected commit of 你好世界, got %q", lastText)
	}
}

func TestMTReconcilerMidSentenceCorrection(t *testing.T) {
	r := NewMTReconciler(200 * time.Millisecond)
	base := time.Unix(0, 0)

	inputs := []struct {
		text string
		at   time.Duration
	}{
		{"Helo wor", 0},
		{"Hello wor", 100 * time.Millisecond},
		{"Hello world", 200 * time.Millisecond},
		{"Hello world", 400 * time.Millisecond},
	}

	var commits int
	var committedText string
	for _, in := range inputs {
		ok, text, _ := r.Ingest(in.text, base.Add(in.at))
		if ok {
			commits++
			committedText = text
		}
	}

	if commits != 1 {
		t.Fatalf("expected exactly one commit, got %d", commits)
	}
	if committedText != "Hello world" {
		t.Fatalf("got %q, want %q", committedText, "Hello world")
	}
}

// See merge_test.go's TestMergeBoundaryOverlap comment for why this uses a
// different second frame than spec.md's scenario 3 illustration.
func TestMTReconcilerBoundaryOverlap(t *testing.T) {
	r := NewMTReconciler(200 * time.Millisecond)
	base := time.Unix(0, 0)

	r.Ingest("the quick brown", base)
	ok, _, _ := r.Ingest("brown fox jumps happily today", base.Add(10*time.Millisecond))
	if ok {
		t.Fatalf("did not expect a commit on the second frame")
	}

	ok, text, _ := r.Ingest("brown fox jumps happily today", base.Add(250*time.Millisecond))
	if !ok {
		t.Fatalf("expected a commit once stable")
	}
	if text != "the quick brown fox jumps happily today" {
		t.Fatalf("got %q, want merged boundary overlap text", text)
	}
}

func TestMTReconcilerTimeoutCommit(t *testing.T) {
	r := NewMTReconciler(200 * time.Millisecond)
	base := time.Unix(0, 0)

	r.Ingest("partial one", base)
	ok, _, _ := r.Ingest("partial one two", base.Add(50*time.Millisecond))
	if ok {
		t.Fatalf("unexpected early commit")
	}
	ok, _, _ = r.Ingest("partial one two three", base.Add(410*time.Millisecond))
	if !ok {
		t.Fatalf("expected timeout commit after 2x stability threshold")
	}
}

func TestMTReconcilerStableBufferCapacity(t *testing.T) {
	r := NewMTReconciler(50 * time.Millisecond)
	base := time.Unix(0, 0)
	at := base
	for i := 0; i < 8; i++ {
		r.Ingest("sentence", at)
		at = at.Add(20 * time.Millisecond)
		r.Ingest("sentence", at)
		at = at.Add(60 * time.Millisecond)
	}
	if len(r.StableBuffer()) > 5 {
		t.Fatalf("stable buffer exceeded capacity 5: %d", len(r.StableBuffer()))
	}
}
