package reconcile

import (
	"testing"
	"time"
)

func TestAudioReconcilerMinWordsGate(t *testing.T) {
	r := NewAudioReconciler(2*time.Second, 4, 7)
	base := time.Unix(0, 0)

	ok, _, _ := r.Ingest("Hello how are you doing", base) // 5 words
	if ok {
		t.Fatalf("expected no commit below min_words")
	}

	ok, _, _ = r.Ingest("Hello how are you doing today my friend", base.Add(100*time.Millisecond)) // 8 words, no terminator
	if ok {
		t.Fatalf("expected no commit before period/checks exhausted")
	}

	ok, text, final := r.Ingest("Hello how are you doing today my friend.", base.Add(150*time.Millisecond))
	if !ok || !final {
		t.Fatalf("expected an immediate commit on sentence terminator")
	}
	if text != "Hello how are you doing today my friend." {
		t.Fatalf("got %q", text)
	}
}

func TestAudioReconcilerPeriodTimeout(t *testing.T) {
	r := NewAudioReconciler(500*time.Millisecond, 10, 3)
	base := time.Unix(0, 0)

	r.Ingest("one two three four", base)
	ok, text, _ := r.Ingest("one two three four five", base.Add(600*time.Millisecond))
	if !ok {
		t.Fatalf("expected a period timeout commit")
	}
	if text != "one two three four five" {
		t.Fatalf("got %q", text)
	}
}

func TestAudioReconcilerCheckBudgetTimeout(t *testing.T) {
	r := NewAudioReconciler(10*time.Second, 2, 3)
	base := time.Unix(0, 0)

	r.Ingest("one two three four", base)
	ok, _, _ := r.Ingest("one two three four five", base.Add(10*time.Millisecond))
	if !ok {
		t.Fatalf("expected a check-budget commit on the second check")
	}
}

func TestAudioReconcilerDiscardsBufferOnCommit(t *testing.T) {
	r := NewAudioReconciler(100*time.Millisecond, 10, 1)
	base := time.Unix(0, 0)
	r.Ingest("done.", base)
	if r.buffer != "" {
		t.Fatalf("expected buffer to be discarded after commit")
	}
}
