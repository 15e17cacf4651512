package gate

import (
	"testing"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

func TestGatePauseBlocksEverything(t *testing.T) {
	g := New(DefaultConfig(), nil)
	g.SetPaused(true)

	d := g.Evaluate(core.RecognitionResult{Text: "hello there"}, core.Region{Left: 0, Top: 0, Width: 100, Height: 30}, false, time.Now())
	if d.Allow {
		t.Fatal("expected pause to block the result")
	}
}

// Scenario: Region=(100,500,800,120), overlay=(200,560,400,100). Inset is
// min(30, overlay.Width/3=133, overlay.Height/3=33) = 30, so the inner
// overlay rect is (230,590,340,40). Intersecting with the OCR region
// (100,500,800,120) yields the full inner rect, area 340*40=13600, which is
// >= 10% of the OCR region's own area (800*120=96000 -> 9600). The overlay
// sits below the OCR region's top, so the snap direction is "above".
func TestGateOverlayOverlapSnapAway(t *testing.T) {
	g := New(DefaultConfig(), nil)
	g.SetOverlayRect(core.Region{Left: 200, Top: 560, Width: 400, Height: 100})

	region := core.Region{Left: 100, Top: 500, Width: 800, Height: 120}
	d := g.Evaluate(core.RecognitionResult{Text: "hello there"}, region, false, time.Now())

	if d.Allow {
		t.Fatal("expected overlap to block the result")
	}
	if !d.SnapAway {
		t.Fatal("expected a snap-away request")
	}
	if !d.SnapGapAbove {
		t.Fatal("expected the overlay to snap above the OCR region")
	}
}

func TestGateOverlayOverlapAllowedHidesAndCaptures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowOverlap = true
	g := New(cfg, nil)
	g.SetOverlayRect(core.Region{Left: 200, Top: 560, Width: 400, Height: 100})

	region := core.Region{Left: 100, Top: 500, Width: 800, Height: 120}
	now := time.Now()
	d := g.Evaluate(core.RecognitionResult{Text: "hello there"}, region, false, now)
	if !d.Allow || !d.HideAndCapture {
		t.Fatalf("expected an allowed hide-and-capture decision, got %+v", d)
	}

	// A second overlap within the throttle window is blocked outright.
	d2 := g.Evaluate(core.RecognitionResult{Text: "hello there again"}, region, false, now.Add(100*time.Millisecond))
	if d2.Allow {
		t.Fatal("expected throttled overlap to block")
	}
}

func TestGateNoOverlapPassesThrough(t *testing.T) {
	g := New(DefaultConfig(), nil)
	g.SetOverlayRect(core.Region{Left: 900, Top: 900, Width: 50, Height: 50})

	region := core.Region{Left: 0, Top: 0, Width: 200, Height: 50}
	d := g.Evaluate(core.RecognitionResult{Text: "plain text here"}, region, false, time.Now())
	if !d.Allow {
		t.Fatalf("expected non-overlapping regions to pass, got %+v", d)
	}
}

func TestGateLanguageMismatchTripsPause(t *testing.T) {
	g := New(DefaultConfig(), nil)
	// Source is CJK, result is overwhelmingly Latin.
	d := g.Evaluate(core.RecognitionResult{Text: "this is definitely english text"}, core.Region{}, true, time.Now())
	if d.Allow {
		t.Fatal("expected a language mismatch to block")
	}
	if !d.Pause {
		t.Fatal("expected a language mismatch to request a pause")
	}
}

func TestGateWordCountCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxWordsEnabled = true
	cfg.MaxWordsForTranslation = 3
	g := New(cfg, nil)

	d := g.Evaluate(core.RecognitionResult{Text: "one two three four five"}, core.Region{}, false, time.Now())
	if d.Allow {
		t.Fatal("expected the word cap to block a long result")
	}

	d2 := g.Evaluate(core.RecognitionResult{Text: "one two"}, core.Region{}, false, time.Now())
	if !d2.Allow {
		t.Fatal("expected a short result under the cap to pass")
	}
}

func TestGateUIEchoFilter(t *testing.T) {
	g := New(DefaultConfig(), nil)
	d := g.Evaluate(core.RecognitionResult{Text: "menu menu menu menu menu settings"}, core.Region{}, false, time.Now())
	if d.Allow {
		t.Fatal("expected repeated-token UI chrome to be filtered")
	}
}

func TestGateSelfEchoFilter(t *testing.T) {
	g := New(DefaultConfig(), nil)
	g.RecordDisplayed("the quick brown fox jumps over the lazy dog")

	d := g.Evaluate(core.RecognitionResult{Text: "the quick brown fox jumps over the lazy dog"}, core.Region{}, false, time.Now())
	if d.Allow {
		t.Fatal("expected an exact repeat of displayed text to be filtered as self-echo")
	}
}

func TestGateAllowsFreshText(t *testing.T) {
	g := New(DefaultConfig(), nil)
	g.RecordDisplayed("something completely different")

	d := g.Evaluate(core.RecognitionResult{Text: "a brand new sentence nobody has seen"}, core.Region{}, false, time.Now())
	if !d.Allow {
		t.Fatalf("expected fresh text to pass, got %+v", d)
	}
}
