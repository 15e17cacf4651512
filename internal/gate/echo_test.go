package gate

import "testing"

func TestEchoFilterUIEchoRepeatedToken(t *testing.T) {
	f := NewEchoFilter()
	if !f.IsUIEcho("file file file file file edit") {
		t.Fatal("expected five repeats of one token to trip the UI-echo filter")
	}
}

func TestEchoFilterUIEchoIgnoresCJK(t *testing.T) {
	f := NewEchoFilter()
	if f.IsUIEcho("你好 你好 你好 你好 你好 世界") {
		t.Fatal("expected the UI-echo filter to ignore CJK text entirely")
	}
}

func TestEchoFilterUIEchoAllowsVariedText(t *testing.T) {
	f := NewEchoFilter()
	if f.IsUIEcho("a perfectly normal sentence with no repeats") {
		t.Fatal("expected varied text to pass")
	}
}

func TestEchoFilterSelfEchoExactRepeat(t *testing.T) {
	f := NewEchoFilter()
	f.RecordDisplayed("the committee approved the new budget proposal")
	if !f.IsSelfEcho("the committee approved the new budget proposal") {
		t.Fatal("expected an exact repeat of displayed text to be a self-echo")
	}
}

func TestEchoFilterSelfEchoSubstring(t *testing.T) {
	f := NewEchoFilter()
	f.RecordDisplayed("the committee approved the new budget proposal after much debate")
	if !f.IsSelfEcho("the committee approved the new budget proposal") {
		t.Fatal("expected a substring of displayed text to be a self-echo")
	}
}

func TestEchoFilterSelfEchoHighTokenOverlap(t *testing.T) {
	f := NewEchoFilter()
	f.RecordDisplayed("a fast brown fox jumped over a sleepy dog near the river")
	if !f.IsSelfEcho("fast brown fox jumped over sleepy dog near river today") {
		t.Fatal("expected high token-set overlap against recent history to be a self-echo")
	}
}

func TestEchoFilterSelfEchoLearnPanel(t *testing.T) {
	f := NewEchoFilter()
	f.RecordLearnPanel("quarterly earnings exceeded analyst expectations significantly")
	if !f.IsSelfEcho("quarterly earnings exceeded analyst expectations significantly") {
		t.Fatal("expected learn-panel text to also feed the self-echo filter")
	}
}

func TestEchoFilterSelfEchoFreshTextPasses(t *testing.T) {
	f := NewEchoFilter()
	f.RecordDisplayed("completely unrelated prior sentence about gardening")
	if f.IsSelfEcho("a brand new topic concerning interstellar travel") {
		t.Fatal("expected unrelated fresh text not to be flagged as self-echo")
	}
}

func TestEchoFilterSelfEchoShortTextIgnored(t *testing.T) {
	f := NewEchoFilter()
	f.RecordDisplayed("hi")
	if f.IsSelfEcho("hi") {
		t.Fatal("expected text under the minimum length to be ignored")
	}
}

func TestEchoFilterHistoryCapped(t *testing.T) {
	f := NewEchoFilter()
	for i := 0; i < selfEchoDisplayHistory+5; i++ {
		f.RecordDisplayed("filler line to push history past its cap")
	}
	if len(f.displayed) > selfEchoDisplayHistory {
		t.Fatalf("expected displayed history capped at %d, got %d", selfEchoDisplayHistory, len(f.displayed))
	}
}
