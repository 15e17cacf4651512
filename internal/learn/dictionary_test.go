package learn

import "testing"

func TestBundledDictionaryHitsKnownWord(t *testing.T) {
	d := NewBundledDictionary()
	definition, pronunciation, ok := d.Lookup("你好")
	if !ok {
		t.Fatal("expected a hit for 你好")
	}
	if definition != "hello" {
		t.Fatalf("unexpected definition: %q", definition)
	}
	if pronunciation == "" {
		t.Fatal("expected a non-empty pronunciation")
	}
}

func TestBundledDictionaryMissesUnknownWord(t *testing.T) {
	d := NewBundledDictionary()
	if _, _, ok := d.Lookup("不存在的词"); ok {
		t.Fatal("expected a miss for an unlisted word")
	}
}

func TestDerivePinyinProducesNonEmptyReading(t *testing.T) {
	got := derivePinyin("你好")
	if got == "" {
		t.Fatal("expected a non-empty derived pinyin reading")
	}
}
