package learn

import (
	"strings"

	"github.com/mozillazg/go-pinyin"

	"github.com/nicksukie/livesub/internal/core"
)

// bundledEntry is one CEDICT-style row: simplified word, pinyin, definition.
type bundledEntry struct {
	pinyin     string
	definition string
}

// BundledDictionary is a small fixed CEDICT-style subset, standing in for
// the original's full CEDICT load (no CEDICT-equivalent crate is available
// in the retrieved example pack). It satisfies core.DictionaryLookup and is
// wired as the default when no external dictionary is configured.
type BundledDictionary struct {
	entries map[string]bundledEntry
}

func NewBundledDictionary() *BundledDictionary {
	return &BundledDictionary{entries: map[string]bundledEntry{
		"你好":  {pinyin: "nǐ hǎo", definition: "hello"},
		"谢谢":  {pinyin: "xiè xie", definition: "thank you"},
		"学校":  {pinyin: "xué xiào", definition: "school"},
		"老师":  {pinyin: "lǎo shī", definition: "teacher"},
		"国家":  {pinyin: "guó jiā", definition: "country"},
		"朋友":  {pinyin: "péng yǒu", definition: "friend"},
		"时间":  {pinyin: "shí jiān", definition: "time"},
		"工作":  {pinyin: "gōng zuò", definition: "work/job"},
		"电影":  {pinyin: "diàn yǐng", definition: "movie"},
		"画蛇添足": {pinyin: "huà shé tiān zú", definition: "to ruin something by adding superfluous detail (idiom)"},
		"马马虎虎": {pinyin: "mǎ mǎ hū hū", definition: "careless, so-so (idiom)"},
	}}
}

func (d *BundledDictionary) Lookup(word string) (definition, pronunciation string, ok bool) {
	entry, found := d.entries[word]
	if !found {
		return "", "", false
	}
	return entry.definition, entry.pinyin, true
}

var pinyinArgs = newPinyinArgs()

func newPinyinArgs() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.Tone
	a.Fallback = func(r rune, a pinyin.Args) []string { return []string{string(r)} }
	return a
}

// derivePinyin produces a deterministic tone-marked reading for word,
// used whenever the bundled dictionary and any external DictionaryLookup
// both miss.
func derivePinyin(word string) string {
	syllables := pinyin.LazyPinyin(word, pinyinArgs)
	return strings.Join(syllables, " ")
}
