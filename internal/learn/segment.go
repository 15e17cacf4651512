// Package learn implements the CJK keyword side-channel (spec §4.11):
// a rule-based tokenizer and frequency ranker stand in for the original's
// jieba-based segmentation, since no CJK segmentation library turned up
// anywhere in the retrieved example pack.
package learn

// isCJK reports whether r is a CJK unified ideograph.
func isCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// cjkRuns splits text into maximal runs of consecutive CJK runes, discarding
// everything else (punctuation, latin text, digits).
func cjkRuns(text string) []string {
	var runs []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			runs = append(runs, string(cur))
			cur = nil
		}
	}
	for _, r := range text {
		if isCJK(r) {
			cur = append(cur, r)
		} else {
			flush()
		}
	}
	flush()
	return runs
}

// candidateWords generates keyword candidates from a CJK run: every
// 4-character window (idiom-length) and every 2-character window (the
// common bigram-as-word approximation jieba's dictionary match would
// otherwise perform), in that preference order.
func candidateWords(run []rune) []string {
	var out []string
	for n := 4; n >= 2; n -= 2 {
		if len(run) < n {
			continue
		}
		for i := 0; i+n <= len(run); i++ {
			out = append(out, string(run[i:i+n]))
		}
	}
	return out
}

// tokenize returns every candidate word across all CJK runs in text, in
// first-seen order, longest candidates first within each run.
func tokenize(text string) []string {
	var out []string
	for _, run := range cjkRuns(text) {
		out = append(out, candidateWords([]rune(run))...)
	}
	return out
}

// hasCJK reports whether text contains any CJK ideograph, the gate for
// whether the learn side-channel runs at all.
func hasCJK(text string) bool {
	for _, r := range text {
		if isCJK(r) {
			return true
		}
	}
	return false
}

// isChengyuCandidate reports whether s looks like a four-character idiom:
// exactly four CJK runes, no punctuation mixed in.
func isChengyuCandidate(s string) bool {
	n := 0
	for _, r := range s {
		if !isCJK(r) {
			return false
		}
		n++
	}
	return n == 4
}

// commonSingles lists the standalone characters isCommonSingleChar treats
// as frequent enough to surface alone, mirroring the original's small hard-coded allowlist.
var commonSingles = map[rune]bool{
	'的': true, '了': true, '是': true, '我': true, '你': true, '他': true,
	'她': true, '它': true, '这': true, '那': true, '在': true, '有': true,
	'和': true, '就': true, '不': true, '人': true, '都': true, '来': true,
	'到': true, '说': true, '要': true, '会': true, '能': true, '好': true,
	'很': true, '也': true, '还': true, '又': true, '只': true,
}

func isCommonSingleChar(s string) bool {
	r := []rune(s)
	return len(r) == 1 && commonSingles[r[0]]
}
