package dispatch

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/nicksukie/livesub/internal/core"
)

// cjkFragmentPattern matches a contiguous run of CJK ideographs, kana, or
// hangul — the fragments an LLM sometimes leaves untranslated when the
// target language uses Latin script.
var cjkFragmentPattern = regexp.MustCompile(`[\x{4E00}-\x{9FFF}\x{3040}-\x{30FF}\x{AC00}-\x{D7AF}]+`)

// SpliceRepairPolicy supplies the English-centric splice heuristics
// (lowercase-after-lowercase, drop-article-after-" a") as a
// target-language-indexed policy rather than a hard-coded rule, per the
// resolved open question in DESIGN.md: only English gets the original
// behavior, every other target language gets a passthrough no-op.
type SpliceRepairPolicy interface {
	// Splice decides how a translated fragment is joined into the
	// surrounding already-repaired text. preceding is the text already
	// emitted immediately before the splice point.
	Splice(preceding, fragment string) string
}

type englishSplicePolicy struct{}

func (englishSplicePolicy) Splice(preceding, fragment string) string {
	trimmedPreceding := strings.TrimRight(preceding, " ")
	if strings.HasSuffix(trimmedPreceding, " a") && startsWithArticle(fragment) {
		fragment = dropLeadingArticle(fragment)
	}
	if precedingEndsLowercase(preceding) {
		fragment = lowercaseFirstRune(fragment)
	}
	return fragment
}

type passthroughSplicePolicy struct{}

func (passthroughSplicePolicy) Splice(_ string, fragment string) string { return fragment }

var splicePolicies = map[core.Language]SpliceRepairPolicy{
	core.LanguageEn: englishSplicePolicy{},
}

func splicePolicyFor(target core.Language) SpliceRepairPolicy {
	if p, ok := splicePolicies[target]; ok {
		return p
	}
	return passthroughSplicePolicy{}
}

func startsWithArticle(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, article := range []string{"a ", "an ", "the "} {
		if strings.HasPrefix(s, article) {
			return true
		}
	}
	return false
}

func dropLeadingArticle(s string) string {
	trimmed := strings.TrimLeft(s, " ")
	lower := strings.ToLower(trimmed)
	for _, article := range []string{"a ", "an ", "the "} {
		if strings.HasPrefix(lower, article) {
			return trimmed[len(article):]
		}
	}
	return s
}

func precedingEndsLowercase(preceding string) bool {
	trimmed := strings.TrimRight(preceding, " ")
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)
	last := r[len(r)-1]
	return unicode.IsLower(last)
}

func lowercaseFirstRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// fragmentTranslator is the minimal capability repairMixedOutput needs:
// translate a short fragment in isolation. The dispatcher itself
// implements this by calling an MT provider directly.
type fragmentTranslator func(ctx context.Context, fragment string, target core.Language) (string, error)

// repairMixedOutput replaces CJK/kana/hangul fragments left in an otherwise
// Latin-script LLM translation with an MT translation of just that
// fragment, preserving surrounding spacing and re-running sanity afterward.
func repairMixedOutput(ctx context.Context, text string, target core.Language, source string, translateFragment fragmentTranslator) (string, bool) {
	if isCJKTarget(target) {
		return text, true
	}
	locs := cjkFragmentPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text, sane(text, source)
	}

	var b strings.Builder
	last := 0
	policy := splicePolicyFor(target)
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		b.WriteString(text[last:start])
		fragment := text[start:end]
		translated, err := translateFragment(ctx, fragment, target)
		if err != nil || strings.TrimSpace(translated) == "" {
			translated = fragment
		}
		translated = policy.Splice(b.String(), translated)
		translated = withBoundarySpacing(b.String(), translated, text, end)
		b.WriteString(translated)
		last = end
	}
	b.WriteString(text[last:])

	repaired := b.String()
	return repaired, sane(repaired, source)
}

// withBoundarySpacing inserts a space between the already-written text and
// the spliced-in fragment when both sides are word-like characters, so
// "helloworld" splices don't glue two words together.
func withBoundarySpacing(before, fragment, original string, afterIdx int) string {
	if before == "" || fragment == "" {
		return fragment
	}
	prevRunes := []rune(before)
	prevChar := prevRunes[len(prevRunes)-1]
	fragRunes := []rune(fragment)
	firstChar := fragRunes[0]
	if isWordChar(prevChar) && isWordChar(firstChar) && !strings.HasSuffix(before, " ") {
		return " " + fragment
	}
	return fragment
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isCJKTarget(target core.Language) bool {
	return target.IsCJK()
}
