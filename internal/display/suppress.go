// Package display implements the display stack and transient status set
// (spec §4.8): a small similarity-suppressing stack of recently committed
// translations plus an expiry-bounded min-heap of status messages, owned
// exclusively by the translation worker and the UI-tick task.
package display

import (
	"strings"
	"unicode"
)

const (
	minSubstringLen     = 20
	tokenOverlapThresh  = 0.65
	minContentTokens    = 8
)

// similar reports whether candidate should be suppressed against existing,
// per the three rules in order: exact case-insensitive match, substring
// containment with both lengths >= 20, and token-set overlap >= 65% with
// both sides having >= 8 content tokens.
func similar(candidate, existing string) bool {
	c := strings.TrimSpace(candidate)
	e := strings.TrimSpace(existing)
	if c == "" || e == "" {
		return false
	}

	cLower := strings.ToLower(c)
	eLower := strings.ToLower(e)
	if cLower == eLower {
		return true
	}

	if len(c) >= minSubstringLen && len(e) >= minSubstringLen {
		if strings.Contains(eLower, cLower) || strings.Contains(cLower, eLower) {
			return true
		}
	}

	cTokens := contentTokens(c)
	eTokens := contentTokens(e)
	if len(cTokens) >= minContentTokens && len(eTokens) >= minContentTokens {
		if tokenOverlapRatio(cTokens, eTokens) >= tokenOverlapThresh {
			return true
		}
	}

	return false
}

func contentTokens(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[strings.ToLower(f)] = struct{}{}
	}
	return tokens
}

func tokenOverlapRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	smaller, larger := a, b
	if len(b) < len(a) {
		smaller, larger = b, a
	}
	shared := 0
	for t := range smaller {
		if _, ok := larger[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(smaller))
}
