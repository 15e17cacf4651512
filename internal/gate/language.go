package gate

import "unicode"

const (
	languageMismatchMinChars = 8
	cjkRatioFloor             = 0.10
	latinRatioCeiling         = 0.85
)

// languageMismatch implements rule 4: on texts of at least
// languageMismatchMinChars alphanumeric/CJK characters, if the source is
// CJK-family but the result is overwhelmingly Latin (or the symmetric
// case for a Latin source), the OCR is probably reading the wrong layer.
func languageMismatch(text string, sourceIsCJK bool) (bool, string) {
	cjk, latin, total := scriptCounts(text)
	if total < languageMismatchMinChars {
		return false, ""
	}

	cjkRatio := float64(cjk) / float64(total)
	latinRatio := float64(latin) / float64(total)

	if sourceIsCJK && cjkRatio < cjkRatioFloor && latinRatio > latinRatioCeiling {
		return true, "expected CJK source, result is overwhelmingly Latin"
	}
	if !sourceIsCJK && latinRatio < cjkRatioFloor && cjkRatio > latinRatioCeiling {
		return true, "expected Latin source, result is overwhelmingly CJK"
	}
	return false, ""
}

func scriptCounts(text string) (cjk, latin, total int) {
	for _, r := range text {
		switch {
		case isCJKRune(r):
			cjk++
			total++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			latin++
			total++
		}
	}
	return
}

func isCJKRune(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	case r >= 0x3040 && r <= 0x30FF: // hiragana + katakana
		return true
	case r >= 0xAC00 && r <= 0xD7AF: // hangul syllables
		return true
	default:
		return false
	}
}
