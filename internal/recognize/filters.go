// Package recognize implements the filter chain every recognizer's raw
// output passes through before reaching the obstruction gate (spec C2): a
// hallucination filter, a prompt-echo filter, a metadata-tag strip, a
// garbage strip, and a configurable block list.
package recognize

import (
	"regexp"
	"strings"
)

const (
	hallucinationMaxRepeats   = 4
	hallucinationMinWords     = 10
	hallucinationUniqueRatio  = 0.4
	garbageMinDigitRun        = 8
)

var (
	metadataTagPattern = regexp.MustCompile(`<\|[^|]+\|>`)
	digitRunPattern     = regexp.MustCompile(`\d{8,}\s*$`)
	watermarkPattern    = regexp.MustCompile(`[x×X]\d{4,}\s*$`)
	punctStripPattern   = regexp.MustCompile(`[^\w\s]`)
)

// StripMetadataTags removes SenseVoice/FunASR-style inline tags such as
// <|zh|>, <|NEUTRAL|>, <|BGM|> that some recognizers emit alongside text.
func StripMetadataTags(text string) string {
	return strings.TrimSpace(metadataTagPattern.ReplaceAllString(text, ""))
}

// StripGarbage trims trailing digit runs and ×NNNNNN-style watermark
// artifacts that recognizers occasionally lift off video overlays.
func StripGarbage(text string) string {
	text = digitRunPattern.ReplaceAllString(text, "")
	text = watermarkPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// IsHallucination detects a Whisper-style repetition loop: either an
// immediate run of the same word more than hallucinationMaxRepeats times, or
// — for longer outputs — a unique/total word ratio below
// hallucinationUniqueRatio.
func IsHallucination(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}

	maxRepeats, current := 1, 1
	last := words[0]
	for _, w := range words[1:] {
		if w == last {
			current++
		} else {
			if current > maxRepeats {
				maxRepeats = current
			}
			current = 1
			last = w
		}
	}
	if current > maxRepeats {
		maxRepeats = current
	}
	if maxRepeats > hallucinationMaxRepeats {
		return true
	}

	if len(words) >= hallucinationMinWords {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < hallucinationUniqueRatio {
			return true
		}
	}
	return false
}

// IsPromptEcho detects a recognizer simply echoing back its own biasing
// prompt on silence or background noise, either verbatim or as a trailing
// substring of the prompt.
func IsPromptEcho(text, prompt string) bool {
	if text == "" || prompt == "" {
		return false
	}
	normText := normalizeForEcho(text)
	normPrompt := normalizeForEcho(prompt)
	if normText == "" || normPrompt == "" {
		return false
	}
	if normText == normPrompt {
		return true
	}
	return strings.HasSuffix(normPrompt, normText)
}

func normalizeForEcho(s string) string {
	s = punctStripPattern.ReplaceAllString(strings.ToLower(s), "")
	return strings.TrimSpace(s)
}

// BlockList holds a small, configurable set of caption-credit strings
// (channel sign-offs, translator credits) to drop outright.
type BlockList struct {
	entries []string
}

func NewBlockList(entries []string) *BlockList {
	normalized := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			normalized = append(normalized, strings.ToLower(e))
		}
	}
	return &BlockList{entries: normalized}
}

// Matches reports whether text contains any blocked caption-credit string.
func (b *BlockList) Matches(text string) bool {
	if len(b.entries) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, e := range b.entries {
		if strings.Contains(lower, e) {
			return true
		}
	}
	return false
}

// Chain applies the full filter pipeline to one raw recognition and reports
// the cleaned text, or ("", false) if the result should be dropped.
type Chain struct {
	blockList *BlockList
}

func NewChain(blockList *BlockList) *Chain {
	if blockList == nil {
		blockList = NewBlockList(nil)
	}
	return &Chain{blockList: blockList}
}

// Apply runs the chain: strip tags and garbage first, then reject on
// hallucination, prompt echo, or block-list match.
func (c *Chain) Apply(text, prompt string) (string, bool) {
	cleaned := StripGarbage(StripMetadataTags(text))
	if cleaned == "" {
		return "", false
	}
	if IsHallucination(cleaned) {
		return "", false
	}
	if prompt != "" && IsPromptEcho(cleaned, prompt) {
		return "", false
	}
	if c.blockList.Matches(cleaned) {
		return "", false
	}
	return cleaned, true
}
