// Package learn's extraction entry point: per-commit CJK keyword batches,
// dictionary-backed definitions with a Dispatcher-style fallback, and
// suppression of batches that mostly repeat recent output — grounded on
// learn_keywords.py's KeywordExtractor.extract_keywords shape.
package learn

import (
	"context"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

const (
	maxRecentBatches    = 3
	overlapSuppressRate = 0.60
)

// Keyword is one extracted term with its pronunciation and definition.
type Keyword struct {
	Word       string
	Pronunciation string
	Definition string
}

// Batch is one commit's worth of extracted keywords.
type Batch struct {
	Keywords  []Keyword
	Timestamp time.Time
}

// BatchSink receives every non-suppressed batch, the learn side-channel's
// hook point for whatever renders the learn panel.
type BatchSink func(batch Batch)

// DefinitionFallback looks up a word's meaning when neither the bundled nor
// an external dictionary has an entry, mirroring the dispatcher's
// fragment-translation seam (internal/dispatch's translateFragment).
type DefinitionFallback func(ctx context.Context, word string, targetLang core.Language) (string, error)

// Extractor owns the recent-batch ring used for overlap suppression. Fed
// exclusively from the pipeline's keyword_q consumer, one commit at a time.
type Extractor struct {
	dictionaries []core.DictionaryLookup
	fallback     DefinitionFallback
	onBatch      BatchSink

	recentBatches [][]string
}

// NewExtractor builds an Extractor. dictionaries are tried in order before
// falling back to fallback; the bundled dictionary is typically the last
// (or only) entry.
func NewExtractor(dictionaries []core.DictionaryLookup, fallback DefinitionFallback, onBatch BatchSink) *Extractor {
	if onBatch == nil {
		onBatch = func(Batch) {}
	}
	return &Extractor{dictionaries: dictionaries, fallback: fallback, onBatch: onBatch}
}

// Extract runs the full pipeline on one committed source text: segment,
// rank, convert traditional to simplified, look up, and emit unless the
// batch is suppressed as a near-repeat of recent output. No-ops when text
// has no CJK content.
func (e *Extractor) Extract(ctx context.Context, text string, targetLang core.Language, now time.Time) {
	if !hasCJK(text) {
		return
	}
	simplified := convertToSimplified(text)
	words := rankKeywords(simplified)
	if len(words) == 0 {
		return
	}

	if e.suppressed(words) {
		return
	}
	e.remember(words)

	keywords := make([]Keyword, 0, len(words))
	for _, w := range words {
		keywords = append(keywords, e.lookup(ctx, w, targetLang))
	}
	e.onBatch(Batch{Keywords: keywords, Timestamp: now})
}

func (e *Extractor) lookup(ctx context.Context, word string, targetLang core.Language) Keyword {
	for _, dict := range e.dictionaries {
		if definition, pronunciation, ok := dict.Lookup(word); ok {
			return Keyword{Word: word, Pronunciation: pronunciation, Definition: definition}
		}
	}

	pronunciation := derivePinyin(word)
	definition := ""
	if e.fallback != nil {
		if d, err := e.fallback(ctx, word, targetLang); err == nil && d != "" {
			definition = d
		}
	}
	return Keyword{Word: word, Pronunciation: pronunciation, Definition: definition}
}

// suppressed reports whether words overlaps >= overlapSuppressRate with any
// of the last maxRecentBatches emitted batches.
func (e *Extractor) suppressed(words []string) bool {
	for _, prior := range e.recentBatches {
		if overlapRatio(words, prior) >= overlapSuppressRate {
			return true
		}
	}
	return false
}

func (e *Extractor) remember(words []string) {
	e.recentBatches = append(e.recentBatches, words)
	if len(e.recentBatches) > maxRecentBatches {
		e.recentBatches = e.recentBatches[len(e.recentBatches)-maxRecentBatches:]
	}
}

// overlapRatio is the fraction of current found in prior.
func overlapRatio(current, prior []string) float64 {
	if len(current) == 0 {
		return 0
	}
	priorSet := make(map[string]struct{}, len(prior))
	for _, w := range prior {
		priorSet[w] = struct{}{}
	}
	shared := 0
	for _, w := range current {
		if _, ok := priorSet[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(current))
}
