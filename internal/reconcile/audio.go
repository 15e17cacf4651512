package reconcile

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	DefaultAudioPeriod    = 2 * time.Second
	DefaultAudioNumChecks = 4
	DefaultAudioMinWords  = 7
)

var (
	cjkWordPattern   = regexp.MustCompile(`[\x{4e00}-\x{9fff}\x{3040}-\x{30ff}\x{ac00}-\x{d7af}]`)
	latinWordPattern = regexp.MustCompile(`[a-zA-Z]+`)
)

const sentenceEndings = ".!?。！？"

// CountWords counts CJK characters plus Latin word tokens, the same
// heuristic the spec uses everywhere a "word count" is needed (C3 rule 5,
// C5's min-words gate).
func CountWords(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	cjk := len(cjkWordPattern.FindAllString(text, -1))
	latin := len(latinWordPattern.FindAllString(text, -1))
	return cjk + latin
}

// AudioReconciler is the phrase-level variant used by the audio path
// (spec §4.6). Every call corresponds to a re-transcription of the current
// audio buffer; on commit the buffer is discarded entirely.
type AudioReconciler struct {
	mu sync.Mutex

	PeriodSec time.Duration
	NumChecks int
	MinWords  int

	buffer      string
	periodStart *time.Time
	checkCount  int
}

func NewAudioReconciler(period time.Duration, numChecks, minWords int) *AudioReconciler {
	if period <= 0 {
		period = DefaultAudioPeriod
	}
	if numChecks <= 0 {
		numChecks = DefaultAudioNumChecks
	}
	if minWords <= 0 {
		minWords = DefaultAudioMinWords
	}
	return &AudioReconciler{PeriodSec: period, NumChecks: numChecks, MinWords: minWords}
}

// Ingest returns (shouldSend, text, true) — all audio commits are final.
func (r *AudioReconciler) Ingest(transcript string, now time.Time) (shouldCommit bool, text string, isFinal bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	text = strings.TrimSpace(transcript)
	if text == "" {
		return false, "", true
	}

	wordCount := CountWords(text)

	if r.periodStart == nil {
		t := now
		r.periodStart = &t
	}
	r.buffer = text
	r.checkCount++
	elapsed := now.Sub(*r.periodStart)

	if wordCount < r.MinWords {
		return false, "", true
	}

	if sentenceComplete(text) {
		out := r.buffer
		r.reset()
		return true, out, true
	}

	if elapsed >= r.PeriodSec || r.checkCount >= r.NumChecks {
		out := r.buffer
		r.reset()
		return true, out, true
	}

	return false, "", true
}

// sentenceComplete reports whether text ends in sentence-terminal
// punctuation, Latin or CJK full-width.
func sentenceComplete(text string) bool {
	if text == "" {
		return false
	}
	r := []rune(text)
	last := r[len(r)-1]
	return strings.ContainsRune(sentenceEndings, last)
}

func (r *AudioReconciler) reset() {
	r.buffer = ""
	r.periodStart = nil
	r.checkCount = 0
}

func (r *AudioReconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
}
