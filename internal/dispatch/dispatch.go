// Package dispatch implements the translation dispatcher (spec §4.7): a
// per-string cache, LLM-first provider selection with an ordered MT fallback
// chain, LLM-sanity checking, mixed-output repair, and a failover state
// machine with a background health-check worker — grounded on the original
// TranslatorApp.translate's cache-then-fallback-chain shape, adapted from a
// single hard-coded provider list into a pluggable core.Translator chain.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

const (
	defaultLLMContextCount  = 3
	defaultLLMTimeout       = 15 * time.Second
	defaultMTTimeout        = 10 * time.Second
	healthCheckInterval     = 30 * time.Second
	healthCheckTimeout      = 5 * time.Second
	inFlightNoticeThreshold = 5 * time.Second
)

// StatusCallback reports a transient status message, mirroring the
// teacher-adjacent status_callback(message, duration, is_good_news) shape.
type StatusCallback func(message string, duration time.Duration, isGoodNews bool)

// Config holds the dispatcher's tunables, all sourced from the settings
// store (spec §6).
type Config struct {
	UseLargeModel   bool
	LLMContextCount int
}

func DefaultConfig() Config {
	return Config{UseLargeModel: true, LLMContextCount: defaultLLMContextCount}
}

// Dispatcher is the sole owner of the translation cache, the per-provider
// word counters, and the recent-context ring; it is touched only by the
// translation worker and the UI-tick task.
type Dispatcher struct {
	mu sync.Mutex

	cfg Config
	log core.Logger

	llm          core.Translator
	largeModelMT []core.Translator // DeepL → Google → Yandex → LibreTranslate → Caiyun → Niutrans
	smallModelMT []core.Translator // DeepL → Google → Baidu → Youdao → Yandex → LibreTranslate → Caiyun → Niutrans

	cache   map[string]string
	context []core.ContextPair

	providerWords map[string]int
	providerCalls map[string]int

	usingMTFallback bool
	failWarned      bool
	lastProvider    string

	onStatus StatusCallback

	stopHealthCheck chan struct{}
	healthCheckOnce sync.Once
}

// New builds a Dispatcher. largeModelMT and smallModelMT are the ordered MT
// fallback chains for large-model (LLM-first) and small-model (MT-only)
// operation respectively; llm may be nil if no LLM provider is configured.
func New(cfg Config, llm core.Translator, largeModelMT, smallModelMT []core.Translator, logger core.Logger, onStatus StatusCallback) *Dispatcher {
	if cfg.LLMContextCount <= 0 {
		cfg.LLMContextCount = defaultLLMContextCount
	}
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	if onStatus == nil {
		onStatus = func(string, time.Duration, bool) {}
	}
	return &Dispatcher{
		cfg:           cfg,
		log:           logger,
		llm:           llm,
		largeModelMT:  largeModelMT,
		smallModelMT:  smallModelMT,
		cache:         make(map[string]string),
		providerWords: make(map[string]int),
		providerCalls: make(map[string]int),
		onStatus:      onStatus,
	}
}

// Translate is the dispatcher's public, blocking operation.
func (d *Dispatcher) Translate(ctx context.Context, req core.TranslateRequest) string {
	d.mu.Lock()
	if cached, ok := d.cache[req.SourceText]; ok {
		d.mu.Unlock()
		return cached
	}
	useLLM := d.cfg.UseLargeModel && !d.usingMTFallback && d.llm != nil
	contextCount := d.cfg.LLMContextCount
	var recentContext []core.ContextPair
	if len(d.context) > 0 {
		start := len(d.context) - contextCount
		if start < 0 {
			start = 0
		}
		recentContext = append(recentContext, d.context[start:]...)
	}
	mtChain := d.largeModelMT
	if !d.cfg.UseLargeModel {
		mtChain = d.smallModelMT
	}
	d.mu.Unlock()

	if useLLM {
		req.Context = recentContext
		req.Timeout = defaultLLMTimeout
		if result, ok := d.tryLLM(ctx, req); ok {
			d.recordSuccess(req.SourceText, result, d.llm.Name())
			return result
		}
		d.transitionToMTFallback()
	}

	req.Timeout = defaultMTTimeout
	for _, provider := range mtChain {
		result, err := callWithTimeout(ctx, provider, req)
		if err != nil || strings.TrimSpace(result) == "" {
			d.log.Warn("dispatch: provider failed", "provider", provider.Name(), "error", err)
			continue
		}
		d.recordSuccess(req.SourceText, result, provider.Name())
		return result
	}

	return d.recordFailure(req.SourceText)
}

func (d *Dispatcher) tryLLM(ctx context.Context, req core.TranslateRequest) (string, bool) {
	noticeTimer := time.AfterFunc(inFlightNoticeThreshold, func() {
		d.onStatus("No API response", 0, false)
	})
	defer noticeTimer.Stop()

	llmCtx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	raw, err := d.llm.Translate(llmCtx, req)
	noticeFired := !noticeTimer.Stop()
	if err != nil {
		return "", false
	}
	if noticeFired {
		d.onStatus("API responded", 0, true)
	}
	if !sane(raw, req.SourceText) {
		return "", false
	}

	repaired, stillSane := repairMixedOutput(ctx, raw, req.TargetLang, req.SourceText, d.translateFragment)
	if !stillSane {
		return "", false
	}
	return repaired, true
}

// translateFragment is the fragmentTranslator the mixed-output repair calls
// to translate a single CJK fragment via the first available MT provider.
func (d *Dispatcher) translateFragment(ctx context.Context, fragment string, target core.Language) (string, error) {
	d.mu.Lock()
	chain := d.largeModelMT
	d.mu.Unlock()
	for _, provider := range chain {
		result, err := callWithTimeout(ctx, provider, core.TranslateRequest{SourceText: fragment, TargetLang: target, Timeout: defaultMTTimeout})
		if err == nil && strings.TrimSpace(result) != "" {
			return result, nil
		}
	}
	return "", core.ErrAllProvidersFailed
}

func callWithTimeout(ctx context.Context, provider core.Translator, req core.TranslateRequest) (string, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultMTTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return provider.Translate(callCtx, req)
}

func (d *Dispatcher) transitionToMTFallback() {
	d.mu.Lock()
	already := d.usingMTFallback
	d.usingMTFallback = true
	var next string
	if len(d.largeModelMT) > 0 {
		next = d.largeModelMT[0].Name()
	}
	d.mu.Unlock()
	if !already {
		d.onStatus(fmt.Sprintf("switching to %s", next), 0, false)
		d.startHealthCheck()
	}
}

func (d *Dispatcher) recordSuccess(source, translated, provider string) {
	d.mu.Lock()
	d.cache[source] = translated
	d.context = append(d.context, core.ContextPair{Source: source, Translation: translated})
	if len(d.context) > historyCapacity {
		d.context = d.context[len(d.context)-historyCapacity:]
	}
	d.providerWords[provider] += len(strings.Fields(source))
	d.providerCalls[provider]++
	d.lastProvider = provider
	d.mu.Unlock()
}

// LastProvider returns the provider name that produced the most recent
// successful translation, for the session log's per-entry "model" field.
// Safe only when Translate is called serially by a single worker, which is
// the scheduler's FIFO translation-worker contract (spec §4.9).
func (d *Dispatcher) LastProvider() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastProvider
}

const historyCapacity = 50

func (d *Dispatcher) recordFailure(source string) string {
	d.mu.Lock()
	warned := d.failWarned
	d.failWarned = true
	prefix := source
	if len(prefix) > 15 {
		prefix = prefix[:15]
	}
	placeholder := fmt.Sprintf("Translation Failed: %s", prefix)
	d.cache[source] = placeholder
	d.mu.Unlock()
	if !warned {
		d.onStatus("all translation providers failed", 0, false)
	}
	return placeholder
}

// ProviderStats returns a snapshot of per-provider word/call counters for
// the session log and the metrics registry.
func (d *Dispatcher) ProviderStats() []core.ProviderStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	stats := make([]core.ProviderStats, 0, len(d.providerWords))
	for provider, words := range d.providerWords {
		stats = append(stats, core.ProviderStats{Provider: provider, WordCount: words, CallCount: d.providerCalls[provider]})
	}
	return stats
}

// InMTFallback reports whether the dispatcher is currently bypassing the
// LLM path.
func (d *Dispatcher) InMTFallback() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.usingMTFallback
}

// StartHealthCheck launches the background worker that probes the LLM
// every healthCheckInterval and clears MT-fallback on success. Safe to call
// multiple times; only the first call starts the goroutine.
func (d *Dispatcher) StartHealthCheck(ctx context.Context) {
	d.healthCheckOnce.Do(func() {
		d.stopHealthCheck = make(chan struct{})
		go d.healthCheckLoop(ctx)
	})
}

func (d *Dispatcher) startHealthCheck() {
	d.StartHealthCheck(context.Background())
}

func (d *Dispatcher) healthCheckLoop(ctx context.Context) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stopHealthCheck:
			return
		case <-ticker.C:
			d.runHealthCheckProbe(ctx)
		}
	}
}

func (d *Dispatcher) runHealthCheckProbe(ctx context.Context) {
	d.mu.Lock()
	inFallback := d.usingMTFallback
	llm := d.llm
	d.mu.Unlock()
	if !inFallback || llm == nil {
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	_, err := llm.Translate(probeCtx, core.TranslateRequest{SourceText: "a", TargetLang: core.LanguageEn, Timeout: healthCheckTimeout})
	if err != nil {
		return
	}

	d.mu.Lock()
	d.usingMTFallback = false
	name := llm.Name()
	d.mu.Unlock()
	d.onStatus(fmt.Sprintf("switching back to %s", name), 0, true)
}

// Shutdown stops the health-check worker, if running.
func (d *Dispatcher) Shutdown() {
	if d.stopHealthCheck != nil {
		close(d.stopHealthCheck)
	}
}
