// Package pipeline wires the capture, recognize, gate, reconcile, translate,
// and display stages into the goroutine-per-stage scheduler spec §4.9/§5
// describes: bounded newest-wins queues between stages, a single shared
// `running` flag workers poll alongside a cancellable context tree, and a
// serial translation worker so commit-order == translate-order ==
// present-order.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nicksukie/livesub/internal/core"
	"github.com/nicksukie/livesub/internal/dispatch"
	"github.com/nicksukie/livesub/internal/display"
	"github.com/nicksukie/livesub/internal/gate"
	"github.com/nicksukie/livesub/internal/metrics"
)

const (
	captureQueueCapacity = 1

	textQueueCapacityOCR   = 5
	textQueueCapacityAudio = 20

	translatedQueueCapacityOCR   = 5
	translatedQueueCapacityAudio = 20

	keywordQueueCapacity = 3

	uiTickInterval      = 100 * time.Millisecond // 10Hz
	uiDrainPerTickOCR   = 1
	uiDrainPerTickAudio = 25

	captureQueuePollTimeout = 400 * time.Millisecond
	shutdownGrace           = 3 * time.Second
)

// Reconciler is the shared shape of the MT, LLM, and audio reconcilers: feed
// a new recognition string in, get back a commit decision.
type Reconciler interface {
	Ingest(newText string, now time.Time) (shouldCommit bool, text string, isFinal bool)
	Reset()
}

// CommitSink receives every commit event once the translation worker has
// produced a result, for the session log and the learn side-channel to
// subscribe to without the pipeline depending on either package.
type CommitSink func(commit core.CommitEvent, result core.TranslationResult)

type textQueueItem struct {
	commit core.CommitEvent
}

type translatedQueueItem struct {
	result  core.TranslationResult
	partial bool
}

// Config holds the pipeline's mode and language pair; everything else is
// supplied as already-constructed collaborators.
type Config struct {
	Mode       core.TranscriptionMode
	SourceLang core.Language
	TargetLang core.Language
}

// Pipeline owns the bounded queues and the worker goroutines. It does not
// own capture itself: the caller drives its FrameSource/AudioSource and
// feeds each recognition result in through IngestRecognition.
type Pipeline struct {
	cfg Config
	log core.Logger

	recognizer core.Recognizer
	gate       *gate.Gate
	reconciler Reconciler
	dispatcher *dispatch.Dispatcher
	stack      *display.Stack
	status     *display.StatusSet
	overlay    core.Overlay

	onCommit CommitSink

	textQ       *newestWinsQueue[textQueueItem]
	translatedQ *newestWinsQueue[translatedQueueItem]
	keywordQ    *newestWinsQueue[core.CommitEvent]

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	closeOnce sync.Once
}

func New(cfg Config, recognizer core.Recognizer, g *gate.Gate, reconciler Reconciler, dispatcher *dispatch.Dispatcher, stack *display.Stack, status *display.StatusSet, overlay core.Overlay, logger core.Logger, onCommit CommitSink) *Pipeline {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	if onCommit == nil {
		onCommit = func(core.CommitEvent, core.TranslationResult) {}
	}

	textCap := textQueueCapacityOCR
	translatedCap := translatedQueueCapacityOCR
	if cfg.Mode == core.ModeAudio {
		textCap = textQueueCapacityAudio
		translatedCap = translatedQueueCapacityAudio
	}

	p := &Pipeline{
		cfg:         cfg,
		log:         logger,
		recognizer:  recognizer,
		gate:        g,
		reconciler:  reconciler,
		dispatcher:  dispatcher,
		stack:       stack,
		status:      status,
		overlay:     overlay,
		onCommit:    onCommit,
		textQ:       newNewestWinsQueue[textQueueItem]("text_q", textCap),
		translatedQ: newNewestWinsQueue[translatedQueueItem]("translated_q", translatedCap),
		keywordQ:    newNewestWinsQueue[core.CommitEvent]("keyword_q", keywordQueueCapacity),
	}
	return p
}

// KeywordQueue exposes the keyword_q receive end for the learn side-channel
// worker, which this package does not itself own.
func (p *Pipeline) KeywordQueue() <-chan core.CommitEvent { return p.keywordQ.Recv() }

// Start launches the dispatcher's health check, the serial translation
// worker, and the 10Hz UI tick. Capture and recognition are driven
// externally via IngestRecognition (the capture/recognize loop is owned by
// internal/capture, which this package does not import to avoid a cyclic
// platform-binding dependency).
func (p *Pipeline) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.running.Store(true)

	p.dispatcher.StartHealthCheck(p.ctx)

	p.wg.Add(2)
	go p.translateWorker()
	go p.uiTickLoop()
}

// IngestRecognition runs one recognition result through the gate and the
// reconciler, enqueueing a commit onto text_q when the reconciler produces
// one. Called from the recognize stage (owned by internal/capture or a
// replay harness), never concurrently with itself.
func (p *Pipeline) IngestRecognition(result core.RecognitionResult, ocrRegion core.Region, now time.Time) {
	if !p.running.Load() {
		return
	}

	decision := p.gate.Evaluate(result, ocrRegion, p.cfg.SourceLang.IsCJK(), now)
	if decision.Pause {
		p.status.Push(decision.StatusMessage, decision.StatusExpiry, false)
		metrics.GateTripsTotal.WithLabelValues("pause").Inc()
	}
	if !decision.Allow {
		metrics.GateTripsTotal.WithLabelValues("reject").Inc()
		return
	}

	shouldCommit, text, isFinal := p.reconciler.Ingest(result.Text, now)
	if !shouldCommit {
		return
	}

	commit := core.CommitEvent{Text: text, IsFinal: isFinal, OriginalLength: len(result.Text), RawSource: result.Text}
	p.textQ.Push(textQueueItem{commit: commit})
}

// translateWorker is the pipeline's single serial translation consumer:
// text_q's FIFO order is preserved into translated_q and keyword_q.
func (p *Pipeline) translateWorker() {
	defer p.wg.Done()
	for {
		if !p.running.Load() {
			return
		}
		select {
		case <-p.ctx.Done():
			return
		case item, ok := <-p.textQ.Recv():
			if !ok {
				return
			}
			p.translateOne(item.commit)
		case <-time.After(captureQueuePollTimeout):
		}
	}
}

func (p *Pipeline) translateOne(commit core.CommitEvent) {
	req := core.TranslateRequest{SourceText: commit.Text, SourceLang: p.cfg.SourceLang, TargetLang: p.cfg.TargetLang}

	start := time.Now()
	translated := p.dispatcher.Translate(p.ctx, req)
	elapsed := time.Since(start)

	result := core.TranslationResult{
		SourceText:     commit.Text,
		TranslatedText: translated,
		ProviderName:   p.dispatcher.LastProvider(),
		IsFinal:        commit.IsFinal,
		OriginalLength: commit.OriginalLength,
		Timestamp:      time.Now(),
	}
	metrics.TranslationDuration.WithLabelValues(result.ProviderName).Observe(elapsed.Seconds())
	metrics.SyncProviderStats(p.dispatcher.ProviderStats())

	p.translatedQ.Push(translatedQueueItem{result: result, partial: !commit.IsFinal})
	if p.cfg.SourceLang.IsCJK() {
		p.keywordQ.Push(commit)
	}
	p.onCommit(commit, result)
}

// uiTickLoop polls translated_q at 10Hz and delivers surviving items to the
// display stack, matching the spec's "polled, not pushed" refresh contract.
func (p *Pipeline) uiTickLoop() {
	defer p.wg.Done()
	drainPerTick := uiDrainPerTickOCR
	if p.cfg.Mode == core.ModeAudio {
		drainPerTick = uiDrainPerTickAudio
	}

	ticker := time.NewTicker(uiTickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			if !p.running.Load() {
				return
			}
			for _, item := range p.translatedQ.Drain(drainPerTick) {
				if p.stack.Push(item.result.TranslatedText, item.partial) {
					p.gate.RecordDisplayed(item.result.TranslatedText)
				}
			}
			display.Render(p.stack, p.status, p.overlay)
		}
	}
}

// Shutdown stops every worker cooperatively and waits up to shutdownGrace
// for them to exit.
func (p *Pipeline) Shutdown() {
	p.closeOnce.Do(func() {
		p.running.Store(false)
		if p.cancel != nil {
			p.cancel()
		}
		p.dispatcher.Shutdown()

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(shutdownGrace):
			p.log.Warn("pipeline: workers did not exit within shutdown grace period")
		}
	})
}
