package main

import (
	"context"
	"os"
	"time"

	"github.com/nicksukie/livesub/internal/config"
	"github.com/nicksukie/livesub/internal/core"
	"github.com/nicksukie/livesub/internal/dispatch"
	"github.com/nicksukie/livesub/internal/display"
	"github.com/nicksukie/livesub/internal/gate"
	"github.com/nicksukie/livesub/internal/learn"
	"github.com/nicksukie/livesub/internal/pipeline"
	"github.com/nicksukie/livesub/internal/providers/llm"
	"github.com/nicksukie/livesub/internal/providers/mt"
	"github.com/nicksukie/livesub/internal/reconcile"
	"github.com/nicksukie/livesub/internal/recognize"
	"github.com/nicksukie/livesub/internal/session"
	"github.com/nicksukie/livesub/internal/tts"
)

// buildAudioRecognizer picks the first configured audio-transcription
// engine, Groq preferred for latency the way cmd/agent/main.go defaults to
// it. Returns nil when no audio STT key is configured.
func buildAudioRecognizer(cfg config.Config) core.Recognizer {
	filter := recognize.NewChain(nil)
	switch {
	case cfg.GroqAPIKey != "":
		return recognize.NewGroqRecognizer(cfg.GroqAPIKey, "", filter)
	case cfg.DeepgramAPIKey != "":
		return recognize.NewDeepgramRecognizer(cfg.DeepgramAPIKey, filter)
	default:
		return nil
	}
}

// components holds every collaborator the run and replay subcommands wire
// into a pipeline.Pipeline, assembled once from a loaded config so both
// commands build the exact same stack minus the capture/recognizer source.
type components struct {
	gate       *gate.Gate
	dispatcher *dispatch.Dispatcher
	stack      *display.Stack
	status     *display.StatusSet
	overlay    core.Overlay
	extractor  *learn.Extractor
	sessionLog *session.Log
	ttsEngine  core.TTSEngine // nil when tts_enabled is false or no Lokutor key is configured
}

// buildLargeModelChain orders the MT fallback chain the teacher-adjacent
// dispatcher expects when an LLM provider is in play: DeepL first for
// quality, broad-coverage providers after, budget providers last.
func buildLargeModelChain(cfg config.Config) []core.Translator {
	var chain []core.Translator
	if cfg.DeepLAPIKey != "" {
		chain = append(chain, mt.NewDeepL(cfg.DeepLAPIKey))
	}
	if cfg.GoogleAPIKey != "" {
		chain = append(chain, mt.NewGoogle(cfg.GoogleAPIKey))
	}
	if cfg.YandexAPIKey != "" {
		chain = append(chain, mt.NewYandex(cfg.YandexAPIKey))
	}
	if cfg.LibreTranslateURL != "" {
		chain = append(chain, mt.NewLibreTranslate(cfg.LibreTranslateURL, ""))
	}
	if cfg.CaiyunToken != "" {
		chain = append(chain, mt.NewCaiyun(cfg.CaiyunToken))
	}
	if cfg.NiutransAPIKey != "" {
		chain = append(chain, mt.NewNiutrans(cfg.NiutransAPIKey))
	}
	return chain
}

// buildSmallModelChain is the MT-only fallback order, widest coverage
// first since there is no LLM fallback behind it.
func buildSmallModelChain(cfg config.Config) []core.Translator {
	var chain []core.Translator
	if cfg.DeepLAPIKey != "" {
		chain = append(chain, mt.NewDeepL(cfg.DeepLAPIKey))
	}
	if cfg.GoogleAPIKey != "" {
		chain = append(chain, mt.NewGoogle(cfg.GoogleAPIKey))
	}
	if cfg.BaiduAppID != "" && cfg.BaiduSecret != "" {
		chain = append(chain, mt.NewBaidu(cfg.BaiduAppID, cfg.BaiduSecret))
	}
	if cfg.YoudaoAppKey != "" && cfg.YoudaoSecret != "" {
		chain = append(chain, mt.NewYoudao(cfg.YoudaoAppKey, cfg.YoudaoSecret))
	}
	if cfg.YandexAPIKey != "" {
		chain = append(chain, mt.NewYandex(cfg.YandexAPIKey))
	}
	if cfg.LibreTranslateURL != "" {
		chain = append(chain, mt.NewLibreTranslate(cfg.LibreTranslateURL, ""))
	}
	if cfg.CaiyunToken != "" {
		chain = append(chain, mt.NewCaiyun(cfg.CaiyunToken))
	}
	if cfg.NiutransAPIKey != "" {
		chain = append(chain, mt.NewNiutrans(cfg.NiutransAPIKey))
	}
	return chain
}

// buildLLM picks the first configured LLM provider; Anthropic is preferred
// to match the teacher's quality-first provider ordering.
func buildLLM(cfg config.Config) core.Translator {
	switch {
	case cfg.AnthropicAPIKey != "":
		return llm.NewAnthropicLLM(cfg.AnthropicAPIKey, "claude-3-5-sonnet-20241022")
	case cfg.OpenAIAPIKey != "":
		return llm.NewOpenAILLM(cfg.OpenAIAPIKey, "gpt-4o")
	case cfg.GoogleAPIKey != "":
		return llm.NewGoogleLLM(cfg.GoogleAPIKey, "gemini-1.5-flash")
	default:
		return nil
	}
}

func buildReconciler(cfg config.Config) pipeline.Reconciler {
	if cfg.Mode == core.ModeAudio {
		return reconcile.NewAudioReconciler(cfg.AudioReconcilerPeriod, cfg.AudioReconcilerChecks, cfg.AudioReconcilerMinWords)
	}
	if cfg.UseLargeModel {
		return reconcile.NewLLMReconciler(cfg.OCRLLMReconcilerStability, time.Duration(cfg.OCRLLMReconcilerMaxBuffer)*time.Millisecond)
	}
	return reconcile.NewMTReconciler(cfg.OCRMTReconcilerStability)
}

func buildComponents(cfg config.Config, logger core.Logger, sessionDir string) components {
	var llmProvider core.Translator
	if cfg.UseLargeModel {
		llmProvider = buildLLM(cfg)
	}

	dispatcherCfg := dispatch.Config{UseLargeModel: cfg.UseLargeModel && llmProvider != nil, LLMContextCount: cfg.LLMContextCount}
	status := display.NewStatusSet()
	onStatus := func(message string, ttl time.Duration, isGoodNews bool) {
		status.Push(message, ttl, isGoodNews)
	}
	dispatcher := dispatch.New(dispatcherCfg, llmProvider, buildLargeModelChain(cfg), buildSmallModelChain(cfg), logger, onStatus)

	gateCfg := gate.Config{
		DetectMixedContent:     cfg.DetectMixedContent,
		MaxWordsEnabled:        cfg.MaxWordsEnabled,
		MaxWordsForTranslation: cfg.MaxWordsForTranslation,
		AllowOverlap:           cfg.AllowOverlap,
		AutoDetectTextRegion:   cfg.AutoDetectTextRegion,
	}
	g := gate.New(gateCfg, logger)

	meta := core.SessionMetadata{
		SessionStart:      time.Now(),
		SourceLang:        cfg.SourceLang,
		TargetLang:        cfg.TargetLang,
		TranscriptionMode: cfg.Mode,
	}
	var sessionLog *session.Log
	if cfg.SessionOutputEnabled {
		sessionLog = session.New(sessionDir, meta, logger)
	}

	definitionFallback := func(ctx context.Context, word string, targetLang core.Language) (string, error) {
		return dispatcher.Translate(ctx, core.TranslateRequest{SourceText: word, SourceLang: core.LanguageZh, TargetLang: targetLang, Timeout: 5 * time.Second}), nil
	}
	extractor := learn.NewExtractor([]core.DictionaryLookup{learn.NewBundledDictionary()}, definitionFallback, func(batch learn.Batch) {
		logger.Info("learn batch", "keyword_count", len(batch.Keywords))
	})

	var ttsEngine core.TTSEngine
	if cfg.TTSEnabled && cfg.LokutorAPIKey != "" {
		ttsEngine = tts.NewLokutorTTS(cfg.LokutorAPIKey)
	}

	return components{
		gate:       g,
		dispatcher: dispatcher,
		stack:      display.NewStack(),
		status:     status,
		overlay:    display.NewConsoleOverlay(os.Stdout),
		extractor:  extractor,
		sessionLog: sessionLog,
		ttsEngine:  ttsEngine,
	}
}

func buildPipeline(cfg config.Config, recognizer core.Recognizer, c components, logger core.Logger) *pipeline.Pipeline {
	pcfg := pipeline.Config{Mode: cfg.Mode, SourceLang: cfg.SourceLang, TargetLang: cfg.TargetLang}
	onCommit := func(commit core.CommitEvent, result core.TranslationResult) {
		if c.sessionLog != nil {
			c.sessionLog.Append(session.EntryFromCommit(commit, result, time.Now()))
		}
		if c.ttsEngine != nil && result.IsFinal {
			go func() {
				if err := c.ttsEngine.Speak(context.Background(), result.TranslatedText, cfg.TargetLang); err != nil {
					logger.Warn("tts speak failed", "error", err.Error())
				}
			}()
		}
	}
	return pipeline.New(pcfg, recognizer, c.gate, buildReconciler(cfg), c.dispatcher, c.stack, c.status, c.overlay, logger, onCommit)
}
