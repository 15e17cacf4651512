// Package config loads the typed Config struct the rest of the module is
// constructed from: environment variables (via godotenv, as the teacher's
// cmd/agent/main.go loads its provider keys) layered under settings-store
// defaults, with cmd/livesub's cobra flags applied last.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nicksukie/livesub/internal/core"
)

// Config is the module's complete runtime configuration, assembled from
// three layers in increasing priority: settings-store defaults, process
// environment, CLI flags.
type Config struct {
	Mode       core.TranscriptionMode
	SourceLang core.Language
	TargetLang core.Language

	// Provider API keys, read from the environment only — never persisted
	// to the settings store.
	DeepLAPIKey     string
	GoogleAPIKey    string
	BaiduAppID      string
	BaiduSecret     string
	YoudaoAppKey    string
	YoudaoSecret    string
	YandexAPIKey    string
	CaiyunToken     string
	NiutransAPIKey  string
	LibreTranslateURL string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GroqAPIKey      string
	DeepgramAPIKey  string
	LokutorAPIKey   string

	UseLargeModel   bool
	LLMContextCount int

	TTSEnabled bool

	DetectMixedContent      bool
	MaxWordsEnabled         bool
	MaxWordsForTranslation  int
	AllowOverlap            bool
	AutoDetectTextRegion    bool

	SessionOutputEnabled bool
	SessionOutputPath    string

	AudioReconcilerPeriod   time.Duration
	AudioReconcilerChecks   int
	AudioReconcilerMinWords int
	AudioSilenceDuration    time.Duration
	AudioMaxPhraseDuration  time.Duration

	OCRMTReconcilerStability   time.Duration
	OCRLLMReconcilerStability  time.Duration
	OCRLLMReconcilerMaxBuffer  int
	OCRMinWordsBeforeTranslate int
	OCRSimilaritySubstringChars int

	LogLevel  string
	LogFormat string
}

// Default returns the spec's documented defaults, overridable by settings
// and environment.
func Default() Config {
	return Config{
		Mode:                        core.ModeOCR,
		SourceLang:                  core.LanguageZh,
		TargetLang:                  core.LanguageEn,
		UseLargeModel:               true,
		LLMContextCount:             3,
		DetectMixedContent:          true,
		AutoDetectTextRegion:        true,
		AudioReconcilerPeriod:       2 * time.Second,
		AudioReconcilerChecks:       4,
		AudioReconcilerMinWords:     7,
		AudioSilenceDuration:        1200 * time.Millisecond,
		AudioMaxPhraseDuration:      15 * time.Second,
		OCRMTReconcilerStability:    200 * time.Millisecond,
		OCRLLMReconcilerStability:   120 * time.Millisecond,
		OCRLLMReconcilerMaxBuffer:   600,
		OCRMinWordsBeforeTranslate:  1,
		OCRSimilaritySubstringChars: 20,
		LogLevel:                    "info",
		LogFormat:                   "console",
	}
}

// Load builds a Config by starting from Default, applying settings-store
// values where present, then overlaying process environment variables
// (including a local .env file, loaded the way the teacher's main.go does).
func Load(store core.SettingsStore) Config {
	_ = godotenv.Load()

	cfg := Default()
	applySettings(&cfg, store)
	applyEnv(&cfg)
	return cfg
}

func applySettings(cfg *Config, store core.SettingsStore) {
	if store == nil {
		return
	}
	if v, ok := store.Get("transcription_mode"); ok {
		cfg.Mode = core.TranscriptionMode(v)
	}
	if v, ok := store.Get("detect_mixed_content"); ok {
		cfg.DetectMixedContent = v == "true"
	}
	if v, ok := store.Get("max_words_enabled"); ok {
		cfg.MaxWordsEnabled = v == "true"
	}
	if v, ok := store.Get("max_words_for_translation"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxWordsForTranslation = n
		}
	}
	if v, ok := store.Get("allow_overlap"); ok {
		cfg.AllowOverlap = v == "true"
	}
	if v, ok := store.Get("auto_detect_text_region"); ok {
		cfg.AutoDetectTextRegion = v == "true"
	}
	if v, ok := store.Get("llm_context_count"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLMContextCount = n
		}
	}
	if v, ok := store.Get("tts_enabled"); ok {
		cfg.TTSEnabled = v == "true"
	}
	if v, ok := store.Get("session_output_enabled"); ok {
		cfg.SessionOutputEnabled = v == "true"
	}
	if v, ok := store.Get("session_output_path"); ok {
		cfg.SessionOutputPath = v
	}
	if v, ok := store.Get("ocr_mt_reconciler_stability"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OCRMTReconcilerStability = d
		}
	}
	if v, ok := store.Get("ocr_llm_reconciler_stability"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OCRLLMReconcilerStability = d
		}
	}
	if v, ok := store.Get("ocr_llm_reconciler_max_buffer"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OCRLLMReconcilerMaxBuffer = n
		}
	}
	if v, ok := store.Get("ocr_min_words_before_translate"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OCRMinWordsBeforeTranslate = n
		}
	}
	if v, ok := store.Get("ocr_similarity_substring_chars"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OCRSimilaritySubstringChars = n
		}
	}
}

func applyEnv(cfg *Config) {
	cfg.DeepLAPIKey = envOr("DEEPL_API_KEY", cfg.DeepLAPIKey)
	cfg.GoogleAPIKey = envOr("GOOGLE_API_KEY", cfg.GoogleAPIKey)
	cfg.BaiduAppID = envOr("BAIDU_APP_ID", cfg.BaiduAppID)
	cfg.BaiduSecret = envOr("BAIDU_SECRET", cfg.BaiduSecret)
	cfg.YoudaoAppKey = envOr("YOUDAO_APP_KEY", cfg.YoudaoAppKey)
	cfg.YoudaoSecret = envOr("YOUDAO_SECRET", cfg.YoudaoSecret)
	cfg.YandexAPIKey = envOr("YANDEX_API_KEY", cfg.YandexAPIKey)
	cfg.CaiyunToken = envOr("CAIYUN_TOKEN", cfg.CaiyunToken)
	cfg.NiutransAPIKey = envOr("NIUTRANS_API_KEY", cfg.NiutransAPIKey)
	cfg.LibreTranslateURL = envOr("LIBRETRANSLATE_URL", cfg.LibreTranslateURL)
	cfg.AnthropicAPIKey = envOr("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	cfg.OpenAIAPIKey = envOr("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.GroqAPIKey = envOr("GROQ_API_KEY", cfg.GroqAPIKey)
	cfg.DeepgramAPIKey = envOr("DEEPGRAM_API_KEY", cfg.DeepgramAPIKey)
	cfg.LokutorAPIKey = envOr("LOKUTOR_API_KEY", cfg.LokutorAPIKey)

	if v := os.Getenv("AGENT_SOURCE_LANGUAGE"); v != "" {
		cfg.SourceLang = core.Language(v)
	}
	if v := os.Getenv("AGENT_TARGET_LANGUAGE"); v != "" {
		cfg.TargetLang = core.Language(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
