package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func configShowCmd(settingsPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print settings-store and environment values merged into one config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*settingsPath)
			if err != nil {
				return err
			}

			fmt.Println("Transcription:")
			fmt.Printf("  Mode:        %s\n", cfg.Mode)
			fmt.Printf("  Source lang: %s\n", cfg.SourceLang)
			fmt.Printf("  Target lang: %s\n", cfg.TargetLang)
			fmt.Println()

			fmt.Println("Translation providers:")
			fmt.Printf("  Use large model:    %t\n", cfg.UseLargeModel)
			fmt.Printf("  LLM context count:  %d\n", cfg.LLMContextCount)
			fmt.Printf("  DeepL key:          %s\n", maskSecret(cfg.DeepLAPIKey))
			fmt.Printf("  Google key:         %s\n", maskSecret(cfg.GoogleAPIKey))
			fmt.Printf("  Baidu app/secret:   %s / %s\n", maskSecret(cfg.BaiduAppID), maskSecret(cfg.BaiduSecret))
			fmt.Printf("  Youdao key/secret:  %s / %s\n", maskSecret(cfg.YoudaoAppKey), maskSecret(cfg.YoudaoSecret))
			fmt.Printf("  Yandex key:         %s\n", maskSecret(cfg.YandexAPIKey))
			fmt.Printf("  Caiyun token:       %s\n", maskSecret(cfg.CaiyunToken))
			fmt.Printf("  Niutrans key:       %s\n", maskSecret(cfg.NiutransAPIKey))
			fmt.Printf("  LibreTranslate URL: %s\n", cfg.LibreTranslateURL)
			fmt.Printf("  Anthropic key:      %s\n", maskSecret(cfg.AnthropicAPIKey))
			fmt.Printf("  OpenAI key:         %s\n", maskSecret(cfg.OpenAIAPIKey))
			fmt.Printf("  Groq key:           %s\n", maskSecret(cfg.GroqAPIKey))
			fmt.Printf("  Deepgram key:       %s\n", maskSecret(cfg.DeepgramAPIKey))
			fmt.Println()

			fmt.Println("Text-to-speech:")
			fmt.Printf("  Enabled:     %t\n", cfg.TTSEnabled)
			fmt.Printf("  Lokutor key: %s\n", maskSecret(cfg.LokutorAPIKey))
			fmt.Println()

			fmt.Println("Gate:")
			fmt.Printf("  Detect mixed content:   %t\n", cfg.DetectMixedContent)
			fmt.Printf("  Max words enabled:      %t\n", cfg.MaxWordsEnabled)
			fmt.Printf("  Max words for translation: %d\n", cfg.MaxWordsForTranslation)
			fmt.Printf("  Allow overlap:          %t\n", cfg.AllowOverlap)
			fmt.Printf("  Auto-detect text region: %t\n", cfg.AutoDetectTextRegion)
			fmt.Println()

			fmt.Println("Reconcilers:")
			fmt.Printf("  Audio period/checks/min words: %s / %d / %d\n", cfg.AudioReconcilerPeriod, cfg.AudioReconcilerChecks, cfg.AudioReconcilerMinWords)
			fmt.Printf("  Audio silence/max phrase:       %s / %s\n", cfg.AudioSilenceDuration, cfg.AudioMaxPhraseDuration)
			fmt.Printf("  OCR MT stability:               %s\n", cfg.OCRMTReconcilerStability)
			fmt.Printf("  OCR LLM stability/max buffer:   %s / %d\n", cfg.OCRLLMReconcilerStability, cfg.OCRLLMReconcilerMaxBuffer)
			fmt.Printf("  OCR min words before translate: %d\n", cfg.OCRMinWordsBeforeTranslate)
			fmt.Printf("  OCR similarity substring chars: %d\n", cfg.OCRSimilaritySubstringChars)
			fmt.Println()

			fmt.Println("Session output:")
			fmt.Printf("  Enabled: %t\n", cfg.SessionOutputEnabled)
			fmt.Printf("  Path:    %s\n", cfg.SessionOutputPath)
			fmt.Println()

			fmt.Println("Logging:")
			fmt.Printf("  Level:  %s\n", cfg.LogLevel)
			fmt.Printf("  Format: %s\n", cfg.LogFormat)

			return nil
		},
	})
	return cmd
}

// maskSecret masks a secret string for display.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "(set)"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
