package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nicksukie/livesub/internal/core"
	"github.com/nicksukie/livesub/internal/logging"
)

// runCmd wires the full translation stack against a live capture backend.
// Audio-mode transcription now has real engines (internal/recognize's Groq
// and Deepgram recognizers); screen capture and microphone device I/O
// remain deliberately external to this module (core.FrameSource/AudioSource
// are the pluggable seam a real deployment supplies — see the capture
// package doc comment), so this command wires every other collaborator and
// fails fast with a clear message at the one remaining gap, mirroring the
// teacher's own fail-fast checks in cmd/agent/main.go (missing API keys
// call log.Fatal before anything starts). Use `livesub replay` to exercise
// the full pipeline end to end against scripted input instead.
func runCmd(settingsPath *string) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the live translator against a capture backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*settingsPath)
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.Mode = core.TranscriptionMode(mode)
			}

			logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			logger.Info("starting livesub", "mode", string(cfg.Mode), "source_lang", string(cfg.SourceLang), "target_lang", string(cfg.TargetLang))

			c := buildComponents(cfg, logger, cfg.SessionOutputPath)
			defer c.dispatcher.Shutdown()
			if c.ttsEngine != nil {
				defer c.ttsEngine.Shutdown()
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			c.dispatcher.StartHealthCheck(ctx)

			if cfg.Mode == core.ModeAudio {
				recognizer := buildAudioRecognizer(cfg)
				if recognizer == nil {
					return fmt.Errorf("no audio transcription key configured (GROQ_API_KEY or DEEPGRAM_API_KEY): cannot build a Recognizer for mode %q", cfg.Mode)
				}
				logger.Info("audio recognizer ready", "engine", recognizer.Name())
				return fmt.Errorf("no microphone backend wired into this build: run's audio mode still needs a core.AudioSource supplied by the deployment (see internal/capture)")
			}

			return fmt.Errorf("no screen-capture backend wired into this build: run's ocr mode still needs a core.FrameSource supplied by the deployment (see internal/capture)")
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "override transcription_mode (ocr|audio)")
	return cmd
}

func waitForSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
