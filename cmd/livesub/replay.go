package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nicksukie/livesub/internal/capture"
	"github.com/nicksukie/livesub/internal/core"
	"github.com/nicksukie/livesub/internal/logging"
	"github.com/nicksukie/livesub/internal/recognize"
)

// replayCmd drives the full pipeline end to end against a small scripted
// script of Chinese captions, the CLI analogue of the teacher's
// table-driven orchestrator tests: no live device, deterministic output,
// useful for smoke-testing a settings file and provider keys together.
func replayCmd(settingsPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run the pipeline against a scripted sequence of captions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*settingsPath)
			if err != nil {
				return err
			}
			cfg.Mode = core.ModeOCR

			logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			c := buildComponents(cfg, logger, cfg.SessionOutputPath)
			defer c.dispatcher.Shutdown()
			if c.ttsEngine != nil {
				defer c.ttsEngine.Shutdown()
			}

			script := []core.RecognitionResult{
				{Text: "你好世界", Timestamp: time.Now()},
				{Text: "你好世界，欢迎使用", Timestamp: time.Now()},
				{Text: "你好世界，欢迎使用实时翻译", Timestamp: time.Now()},
			}
			recognizer := recognize.NewReplaySource(recognize.NewChain(nil), script...)
			region := core.Region{Left: 0, Top: 0, Width: 640, Height: 120}
			frames := make([]*core.Frame, len(script))
			for i := range frames {
				frames[i] = &core.Frame{Width: region.Width, Height: region.Height, Timestamp: time.Now()}
			}
			source := capture.NewReplayFrameSource(region, frames...)

			p := buildPipeline(cfg, recognizer, c, logger)

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			p.Start(ctx)
			defer p.Shutdown()

			capture.OCRLoop(ctx, source, recognizer, func(result core.RecognitionResult, region core.Region, now time.Time) {
				p.IngestRecognition(result, region, now)
			})

			<-ctx.Done()
			fmt.Println("replay complete")
			return nil
		},
	}
	return cmd
}
