package capture

import (
	"context"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

const ocrPollInterval = 150 * time.Millisecond

// ResultSink is the pipeline's IngestRecognition method, accepted as a plain
// function to avoid capture importing internal/pipeline.
type ResultSink func(result core.RecognitionResult, region core.Region, now time.Time)

// OCRLoop polls a FrameSource, keeping only the newest captured frame (a
// capacity-1 newest-wins queue), and feeds every non-empty recognition
// result to sink. Runs until ctx is cancelled.
func OCRLoop(ctx context.Context, source core.FrameSource, recognizer core.Recognizer, sink ResultSink) {
	q := &frameQueue[*core.Frame]{}
	ticker := time.NewTicker(ocrPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if frame, ok := source.Capture(); ok {
				q.Push(frame)
			}
			frame, ok := q.Pop()
			if !ok {
				continue
			}
			result, err := recognizer.Process(ctx, core.RecognitionInput{Frame: frame})
			if err != nil || result.Text == "" {
				continue
			}
			sink(result, source.GetRegion(), time.Now())
		}
	}
}
