package capture

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/nicksukie/livesub/internal/core"
)

const (
	audioQueueCapacity     = 100
	audioHighOccupancy     = 80
	audioElideOccupancy    = 60
	audioDropOnOverflowMax = 3
	audioTickInterval      = 100 * time.Millisecond
	audioBatchDrainMax     = 5
	audioOverflowNoticeTTL = 8 * time.Second
	overflowNoticeInterval = 5 * time.Second
)

type audioChunk struct {
	data []byte
	rms  float64
}

// audioQueue is the bounded ~100-capacity queue between the audio source
// and the recognizer, with the overflow policy spec's §4.1 describes:
// above 80 occupancy, drop up to three oldest silent chunks before
// enqueueing; the hard capacity itself still drops the oldest chunk
// overall if that is not enough headroom.
type audioQueue struct {
	mu    sync.Mutex
	items []audioChunk
}

func (q *audioQueue) push(data []byte, rms, silenceThreshold float64) (overflowed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) > audioHighOccupancy {
		dropped := 0
		kept := q.items[:0:0]
		for _, it := range q.items {
			if dropped < audioDropOnOverflowMax && it.rms < silenceThreshold {
				dropped++
				continue
			}
			kept = append(kept, it)
		}
		q.items = kept
	}

	q.items = append(q.items, audioChunk{data: data, rms: rms})
	if len(q.items) > audioQueueCapacity {
		q.items = q.items[1:]
		overflowed = true
	}
	return overflowed
}

// drain pops up to max chunks from the front. When eliding is true (queue
// occupancy was above audioElideOccupancy), chunks whose RMS is below
// eludeThreshold are discarded rather than returned.
func (q *audioQueue) drain(max int, eliding bool, eludeThreshold float64) []audioChunk {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]audioChunk, 0, max)
	for len(out) < max && len(q.items) > 0 {
		next := q.items[0]
		q.items = q.items[1:]
		if eliding && next.rms < eludeThreshold {
			continue
		}
		out = append(out, next)
	}
	return out
}

func (q *audioQueue) occupancy() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// rms computes root-mean-square amplitude of a little-endian int16 PCM
// buffer, the same calculation the teacher's main.go performs inline on
// each malgo callback.
func rms(pcm []byte) float64 {
	if len(pcm) < 2 {
		return 0
	}
	var sum float64
	n := 0
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := int16(pcm[i]) | int16(pcm[i+1])<<8
		f := float64(sample) / 32768.0
		sum += f * f
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}

// AudioLoop consumes source's chunk channel into the overflow-policy
// queue, then feeds the recognizer from the queue at a fixed tick,
// batch-draining and eliding near-silent chunks once occupancy climbs
// past audioElideOccupancy. onOverflow is called (rate-limited) when the
// hard capacity itself has to drop a chunk.
func AudioLoop(ctx context.Context, source core.AudioSource, recognizer core.Recognizer, silenceThreshold float64, sink ResultSink, onOverflow func(message string, ttl time.Duration)) {
	q := &audioQueue{}
	var lastOverflowNotice time.Time

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case chunk, ok := <-source.Chunks():
				if !ok {
					return
				}
				if q.push(chunk, rms(chunk), silenceThreshold) {
					if onOverflow != nil && time.Since(lastOverflowNotice) > overflowNoticeInterval {
						onOverflow("audio queue overflow: dropping oldest chunks", audioOverflowNoticeTTL)
						lastOverflowNotice = time.Now()
					}
				}
			}
		}
	}()

	ticker := time.NewTicker(audioTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			occ := q.occupancy()
			eliding := occ > audioElideOccupancy
			max := 1
			if eliding {
				max = audioBatchDrainMax
			}
			for _, chunk := range q.drain(max, eliding, silenceThreshold/2) {
				result, err := recognizer.Process(ctx, core.RecognitionInput{Audio: chunk.data})
				if err != nil || result.Text == "" {
					continue
				}
				sink(result, core.Region{}, time.Now())
			}
		}
	}
}
