package capture

import (
	"github.com/nicksukie/livesub/internal/core"
)

// ReplayFrameSource is a deterministic core.FrameSource test double: it
// yields a fixed script of frames, one per Capture call, then reports no
// frame forever.
type ReplayFrameSource struct {
	Region core.Region
	frames []*core.Frame
	pos    int
}

func NewReplayFrameSource(region core.Region, frames ...*core.Frame) *ReplayFrameSource {
	return &ReplayFrameSource{Region: region, frames: frames}
}

func (r *ReplayFrameSource) Capture() (*core.Frame, bool) {
	if r.pos >= len(r.frames) {
		return nil, false
	}
	f := r.frames[r.pos]
	r.pos++
	return f, true
}

func (r *ReplayFrameSource) GetRegion() core.Region { return r.Region }

var _ core.FrameSource = (*ReplayFrameSource)(nil)

// ReplayAudioSource is a deterministic core.AudioSource test double: each
// call to Emit pushes the given chunk into its channel, for tests to drive at their own pace instead of a real capture device.
type ReplayAudioSource struct {
	ch     chan []byte
	closed bool
}

func NewReplayAudioSource(buffer int) *ReplayAudioSource {
	return &ReplayAudioSource{ch: make(chan []byte, buffer)}
}

func (r *ReplayAudioSource) Chunks() <-chan []byte { return r.ch }

// Emit pushes one chunk for the consumer to pick up; blocks if the
// internal buffer is full, matching a real device's backpressure.
func (r *ReplayAudioSource) Emit(chunk []byte) {
	if !r.closed {
		r.ch <- chunk
	}
}

func (r *ReplayAudioSource) Close() error {
	if !r.closed {
		r.closed = true
		close(r.ch)
	}
	return nil
}

var _ core.AudioSource = (*ReplayAudioSource)(nil)

// silentChunk16 builds an all-zero 16-bit PCM chunk of n samples, used by
// tests to exercise the overflow/elide policy without real audio.
func silentChunk16(n int) []byte {
	return make([]byte, n*2)
}

// loudChunk16 builds a full-scale 16-bit PCM chunk of n samples.
func loudChunk16(n int) []byte {
	out := make([]byte, n*2)
	for i := 0; i < n; i++ {
		out[2*i] = 0xff
		out[2*i+1] = 0x7f
	}
	return out
}
