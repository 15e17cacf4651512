package core

import "context"

// Recognizer turns a frame or audio buffer into a RecognitionResult.
// Implementations must never panic into the pipeline; on failure they
// return an empty result and a non-nil error, which the caller logs and
// discards. Must be safe to call from a non-UI goroutine.
type Recognizer interface {
	Process(ctx context.Context, in RecognitionInput) (RecognitionResult, error)
	Name() string
}

// Translator is the dispatcher's capability seam for a single provider,
// classical MT or LLM alike.
type Translator interface {
	Name() string
	IsLLM() bool
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TTSEngine is consumed by the pipeline's TTS worker. Stop is cooperative;
// Shutdown joins the underlying process or stream.
type TTSEngine interface {
	Speak(ctx context.Context, text string, lang Language) error
	Stop()
	Shutdown() error
}

// Overlay is the transparent window the pipeline renders into. It never
// calls back into the core except through the CoreHandle's event channel.
type Overlay interface {
	UpdateText(body string, allowShow bool, partialLast bool)
	SetStatusMessages(msgs []StatusMessage)
	SetInfoPillText(wordCounts map[string]int)
	UpdatePlayPauseState(playing bool)
	SnapAwayFromOCR(region Region, gap int)
}

// OverlayEventType enumerates what the overlay may report back through a
// CoreHandle, replacing a direct back-reference into the pipeline.
type OverlayEventType string

const (
	OverlayEventPause          OverlayEventType = "PAUSE"
	OverlayEventResume         OverlayEventType = "RESUME"
	OverlayEventRegionChanged  OverlayEventType = "REGION_CHANGED"
	OverlayEventPlayPauseToggle OverlayEventType = "PLAY_PAUSE_TOGGLE"
)

type OverlayEvent struct {
	Type   OverlayEventType
	Region *Region
}

// CoreHandle is the one reference an Overlay implementation is given back;
// it exposes only what the overlay is allowed to ask of the core.
type CoreHandle interface {
	Events() <-chan OverlayEvent
	CurrentRegion() Region
	RequestPause()
	RequestResume()
}

// SettingsStore is the external key-value persistence seam (§6 of the
// specification). Keys and values are both strings; callers parse scalars.
type SettingsStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// DictionaryLookup is the external keyword-definition data source consumed
// by the learn side-channel on a dictionary hit.
type DictionaryLookup interface {
	Lookup(word string) (definition, pronunciation string, ok bool)
}

// FrameSource produces raw frames from an external OCR capture primitive.
type FrameSource interface {
	Capture() (*Frame, bool)
	GetRegion() Region
}

// AudioSource produces fixed-duration mono audio chunks from an external
// audio capture primitive. Each chunk is little-endian 16-bit PCM, not
// float32; the bundled recognizers send chunks as 44.1kHz audio, not 16kHz.
type AudioSource interface {
	Chunks() <-chan []byte
	Close() error
}
