package core

import "errors"

var (
	// ErrEmptyResult is returned by a Recognizer or Translator that produced
	// nothing usable; callers treat it as a soft failure, never a crash.
	ErrEmptyResult = errors.New("empty result")

	// ErrGateClosed means the obstruction gate rejected a recognition result
	// before it reached a reconciler.
	ErrGateClosed = errors.New("obstruction gate closed")

	// ErrProviderUnavailable covers provider timeouts and HTTP failures in
	// the dispatcher's fallback chain.
	ErrProviderUnavailable = errors.New("translation provider unavailable")

	// ErrSanityRejected means an LLM candidate translation failed the
	// sanity rules and must not be cached.
	ErrSanityRejected = errors.New("translation failed sanity check")

	ErrAllProvidersFailed = errors.New("all translation providers failed")

	ErrNilProvider = errors.New("required provider is nil")

	ErrContextCancelled = errors.New("operation cancelled by context")
)
