package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when no video ID can be found in the input
	ErrInvalidURL = errors.New("invalid YouTube URL")

	// ErrTranscriptsDisabled is reported by the provider for videos without captions
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

	// ErrVideoUnavailable is reported by the provider for private, removed or region-locked videos
	ErrVideoUnavailable = errors.New("this video is unavailable")

	// ErrFetchFailed matches any other transcript provider failure (see FetchError)
	ErrFetchFailed = errors.New("fetching transcript failed")

	// ErrModelCallFailed matches any language model failure (see ModelError)
	ErrModelCallFailed = errors.New("model call failed")

	// ErrMissingAPIKey is a fatal startup error
	ErrMissingAPIKey = errors.New("API key is required - set it in config.toml or the OPENAI_API_KEY / GROQ_API_KEY environment variable")
)

// FetchError wraps an opaque transcript provider error
type FetchError struct {
	VideoID VideoID
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unexpected error fetching transcript for %s: %v", e.VideoID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// ModelError wraps a language model error
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

func (e *ModelError) Is(target error) bool { return target == ErrModelCallFailed }
