package internal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// CaptionOptions selects which caption track the provider should return
type CaptionOptions struct {
	// Language is the preferred caption language code, empty for the provider default
	Language string
	// Fallback allows the provider default when Language has no captions
	Fallback bool
}

// TranscriptProvider retrieves raw caption entries for a video.
// Implementations report ErrTranscriptsDisabled and ErrVideoUnavailable
// for those conditions and any other error for everything else.
type TranscriptProvider interface {
	Fetch(ctx context.Context, id VideoID, opts CaptionOptions) ([]TranscriptEntry, error)
}

// FormatTimestamp renders a start offset as MM:SS, minutes are not capped at 59
func FormatTimestamp(start float64) string {
	minutes := int(math.Floor(start / 60))
	seconds := int(math.Floor(math.Mod(start, 60)))
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatTranscript renders entries as "[MM:SS] text" lines
func FormatTranscript(entries []TranscriptEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, "["+FormatTimestamp(e.Start)+"] "+e.Text)
	}
	return strings.Join(lines, "\n")
}

// TranscriptCache memoizes formatted transcripts by video ID.
// It is not safe for concurrent use.
type TranscriptCache struct {
	entries map[VideoID]string
}

// NewTranscriptCache creates an empty cache
func NewTranscriptCache() *TranscriptCache {
	return &TranscriptCache{entries: make(map[VideoID]string)}
}

// Get returns the cached transcript for id
func (c *TranscriptCache) Get(id VideoID) (string, bool) {
	text, ok := c.entries[id]
	return text, ok
}

// Put stores a transcript; an existing entry is never replaced
func (c *TranscriptCache) Put(id VideoID, text string) {
	if _, ok := c.entries[id]; ok {
		return
	}
	c.entries[id] = text
}

// Clear removes every cached transcript
func (c *TranscriptCache) Clear() {
	clear(c.entries)
}

// Len returns the number of cached transcripts
func (c *TranscriptCache) Len() int {
	return len(c.entries)
}

// TranscriptFetcher resolves URLs to formatted transcripts through a cache
type TranscriptFetcher struct {
	provider TranscriptProvider
	cache    *TranscriptCache
	options  CaptionOptions
	timeout  time.Duration
}

// NewTranscriptFetcher creates a fetcher storing results in cache.
// A zero timeout leaves the caller's context untouched.
func NewTranscriptFetcher(provider TranscriptProvider, cache *TranscriptCache, opts CaptionOptions, timeout time.Duration) *TranscriptFetcher {
	return &TranscriptFetcher{
		provider: provider,
		cache:    cache,
		options:  opts,
		timeout:  timeout,
	}
}

// Fetch returns the formatted transcript for the video referenced by url.
// The provider is called at most once per video ID.
func (f *TranscriptFetcher) Fetch(ctx context.Context, url string) (VideoID, string, error) {
	id, err := ExtractVideoID(url)
	if err != nil {
		return "", "", err
	}

	if text, ok := f.cache.Get(id); ok {
		return id, text, nil
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	entries, err := f.provider.Fetch(ctx, id, f.options)
	if err != nil {
		return id, "", classifyFetchError(id, err)
	}

	text := FormatTranscript(entries)
	f.cache.Put(id, text)
	return id, text, nil
}

func classifyFetchError(id VideoID, err error) error {
	switch {
	case errors.Is(err, ErrTranscriptsDisabled):
		return ErrTranscriptsDisabled
	case errors.Is(err, ErrVideoUnavailable):
		return ErrVideoUnavailable
	default:
		var fe *FetchError
		if errors.As(err, &fe) {
			return fe
		}
		return &FetchError{VideoID: id, Err: err}
	}
}
