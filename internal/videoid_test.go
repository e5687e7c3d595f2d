package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL123"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"no scheme", "www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractVideoID(tt.url)
			require.NoError(t, err)
			assert.Equal(t, testVideoID, id)
		})
	}
}

func TestExtractVideoIDFirstOccurrence(t *testing.T) {
	id, err := ExtractVideoID("https://www.youtube.com/watch?v=aaaaaaaaaaa&next=/bbbbbbbbbbb")
	require.NoError(t, err)
	assert.Equal(t, VideoID("aaaaaaaaaaa"), id)
}

func TestExtractVideoIDInvalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"plain text", "summarize it"},
		{"no id", "https://www.youtube.com/"},
		{"too short", "https://youtu.be/dQw4w9W"},
		{"too long", "https://youtu.be/dQw4w9WgXcQX"},
		{"too long watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQXYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractVideoID(tt.url)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestIsValidYouTubeID(t *testing.T) {
	assert.True(t, IsValidYouTubeID("dQw4w9WgXcQ"))
	assert.True(t, IsValidYouTubeID("a-b_c-d_e-f"))
	assert.False(t, IsValidYouTubeID("dQw4w9WgXc"))
	assert.False(t, IsValidYouTubeID("dQw4w9WgXc!"))
}
