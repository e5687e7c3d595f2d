package internal

import (
	"regexp"
)

// videoIDPattern matches an id after v=, a path separator, embed/ or youtu.be/.
// The trailing group rejects runs longer than 11 characters.
var videoIDPattern = regexp.MustCompile(`(?:v=|/|embed/|youtu\.be/)([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`)

// ExtractVideoID returns the first video ID found in a URL-like string
func ExtractVideoID(url string) (VideoID, error) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", ErrInvalidURL
	}
	return VideoID(m[1]), nil
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	return len(id) == 11 && idChars.MatchString(id)
}

var idChars = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
