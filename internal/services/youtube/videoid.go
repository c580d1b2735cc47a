package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	videoIDRegex   = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	videoURLRegexs = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	}
)

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// ParseVideoID extracts the video ID from various YouTube URL formats.
// Supports:
//   - https://www.youtube.com/watch?v=VIDEO_ID
//   - https://youtu.be/VIDEO_ID
//   - https://www.youtube.com/embed/VIDEO_ID and /shorts/VIDEO_ID
//   - Just the video ID itself (11 characters)
func ParseVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)

	if videoIDRegex.MatchString(input) {
		return input, nil
	}

	for _, pattern := range videoURLRegexs {
		if matches := pattern.FindStringSubmatch(input); len(matches) >= 2 {
			return matches[1], nil
		}
	}

	return "", fmt.Errorf("invalid YouTube URL or video ID: %s", input)
}
