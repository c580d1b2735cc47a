package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseVideoID tests all supported YouTube URL formats.
func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantID    string
		wantError bool
	}{
		{name: "standard youtube.com URL", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ"},
		{name: "youtube.com without www", input: "https://youtube.com/watch?v=dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ"},
		{name: "extra params", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx&index=2", wantID: "dQw4w9WgXcQ"},
		{name: "youtu.be short URL", input: "https://youtu.be/dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ"},
		{name: "embed URL", input: "https://www.youtube.com/embed/dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ"},
		{name: "shorts URL", input: "https://www.youtube.com/shorts/dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ"},
		{name: "plain video ID", input: "dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ"},
		{name: "dashes and underscores", input: "a-B_c1D2e3F", wantID: "a-B_c1D2e3F"},
		{name: "surrounding whitespace", input: "  dQw4w9WgXcQ  ", wantID: "dQw4w9WgXcQ"},
		{name: "empty string", input: "", wantError: true},
		{name: "random URL", input: "https://www.google.com", wantError: true},
		{name: "too short", input: "abc", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.input)
			if tt.wantError {
				assert.Error(t, err, "got %q", got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got)
		})
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}
