package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSanitizeName tests display name sanitization.
func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"punctuation dropped", "Sade: Best Hits? (Live)", "Sade_Best_Hits_(Live)"},
		{"allowed punctuation kept", "Mix-Tape_v1.2 (2024)", "Mix-Tape_v1.2_(2024)"},
		{"trimmed before underscores", "  Chill  ", "Chill"},
		{"path separators dropped", "../../etc/passwd", "....etcpasswd"},
		{"non-ASCII letters kept", "Björk's Jóga", "Björks_Jóga"},
		{"apostrophe in user folder", "u1's spotify playlist data", "u1s_spotify_playlist_data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := SanitizeName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)

			again, err := SanitizeName(result)
			require.NoError(t, err)
			assert.Equal(t, result, again, "must be idempotent")
		})
	}

	for _, input := range []string{"", "   ", "?!*:/", "🎵🎶"} {
		_, err := SanitizeName(input)
		require.ErrorIs(t, err, ErrInvalidName, input)
	}
}
