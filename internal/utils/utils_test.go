//nolint:nolintlint,revive // utils is a common and acceptable package name for utility functions.
package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/spotisaver/internal/constants"
)

// TestReplaceIllegalPathChars tests the ReplaceIllegalPathChars function.
func TestReplaceIllegalPathChars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name untouched",
			input:    "Daft Punk - One More Time",
			expected: "Daft Punk - One More Time",
		},
		{
			name:     "colon and question mark",
			input:    "Sade - Best Hits? (Live: Remastered)",
			expected: "Sade - Best Hits (Live Remastered)",
		},
		{
			name:     "slashes collapse to one space",
			input:    `AC/DC - Back\In/Black`,
			expected: "AC DC - Back In Black",
		},
		{
			name:     "quotes pipes and angle brackets",
			input:    `"A" <B> | C*`,
			expected: "A B C",
		},
		{
			name:     "control characters and tabs",
			input:    "Track\t\x01Name\n",
			expected: "Track Name",
		},
		{
			name:     "non-ASCII kept",
			input:    "Björk - Jóga",
			expected: "Björk - Jóga",
		},
		{
			name:     "only illegal characters",
			input:    `???///`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := ReplaceIllegalPathChars(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, result, ReplaceIllegalPathChars(result), "must be idempotent")
		})
	}
}

// TestSafeInt64ToUint64 tests the SafeInt64ToUint64 function.
func TestSafeInt64ToUint64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), SafeInt64ToUint64(-5))
	assert.Equal(t, uint64(0), SafeInt64ToUint64(0))
	assert.Equal(t, uint64(4096), SafeInt64ToUint64(4096))
}

// TestSetFileExtension tests the SetFileExtension function.
func TestSetFileExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filename  string
		extension string
		replace   bool
		expected  string
	}{
		{
			name:      "append to bare name",
			filename:  "My_Playlist",
			extension: constants.ExtensionCSV,
			expected:  "My_Playlist.csv",
		},
		{
			name:      "extension without dot",
			filename:  "My_Playlist",
			extension: "csv",
			expected:  "My_Playlist.csv",
		},
		{
			name:      "dotted display name keeps its dot",
			filename:  "Vol.2",
			extension: constants.ExtensionCSV,
			expected:  "Vol.2.csv",
		},
		{
			name:      "replace existing extension",
			filename:  "cover.png",
			extension: constants.ExtensionJPEG,
			replace:   true,
			expected:  "cover.jpg",
		},
		{
			name:      "same extension",
			filename:  "table.csv",
			extension: constants.ExtensionCSV,
			replace:   true,
			expected:  "table.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, SetFileExtension(tt.filename, tt.extension, tt.replace))
		})
	}
}

// TestIsFileExist tests the IsFileExist function.
func TestIsFileExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")

	exists, err := IsFileExist(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte("x"), constants.DefaultFilePermissions))

	exists, err = IsFileExist(path)
	require.NoError(t, err)
	assert.True(t, exists)

	// Directories do not count as files.
	exists, err = IsFileExist(dir)
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestReadUniqueLinesFromFile tests the ReadUniqueLinesFromFile function.
func TestReadUniqueLinesFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://open.spotify.com/playlist/a\n\n  https://open.spotify.com/playlist/b  \n" +
		"https://open.spotify.com/playlist/a\n"
	require.NoError(t, os.WriteFile(path, []byte(content), constants.DefaultFilePermissions))

	lines, err := ReadUniqueLinesFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://open.spotify.com/playlist/a",
		"https://open.spotify.com/playlist/b",
	}, lines)

	_, err = ReadUniqueLinesFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

// TestExtractNamedGroup tests the ExtractNamedGroup function.
func TestExtractNamedGroup(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`playlist/(?P<ID>[a-zA-Z0-9]+)`)

	assert.Equal(t, "37i9dQZF1DX", ExtractNamedGroup(re, "ID", "https://open.spotify.com/playlist/37i9dQZF1DX?si=1"))
	assert.Empty(t, ExtractNamedGroup(re, "ID", "https://open.spotify.com/album/xyz"))
	assert.Empty(t, ExtractNamedGroup(re, "missing", "https://open.spotify.com/playlist/abc"))
}

// TestIsTextContentType tests the IsTextContentType function.
func TestIsTextContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		expected    bool
	}{
		{"text/plain", true},
		{"text/html; charset=utf-8", true},
		{"application/json", true},
		{"application/x-www-form-urlencoded", true},
		{"text/plain; charset=iso-8859-1", false},
		{"image/jpeg", false},
		{"invalid content type;;", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsTextContentType(tt.contentType))
		})
	}
}

// TestMapAndFilter tests the Map and Filter helpers.
func TestMapAndFilter(t *testing.T) {
	t.Parallel()

	values := []int{1, 2, 3, 4}

	assert.Equal(t, []string{"1", "2", "3", "4"}, Map(values, strconv.Itoa))
	assert.Equal(t, []int{2, 4}, Filter(values, func(v int) bool { return v%2 == 0 }))
	assert.Empty(t, Filter([]int{}, func(int) bool { return true }))
}
