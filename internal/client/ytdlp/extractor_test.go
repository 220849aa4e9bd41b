package ytdlp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/spotisaver/internal/constants"
)

// TestExtract_Validation tests the checks that run before yt-dlp is started.
func TestExtract_Validation(t *testing.T) {
	t.Parallel()

	extractor := NewExtractor("yt-dlp")

	_, err := extractor.Extract(t.Context(), &ExtractRequest{Query: "  ", Format: "mp3", Dir: t.TempDir()})
	require.ErrorIs(t, err, ErrEmptyQuery)

	_, err = extractor.Extract(t.Context(), &ExtractRequest{Query: "-", Format: "mp3", Dir: t.TempDir()})
	require.ErrorIs(t, err, ErrEmptyQuery)

	_, err = extractor.Extract(t.Context(), &ExtractRequest{Query: "Sade - Smooth Operator", Format: "mp3"})
	require.ErrorIs(t, err, ErrEmptyDirectory)

	missing := NewExtractor(filepath.Join(t.TempDir(), "no-such-yt-dlp"))
	_, err = missing.Extract(t.Context(), &ExtractRequest{Query: "Sade - Smooth Operator", Format: "mp3", Dir: t.TempDir()})
	require.ErrorIs(t, err, ErrToolNotFound)
}

// TestBuildCommand tests the yt-dlp argument list.
func TestBuildCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	mp3 := buildCommand("yt-dlp", dir, &ExtractRequest{Format: "mp3", Bitrate: 192})
	args := mp3.BuildCommand(t.Context(), searchPrefix+"Sade - Smooth Operator").Args

	assert.Contains(t, args, "--extract-audio")
	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "youtube:music")
	assert.Contains(t, args, "192K")
	assert.Contains(t, args, filepath.Join(dir, "source.%(ext)s"))
	assert.Contains(t, args, "ytsearch1:Sade - Smooth Operator")

	flac := buildCommand("yt-dlp", dir, &ExtractRequest{Format: "flac", Bitrate: 192})
	assert.NotContains(t, flac.BuildCommand(t.Context(), "q").Args, "192K")
}

// TestFindOutput tests locating the extracted file.
func TestFindOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := findOutput(dir, "mp3")
	require.ErrorIs(t, err, ErrNoOutput)

	// A leftover of another format does not count.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.webm"), []byte("video"), constants.DefaultFilePermissions))
	_, err = findOutput(dir, "mp3")
	require.ErrorIs(t, err, ErrNoOutput)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.mp3"), nil, constants.DefaultFilePermissions))
	_, err = findOutput(dir, "mp3")
	require.ErrorIs(t, err, ErrNoOutput)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.mp3"), []byte("ID3"), constants.DefaultFilePermissions))
	path, err := findOutput(dir, "mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "source.mp3"), path)
}
