package ytdlp

//go:generate $MOCKGEN -source=extractor.go -destination=mocks/extractor_mock.go

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/oshokin/spotisaver/internal/logger"
)

const (
	// searchPrefix asks yt-dlp for exactly one search result.
	searchPrefix = "ytsearch1:"
	// sourceBaseName is the file name (without extension) yt-dlp writes.
	sourceBaseName = "source"
	// extractorArgs prefers YouTube Music results.
	extractorArgs = "youtube:music"
	// progressInterval throttles yt-dlp progress callbacks.
	progressInterval = 500 * time.Millisecond
	// formatWithQuality is the only format that takes an audio quality.
	formatWithQuality = "mp3"
)

// ExtractRequest describes one search-and-extract invocation.
type ExtractRequest struct {
	// Query is the free-text search, usually "artist - title".
	Query string
	// Format is the audio format to extract to (mp3, flac, wav).
	Format string
	// Bitrate is the target bitrate in kbps. Used for mp3 only.
	Bitrate int
	// Dir is the scratch directory that receives the audio file.
	Dir string
}

// Extractor searches for a track and extracts its audio.
type Extractor interface {
	// Extract runs the search and returns the path of the extracted audio file.
	Extract(ctx context.Context, req *ExtractRequest) (string, error)
}

// ExtractorImpl implements Extractor using the yt-dlp executable.
type ExtractorImpl struct {
	executable string
}

// NewExtractor creates an extractor that runs the given yt-dlp executable.
// A bare name is resolved through PATH when the extractor runs.
func NewExtractor(executable string) Extractor {
	return &ExtractorImpl{executable: executable}
}

// Extract runs yt-dlp and locates its output. The exit status alone is not trusted:
// a successful run without an audio file is reported as ErrNoOutput, and a failed
// run that still produced one is accepted.
func (e *ExtractorImpl) Extract(ctx context.Context, req *ExtractRequest) (string, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" || query == "-" {
		return "", ErrEmptyQuery
	}

	if req.Dir == "" {
		return "", ErrEmptyDirectory
	}

	executable, err := exec.LookPath(e.executable)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrToolNotFound, err)
	}

	absDir, err := filepath.Abs(req.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}

	command := buildCommand(executable, absDir, req)
	command.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes > 0 {
			logger.Debugf(ctx, "yt-dlp %q: %d/%d bytes", query, update.DownloadedBytes, update.TotalBytes)
		}
	})

	_, runErr := command.Run(ctx, searchPrefix+query)

	path, err := findOutput(absDir, req.Format)
	if err != nil {
		if runErr != nil {
			return "", fmt.Errorf("%w: %w", err, runErr)
		}

		return "", err
	}

	if runErr != nil {
		logger.Warnf(ctx, "yt-dlp reported an error for %q but produced %s: %v", query, filepath.Base(path), runErr)
	}

	return path, nil
}

// buildCommand configures yt-dlp for a single audio-only extraction into dir.
func buildCommand(executable, dir string, req *ExtractRequest) *ytdlp.Command {
	command := ytdlp.New().
		SetExecutable(executable).
		ExtractAudio().
		AudioFormat(req.Format).
		ExtractorArgs(extractorArgs).
		NoKeepVideo().
		RmCacheDir().
		NoPostOverwrites().
		NoPlaylist().
		NoWarnings().
		Output(filepath.Join(dir, sourceBaseName+".%(ext)s"))

	if req.Format == formatWithQuality && req.Bitrate > 0 {
		command.AudioQuality(strconv.Itoa(req.Bitrate) + "K")
	}

	return command
}

// findOutput returns the extracted file in dir with the requested format's extension.
func findOutput(dir, format string) (string, error) {
	path := filepath.Join(dir, sourceBaseName+"."+format)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNoOutput, filepath.Base(path))
		}

		return "", err
	}

	if info.IsDir() || info.Size() == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrNoOutput, filepath.Base(path))
	}

	return path, nil
}
