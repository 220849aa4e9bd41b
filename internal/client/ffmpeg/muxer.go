package ffmpeg

//go:generate $MOCKGEN -source=muxer.go -destination=mocks/muxer_mock.go

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// formatMP3 is the only format that takes ID3 version flags.
	formatMP3 = "mp3"
	// formatFLAC can carry an attached picture alongside MP3.
	formatFLAC = "flac"
	// maxStderrLength bounds the ffmpeg output kept in errors.
	maxStderrLength = 2048
)

// Metadata holds the tags written into the output file.
// Empty optional fields are not written at all.
type Metadata struct {
	Title     string
	Artist    string
	Album     string
	Date      string
	Year      string
	Genre     string
	Publisher string
	Comment   string
}

// MuxRequest describes one mux invocation.
type MuxRequest struct {
	// AudioPath is the extracted audio file.
	AudioPath string
	// CoverPath is the cover image. Empty means no artwork.
	CoverPath string
	// OutputPath is the file to write. Its extension selects the container.
	OutputPath string
	// Format is the target format (mp3, flac, wav).
	Format   string
	Metadata Metadata
}

// Muxer combines audio, artwork and tags into the final file.
type Muxer interface {
	// Mux writes req.OutputPath.
	Mux(ctx context.Context, req *MuxRequest) error
}

// MuxerImpl implements Muxer using the ffmpeg executable.
type MuxerImpl struct {
	executable string
}

// NewMuxer creates a muxer that runs the given ffmpeg executable.
func NewMuxer(executable string) Muxer {
	return &MuxerImpl{executable: executable}
}

// Mux runs ffmpeg. A zero exit status does not guarantee an output file;
// callers verify the result themselves.
func (m *MuxerImpl) Mux(ctx context.Context, req *MuxRequest) error {
	if req.AudioPath == "" || req.OutputPath == "" {
		return ErrMissingInput
	}

	executable, err := exec.LookPath(m.executable)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrToolNotFound, err)
	}

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, executable, BuildArgs(req)...)
	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		return fmt.Errorf("%w: %w: %s", ErrMuxFailed, err, tail(stderr.String(), maxStderrLength))
	}

	return nil
}

// SupportsCover reports whether the format can hold embedded cover art.
func SupportsCover(format string) bool {
	return format == formatMP3 || format == formatFLAC
}

// BuildArgs returns the ffmpeg argument list for req.
func BuildArgs(req *MuxRequest) []string {
	withCover := req.CoverPath != "" && SupportsCover(req.Format)

	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", req.AudioPath}

	if withCover {
		args = append(args,
			"-i", req.CoverPath,
			"-map", "0:a",
			"-map", "1:v",
			"-c:a", "copy",
			"-c:v", "mjpeg",
			"-disposition:v", "attached_pic")
	} else {
		args = append(args, "-map", "0:a", "-c:a", "copy")
	}

	meta := req.Metadata

	args = appendMetadata(args, "title", meta.Title, true)
	args = appendMetadata(args, "artist", meta.Artist, true)
	args = appendMetadata(args, "album", meta.Album, true)
	args = appendMetadata(args, "date", meta.Date, false)
	args = appendMetadata(args, "year", meta.Year, false)
	args = appendMetadata(args, "genre", meta.Genre, false)
	args = appendMetadata(args, "publisher", meta.Publisher, false)
	args = appendMetadata(args, "comment", meta.Comment, false)

	if withCover {
		args = append(args,
			"-metadata:s:v", "title=Album cover",
			"-metadata:s:v", "comment=Cover (front)")
	}

	if req.Format == formatMP3 {
		args = append(args, "-id3v2_version", "3")
	}

	return append(args, req.OutputPath)
}

func appendMetadata(args []string, key, value string, always bool) []string {
	if !always && strings.TrimSpace(value) == "" {
		return args
	}

	return append(args, "-metadata", key+"="+value)
}

func tail(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}

	return "..." + s[len(s)-limit:]
}
