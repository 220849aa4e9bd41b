package ffmpeg

import "errors"

// Static error definitions for better error handling.
var (
	// ErrToolNotFound indicates that the ffmpeg executable cannot be located.
	ErrToolNotFound = errors.New("ffmpeg executable not found")
	// ErrMuxFailed indicates that ffmpeg exited with an error.
	ErrMuxFailed = errors.New("ffmpeg failed")
	// ErrMissingInput indicates a request without an audio input or output path.
	ErrMissingInput = errors.New("audio input and output paths are required")
)
