package download

import (
	"errors"
	"fmt"
)

// Static error definitions for better error handling.
var (
	// ErrConfig is the parent of every run configuration error.
	ErrConfig = errors.New("invalid download configuration")
	// ErrInvalidWorkerCount indicates a worker count outside [MinWorkers, MaxWorkers].
	ErrInvalidWorkerCount = fmt.Errorf("%w: worker count must be between %d and %d", ErrConfig, MinWorkers, MaxWorkers)
	// ErrUnsupportedFormat indicates an audio format other than mp3, flac or wav.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported audio format", ErrConfig)
	// ErrInvalidBitrate indicates an mp3 bitrate outside the supported set.
	ErrInvalidBitrate = fmt.Errorf("%w: unsupported bitrate", ErrConfig)
	// ErrInvalidOverwritePolicy indicates an overwrite policy other than skip or overwrite.
	ErrInvalidOverwritePolicy = fmt.Errorf("%w: unsupported overwrite policy", ErrConfig)
	// ErrBusy indicates that the orchestrator is already running.
	ErrBusy = errors.New("a download run is already in progress")
	// ErrEmptyQuery indicates a job with neither artist nor title.
	ErrEmptyQuery = errors.New("track has neither artist nor title")
	// ErrOutputMissing indicates that no file exists at the output path after muxing.
	ErrOutputMissing = errors.New("output file was not created")
	// ErrOutputEmpty indicates a zero-length output file.
	ErrOutputEmpty = errors.New("output file is empty")
	// ErrPanic indicates a job that panicked.
	ErrPanic = errors.New("job panicked")
)

// ProcessingError reports the stage a job failed at.
type ProcessingError struct {
	Stage Stage
	Err   error
}

// Error implements error.
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, err error) error {
	return &ProcessingError{Stage: stage, Err: err}
}

func asProcessingError(err error) (*ProcessingError, bool) {
	var processingErr *ProcessingError
	if errors.As(err, &processingErr) {
		return processingErr, true
	}

	return nil, false
}
