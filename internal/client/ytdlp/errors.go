package ytdlp

import "errors"

// Static error definitions for better error handling.
var (
	// ErrToolNotFound indicates that the yt-dlp executable cannot be located.
	ErrToolNotFound = errors.New("yt-dlp executable not found")
	// ErrEmptyQuery indicates that there is nothing to search for.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrNoOutput indicates that yt-dlp left no audio file behind.
	ErrNoOutput = errors.New("no audio file was extracted")
	// ErrEmptyDirectory indicates a request without a destination directory.
	ErrEmptyDirectory = errors.New("output directory cannot be empty")
)
