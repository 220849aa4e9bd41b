package playlist

import (
	"errors"
	"fmt"
)

// Static error definitions for better error handling.
var (
	// ErrValidation is the parent of every input error detected before any remote call.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidPlaylistURL indicates a URL without a playlist id.
	ErrInvalidPlaylistURL = fmt.Errorf("%w: invalid playlist URL", ErrValidation)
	// ErrInvalidUserURL indicates a URL without a user id.
	ErrInvalidUserURL = fmt.Errorf("%w: invalid user URL", ErrValidation)
	// ErrUnsupportedURL indicates a URL that is neither a playlist nor a user link.
	ErrUnsupportedURL = fmt.Errorf("%w: expected a playlist or user URL", ErrValidation)
	// ErrInvalidName indicates a display name that is empty after sanitization.
	ErrInvalidName = fmt.Errorf("%w: name is empty after sanitization", ErrValidation)
	// ErrInvalidTable indicates a table file that cannot be parsed.
	ErrInvalidTable = errors.New("invalid table file")
	// ErrPaginationStalled indicates that the catalog returned the same page token twice.
	ErrPaginationStalled = errors.New("pagination did not advance")
)

// CatalogError reports a failed catalog call. It aborts the fetch it belongs to.
type CatalogError struct {
	// Op names the failed call: "playlist", "playlist items", "artist", "user playlists".
	Op string
	// ID is the catalog id the call was made for.
	ID  string
	Err error
}

// Error implements error.
func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s %q: %v", e.Op, e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *CatalogError) Unwrap() error {
	return e.Err
}
