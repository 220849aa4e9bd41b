package spotify

import "errors"

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrNotFound indicates that the catalog has no object with the requested id.
	ErrNotFound = errors.New("not found in catalog")
	// ErrInvalidPageToken indicates a page token that this client did not produce.
	ErrInvalidPageToken = errors.New("invalid page token")
	// ErrEmptyID indicates that an empty id was passed to a lookup.
	ErrEmptyID = errors.New("id cannot be empty")
	// ErrInvalidToken indicates that the token endpoint answered without a usable access token.
	ErrInvalidToken = errors.New("token endpoint returned an invalid token")
)
