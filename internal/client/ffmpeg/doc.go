// Package ffmpeg wraps the ffmpeg executable for the final mux step: it copies the
// extracted audio stream, attaches front-cover art when the container can hold it,
// and writes the track metadata.
package ffmpeg
