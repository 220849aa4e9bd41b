// Package ytdlp wraps the yt-dlp executable: it searches for the best match of a query
// and extracts its audio track into a caller-owned directory.
package ytdlp
