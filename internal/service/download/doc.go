// Package download turns an exported track table into tagged audio files.
//
// Every table row becomes a TrackJob. The orchestrator runs jobs on a bounded worker
// pool; each job searches and extracts audio with yt-dlp, fetches the album cover from
// the catalog, muxes audio, cover and tags with ffmpeg and verifies the result on disk.
// A failing job is recorded with the stage it failed at and never stops the run.
package download
