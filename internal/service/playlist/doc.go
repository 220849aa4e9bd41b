// Package playlist exports catalog playlists into CSV tables.
//
// The aggregator walks every page of a playlist, looks up the genres of each track's
// artists and flattens the result into TrackRecord rows, one per playlist entry and in
// playlist order. The table exporter writes those rows atomically with a fixed column
// schema and reads them back for the download phase.
package playlist
