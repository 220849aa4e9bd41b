package playlist

import "strings"

// listSeparator joins artist and genre lists in the table.
const listSeparator = ", "

// Table column names, in file order.
const (
	ColumnTrackURI    = "Track URI"
	ColumnTrackName   = "Track Name"
	ColumnAlbumName   = "Album Name"
	ColumnArtistNames = "Artist Name(s)"
	ColumnReleaseDate = "Release Date"
	ColumnDurationMs  = "Duration (ms)"
	ColumnPopularity  = "Popularity"
	ColumnExplicit    = "Explicit"
	ColumnAddedBy     = "Added By"
	ColumnAddedAt     = "Added At"
	ColumnGenres      = "Genres"
	ColumnRecordLabel = "Record Label"
)

// FeatureColumns are the audio-feature columns. Features are never computed,
// so every row carries 0 in each of them.
//
//nolint:gochecknoglobals // Read-only column list.
var FeatureColumns = []string{
	"Danceability",
	"Energy",
	"Key",
	"Loudness",
	"Mode",
	"Speechiness",
	"Acousticness",
	"Instrumentalness",
	"Liveness",
	"Valence",
	"Tempo",
	"Time Signature",
}

// Columns returns the full header row.
func Columns() []string {
	columns := []string{
		ColumnTrackURI,
		ColumnTrackName,
		ColumnAlbumName,
		ColumnArtistNames,
		ColumnReleaseDate,
		ColumnDurationMs,
		ColumnPopularity,
		ColumnExplicit,
		ColumnAddedBy,
		ColumnAddedAt,
		ColumnGenres,
		ColumnRecordLabel,
	}

	return append(columns, FeatureColumns...)
}

// TrackRecord is one playlist entry after aggregation.
// An entry without a playable track is kept as a record with every field empty.
type TrackRecord struct {
	URI         string
	Name        string
	AlbumName   string
	Artists     []string
	ReleaseDate string
	DurationMs  int
	// Popularity is nil when the catalog did not report it.
	Popularity *int
	Explicit   bool
	AddedBy    string
	AddedAt    string
	// Genres is the duplicate-free union of the artists' genres in first-seen order.
	Genres []string
	Label  string
}

// ArtistNames returns the artists joined for display.
func (r *TrackRecord) ArtistNames() string {
	return strings.Join(r.Artists, listSeparator)
}

// GenreNames returns the genres joined for display.
func (r *TrackRecord) GenreNames() string {
	return strings.Join(r.Genres, listSeparator)
}

// IsEmpty reports whether the record is a placeholder for a missing track.
func (r *TrackRecord) IsEmpty() bool {
	return r.URI == "" && r.Name == "" && len(r.Artists) == 0
}

// splitList is the inverse of the list joins above. Empty input gives nil.
func splitList(value string) []string {
	if value == "" {
		return nil
	}

	return strings.Split(value, listSeparator)
}
