package spotify

// Playlist is the playlist header.
type Playlist struct {
	// ID is the catalog id of the playlist.
	ID string
	// Name is the display name.
	Name string
	// OwnerID is the user id of the owner.
	OwnerID string
	// TracksTotal is the number of items reported by the catalog.
	TracksTotal int
}

// PlaylistItem is one entry of a playlist.
type PlaylistItem struct {
	// AddedAt is the timestamp the entry was added, as reported by the catalog.
	AddedAt string
	// AddedBy is the user id of whoever added the entry. Empty for very old playlists.
	AddedBy string
	// Track is nil when the entry has no playable track behind it
	// (removed tracks, local files, podcast episodes).
	Track *Track
}

// PlaylistTracksPage is one page of playlist items.
type PlaylistTracksPage struct {
	// Items holds the page entries in playlist order.
	Items []*PlaylistItem
	// NextPageToken is empty on the last page.
	NextPageToken string
	// Total is the number of items in the whole playlist.
	Total int
}

// PlaylistsPage is one page of a user's playlists.
type PlaylistsPage struct {
	// Items holds the page entries.
	Items []*Playlist
	// NextPageToken is empty on the last page.
	NextPageToken string
}

// Track is a catalog track.
type Track struct {
	ID         string
	URI        string
	Name       string
	Artists    []*ArtistRef
	Album      *Album
	DurationMs int
	// Popularity is nil when the catalog did not report it.
	Popularity *int
	Explicit   bool
}

// ArtistRef is an artist as listed on a track.
type ArtistRef struct {
	ID   string
	Name string
}

// Artist is a full artist record.
type Artist struct {
	ID     string
	Name   string
	Genres []string
}

// Album is the album a track belongs to.
type Album struct {
	Name        string
	ReleaseDate string
	// Label is empty when the catalog omits it, which it does for the simplified
	// album objects embedded in playlist items.
	Label  string
	Images []*Image
}

// Image is a piece of artwork. Width is zero when unknown.
type Image struct {
	URL   string
	Width int
}

// LargestImage returns the widest image, or nil when the album has no artwork.
// Images with unknown width lose to any image with a known one; among equals
// the first listed wins, since the catalog lists the largest first.
func (a *Album) LargestImage() *Image {
	if a == nil {
		return nil
	}

	var best *Image

	for _, image := range a.Images {
		if image == nil || image.URL == "" {
			continue
		}

		if best == nil || image.Width > best.Width {
			best = image
		}
	}

	return best
}
