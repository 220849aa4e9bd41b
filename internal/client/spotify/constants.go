package spotify

const (
	// playlistItemsPageSize is the largest page the playlist items endpoint serves.
	playlistItemsPageSize = 100
	// userPlaylistsPageSize is the largest page the user playlists endpoint serves.
	userPlaylistsPageSize = 50
)

const (
	// artistsCacheSize bounds the artist cache. Genres rarely change within a run.
	artistsCacheSize = 5000
	// tracksCacheSize bounds the track cache used for cover-art lookups.
	tracksCacheSize = 10000
)
