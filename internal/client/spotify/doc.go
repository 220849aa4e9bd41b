// Package spotify is the catalog client: read-only access to playlists, playlist items,
// artists, tracks and user playlists through the Spotify Web API, authenticated with
// the client-credentials flow. Artist and track lookups are cached in LRU caches,
// since one playlist usually repeats the same artists many times.
package spotify
