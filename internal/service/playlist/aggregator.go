package playlist

//go:generate $MOCKGEN -source=aggregator.go -destination=mocks/aggregator_mock.go

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/spotisaver/internal/client/spotify"
	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/utils"
)

// genreLookupConcurrency bounds parallel artist lookups for one track.
const genreLookupConcurrency = 4

// TrackProgressFunc is called after each track is aggregated.
type TrackProgressFunc func(done, total int)

// Aggregator turns catalog playlists into flat track records.
type Aggregator interface {
	// FetchPlaylistName returns the display name of the playlist.
	FetchPlaylistName(ctx context.Context, playlistID string) (string, error)
	// FetchPlaylistTracks returns one record per playlist entry, in playlist order.
	FetchPlaylistTracks(ctx context.Context, playlistID string) ([]*TrackRecord, error)
}

// AggregatorImpl implements Aggregator on top of the catalog client.
type AggregatorImpl struct {
	client     spotify.Client
	onProgress TrackProgressFunc
}

// AggregatorOption customizes the aggregator.
type AggregatorOption func(*AggregatorImpl)

// WithTrackProgress reports aggregation progress to fn.
func WithTrackProgress(fn TrackProgressFunc) AggregatorOption {
	return func(a *AggregatorImpl) {
		a.onProgress = fn
	}
}

// NewAggregator creates an aggregator over client.
func NewAggregator(client spotify.Client, opts ...AggregatorOption) Aggregator {
	aggregator := &AggregatorImpl{client: client}

	for _, opt := range opts {
		opt(aggregator)
	}

	return aggregator
}

// FetchPlaylistName returns the display name of the playlist.
func (a *AggregatorImpl) FetchPlaylistName(ctx context.Context, playlistID string) (string, error) {
	playlist, err := a.client.GetPlaylist(ctx, playlistID)
	if err != nil {
		return "", &CatalogError{Op: "playlist", ID: playlistID, Err: err}
	}

	return playlist.Name, nil
}

// FetchPlaylistTracks walks all pages of the playlist and aggregates every entry.
func (a *AggregatorImpl) FetchPlaylistTracks(ctx context.Context, playlistID string) ([]*TrackRecord, error) {
	items, err := a.fetchAllItems(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Fetched %d entries of playlist %s", len(items), playlistID)

	records := make([]*TrackRecord, 0, len(items))

	for i, item := range items {
		record, err := a.buildRecord(ctx, item)
		if err != nil {
			return nil, err
		}

		records = append(records, record)

		if a.onProgress != nil {
			a.onProgress(i+1, len(items))
		}
	}

	return records, nil
}

// fetchAllItems follows page tokens until the catalog reports no next page.
func (a *AggregatorImpl) fetchAllItems(ctx context.Context, playlistID string) ([]*spotify.PlaylistItem, error) {
	var (
		items     []*spotify.PlaylistItem
		pageToken string
	)

	for {
		page, err := a.client.GetPlaylistTracksPage(ctx, playlistID, pageToken)
		if err != nil {
			return nil, &CatalogError{Op: "playlist items", ID: playlistID, Err: err}
		}

		if items == nil && page.Total > 0 {
			items = make([]*spotify.PlaylistItem, 0, page.Total)
		}

		items = append(items, page.Items...)

		logger.Debugf(ctx, "Playlist %s: page %q gave %d entries", playlistID, pageToken, len(page.Items))

		if page.NextPageToken == "" {
			return items, nil
		}

		if page.NextPageToken == pageToken {
			return nil, &CatalogError{Op: "playlist items", ID: playlistID, Err: ErrPaginationStalled}
		}

		pageToken = page.NextPageToken
	}
}

func (a *AggregatorImpl) buildRecord(ctx context.Context, item *spotify.PlaylistItem) (*TrackRecord, error) {
	if item == nil || item.Track == nil {
		return &TrackRecord{}, nil
	}

	track := item.Track

	genres, err := a.collectGenres(ctx, track.Artists)
	if err != nil {
		return nil, err
	}

	artists := utils.Filter(track.Artists, func(artist *spotify.ArtistRef) bool { return artist != nil })

	record := &TrackRecord{
		URI:        track.URI,
		Name:       track.Name,
		Artists:    utils.Map(artists, func(artist *spotify.ArtistRef) string { return artist.Name }),
		DurationMs: track.DurationMs,
		Popularity: track.Popularity,
		Explicit:   track.Explicit,
		AddedBy:    item.AddedBy,
		AddedAt:    item.AddedAt,
		Genres:     genres,
	}

	if track.Album != nil {
		record.AlbumName = track.Album.Name
		record.ReleaseDate = track.Album.ReleaseDate
		record.Label = track.Album.Label
	}

	return record, nil
}

// collectGenres looks up each distinct artist once and unions their genres.
// Lookups run concurrently; the union is built in artist order afterwards,
// so the result does not depend on which lookup finishes first.
func (a *AggregatorImpl) collectGenres(ctx context.Context, artists []*spotify.ArtistRef) ([]string, error) {
	artistIDs := uniqueArtistIDs(artists)
	if len(artistIDs) == 0 {
		return nil, nil
	}

	genresByArtist := make([][]string, len(artistIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(genreLookupConcurrency)

	for i, artistID := range artistIDs {
		group.Go(func() error {
			artist, err := a.client.GetArtist(groupCtx, artistID)
			if err != nil {
				return &CatalogError{Op: "artist", ID: artistID, Err: err}
			}

			genresByArtist[i] = artist.Genres

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return unionGenres(genresByArtist), nil
}

func uniqueArtistIDs(artists []*spotify.ArtistRef) []string {
	seen := make(map[string]struct{}, len(artists))
	ids := make([]string, 0, len(artists))

	for _, artist := range artists {
		if artist == nil || artist.ID == "" {
			continue
		}

		if _, ok := seen[artist.ID]; ok {
			continue
		}

		seen[artist.ID] = struct{}{}
		ids = append(ids, artist.ID)
	}

	return ids
}

// unionGenres merges genre lists keeping the first occurrence of each genre.
func unionGenres(lists [][]string) []string {
	var (
		seen   = make(map[string]struct{})
		result []string
	)

	for _, genres := range lists {
		for _, genre := range genres {
			if _, ok := seen[genre]; ok {
				continue
			}

			seen[genre] = struct{}{}
			result = append(result, genre)
		}
	}

	return result
}
