package playlist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/spotisaver/internal/client/spotify"
	mock_spotify "github.com/oshokin/spotisaver/internal/client/spotify/mocks"
)

func intPtr(v int) *int {
	return &v
}

func testTrack(n int, artists ...*spotify.ArtistRef) *spotify.Track {
	return &spotify.Track{
		ID:         fmt.Sprintf("t%d", n),
		URI:        fmt.Sprintf("spotify:track:t%d", n),
		Name:       fmt.Sprintf("Song %d", n),
		Artists:    artists,
		DurationMs: 1000 * n,
		Popularity: intPtr(n),
		Album:      &spotify.Album{Name: "Album", ReleaseDate: "2020-01-01"},
	}
}

func soloArtist() *spotify.ArtistRef {
	return &spotify.ArtistRef{ID: "solo", Name: "Solo"}
}

// TestFetchPlaylistTracks_Pagination tests that every entry survives page boundaries in order.
func TestFetchPlaylistTracks_Pagination(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock_spotify.NewMockClient(ctrl)

	// Five entries over three pages; the third entry has no track behind it.
	pages := map[string]*spotify.PlaylistTracksPage{
		"": {Items: []*spotify.PlaylistItem{
			{Track: testTrack(1, soloArtist()), AddedBy: "u1", AddedAt: "2024-01-01T00:00:00Z"},
			{Track: testTrack(2, soloArtist())},
		}, NextPageToken: "2", Total: 5},
		"2": {Items: []*spotify.PlaylistItem{
			{Track: nil, AddedAt: "2024-01-02T00:00:00Z"},
			{Track: testTrack(4, soloArtist())},
		}, NextPageToken: "4", Total: 5},
		"4": {Items: []*spotify.PlaylistItem{
			{Track: testTrack(5, soloArtist())},
		}, Total: 5},
	}

	for token, page := range pages {
		client.EXPECT().GetPlaylistTracksPage(gomock.Any(), "pl", token).Return(page, nil).Times(1)
	}

	client.EXPECT().GetArtist(gomock.Any(), "solo").
		Return(&spotify.Artist{ID: "solo", Genres: []string{"indie"}}, nil).
		Times(4)

	var progress []int

	aggregator := NewAggregator(client, WithTrackProgress(func(done, total int) {
		assert.Equal(t, 5, total)

		progress = append(progress, done)
	}))

	records, err := aggregator.FetchPlaylistTracks(t.Context(), "pl")
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "spotify:track:t1", records[0].URI)
	assert.Equal(t, "u1", records[0].AddedBy)
	assert.Equal(t, []string{"Solo"}, records[0].Artists)
	assert.Equal(t, []string{"indie"}, records[0].Genres)
	assert.Equal(t, "Song 2", records[1].Name)
	assert.True(t, records[2].IsEmpty())
	assert.Equal(t, &TrackRecord{}, records[2])
	assert.Equal(t, "Song 4", records[3].Name)
	assert.Equal(t, "Song 5", records[4].Name)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, progress)
}

// TestFetchPlaylistTracks_GenreUnion tests deduplication of artists and genres.
func TestFetchPlaylistTracks_GenreUnion(t *testing.T) {
	t.Parallel()

	artists := map[string][]string{
		"a1": {"pop", "synthpop"},
		"a2": {"pop", "dance"},
	}

	tests := []struct {
		name     string
		refs     []*spotify.ArtistRef
		expected []string
	}{
		{
			name: "a1 first",
			refs: []*spotify.ArtistRef{
				{ID: "a1", Name: "One"}, {ID: "a2", Name: "Two"}, {ID: "a1", Name: "One"},
			},
			expected: []string{"pop", "synthpop", "dance"},
		},
		{
			name:     "a2 first",
			refs:     []*spotify.ArtistRef{{ID: "a2", Name: "Two"}, {ID: "a1", Name: "One"}},
			expected: []string{"pop", "dance", "synthpop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			client := mock_spotify.NewMockClient(ctrl)

			client.EXPECT().GetPlaylistTracksPage(gomock.Any(), "pl", "").Return(&spotify.PlaylistTracksPage{
				Items: []*spotify.PlaylistItem{{Track: testTrack(1, tt.refs...)}},
			}, nil)

			// Each distinct artist is fetched exactly once.
			for id, genres := range artists {
				client.EXPECT().GetArtist(gomock.Any(), id).
					Return(&spotify.Artist{ID: id, Genres: genres}, nil).
					Times(1)
			}

			records, err := NewAggregator(client).FetchPlaylistTracks(t.Context(), "pl")
			require.NoError(t, err)
			require.Len(t, records, 1)

			assert.Len(t, records[0].Genres, 3)
			assert.ElementsMatch(t, []string{"pop", "synthpop", "dance"}, records[0].Genres)
			assert.Equal(t, tt.expected, records[0].Genres)
		})
	}
}

// TestFetchPlaylistTracks_Errors tests that catalog failures abort the fetch.
func TestFetchPlaylistTracks_Errors(t *testing.T) {
	t.Parallel()

	errRemote := errors.New("remote failure")

	t.Run("page failure", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mock_spotify.NewMockClient(ctrl)

		client.EXPECT().GetPlaylistTracksPage(gomock.Any(), "pl", "").Return(nil, errRemote)

		_, err := NewAggregator(client).FetchPlaylistTracks(t.Context(), "pl")
		require.ErrorIs(t, err, errRemote)

		var catalogErr *CatalogError
		require.ErrorAs(t, err, &catalogErr)
		assert.Equal(t, "playlist items", catalogErr.Op)
		assert.Equal(t, "pl", catalogErr.ID)
	})

	t.Run("artist failure", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mock_spotify.NewMockClient(ctrl)

		client.EXPECT().GetPlaylistTracksPage(gomock.Any(), "pl", "").Return(&spotify.PlaylistTracksPage{
			Items: []*spotify.PlaylistItem{{Track: testTrack(1, soloArtist())}},
		}, nil)
		client.EXPECT().GetArtist(gomock.Any(), "solo").Return(nil, errRemote)

		_, err := NewAggregator(client).FetchPlaylistTracks(t.Context(), "pl")
		require.ErrorIs(t, err, errRemote)

		var catalogErr *CatalogError
		require.ErrorAs(t, err, &catalogErr)
		assert.Equal(t, "artist", catalogErr.Op)
	})

	t.Run("stalled pagination", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mock_spotify.NewMockClient(ctrl)

		client.EXPECT().GetPlaylistTracksPage(gomock.Any(), "pl", "").
			Return(&spotify.PlaylistTracksPage{NextPageToken: "1"}, nil)
		client.EXPECT().GetPlaylistTracksPage(gomock.Any(), "pl", "1").
			Return(&spotify.PlaylistTracksPage{NextPageToken: "1"}, nil)

		_, err := NewAggregator(client).FetchPlaylistTracks(t.Context(), "pl")
		require.ErrorIs(t, err, ErrPaginationStalled)
	})
}

// TestFetchPlaylistName tests the playlist header lookup.
func TestFetchPlaylistName(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock_spotify.NewMockClient(ctrl)

	client.EXPECT().GetPlaylist(gomock.Any(), "pl").Return(&spotify.Playlist{ID: "pl", Name: "Road Trip"}, nil)
	client.EXPECT().GetPlaylist(gomock.Any(), "gone").Return(nil, spotify.ErrNotFound)

	aggregator := NewAggregator(client)

	name, err := aggregator.FetchPlaylistName(context.Background(), "pl")
	require.NoError(t, err)
	assert.Equal(t, "Road Trip", name)

	_, err = aggregator.FetchPlaylistName(context.Background(), "gone")
	require.ErrorIs(t, err, spotify.ErrNotFound)
}
