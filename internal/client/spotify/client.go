package spotify

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	http_transport "github.com/oshokin/spotisaver/internal/transport/http"
)

// Client defines the catalog operations the exporter and downloader rely on.
type Client interface {
	// GetPlaylist returns the playlist header.
	GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error)
	// GetPlaylistTracksPage returns one page of playlist items.
	// An empty pageToken requests the first page.
	GetPlaylistTracksPage(ctx context.Context, playlistID, pageToken string) (*PlaylistTracksPage, error)
	// GetArtist returns the artist record, including its genres.
	GetArtist(ctx context.Context, artistID string) (*Artist, error)
	// GetTrack returns the track record, including album artwork.
	GetTrack(ctx context.Context, trackID string) (*Track, error)
	// GetUserPlaylistsPage returns one page of a user's public playlists.
	GetUserPlaylistsPage(ctx context.Context, userID, pageToken string) (*PlaylistsPage, error)
	// DownloadFromURL streams the content behind an artwork URL.
	DownloadFromURL(ctx context.Context, url string) (io.ReadCloser, error)
}

// ClientImpl implements Client on top of the Spotify Web API.
type ClientImpl struct {
	// api performs authenticated Web API calls.
	api *spotifyapi.Client
	// httpClient performs unauthenticated downloads (artwork CDN).
	httpClient *http.Client
	// artistsCache caches artist records by id.
	artistsCache *lru.Cache[string, *Artist]
	// tracksCache caches track records by id.
	tracksCache *lru.Cache[string, *Track]
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	apiBaseURL string
	tokenURL   string
	transport  http.RoundTripper
}

// WithAPIBaseURL points the client at another Web API root. The URL must end with a slash.
func WithAPIBaseURL(baseURL string) Option {
	return func(o *options) {
		o.apiBaseURL = baseURL
	}
}

// WithTokenURL overrides the OAuth2 token endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(o *options) {
		o.tokenURL = tokenURL
	}
}

// WithTransport replaces the innermost round tripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(o *options) {
		o.transport = transport
	}
}

func buildOptions(opts []Option) *options {
	result := &options{
		tokenURL:  spotifyauth.TokenURL,
		transport: http.DefaultTransport,
	}

	for _, opt := range opts {
		opt(result)
	}

	return result
}

// newHTTPClient builds the plain HTTP client with the logging and User-Agent transports.
func newHTTPClient(transport http.RoundTripper) *http.Client {
	return &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(transport, 0),
			http_transport.DefaultUserAgentProvider()),
		Timeout: http_transport.DefaultTimeout,
	}
}

// newCredentials describes the client-credentials grant.
func newCredentials(clientID, clientSecret, tokenURL string) *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
}

// NewClient creates a catalog client authenticated with the client-credentials flow.
// Tokens are fetched lazily and refreshed automatically for as long as ctx lives.
func NewClient(ctx context.Context, clientID, clientSecret string, opts ...Option) (Client, error) {
	o := buildOptions(opts)
	httpClient := newHTTPClient(o.transport)

	// Token requests go through the same logging transport as API calls.
	authCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	apiHTTPClient := newCredentials(clientID, clientSecret, o.tokenURL).Client(authCtx)
	apiHTTPClient.Timeout = http_transport.DefaultTimeout

	var apiOptions []spotifyapi.ClientOption
	if o.apiBaseURL != "" {
		apiOptions = append(apiOptions, spotifyapi.WithBaseURL(o.apiBaseURL))
	}

	artistsCache, err := lru.New[string, *Artist](artistsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create artists cache: %w", err)
	}

	tracksCache, err := lru.New[string, *Track](tracksCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracks cache: %w", err)
	}

	return &ClientImpl{
		api:          spotifyapi.New(apiHTTPClient, apiOptions...),
		httpClient:   httpClient,
		artistsCache: artistsCache,
		tracksCache:  tracksCache,
	}, nil
}

// VerifyCredentials requests a token to prove the credentials are accepted.
func VerifyCredentials(ctx context.Context, clientID, clientSecret string, opts ...Option) error {
	o := buildOptions(opts)
	authCtx := context.WithValue(ctx, oauth2.HTTPClient, newHTTPClient(o.transport))

	token, err := newCredentials(clientID, clientSecret, o.tokenURL).Token(authCtx)
	if err != nil {
		return fmt.Errorf("failed to obtain access token: %w", err)
	}

	if !token.Valid() {
		return fmt.Errorf("failed to obtain access token: %w", ErrInvalidToken)
	}

	return nil
}

// GetPlaylist returns the playlist header.
func (c *ClientImpl) GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	if playlistID == "" {
		return nil, ErrEmptyID
	}

	playlist, err := c.api.GetPlaylist(ctx, spotifyapi.ID(playlistID))
	if err != nil {
		return nil, wrapAPIError("playlist", playlistID, err)
	}

	return &Playlist{
		ID:          string(playlist.ID),
		Name:        playlist.Name,
		OwnerID:     playlist.Owner.ID,
		TracksTotal: int(playlist.Tracks.Total),
	}, nil
}

// GetPlaylistTracksPage returns one page of playlist items.
func (c *ClientImpl) GetPlaylistTracksPage(
	ctx context.Context,
	playlistID, pageToken string,
) (*PlaylistTracksPage, error) {
	if playlistID == "" {
		return nil, ErrEmptyID
	}

	offset, err := parsePageToken(pageToken)
	if err != nil {
		return nil, err
	}

	page, err := c.api.GetPlaylistItems(ctx, spotifyapi.ID(playlistID),
		spotifyapi.Offset(offset),
		spotifyapi.Limit(playlistItemsPageSize))
	if err != nil {
		return nil, wrapAPIError("playlist items", playlistID, err)
	}

	result := &PlaylistTracksPage{
		Items:         make([]*PlaylistItem, 0, len(page.Items)),
		NextPageToken: nextPageToken(page.Next, int(page.Offset), len(page.Items)),
		Total:         int(page.Total),
	}

	for i := range page.Items {
		item := &page.Items[i]

		result.Items = append(result.Items, &PlaylistItem{
			AddedAt: item.AddedAt,
			AddedBy: item.AddedBy.ID,
			Track:   convertFullTrack(item.Track.Track),
		})
	}

	return result, nil
}

// GetArtist returns the artist record. Results are cached by id.
func (c *ClientImpl) GetArtist(ctx context.Context, artistID string) (*Artist, error) {
	if artistID == "" {
		return nil, ErrEmptyID
	}

	if cached, ok := c.artistsCache.Get(artistID); ok {
		return cached, nil
	}

	artist, err := c.api.GetArtist(ctx, spotifyapi.ID(artistID))
	if err != nil {
		return nil, wrapAPIError("artist", artistID, err)
	}

	result := &Artist{
		ID:     string(artist.ID),
		Name:   artist.Name,
		Genres: append([]string(nil), artist.Genres...),
	}

	c.artistsCache.Add(artistID, result)

	return result, nil
}

// GetTrack returns the track record. Results are cached by id.
func (c *ClientImpl) GetTrack(ctx context.Context, trackID string) (*Track, error) {
	if trackID == "" {
		return nil, ErrEmptyID
	}

	if cached, ok := c.tracksCache.Get(trackID); ok {
		return cached, nil
	}

	track, err := c.api.GetTrack(ctx, spotifyapi.ID(trackID))
	if err != nil {
		return nil, wrapAPIError("track", trackID, err)
	}

	result := convertFullTrack(track)
	c.tracksCache.Add(trackID, result)

	return result, nil
}

// GetUserPlaylistsPage returns one page of a user's public playlists.
func (c *ClientImpl) GetUserPlaylistsPage(ctx context.Context, userID, pageToken string) (*PlaylistsPage, error) {
	if userID == "" {
		return nil, ErrEmptyID
	}

	offset, err := parsePageToken(pageToken)
	if err != nil {
		return nil, err
	}

	page, err := c.api.GetPlaylistsForUser(ctx, userID,
		spotifyapi.Offset(offset),
		spotifyapi.Limit(userPlaylistsPageSize))
	if err != nil {
		return nil, wrapAPIError("user playlists", userID, err)
	}

	result := &PlaylistsPage{
		Items:         make([]*Playlist, 0, len(page.Playlists)),
		NextPageToken: nextPageToken(page.Next, int(page.Offset), len(page.Playlists)),
	}

	for i := range page.Playlists {
		playlist := &page.Playlists[i]

		result.Items = append(result.Items, &Playlist{
			ID:          string(playlist.ID),
			Name:        playlist.Name,
			OwnerID:     playlist.Owner.ID,
			TracksTotal: int(playlist.Tracks.Total),
		})
	}

	return result, nil
}

// DownloadFromURL streams the content behind url. The caller closes the reader.
func (c *ClientImpl) DownloadFromURL(ctx context.Context, url string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return response.Body, nil
}

// TrackIDFromURI extracts the id from a "spotify:track:<id>" URI.
// Values without colons are returned unchanged.
func TrackIDFromURI(uri string) string {
	uri = strings.TrimSpace(uri)
	if index := strings.LastIndex(uri, ":"); index >= 0 {
		return uri[index+1:]
	}

	return uri
}

func convertFullTrack(track *spotifyapi.FullTrack) *Track {
	if track == nil {
		return nil
	}

	popularity := int(track.Popularity)

	result := &Track{
		ID:         string(track.ID),
		URI:        string(track.URI),
		Name:       track.Name,
		Artists:    make([]*ArtistRef, 0, len(track.Artists)),
		DurationMs: int(track.Duration),
		Popularity: &popularity,
		Explicit:   track.Explicit,
		Album: &Album{
			Name:        track.Album.Name,
			ReleaseDate: track.Album.ReleaseDate,
			Images:      make([]*Image, 0, len(track.Album.Images)),
		},
	}

	for _, artist := range track.Artists {
		result.Artists = append(result.Artists, &ArtistRef{
			ID:   string(artist.ID),
			Name: artist.Name,
		})
	}

	for _, image := range track.Album.Images {
		result.Album.Images = append(result.Album.Images, &Image{
			URL:   image.URL,
			Width: int(image.Width),
		})
	}

	return result
}

// parsePageToken turns a page token back into an item offset.
func parsePageToken(pageToken string) (int, error) {
	if pageToken == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(pageToken)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageToken, pageToken)
	}

	return offset, nil
}

// nextPageToken encodes the offset of the following page, or "" after the last one.
func nextPageToken(next string, offset, count int) string {
	if next == "" || count == 0 {
		return ""
	}

	return strconv.Itoa(offset + count)
}

func wrapAPIError(kind, id string, err error) error {
	var apiErr spotifyapi.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("failed to get %s %s: %w: %w", kind, id, ErrNotFound, err)
	}

	return fmt.Errorf("failed to get %s %s: %w", kind, id, err)
}
