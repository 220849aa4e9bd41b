package playlist

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/oshokin/spotisaver/internal/client/spotify"
	"github.com/oshokin/spotisaver/internal/constants"
	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/utils"
)

// userFolderFormat names the folder a user's playlists are exported into.
const userFolderFormat = "%s's spotify playlist data"

// Service exports playlists into table files.
type Service interface {
	// Export dispatches on the URL kind: a playlist link exports one table,
	// a user link exports every public playlist of that user.
	Export(ctx context.Context, url, outputDir string) ([]string, error)
	// ExportPlaylist exports one playlist and returns the table path.
	ExportPlaylist(ctx context.Context, playlistURL, outputDir string) (string, error)
	// ExportUserPlaylists exports all public playlists of a user and returns the table paths.
	ExportUserPlaylists(ctx context.Context, userURL, outputDir string) ([]string, error)
}

// ServiceImpl implements Service.
type ServiceImpl struct {
	client     spotify.Client
	aggregator Aggregator
	exporter   TableExporter
}

// NewService creates an export service.
func NewService(client spotify.Client, aggregator Aggregator, exporter TableExporter) Service {
	return &ServiceImpl{
		client:     client,
		aggregator: aggregator,
		exporter:   exporter,
	}
}

// Export dispatches on the URL kind.
func (s *ServiceImpl) Export(ctx context.Context, url, outputDir string) ([]string, error) {
	if _, err := ParsePlaylistID(url); err == nil {
		path, err := s.ExportPlaylist(ctx, url, outputDir)
		if err != nil {
			return nil, err
		}

		return []string{path}, nil
	}

	if _, err := ParseUserID(url); err == nil {
		return s.ExportUserPlaylists(ctx, url, outputDir)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, url)
}

// ExportPlaylist exports one playlist into outputDir/<sanitized name>.csv.
func (s *ServiceImpl) ExportPlaylist(ctx context.Context, playlistURL, outputDir string) (string, error) {
	playlistID, err := ParsePlaylistID(playlistURL)
	if err != nil {
		return "", err
	}

	name, err := s.aggregator.FetchPlaylistName(ctx, playlistID)
	if err != nil {
		return "", err
	}

	return s.exportPlaylist(ctx, playlistID, name, outputDir)
}

// ExportUserPlaylists exports every public playlist of the user into a dedicated folder.
// A playlist that fails is logged and skipped.
func (s *ServiceImpl) ExportUserPlaylists(ctx context.Context, userURL, outputDir string) ([]string, error) {
	userID, err := ParseUserID(userURL)
	if err != nil {
		return nil, err
	}

	folderName, err := SanitizeName(fmt.Sprintf(userFolderFormat, userID))
	if err != nil {
		return nil, err
	}

	playlists, err := s.fetchUserPlaylists(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "User %s has %d public playlists", userID, len(playlists))

	folder := filepath.Join(outputDir, folderName)
	paths := make([]string, 0, len(playlists))

	for _, playlist := range playlists {
		if err = ctx.Err(); err != nil {
			return paths, err
		}

		path, exportErr := s.exportPlaylist(ctx, playlist.ID, playlist.Name, folder)
		if exportErr != nil {
			logger.Errorf(ctx, "Failed to export playlist %q (%s): %v", playlist.Name, playlist.ID, exportErr)

			continue
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func (s *ServiceImpl) exportPlaylist(ctx context.Context, playlistID, name, outputDir string) (string, error) {
	fileName, err := SanitizeName(name)
	if err != nil {
		return "", fmt.Errorf("playlist %s: %w", playlistID, err)
	}

	logger.Infof(ctx, "Exporting playlist %q", name)

	records, err := s.aggregator.FetchPlaylistTracks(ctx, playlistID)
	if err != nil {
		return "", err
	}

	targetPath := filepath.Join(outputDir, utils.SetFileExtension(fileName, constants.ExtensionCSV, false))

	return s.exporter.Write(ctx, records, targetPath)
}

func (s *ServiceImpl) fetchUserPlaylists(ctx context.Context, userID string) ([]*spotify.Playlist, error) {
	var (
		playlists []*spotify.Playlist
		pageToken string
	)

	for {
		page, err := s.client.GetUserPlaylistsPage(ctx, userID, pageToken)
		if err != nil {
			return nil, &CatalogError{Op: "user playlists", ID: userID, Err: err}
		}

		playlists = append(playlists, page.Items...)

		if page.NextPageToken == "" {
			return playlists, nil
		}

		if page.NextPageToken == pageToken {
			return nil, &CatalogError{Op: "user playlists", ID: userID, Err: ErrPaginationStalled}
		}

		pageToken = page.NextPageToken
	}
}
