package playlist

import (
	"fmt"
	"regexp"

	"github.com/oshokin/spotisaver/internal/utils"
)

const idGroupName = "ID"

var (
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	playlistURLPattern = regexp.MustCompile(`playlist/(?P<ID>[a-zA-Z0-9]+)`)
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	userURLPattern = regexp.MustCompile(`user/(?P<ID>[a-zA-Z0-9]+)`)
)

// ParsePlaylistID extracts the playlist id from a playlist link.
func ParsePlaylistID(url string) (string, error) {
	id := utils.ExtractNamedGroup(playlistURLPattern, idGroupName, url)
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlaylistURL, url)
	}

	return id, nil
}

// ParseUserID extracts the user id from a profile link.
func ParseUserID(url string) (string, error) {
	id := utils.ExtractNamedGroup(userURLPattern, idGroupName, url)
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidUserURL, url)
	}

	return id, nil
}
