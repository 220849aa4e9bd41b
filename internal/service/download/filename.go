package download

import (
	"path/filepath"
	"strings"

	"github.com/oshokin/spotisaver/internal/utils"
)

// BuildTrackFilename returns "artist - title.format" with characters that are illegal
// in file names replaced by a space and whitespace runs collapsed.
func BuildTrackFilename(artist, title, format string) string {
	return utils.ReplaceIllegalPathChars(artist+" - "+title) + "." + format
}

// DefaultOutputDir is the download folder used when none is configured:
// "<table dir>/<table name>_download".
func DefaultOutputDir(tablePath string) string {
	base := filepath.Base(tablePath)

	return filepath.Join(filepath.Dir(tablePath), strings.TrimSuffix(base, filepath.Ext(base))+"_download")
}
