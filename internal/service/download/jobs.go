package download

import (
	"github.com/oshokin/spotisaver/internal/service/playlist"
)

// yearLength is the length of the year prefix of a release date.
const yearLength = 4

// JobsFromRecords builds one job per table row. Settings are shared by every job.
func JobsFromRecords(records []*playlist.TrackRecord, settings Settings) []*TrackJob {
	jobs := make([]*TrackJob, 0, len(records))

	for i, record := range records {
		jobs = append(jobs, &TrackJob{
			Index:       i,
			Artist:      record.ArtistNames(),
			Title:       record.Name,
			Album:       record.AlbumName,
			URI:         record.URI,
			Genre:       record.GenreNames(),
			Label:       record.Label,
			ReleaseDate: record.ReleaseDate,
			Year:        releaseYear(record.ReleaseDate),
			Format:      settings.Format,
			Bitrate:     settings.Bitrate,
			Overwrite:   settings.Overwrite,
		})
	}

	return jobs
}

func releaseYear(releaseDate string) string {
	if len(releaseDate) < yearLength {
		return ""
	}

	return releaseDate[:yearLength]
}
