package download

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/spotisaver/internal/service/playlist"
)

// TestSettings_Validate tests run settings validation.
func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{"mp3 320", Settings{Format: "mp3", Bitrate: 320, Overwrite: OverwriteSkip}, nil},
		{"upper case flac", Settings{Format: " FLAC ", Overwrite: OverwriteAlways}, nil},
		{"wav ignores bitrate", Settings{Format: "wav", Bitrate: 7, Overwrite: OverwriteSkip}, nil},
		{"mp3 bad bitrate", Settings{Format: "mp3", Bitrate: 100, Overwrite: OverwriteSkip}, ErrInvalidBitrate},
		{"ogg", Settings{Format: "ogg", Overwrite: OverwriteSkip}, ErrUnsupportedFormat},
		{"bad policy", Settings{Format: "wav", Overwrite: "ask"}, ErrInvalidOverwritePolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := tt.settings

			err := settings.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, ErrConfig)
		})
	}
}

// TestSettings_ValidateNormalizesFormat tests that Validate lower-cases the format.
func TestSettings_ValidateNormalizesFormat(t *testing.T) {
	t.Parallel()

	settings := Settings{Format: "FLAC", Overwrite: OverwriteSkip}
	require.NoError(t, settings.Validate())
	assert.Equal(t, FormatFLAC, settings.Format)
}

// TestTrackJob_Names tests the search query and display name.
func TestTrackJob_Names(t *testing.T) {
	t.Parallel()

	job := &TrackJob{Index: 4, Artist: "Sade", Title: "Smooth Operator"}
	assert.Equal(t, "Sade - Smooth Operator", job.Query())
	assert.Equal(t, "Sade - Smooth Operator", job.DisplayName())

	empty := &TrackJob{Index: 4}
	assert.Equal(t, "-", empty.Query())
	assert.Equal(t, "row 5", empty.DisplayName())
}

// TestJobsFromRecords tests the conversion of table rows into jobs.
func TestJobsFromRecords(t *testing.T) {
	t.Parallel()

	records := []*playlist.TrackRecord{
		{
			URI:         "spotify:track:1",
			Name:        "Smooth Operator",
			AlbumName:   "Diamond Life",
			Artists:     []string{"Sade", "Sade Adu"},
			ReleaseDate: "1984-07-16",
			Genres:      []string{"soul", "quiet storm"},
			Label:       "Epic",
		},
		{Name: "Untitled", ReleaseDate: "84"},
		{},
	}

	settings := Settings{Format: FormatMP3, Bitrate: 192, Overwrite: OverwriteSkip}
	jobs := JobsFromRecords(records, settings)
	require.Len(t, jobs, 3)

	first := jobs[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "Sade, Sade Adu", first.Artist)
	assert.Equal(t, "Smooth Operator", first.Title)
	assert.Equal(t, "Diamond Life", first.Album)
	assert.Equal(t, "soul, quiet storm", first.Genre)
	assert.Equal(t, "Epic", first.Label)
	assert.Equal(t, "1984", first.Year)
	assert.Equal(t, FormatMP3, first.Format)
	assert.Equal(t, 192, first.Bitrate)
	assert.Equal(t, OverwriteSkip, first.Overwrite)

	assert.Empty(t, jobs[1].Year)
	assert.Equal(t, 2, jobs[2].Index)
	assert.Empty(t, jobs[2].Artist)
}

// TestReleaseYear tests the year tag derived from catalog release dates.
func TestReleaseYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		releaseDate string
		expected    string
	}{
		{"full date", "1984-07-16", "1984"},
		{"month precision", "1984-07", "1984"},
		{"year precision", "1984", "1984"},
		{"too short", "84", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, releaseYear(tt.releaseDate))

			jobs := JobsFromRecords([]*playlist.TrackRecord{{ReleaseDate: tt.releaseDate}}, Settings{Format: FormatWAV})
			require.Len(t, jobs, 1)
			assert.Equal(t, tt.expected, jobs[0].Year)
			assert.Equal(t, tt.releaseDate, jobs[0].ReleaseDate)
		})
	}
}

// TestBuildTrackFilename tests output file naming.
func TestBuildTrackFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Sade - Smooth Operator.mp3", BuildTrackFilename("Sade", "Smooth Operator", "mp3"))
	assert.Equal(t, "AC DC - What s Next.flac", BuildTrackFilename("AC/DC", "What?s   Next", "flac"))
	assert.Equal(t, "Sigur Rós - Hoppípolla.wav", BuildTrackFilename("Sigur Rós", "Hoppípolla", "wav"))
}

// TestDefaultOutputDir tests the default download folder.
func TestDefaultOutputDir(t *testing.T) {
	t.Parallel()

	tablePath := filepath.Join("exports", "Road_Trip.csv")
	assert.Equal(t, filepath.Join("exports", "Road_Trip_download"), DefaultOutputDir(tablePath))
}

// TestJobResult_FailedStage tests stage extraction from wrapped errors.
func TestJobResult_FailedStage(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("worker: %w", stageError(StageMux, errors.New("boom")))
	assert.Equal(t, StageMux, (&JobResult{Err: wrapped}).FailedStage())
	assert.Equal(t, Stage(""), (&JobResult{Err: ErrPanic}).FailedStage())
	assert.Equal(t, Stage(""), (&JobResult{}).FailedStage())
}

// TestRunSummary_Failures tests the failure filter and not-started count.
func TestRunSummary_Failures(t *testing.T) {
	t.Parallel()

	failed := &JobResult{Outcome: OutcomeFailed}
	summary := &RunSummary{
		Total:     5,
		Processed: 3,
		Results:   []*JobResult{{Outcome: OutcomeSucceeded}, failed, {Outcome: OutcomeSkipped}},
	}

	assert.Equal(t, []*JobResult{failed}, summary.Failures())
	assert.Equal(t, 2, summary.NotStarted())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
}

// TestFormatDuration tests human-readable durations.
func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "42s", formatDuration(42*time.Second))
	assert.Equal(t, "3m 5s", formatDuration(3*time.Minute+5*time.Second))
	assert.Equal(t, "1h 2m 3s", formatDuration(time.Hour+2*time.Minute+3*time.Second))
}

// TestGroupFailuresByStage tests grouping of failures for the summary.
func TestGroupFailuresByStage(t *testing.T) {
	t.Parallel()

	failures := []*JobResult{
		{Job: &TrackJob{}, Outcome: OutcomeFailed, Err: stageError(StageSearch, ErrEmptyQuery)},
		{Job: &TrackJob{}, Outcome: OutcomeFailed, Err: stageError(StageSearch, errors.New("no match"))},
		{Job: &TrackJob{}, Outcome: OutcomeFailed, Err: ErrPanic},
	}

	groups := groupFailuresByStage(failures)
	assert.Len(t, groups[StageSearch], 2)
	assert.Len(t, groups[unknownStage], 1)
	assert.Empty(t, groups[StageMux])
}

// TestPrintRunSummary tests that printing never fails on any run shape.
func TestPrintRunSummary(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	now := time.Now()

	assert.NotPanics(t, func() {
		PrintRunSummary(ctx, nil)
		PrintRunSummary(ctx, &RunSummary{Status: RunEmpty})
		PrintRunSummary(ctx, &RunSummary{
			Status:    RunCancelled,
			Total:     3,
			Processed: 2,
			Succeeded: 1,
			Failed:    1,
			Bytes:     4 << 20,
			Results: []*JobResult{
				{Job: &TrackJob{Artist: "Sade", Title: "Smooth Operator"}, Outcome: OutcomeSucceeded},
				{Job: &TrackJob{Index: 1}, Outcome: OutcomeFailed, Err: stageError(StageSearch, ErrEmptyQuery)},
			},
			StartTime: now.Add(-90 * time.Second),
			EndTime:   now,
		})
	})
}
