package download

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	// MinWorkers is the smallest worker pool.
	MinWorkers = 1
	// MaxWorkers is the largest worker pool.
	MaxWorkers = 4
)

// Audio formats.
const (
	FormatMP3  = "mp3"
	FormatFLAC = "flac"
	FormatWAV  = "wav"
)

// Stage names a phase of per-track processing.
type Stage string

// Processing stages, in execution order.
const (
	StageSearch     Stage = "search"
	StageExtract    Stage = "extract"
	StageCoverFetch Stage = "coverFetch"
	StageMux        Stage = "mux"
	StageVerify     Stage = "verify"
)

// OverwritePolicy decides what happens when the output file already exists.
type OverwritePolicy string

const (
	// OverwriteSkip keeps the existing file and skips the job.
	OverwriteSkip OverwritePolicy = "skip"
	// OverwriteAlways replaces the existing file.
	OverwriteAlways OverwritePolicy = "overwrite"
)

// SupportedBitrates lists the mp3 bitrates in kbps.
//
//nolint:gochecknoglobals // Read-only list.
var SupportedBitrates = []int{128, 160, 192, 256, 320}

// Settings are fixed for a whole run.
type Settings struct {
	Format string
	// Bitrate is in kbps and only applies to mp3.
	Bitrate   int
	Overwrite OverwritePolicy
}

// Validate checks the settings and normalizes the format.
func (s *Settings) Validate() error {
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))

	switch s.Format {
	case FormatMP3:
		if !slices.Contains(SupportedBitrates, s.Bitrate) {
			return fmt.Errorf("%w: %d", ErrInvalidBitrate, s.Bitrate)
		}
	case FormatFLAC, FormatWAV:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.Format)
	}

	switch s.Overwrite {
	case OverwriteSkip, OverwriteAlways:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOverwritePolicy, s.Overwrite)
	}

	return nil
}

// TrackJob is the work needed to produce one output file.
type TrackJob struct {
	// Index is the zero-based table row the job came from.
	Index       int
	Artist      string
	Title       string
	Album       string
	URI         string
	Genre       string
	Label       string
	ReleaseDate string
	// Year is the first four characters of ReleaseDate, if present.
	Year      string
	Format    string
	Bitrate   int
	Overwrite OverwritePolicy
}

// Query returns the search string for the job.
func (j *TrackJob) Query() string {
	return strings.TrimSpace(j.Artist + " - " + j.Title)
}

// DisplayName is used in log lines.
func (j *TrackJob) DisplayName() string {
	if j.Artist == "" && j.Title == "" {
		return fmt.Sprintf("row %d", j.Index+1)
	}

	return j.Artist + " - " + j.Title
}

// Outcome is the result kind of one job.
type Outcome int

const (
	// OutcomeSucceeded means a verified file was written.
	OutcomeSucceeded Outcome = iota
	// OutcomeSkipped means the output already existed under the skip policy.
	OutcomeSkipped
	// OutcomeFailed means the job stopped at some stage.
	OutcomeFailed
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ProcessResult is what a successful or skipped Process call returns.
type ProcessResult struct {
	Outcome    Outcome
	OutputPath string
	// Size is the output size in bytes. Zero for skipped jobs.
	Size int64
	// CoverEmbedded is false on the degraded no-artwork path.
	CoverEmbedded bool
}

// JobResult records one job's outcome in the run summary.
type JobResult struct {
	Job        *TrackJob
	Outcome    Outcome
	OutputPath string
	Size       int64
	Err        error
	Duration   time.Duration
}

// FailedStage returns the stage of a failed job, or "" when unknown.
func (r *JobResult) FailedStage() Stage {
	if processingErr, ok := asProcessingError(r.Err); ok {
		return processingErr.Stage
	}

	return ""
}

// RunStatus is the terminal state of a run.
type RunStatus string

const (
	// RunCompleted means every job was processed.
	RunCompleted RunStatus = "completed"
	// RunCancelled means the run stopped dispatching early.
	RunCancelled RunStatus = "cancelled"
	// RunEmpty means there were no jobs.
	RunEmpty RunStatus = "empty"
)

// RunSummary aggregates one orchestrator run.
type RunSummary struct {
	Status RunStatus
	// Total is the job count captured at run start.
	Total int
	// Processed counts jobs that reached an outcome.
	Processed int
	Succeeded int
	Skipped   int
	Failed    int
	// Bytes is the total size of written files.
	Bytes int64
	// Results holds one entry per processed job, in completion order.
	Results   []*JobResult
	StartTime time.Time
	EndTime   time.Time
}

// NotStarted counts jobs that were never dispatched because of cancellation.
func (s *RunSummary) NotStarted() int {
	return s.Total - s.Processed
}

// Failures returns the failed results.
func (s *RunSummary) Failures() []*JobResult {
	var failures []*JobResult

	for _, result := range s.Results {
		if result.Outcome == OutcomeFailed {
			failures = append(failures, result)
		}
	}

	return failures
}
