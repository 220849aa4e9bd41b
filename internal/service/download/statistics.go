package download

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/utils"
)

const (
	summaryRule = "═══════════════════════════════════════════════════════════════"
	// unknownStage groups failures without a stage (panics, unexpected errors).
	unknownStage Stage = "unknown"
	// minReportedDuration hides durations too short to be interesting.
	minReportedDuration = 100 * time.Millisecond
)

// stageOrder is the order stage groups are printed in.
//
//nolint:gochecknoglobals // Read-only list.
var stageOrder = []Stage{StageSearch, StageExtract, StageCoverFetch, StageMux, StageVerify, unknownStage}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// PrintRunSummary logs the outcome counts of a run, followed by failures grouped by stage.
// A summary is printed for every run, including runs where every job failed.
func PrintRunSummary(ctx context.Context, summary *RunSummary) {
	if summary == nil {
		return
	}

	logger.Info(ctx, "")
	logger.Info(ctx, summaryRule)

	switch summary.Status {
	case RunCancelled:
		logger.Info(ctx, "           DOWNLOAD SUMMARY (Cancelled)")
	case RunEmpty:
		logger.Info(ctx, "           DOWNLOAD SUMMARY (Empty table)")
	default:
		logger.Info(ctx, "                  DOWNLOAD SUMMARY")
	}

	logger.Info(ctx, summaryRule)

	printCounts(ctx, summary)
	printTransfer(ctx, summary)

	logger.Info(ctx, summaryRule)

	printFailures(ctx, summary)
	printFinalMessage(ctx, summary)
}

func printCounts(ctx context.Context, summary *RunSummary) {
	logger.Infof(ctx, "Tracks:           %d total, %d processed", summary.Total, summary.Processed)
	logger.Infof(ctx, "  Downloaded:      %d", summary.Succeeded)
	logger.Infof(ctx, "  Skipped:         %d", summary.Skipped)
	logger.Infof(ctx, "  Failed:          %d", summary.Failed)

	if notStarted := summary.NotStarted(); notStarted > 0 {
		logger.Infof(ctx, "  Not Started:     %d", notStarted)
	}

	if summary.Processed > 0 {
		successRate := float64(summary.Succeeded+summary.Skipped) / float64(summary.Processed) * 100
		logger.Infof(ctx, "  Success Rate:    %.1f%%", successRate)
	}
}

func printTransfer(ctx context.Context, summary *RunSummary) {
	if summary.Bytes > 0 {
		logger.Info(ctx, "")
		logger.Infof(ctx, "Data Written:     %s", humanize.Bytes(utils.SafeInt64ToUint64(summary.Bytes)))
	}

	if summary.StartTime.IsZero() || summary.EndTime.IsZero() {
		return
	}

	if duration := summary.EndTime.Sub(summary.StartTime); duration > minReportedDuration {
		logger.Infof(ctx, "Duration:         %s", formatDuration(duration))
	}
}

// groupFailuresByStage keys failed results by the stage they stopped at.
func groupFailuresByStage(failures []*JobResult) map[Stage][]*JobResult {
	groups := make(map[Stage][]*JobResult)

	for _, failure := range failures {
		stage := failure.FailedStage()
		if stage == "" {
			stage = unknownStage
		}

		groups[stage] = append(groups[stage], failure)
	}

	return groups
}

func printFailures(ctx context.Context, summary *RunSummary) {
	failures := summary.Failures()
	if len(failures) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "ERRORS ENCOUNTERED: %d", len(failures))

	groups := groupFailuresByStage(failures)

	for _, stage := range stageOrder {
		group := groups[stage]
		if len(group) == 0 {
			continue
		}

		logger.Info(ctx, "")
		logger.Errorf(ctx, "  Stage %s (%d):", stage, len(group))

		for i, failure := range group {
			logger.Errorf(ctx, "    [%d] row %d: %s", i+1, failure.Job.Index+1, failure.Job.DisplayName())
			logger.Errorf(ctx, "        Error: %v", failure.Err)
		}
	}

	logger.Info(ctx, "")
	logger.Info(ctx, summaryRule)
}

func printFinalMessage(ctx context.Context, summary *RunSummary) {
	switch {
	case summary.Status == RunEmpty:
		logger.Info(ctx, "The table has no rows - nothing to download.")
	case summary.Status == RunCancelled:
		logger.Warn(ctx, "Download cancelled before every track was started.")

		if summary.Succeeded > 0 {
			logger.Infof(ctx, "Downloaded %d track(s) before cancellation.", summary.Succeeded)
		}
	case summary.Failed > 0:
		logger.Warnf(ctx, "%d track(s) failed. Run the same command again with the skip policy to retry only them.",
			summary.Failed)
	case summary.Succeeded > 0:
		logger.Info(ctx, "All downloads completed successfully!")
	case summary.Skipped > 0:
		logger.Info(ctx, "All tracks already exist in the output directory.")
	}
}
