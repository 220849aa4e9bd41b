package download

import (
	"context"
	"fmt"
	"os"

	"github.com/oshokin/spotisaver/internal/constants"
	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/service/playlist"
)

// DownloadOptions configures one table download.
type DownloadOptions struct {
	// OutputDir defaults to DefaultOutputDir of the table path.
	OutputDir  string
	Settings   Settings
	Workers    int
	OnProgress ProgressFunc
	OnLog      LogFunc
}

// Service downloads every track listed in an exported table.
type Service interface {
	// DownloadTable reads tablePath and runs one job per row.
	DownloadTable(ctx context.Context, tablePath string, opts *DownloadOptions) (*RunSummary, error)
}

// ServiceImpl implements Service.
type ServiceImpl struct {
	tables       playlist.TableExporter
	orchestrator *Orchestrator
}

// NewService creates a Service.
func NewService(tables playlist.TableExporter, processor TrackProcessor) Service {
	return &ServiceImpl{
		tables:       tables,
		orchestrator: NewOrchestrator(processor),
	}
}

// DownloadTable validates the options before touching the table or the file system.
func (s *ServiceImpl) DownloadTable(ctx context.Context, tablePath string, opts *DownloadOptions) (*RunSummary, error) {
	settings := opts.Settings
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if opts.Workers < MinWorkers || opts.Workers > MaxWorkers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, opts.Workers)
	}

	records, err := s.tables.Read(ctx, tablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", tablePath, err)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir(tablePath)
	}

	if err = os.MkdirAll(outputDir, constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	jobs := JobsFromRecords(records, settings)

	logger.Infof(ctx, "Downloading %d track(s) as %s into %s with %d worker(s)",
		len(jobs), settings.Format, outputDir, opts.Workers)

	return s.orchestrator.Run(ctx, &RunRequest{
		Jobs:       jobs,
		Workers:    opts.Workers,
		OutputDir:  outputDir,
		OnProgress: opts.OnProgress,
		OnLog:      opts.OnLog,
	})
}
