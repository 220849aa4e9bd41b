package download

//go:generate $MOCKGEN -source=processor.go -destination=mocks/processor_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/spotisaver/internal/client/ffmpeg"
	"github.com/oshokin/spotisaver/internal/client/spotify"
	"github.com/oshokin/spotisaver/internal/client/ytdlp"
	"github.com/oshokin/spotisaver/internal/constants"
	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/utils"
)

const (
	// scratchPattern names per-job scratch directories.
	scratchPattern = "spotisaver-*"
	// coverFileName is the artwork file inside a scratch directory.
	coverFileName = "cover" + constants.ExtensionJPEG
	// commentPrefix starts the traceability comment.
	commentPrefix = "Spotify URI: "
	// DefaultCoverTimeout bounds a single cover download.
	DefaultCoverTimeout = 15 * time.Second
)

// TrackProcessor turns one job into one file.
type TrackProcessor interface {
	// Process runs every stage for job and writes the result into outputDir.
	// Failures are returned as *ProcessingError.
	Process(ctx context.Context, job *TrackJob, outputDir string) (*ProcessResult, error)
}

// ProcessorConfig holds the collaborators of a TrackProcessorImpl.
type ProcessorConfig struct {
	Catalog   spotify.Client
	Extractor ytdlp.Extractor
	Muxer     ffmpeg.Muxer
	Verifier  TagVerifier
	// CoverTimeout defaults to DefaultCoverTimeout.
	CoverTimeout time.Duration
	// ScratchDir is the parent of per-job scratch directories. Defaults to os.TempDir().
	ScratchDir string
}

// TrackProcessorImpl implements TrackProcessor.
type TrackProcessorImpl struct {
	catalog      spotify.Client
	extractor    ytdlp.Extractor
	muxer        ffmpeg.Muxer
	verifier     TagVerifier
	coverTimeout time.Duration
	scratchDir   string
}

// NewTrackProcessor creates a TrackProcessor.
func NewTrackProcessor(cfg *ProcessorConfig) TrackProcessor {
	processor := &TrackProcessorImpl{
		catalog:      cfg.Catalog,
		extractor:    cfg.Extractor,
		muxer:        cfg.Muxer,
		verifier:     cfg.Verifier,
		coverTimeout: cfg.CoverTimeout,
		scratchDir:   cfg.ScratchDir,
	}

	if processor.coverTimeout <= 0 {
		processor.coverTimeout = DefaultCoverTimeout
	}

	if processor.verifier == nil {
		processor.verifier = NewTagVerifier()
	}

	return processor
}

// Process runs the stages in order: skip check, search and extract, cover fetch, mux, verify.
func (p *TrackProcessorImpl) Process(ctx context.Context, job *TrackJob, outputDir string) (*ProcessResult, error) {
	if job.Artist == "" && job.Title == "" {
		return nil, stageError(StageSearch, ErrEmptyQuery)
	}

	targetPath := filepath.Join(outputDir, BuildTrackFilename(job.Artist, job.Title, job.Format))

	if job.Overwrite == OverwriteSkip {
		exists, err := utils.IsFileExist(targetPath)
		if err != nil {
			return nil, stageError(StageSearch, err)
		}

		if exists {
			return &ProcessResult{Outcome: OutcomeSkipped, OutputPath: targetPath}, nil
		}
	}

	scratch, err := os.MkdirTemp(p.scratchDir, scratchPattern)
	if err != nil {
		return nil, stageError(StageExtract, fmt.Errorf("failed to create scratch directory: %w", err))
	}

	defer func() {
		if removeErr := os.RemoveAll(scratch); removeErr != nil {
			logger.Warnf(ctx, "Failed to remove scratch directory %s: %v", scratch, removeErr)
		}
	}()

	audioPath, err := p.extractor.Extract(ctx, &ytdlp.ExtractRequest{
		Query:   job.Query(),
		Format:  job.Format,
		Bitrate: job.Bitrate,
		Dir:     scratch,
	})
	if err != nil {
		if errors.Is(err, ytdlp.ErrToolNotFound) || errors.Is(err, ytdlp.ErrEmptyQuery) {
			return nil, stageError(StageSearch, err)
		}

		return nil, stageError(StageExtract, err)
	}

	coverPath, err := p.fetchCover(ctx, job, scratch)
	if err != nil {
		return nil, stageError(StageCoverFetch, err)
	}

	if coverPath == "" {
		logger.Debugf(ctx, "No cover art for %s, writing plain audio", job.DisplayName())
	}

	metadata := buildMetadata(job)

	if err = p.mux(ctx, job, audioPath, coverPath, targetPath, metadata); err != nil {
		return nil, err
	}

	verified, err := p.verifier.Verify(ctx, &VerifyRequest{
		Path:      targetPath,
		Format:    job.Format,
		Metadata:  metadata,
		CoverPath: coverPath,
	})
	if err != nil {
		return nil, stageError(StageVerify, err)
	}

	return &ProcessResult{
		Outcome:       OutcomeSucceeded,
		OutputPath:    targetPath,
		Size:          verified.Size,
		CoverEmbedded: coverPath != "",
	}, nil
}

// mux writes into a hidden temporary file in outputDir and renames it over targetPath,
// so readers never see a half-written file and the last writer wins on name clashes.
func (p *TrackProcessorImpl) mux(
	ctx context.Context,
	job *TrackJob,
	audioPath, coverPath, targetPath string,
	metadata ffmpeg.Metadata,
) error {
	tempPath := filepath.Join(filepath.Dir(targetPath), "."+uuid.NewString()+"."+job.Format)

	err := p.muxer.Mux(ctx, &ffmpeg.MuxRequest{
		AudioPath:  audioPath,
		CoverPath:  coverPath,
		OutputPath: tempPath,
		Format:     job.Format,
		Metadata:   metadata,
	})
	if err != nil {
		removeIfExists(ctx, tempPath)

		return stageError(StageMux, err)
	}

	exists, err := utils.IsFileExist(tempPath)
	if err != nil {
		return stageError(StageVerify, err)
	}

	// ffmpeg may exit cleanly without writing anything.
	if !exists {
		return stageError(StageVerify, fmt.Errorf("%w: %s", ErrOutputMissing, filepath.Base(targetPath)))
	}

	if err = os.Rename(tempPath, targetPath); err != nil {
		removeIfExists(ctx, tempPath)

		return stageError(StageMux, fmt.Errorf("failed to move output into place: %w", err))
	}

	return nil
}

// fetchCover downloads the largest album image into scratch.
// It returns "" without error when there is nothing to embed.
func (p *TrackProcessorImpl) fetchCover(ctx context.Context, job *TrackJob, scratch string) (string, error) {
	if job.URI == "" || !ffmpeg.SupportsCover(job.Format) {
		return "", nil
	}

	coverCtx, cancel := context.WithTimeout(ctx, p.coverTimeout)
	defer cancel()

	track, err := p.catalog.GetTrack(coverCtx, spotify.TrackIDFromURI(job.URI))
	if err != nil {
		return "", err
	}

	image := track.Album.LargestImage()
	if image == nil {
		return "", nil
	}

	body, err := p.catalog.DownloadFromURL(coverCtx, image.URL)
	if err != nil {
		return "", err
	}

	defer body.Close() //nolint:errcheck // Error on close is not critical here.

	coverPath := filepath.Join(scratch, coverFileName)

	file, err := os.OpenFile(coverPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DefaultFilePermissions)
	if err != nil {
		return "", err
	}

	_, copyErr := io.Copy(file, body)
	if err = errors.Join(copyErr, file.Close()); err != nil {
		return "", fmt.Errorf("failed to save cover: %w", err)
	}

	return coverPath, nil
}

func buildMetadata(job *TrackJob) ffmpeg.Metadata {
	metadata := ffmpeg.Metadata{
		Title:     job.Title,
		Artist:    job.Artist,
		Album:     job.Album,
		Date:      job.ReleaseDate,
		Year:      job.Year,
		Genre:     job.Genre,
		Publisher: job.Label,
	}

	if job.URI != "" {
		metadata.Comment = commentPrefix + job.URI
	}

	return metadata
}

func removeIfExists(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf(ctx, "Failed to remove %s: %v", path, err)
	}
}
