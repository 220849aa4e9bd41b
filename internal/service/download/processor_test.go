package download_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/spotisaver/internal/client/ffmpeg"
	mock_ffmpeg "github.com/oshokin/spotisaver/internal/client/ffmpeg/mocks"
	"github.com/oshokin/spotisaver/internal/client/spotify"
	mock_spotify "github.com/oshokin/spotisaver/internal/client/spotify/mocks"
	"github.com/oshokin/spotisaver/internal/client/ytdlp"
	mock_ytdlp "github.com/oshokin/spotisaver/internal/client/ytdlp/mocks"
	"github.com/oshokin/spotisaver/internal/constants"
	"github.com/oshokin/spotisaver/internal/service/download"
	mock_download "github.com/oshokin/spotisaver/internal/service/download/mocks"
)

type processorMocks struct {
	catalog   *mock_spotify.MockClient
	extractor *mock_ytdlp.MockExtractor
	muxer     *mock_ffmpeg.MockMuxer
	verifier  *mock_download.MockTagVerifier
}

func newProcessor(t *testing.T, withVerifierMock bool) (download.TrackProcessor, *processorMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := &processorMocks{
		catalog:   mock_spotify.NewMockClient(ctrl),
		extractor: mock_ytdlp.NewMockExtractor(ctrl),
		muxer:     mock_ffmpeg.NewMockMuxer(ctrl),
		verifier:  mock_download.NewMockTagVerifier(ctrl),
	}

	cfg := &download.ProcessorConfig{
		Catalog:    mocks.catalog,
		Extractor:  mocks.extractor,
		Muxer:      mocks.muxer,
		ScratchDir: t.TempDir(),
	}

	if withVerifierMock {
		cfg.Verifier = mocks.verifier
	}

	return download.NewTrackProcessor(cfg), mocks
}

func testJob(format string) *download.TrackJob {
	return &download.TrackJob{
		Artist:      "Sade",
		Title:       "Smooth Operator",
		Album:       "Diamond Life",
		URI:         "spotify:track:t1",
		Genre:       "soul",
		Label:       "Epic",
		ReleaseDate: "1984-07-16",
		Year:        "1984",
		Format:      format,
		Bitrate:     320,
		Overwrite:   download.OverwriteSkip,
	}
}

// extractInto fakes yt-dlp by writing the expected source file.
func extractInto(_ context.Context, req *ytdlp.ExtractRequest) (string, error) {
	path := filepath.Join(req.Dir, "source."+req.Format)

	return path, os.WriteFile(path, []byte("audio"), constants.DefaultFilePermissions)
}

// muxInto fakes ffmpeg by writing a small output file.
func muxInto(_ context.Context, req *ffmpeg.MuxRequest) error {
	return os.WriteFile(req.OutputPath, []byte("muxed audio"), constants.DefaultFilePermissions)
}

func requireStage(t *testing.T, err error, stage download.Stage) {
	t.Helper()

	var processingErr *download.ProcessingError

	require.ErrorAs(t, err, &processingErr)
	assert.Equal(t, stage, processingErr.Stage)
}

// TestProcess_SkipsExisting tests that an existing file is left alone under the skip policy.
func TestProcess_SkipsExisting(t *testing.T) {
	t.Parallel()

	processor, _ := newProcessor(t, true)
	outputDir := t.TempDir()
	existing := filepath.Join(outputDir, "Sade - Smooth Operator.mp3")

	require.NoError(t, os.WriteFile(existing, []byte("old"), constants.DefaultFilePermissions))

	// No expectations: extraction or muxing would fail the test.
	result, err := processor.Process(t.Context(), testJob(download.FormatMP3), outputDir)
	require.NoError(t, err)
	assert.Equal(t, download.OutcomeSkipped, result.Outcome)
	assert.Equal(t, existing, result.OutputPath)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

// TestProcess_EmptyRow tests that placeholder rows fail at the search stage.
func TestProcess_EmptyRow(t *testing.T) {
	t.Parallel()

	processor, _ := newProcessor(t, true)

	_, err := processor.Process(t.Context(), &download.TrackJob{Format: download.FormatMP3}, t.TempDir())
	require.ErrorIs(t, err, download.ErrEmptyQuery)
	requireStage(t, err, download.StageSearch)
}

// TestProcess_WAVWithoutCover tests the wav path, which never fetches artwork.
func TestProcess_WAVWithoutCover(t *testing.T) {
	t.Parallel()

	processor, mocks := newProcessor(t, false)
	outputDir := t.TempDir()
	job := testJob(download.FormatWAV)
	job.Overwrite = download.OverwriteAlways

	// The wav container holds no picture, so the catalog is never asked for one.
	mocks.catalog.EXPECT().GetTrack(gomock.Any(), gomock.Any()).Times(0)
	mocks.catalog.EXPECT().DownloadFromURL(gomock.Any(), gomock.Any()).Times(0)

	mocks.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *ytdlp.ExtractRequest) (string, error) {
			assert.Equal(t, "Sade - Smooth Operator", req.Query)
			assert.Equal(t, download.FormatWAV, req.Format)

			return extractInto(ctx, req)
		})
	mocks.muxer.EXPECT().Mux(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *ffmpeg.MuxRequest) error {
			assert.Empty(t, req.CoverPath)
			assert.Equal(t, "Epic", req.Metadata.Publisher)
			assert.Equal(t, "Spotify URI: spotify:track:t1", req.Metadata.Comment)
			assert.Equal(t, outputDir, filepath.Dir(req.OutputPath))

			return muxInto(ctx, req)
		})

	result, err := processor.Process(t.Context(), job, outputDir)
	require.NoError(t, err)
	assert.Equal(t, download.OutcomeSucceeded, result.Outcome)
	assert.False(t, result.CoverEmbedded)
	assert.Equal(t, filepath.Join(outputDir, "Sade - Smooth Operator.wav"), result.OutputPath)
	assert.Equal(t, int64(len("muxed audio")), result.Size)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files may be left behind")
}

// TestProcess_MP3WithCover tests artwork download and embedding.
func TestProcess_MP3WithCover(t *testing.T) {
	t.Parallel()

	processor, mocks := newProcessor(t, true)
	outputDir := t.TempDir()

	mocks.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(extractInto)
	mocks.catalog.EXPECT().GetTrack(gomock.Any(), "t1").Return(&spotify.Track{
		ID: "t1",
		Album: &spotify.Album{Images: []*spotify.Image{
			{URL: "https://i.scdn.co/small", Width: 64},
			{URL: "https://i.scdn.co/large", Width: 640},
		}},
	}, nil)
	mocks.catalog.EXPECT().DownloadFromURL(gomock.Any(), "https://i.scdn.co/large").
		Return(io.NopCloser(strings.NewReader("jpeg bytes")), nil)
	mocks.muxer.EXPECT().Mux(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *ffmpeg.MuxRequest) error {
			data, err := os.ReadFile(req.CoverPath)
			require.NoError(t, err)
			assert.Equal(t, "jpeg bytes", string(data))

			return muxInto(ctx, req)
		})
	mocks.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *download.VerifyRequest) (*download.VerifyResult, error) {
			assert.NotEmpty(t, req.CoverPath)
			assert.Equal(t, "Smooth Operator", req.Metadata.Title)

			return &download.VerifyResult{Size: 2048}, nil
		})

	result, err := processor.Process(t.Context(), testJob(download.FormatMP3), outputDir)
	require.NoError(t, err)
	assert.Equal(t, download.OutcomeSucceeded, result.Outcome)
	assert.True(t, result.CoverEmbedded)
	assert.Equal(t, int64(2048), result.Size)
}

// TestProcess_NoArtwork tests the degraded path for albums without images.
func TestProcess_NoArtwork(t *testing.T) {
	t.Parallel()

	processor, mocks := newProcessor(t, true)

	mocks.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(extractInto)
	mocks.catalog.EXPECT().GetTrack(gomock.Any(), "t1").Return(&spotify.Track{ID: "t1", Album: &spotify.Album{}}, nil)
	mocks.muxer.EXPECT().Mux(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *ffmpeg.MuxRequest) error {
			assert.Empty(t, req.CoverPath)

			return muxInto(ctx, req)
		})
	mocks.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(&download.VerifyResult{Size: 11}, nil)

	result, err := processor.Process(t.Context(), testJob(download.FormatFLAC), t.TempDir())
	require.NoError(t, err)
	assert.False(t, result.CoverEmbedded)
}

// TestProcess_StageMapping tests which stage each collaborator failure is reported at.
func TestProcess_StageMapping(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	tests := []struct {
		name  string
		setup func(m *processorMocks)
		stage download.Stage
	}{
		{
			name: "yt-dlp missing",
			setup: func(m *processorMocks) {
				m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return("", ytdlp.ErrToolNotFound)
			},
			stage: download.StageSearch,
		},
		{
			name: "extraction failed",
			setup: func(m *processorMocks) {
				m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).Return("", ytdlp.ErrNoOutput)
			},
			stage: download.StageExtract,
		},
		{
			name: "catalog lookup failed",
			setup: func(m *processorMocks) {
				m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(extractInto)
				m.catalog.EXPECT().GetTrack(gomock.Any(), "t1").Return(nil, boom)
			},
			stage: download.StageCoverFetch,
		},
		{
			name: "artwork download failed",
			setup: func(m *processorMocks) {
				m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(extractInto)
				m.catalog.EXPECT().GetTrack(gomock.Any(), "t1").Return(&spotify.Track{
					Album: &spotify.Album{Images: []*spotify.Image{{URL: "https://i.scdn.co/x", Width: 640}}},
				}, nil)
				m.catalog.EXPECT().DownloadFromURL(gomock.Any(), "https://i.scdn.co/x").Return(nil, boom)
			},
			stage: download.StageCoverFetch,
		},
		{
			name: "ffmpeg failed",
			setup: func(m *processorMocks) {
				m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(extractInto)
				m.catalog.EXPECT().GetTrack(gomock.Any(), "t1").Return(&spotify.Track{Album: &spotify.Album{}}, nil)
				m.muxer.EXPECT().Mux(gomock.Any(), gomock.Any()).Return(ffmpeg.ErrMuxFailed)
			},
			stage: download.StageMux,
		},
		{
			name: "ffmpeg wrote nothing",
			setup: func(m *processorMocks) {
				m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(extractInto)
				m.catalog.EXPECT().GetTrack(gomock.Any(), "t1").Return(&spotify.Track{Album: &spotify.Album{}}, nil)
				m.muxer.EXPECT().Mux(gomock.Any(), gomock.Any()).Return(nil)
			},
			stage: download.StageVerify,
		},
		{
			name: "verification failed",
			setup: func(m *processorMocks) {
				m.extractor.EXPECT().Extract(gomock.Any(), gomock.Any()).DoAndReturn(extractInto)
				m.catalog.EXPECT().GetTrack(gomock.Any(), "t1").Return(&spotify.Track{Album: &spotify.Album{}}, nil)
				m.muxer.EXPECT().Mux(gomock.Any(), gomock.Any()).DoAndReturn(muxInto)
				m.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil, download.ErrOutputEmpty)
			},
			stage: download.StageVerify,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			processor, mocks := newProcessor(t, true)
			tt.setup(mocks)

			result, err := processor.Process(t.Context(), testJob(download.FormatMP3), t.TempDir())
			require.Error(t, err)
			assert.Nil(t, result)
			requireStage(t, err, tt.stage)
		})
	}
}
