package app

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/oshokin/spotisaver/internal/client/ffmpeg"
	"github.com/oshokin/spotisaver/internal/client/spotify"
	"github.com/oshokin/spotisaver/internal/client/ytdlp"
	"github.com/oshokin/spotisaver/internal/config"
	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/progress"
	"github.com/oshokin/spotisaver/internal/service/download"
	"github.com/oshokin/spotisaver/internal/service/playlist"
)

// ExecuteDownloadCommand downloads every track of an exported table.
// Cancelling ctx stops new tracks from starting; the summary is printed either way.
func ExecuteDownloadCommand(ctx context.Context, cfg *config.Config, tablePath string) {
	if err := config.ValidateCredentials(cfg); err != nil {
		logger.Fatalf(ctx, "Spotify credentials are required for cover art, run 'spotisaver auth' first: %v", err)
	}

	client, err := spotify.NewClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize spotify client: %v", err)
	}

	processor := download.NewTrackProcessor(&download.ProcessorConfig{
		Catalog:      client,
		Extractor:    ytdlp.NewExtractor(cfg.YtDlpPath),
		Muxer:        ffmpeg.NewMuxer(cfg.FFmpegPath),
		CoverTimeout: cfg.ParsedCoverTimeout,
	})

	service := download.NewService(playlist.NewTableExporter(), processor)

	stopNotice := context.AfterFunc(ctx, func() {
		logger.Warn(context.WithoutCancel(ctx), "Interrupted: waiting for running tracks to finish")
	})
	defer stopNotice()

	var (
		sink     = progress.NewSink()
		terminal = newConsole(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
		drained  = make(chan struct{})
	)

	// The consumer outlives cancellation so the final events are still shown.
	go func() {
		defer close(drained)

		sink.Run(context.WithoutCancel(ctx), cfg.ParsedProgressInterval, terminal.consume)
	}()

	summary, err := service.DownloadTable(ctx, tablePath, &download.DownloadOptions{
		OutputDir: cfg.OutputPath,
		Settings: download.Settings{
			Format:    cfg.AudioFormat,
			Bitrate:   cfg.Bitrate,
			Overwrite: download.OverwritePolicy(cfg.Overwrite),
		},
		Workers:    cfg.MaxConcurrentDownloads,
		OnProgress: sink.Progress,
		OnLog:      sink.Log,
	})

	sink.Close()
	<-drained
	terminal.finish()

	if err != nil {
		logger.Fatalf(ctx, "Download failed: %v", err)
	}

	download.PrintRunSummary(ctx, summary)
}
