package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/spotisaver/internal/client/spotify"
	"github.com/oshokin/spotisaver/internal/config"
	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/service/playlist"
	"github.com/oshokin/spotisaver/internal/utils"
)

const (
	// defaultExportDir is used when no output path is configured.
	defaultExportDir = "."
	// urlListExtension marks an argument as a file with one URL per line.
	urlListExtension = ".txt"
)

// ExecuteExportCommand exports playlists, or every public playlist of a user, into CSV tables.
// Each input is a URL or a .txt file listing URLs. A failing URL does not stop the others.
func ExecuteExportCommand(ctx context.Context, cfg *config.Config, inputs []string) {
	urls, err := collectURLs(inputs)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read URL list: %v", err)
	}

	if len(urls) == 0 {
		logger.Fatalf(ctx, "No URLs to export")
	}

	if err = config.ValidateCredentials(cfg); err != nil {
		logger.Fatalf(ctx, "Spotify credentials are required for export, run 'spotisaver auth' first: %v", err)
	}

	client, err := spotify.NewClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize spotify client: %v", err)
	}

	var opts []playlist.AggregatorOption

	// Bars would interleave with debug output, so they are shown at info level only.
	if logger.Level() == zap.InfoLevel {
		opts = append(opts, playlist.WithTrackProgress(newTrackProgressBar().update))
	}

	service := playlist.NewService(client, playlist.NewAggregator(client, opts...), playlist.NewTableExporter())

	outputDir := cfg.OutputPath
	if outputDir == "" {
		outputDir = defaultExportDir
	}

	var exported, failed int

	for _, url := range urls {
		if ctx.Err() != nil {
			logger.Warn(ctx, "Export interrupted")

			break
		}

		paths, exportErr := service.Export(ctx, url, outputDir)
		if exportErr != nil {
			logger.Errorf(ctx, "Failed to export %s: %v", url, exportErr)

			failed++

			continue
		}

		for _, path := range paths {
			logger.Infof(ctx, "Saved %s", path)
		}

		exported += len(paths)
	}

	logger.Infof(ctx, "Exported %d playlist(s)", exported)

	if failed > 0 {
		logger.Fatalf(ctx, "%d of %d URL(s) could not be exported", failed, len(urls))
	}
}

// collectURLs expands .txt arguments into their lines and removes duplicates, keeping order.
func collectURLs(inputs []string) ([]string, error) {
	var (
		seen = make(map[string]struct{})
		urls []string
	)

	add := func(url string) {
		if _, ok := seen[url]; ok {
			return
		}

		seen[url] = struct{}{}
		urls = append(urls, url)
	}

	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !strings.EqualFold(filepath.Ext(input), urlListExtension) {
			add(input)

			continue
		}

		isFile, err := utils.IsFileExist(input)
		if err != nil {
			return nil, err
		}

		if !isFile {
			add(input)

			continue
		}

		lines, err := utils.ReadUniqueLinesFromFile(input)
		if err != nil {
			return nil, err
		}

		for _, line := range lines {
			add(line)
		}
	}

	return urls, nil
}

// trackProgressBar renders aggregation progress, one bar per playlist.
type trackProgressBar struct {
	bar *progressbar.ProgressBar
}

func newTrackProgressBar() *trackProgressBar {
	return new(trackProgressBar)
}

func (p *trackProgressBar) update(done, total int) {
	if p.bar == nil || done == 1 {
		p.bar = progressbar.Default(int64(total), "Collecting tracks")
	}

	_ = p.bar.Set(done)

	if done == total {
		_ = p.bar.Finish()
	}
}
