package app

import (
	"context"

	"github.com/oshokin/spotisaver/internal/client/spotify"
	"github.com/oshokin/spotisaver/internal/config"
	"github.com/oshokin/spotisaver/internal/logger"
)

// ExecuteAuthCommand checks the client credentials against the token endpoint
// and stores them in the configuration file.
func ExecuteAuthCommand(ctx context.Context, cfg *config.Config) {
	if err := config.ValidateCredentials(cfg); err != nil {
		logger.Fatalf(ctx, "Pass --client-id and --client-secret or set them in the config file: %v", err)
	}

	logger.Info(ctx, "Requesting an access token")

	if err := spotify.VerifyCredentials(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret); err != nil {
		logger.Fatalf(ctx, "Spotify rejected the credentials: %v", err)
	}

	if err := config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
	}

	logger.Info(ctx, "Credentials verified and saved.")
	logger.Info(ctx, "")
	logger.Info(ctx, "Export a playlist:")
	logger.Info(ctx, "spotisaver export https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M")
	logger.Info(ctx, "")
	logger.Info(ctx, "Then download it:")
	logger.Info(ctx, "spotisaver download Todays_Top_Hits.csv")
}
