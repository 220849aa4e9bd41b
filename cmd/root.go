package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/spotisaver/internal/config"
	"github.com/oshokin/spotisaver/internal/logger"
	"github.com/oshokin/spotisaver/internal/version"
)

// Flag names shared by the subcommands and bindFlagsToConfig.
const (
	flagOutput       = "output"
	flagFormat       = "format"
	flagBitrate      = "bitrate"
	flagOverwrite    = "overwrite"
	flagWorkers      = "workers"
	flagClientID     = "client-id"
	flagClientSecret = "client-secret"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "spotisaver",
		Short: "Export Spotify playlists to CSV and download the tracks they list.",
		Long: `Spotisaver saves Spotify playlists as CSV tables and turns those tables into
a local music folder.

  spotisaver export <playlist-or-user-url>   write one CSV table per playlist
  spotisaver download <table.csv>            find, download and tag every row
  spotisaver auth                            check and store Spotify app credentials

Audio is located and extracted with yt-dlp and tagged with ffmpeg; both must be installed.`,
		Version:      version.Full(),
		SilenceUsage: true,
	}
)

// Execute executes the root command.
// The first interrupt cancels the command context; a second one kills the process.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	context.AfterFunc(ctx, stop)

	err := rootCmd.ExecuteContext(ctx)

	stop()
	cobra.CheckErr(err)
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmd.SetVersionTemplate("spotisaver {{.Version}}\n")
}

// initConfig loads the configuration and applies the log level. Flags are bound later,
// in each command's Run, so that they override file and environment values.
func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	parsedLevel, ok := logger.ParseLogLevel(appConfig.LogLevel)
	if ok {
		logger.SetLevel(parsedLevel)
	}
}

// mustBindFlags applies changed flags to appConfig and validates the result.
func mustBindFlags(cmd *cobra.Command) {
	if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Invalid settings: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

// bindFlagsToConfig copies every flag the user actually set into cfg, then validates cfg.
// Flags a command does not define are ignored.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup(flagOutput); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString(flagOutput)
	}

	if flag := flags.Lookup(flagFormat); flag != nil && flag.Changed {
		cfg.AudioFormat, _ = flags.GetString(flagFormat)
	}

	if flag := flags.Lookup(flagBitrate); flag != nil && flag.Changed {
		cfg.Bitrate, _ = flags.GetInt(flagBitrate)
	}

	if flag := flags.Lookup(flagOverwrite); flag != nil && flag.Changed {
		cfg.Overwrite, _ = flags.GetString(flagOverwrite)
	}

	if flag := flags.Lookup(flagWorkers); flag != nil && flag.Changed {
		cfg.MaxConcurrentDownloads, _ = flags.GetInt(flagWorkers)
	}

	if flag := flags.Lookup(flagClientID); flag != nil && flag.Changed {
		cfg.SpotifyClientID, _ = flags.GetString(flagClientID)
	}

	if flag := flags.Lookup(flagClientSecret); flag != nil && flag.Changed {
		cfg.SpotifyClientSecret, _ = flags.GetString(flagClientSecret)
	}

	return config.ValidateConfig(cfg)
}
