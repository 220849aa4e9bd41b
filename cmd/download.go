package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/spotisaver/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var downloadCmd = &cobra.Command{
	Use:   "download {table.csv}",
	Short: "Download and tag every track listed in an exported table.",
	Long: `Reads a table written by 'export' and, for every row, searches for the track,
extracts its audio with yt-dlp, embeds the album cover and tags with ffmpeg and
checks the written file.

Files are named "<artist> - <title>.<format>". Press Ctrl+C once to stop starting
new tracks; running ones are finished and a summary is printed.`,
	Args:             cobra.ExactArgs(1),
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, args []string) {
		mustBindFlags(cmd)

		app.ExecuteDownloadCommand(cmd.Context(), appConfig, args[0])
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	flags := downloadCmd.Flags()

	flags.StringP(
		flagOutput,
		"o",
		"",
		"directory for audio files (default is '<table name>_download' next to the table).")

	flags.StringP(
		flagFormat,
		"f",
		"",
		"audio format: mp3, flac or wav.")

	flags.IntP(
		flagBitrate,
		"b",
		0,
		"mp3 bitrate in kbps: 128, 160, 192, 256 or 320.")

	flags.String(
		flagOverwrite,
		"",
		"what to do with existing files: skip or overwrite.")

	flags.IntP(
		flagWorkers,
		"w",
		0,
		"number of tracks processed at once, 1 to 4.")

	rootCmd.AddCommand(downloadCmd)
}
