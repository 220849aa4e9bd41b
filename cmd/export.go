package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/spotisaver/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var exportCmd = &cobra.Command{
	Use:   "export {playlist-or-user-urls}",
	Short: "Export playlists, or all public playlists of a user, to CSV.",
	Long: `Fetches every entry of a playlist together with album, release date, label and
artist genres, and writes it to "<playlist name>.csv".

For a user URL (https://open.spotify.com/user/<id>) every public playlist of the
user is exported into the folder "<id>'s_spotify_playlist_data".

Arguments ending in .txt are read as lists of URLs, one per line.

Removed and local tracks are kept as empty rows so row numbers match the playlist.`,
	Args:             cobra.MinimumNArgs(1),
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, args []string) {
		mustBindFlags(cmd)

		app.ExecuteExportCommand(cmd.Context(), appConfig, args)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	exportCmd.Flags().StringP(
		flagOutput,
		"o",
		"",
		"directory to write tables into (default is the working directory).")

	rootCmd.AddCommand(exportCmd)
}
