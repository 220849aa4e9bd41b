package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/spotisaver/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Check Spotify app credentials and save them to the config file.",
	Long: `Requests an access token with the client-credentials flow to make sure the
client id and secret are accepted, then stores them in the configuration file.

Create an app at https://developer.spotify.com/dashboard to get the credentials.
They can also be supplied through SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET.`,
	Args:             cobra.NoArgs,
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		mustBindFlags(cmd)

		app.ExecuteAuthCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	authCmd.Flags().String(flagClientID, "", "client id of the Spotify app.")
	authCmd.Flags().String(flagClientSecret, "", "client secret of the Spotify app.")

	rootCmd.AddCommand(authCmd)
}
