// Package cmd implements the gitwire CLI's cobra command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	token    string
	username string
	password string
	jsonOut  bool
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "gitwire",
	Short: "A Git Smart Transport protocol client",
	Long: `gitwire speaks the Git Smart Transport protocol directly: advertisement
and capability negotiation, ls-refs, and fetch negotiation, without shelling
out to git.

Authentication can be provided via flags or environment variables:
  - GITWIRE_TOKEN: General token for any provider
  - GITHUB_TOKEN:  GitHub-specific token
  - GITLAB_TOKEN:  GitLab-specific token
  - GITWIRE_USERNAME + GITWIRE_PASSWORD: Basic auth`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Authentication token")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Username for basic auth")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Password for basic auth")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func getOutputFormat() string {
	if jsonOut {
		return "json"
	}
	return "human"
}
