package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitwire-go/gitwire/cmd/gitwire/internal/output"
	"github.com/gitwire-go/gitwire/fetchplan"
)

var cloneBranch string

// cloneCmd is fetch with an empty local tracking store, a wildcard refspec,
// and InitialBranch set: gitwire has no tree/blob/working-copy layer (out of
// scope, see spec), so "clone" here means populating a fresh set of tracking
// refs and FETCH_HEAD from scratch, not checking out a working tree.
var cloneCmd = &cobra.Command{
	Use:   "clone <url> <destination>",
	Short: "Fetch every branch and tag of a remote into a fresh tracking store",
	Long: `Clone fetches every advertised branch and tag into a freshly created
tracking-ref store under <destination>, and writes FETCH_HEAD there. It does
not check out a working tree: gitwire only implements the wire protocol, not
object/tree reading.

Examples:
  gitwire clone https://github.com/example/repo /tmp/repo
  gitwire clone https://github.com/example/repo /tmp/repo --branch develop`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, dest := args[0], args[1]

		prevRefSpecs, prevInitialBranch := fetchRefSpecs, fetchInitialBranch
		fetchRefSpecs = []string{"+refs/heads/*:refs/remotes/origin/*", "+refs/tags/*:refs/tags/*"}
		fetchInitialBranch = cloneBranch
		defer func() { fetchRefSpecs, fetchInitialBranch = prevRefSpecs, prevInitialBranch }()

		if getOutputFormat() != "json" {
			fmt.Printf("Cloning %s into %s...\n", url, dest)
		}

		summary, err := runOneFetch(cmd.Context(), "origin", url, dest, fetchplan.TagModeFetchTags)
		if err != nil {
			return fmt.Errorf("cloning repository: %w", err)
		}
		return output.Get(getOutputFormat()).FormatFetchResult(*summary)
	},
}

func init() {
	cloneCmd.Flags().StringVar(&cloneBranch, "branch", "", "Require this branch to exist on the remote")
	rootCmd.AddCommand(cloneCmd)
}
