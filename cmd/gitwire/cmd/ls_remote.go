package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitwire-go/gitwire/cmd/gitwire/internal/output"
)

var (
	lsRemoteHeads bool
	lsRemoteTags  bool
)

var lsRemoteCmd = &cobra.Command{
	Use:   "ls-remote <url>",
	Short: "List references in a remote repository",
	Long: `List references (branches and tags) in a remote repository, via the
advertisement phase (protocol v0/v1) or ls-refs (protocol v2).

Examples:
  gitwire ls-remote https://github.com/example/repo
  gitwire ls-remote https://github.com/example/repo --heads
  gitwire ls-remote https://github.com/example/repo --tags --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := newClient(ctx, args[0])
		if err != nil {
			return err
		}

		refs, err := c.ListRefs(ctx)
		if err != nil {
			return err
		}

		all := refs.All()
		if lsRemoteHeads || lsRemoteTags {
			filtered := all[:0]
			for _, r := range all {
				if lsRemoteHeads && strings.HasPrefix(r.Name, "refs/heads/") {
					filtered = append(filtered, r)
				} else if lsRemoteTags && strings.HasPrefix(r.Name, "refs/tags/") {
					filtered = append(filtered, r)
				}
			}
			all = filtered
		}

		return output.Get(getOutputFormat()).FormatRefs(all)
	},
}

func init() {
	lsRemoteCmd.Flags().BoolVar(&lsRemoteHeads, "heads", false, "Show only branches (refs/heads/)")
	lsRemoteCmd.Flags().BoolVar(&lsRemoteTags, "tags", false, "Show only tags (refs/tags/)")
	rootCmd.AddCommand(lsRemoteCmd)
}
