package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gitwire-go/gitwire"
	"github.com/gitwire-go/gitwire/cmd/gitwire/internal/localstore"
	"github.com/gitwire-go/gitwire/cmd/gitwire/internal/output"
	"github.com/gitwire-go/gitwire/fetchplan"
)

var (
	fetchRefSpecs      []string
	fetchTagMode       string
	fetchInitialBranch string
	fetchPrune         bool
	fetchDryRun        bool
	fetchDest          string
	fetchAllRemotes    bool
	fetchRemotes       []string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Negotiate and apply one fetch against a remote",
	Long: `Fetch negotiates an advertisement, plans which refs to ask for (applying
refspecs, tag auto-follow, and pruning), transfers the resulting pack, and
writes local tracking refs and FETCH_HEAD.

With --all-remotes, no positional <url> is given; instead every --remote
name=url pair is fetched concurrently, sharing first-error cancellation via
an errgroup.

Examples:
  gitwire fetch https://github.com/example/repo
  gitwire fetch https://github.com/example/repo --ref "+refs/heads/*:refs/remotes/origin/*" --prune
  gitwire fetch --all-remotes --remote origin=https://github.com/example/repo --remote fork=https://github.com/example/fork`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tagMode, err := parseTagMode(fetchTagMode)
		if err != nil {
			return err
		}

		if fetchAllRemotes {
			return runAllRemotesFetch(cmd.Context(), tagMode)
		}

		if len(args) != 1 {
			return fmt.Errorf("gitwire fetch: exactly one <url> is required unless --all-remotes is set")
		}

		summary, err := runOneFetch(cmd.Context(), "origin", args[0], filepath.Join(fetchDest, "origin"), tagMode)
		if err != nil {
			return err
		}
		return output.Get(getOutputFormat()).FormatFetchResult(*summary)
	},
}

func parseTagMode(s string) (fetchplan.TagMode, error) {
	switch s {
	case "", "auto":
		return fetchplan.TagModeAutoFollow, nil
	case "none":
		return fetchplan.TagModeNoTags, nil
	case "all":
		return fetchplan.TagModeFetchTags, nil
	default:
		return 0, fmt.Errorf("gitwire fetch: invalid --tags value %q (want auto, none, or all)", s)
	}
}

// runOneFetch fetches one remote into its own localstore rooted at dir.
func runOneFetch(ctx context.Context, name, url, dir string, tagMode fetchplan.TagMode) (*output.FetchSummary, error) {
	c, err := newClient(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	store := localstore.New(dir)
	result, err := c.Fetch(ctx, gitwire.FetchOptions{
		RefSpecs:        fetchRefSpecs,
		TagMode:         tagMode,
		InitialBranch:   fetchInitialBranch,
		Prune:           fetchPrune,
		DryRun:          fetchDryRun,
		LocalRefs:       store,
		Connectivity:    localstore.Connectivity{},
		FetchHeadWriter: store,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	summary := &output.FetchSummary{
		Remote:    name,
		Asked:     result.Plan.Asked,
		FetchHead: len(result.Plan.FetchHead),
	}
	for _, u := range result.Plan.Tracking {
		summary.Tracking = append(summary.Tracking, output.TrackingUpdate{
			LocalName: u.LocalName,
			OldID:     u.OldID.String(),
			NewID:     u.NewID.String(),
			Force:     u.Force,
			Deleted:   u.NewID.IsZero(),
		})
	}
	return summary, nil
}

// runAllRemotesFetch fetches every configured --remote concurrently under a
// shared errgroup.Group, so the first remote to fail cancels the others'
// contexts instead of each caller hand-rolling a sync.WaitGroup plus its own
// first-error bookkeeping.
func runAllRemotesFetch(ctx context.Context, tagMode fetchplan.TagMode) error {
	if len(fetchRemotes) == 0 {
		return fmt.Errorf("gitwire fetch --all-remotes: at least one --remote name=url is required")
	}

	type named struct {
		name, url string
	}
	var remotes []named
	for _, spec := range fetchRemotes {
		name, url, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("gitwire fetch: invalid --remote %q (want name=url)", spec)
		}
		remotes = append(remotes, named{name: name, url: url})
	}

	summaries := make([]*output.FetchSummary, len(remotes))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range remotes {
		g.Go(func() error {
			summary, err := runOneFetch(gctx, r.name, r.url, filepath.Join(fetchDest, r.name), tagMode)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	formatter := output.Get(getOutputFormat())
	for _, s := range summaries {
		if err := formatter.FormatFetchResult(*s); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	fetchCmd.Flags().StringArrayVar(&fetchRefSpecs, "ref", nil, "Refspec to fetch (repeatable); defaults to the remote's configured branch if omitted")
	fetchCmd.Flags().StringVar(&fetchTagMode, "tags", "auto", "Tag fetch mode: auto, none, or all")
	fetchCmd.Flags().StringVar(&fetchInitialBranch, "initial-branch", "", "Require this branch to be advertised (first fetch of a new clone)")
	fetchCmd.Flags().BoolVar(&fetchPrune, "prune", false, "Remove local tracking refs whose source is no longer advertised")
	fetchCmd.Flags().BoolVar(&fetchDryRun, "dry-run", false, "Compute the plan without applying local ref updates")
	fetchCmd.Flags().StringVar(&fetchDest, "dest", ".gitwire", "Directory to hold local tracking refs and FETCH_HEAD")
	fetchCmd.Flags().BoolVar(&fetchAllRemotes, "all-remotes", false, "Fetch every --remote concurrently instead of one positional <url>")
	fetchCmd.Flags().StringArrayVar(&fetchRemotes, "remote", nil, "name=url pair, repeatable, used with --all-remotes")
	rootCmd.AddCommand(fetchCmd)
}
