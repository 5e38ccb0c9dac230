package cmd

import (
	"context"

	"github.com/gitwire-go/gitwire"
	"github.com/gitwire-go/gitwire/cmd/gitwire/internal/auth"
	"github.com/gitwire-go/gitwire/cmd/gitwire/internal/clilog"
)

// newClient builds a gitwire.Client for url, merging environment and flag
// authentication and installing the slog-backed CLI logger.
func newClient(_ context.Context, url string) (gitwire.Client, error) {
	authConfig := auth.FromEnvironment()
	authConfig.Merge(token, username, password)

	opts := append(authConfig.ToOptions(), gitwire.WithLogger(clilog.New(debug)))
	return gitwire.NewClient(url, opts...)
}
