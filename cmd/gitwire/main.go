// Command gitwire is a thin CLI wrapper around the gitwire client library,
// exercising ls-remote and fetch negotiation end to end.
package main

import (
	"os"

	"github.com/gitwire-go/gitwire/cmd/gitwire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
