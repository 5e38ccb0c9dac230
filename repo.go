package gitwire

import (
	"context"
	"fmt"
	"strings"
)

// RepoExists checks if the repository exists on the server.
// It attempts to fetch the repository's advertisement to determine if it exists.
//
// Returns:
//   - true if the repository exists and is accessible
//   - false if the repository does not exist (404)
//   - error if there are any other connection or protocol issues
func (c *clientImpl) RepoExists(ctx context.Context) (bool, error) {
	_, err := c.smartInfo(ctx, "git-upload-pack")
	if err != nil {
		if strings.Contains(err.Error(), "404 Not Found") {
			return false, nil
		}
		return false, fmt.Errorf("get repository info: %w", err)
	}

	return true, nil
}
