package gitwire

import (
	"errors"
	"net/http"
	"time"

	"github.com/gitwire-go/gitwire/retry"
	"github.com/gitwire-go/gitwire/storage"
)

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *clientImpl) error {
		c.userAgent = agent
		return nil
	}
}

// WithHTTPClient overrides the default http.Client.
// It will return an error if the provided http.Client is nil.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *clientImpl) error {
		if httpClient == nil {
			return errors.New("httpClient is nil")
		}

		c.client = httpClient
		return nil
	}
}

// WithLogger installs a Logger that every protocol phase logs through.
func WithLogger(logger Logger) Option {
	return func(c *clientImpl) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		c.logger = logger
		return nil
	}
}

// WithRetrier installs a retry.Retrier applied to the client's HTTP round
// trips (info/refs, git-upload-pack). The default is retry.NoopRetrier,
// matching the library's backward-compatible no-retry behavior.
func WithRetrier(retrier retry.Retrier) Option {
	return func(c *clientImpl) error {
		if retrier == nil {
			return errors.New("retrier is nil")
		}
		c.retrier = retrier
		return nil
	}
}

// WithPackfileStorage installs the cache that pack negotiation stores decoded
// objects in and resolves REF_DELTA bases against; OFS_DELTA entries are not
// resolved. The default is a TTL-less in-memory store
// scoped to the client's lifetime.
func WithPackfileStorage(s storage.PackfileStorage) Option {
	return func(c *clientImpl) error {
		if s == nil {
			return errors.New("storage is nil")
		}
		c.storage = s
		return nil
	}
}

// WithTimeout makes ListRefs and Fetch wrap their context in a deadline of
// d; once it passes, the call fails with the context's deadline-exceeded
// error. The limit covers the whole call, not each blocked read or write,
// RepoExists does not apply it, and the failure is not reported as ErrTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientImpl) error {
		c.timeout = d
		return nil
	}
}
