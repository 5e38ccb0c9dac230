package gitwire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gitwire-go/gitwire/advertisement"
	"github.com/gitwire-go/gitwire/capability"
	"github.com/gitwire-go/gitwire/fetchplan"
	"github.com/gitwire-go/gitwire/log"
	"github.com/gitwire-go/gitwire/packnegotiator"
	"github.com/gitwire-go/gitwire/pktline"
	"github.com/gitwire-go/gitwire/protocol/hash"
	"github.com/gitwire-go/gitwire/ref"
	"github.com/gitwire-go/gitwire/refspec"
	"github.com/gitwire-go/gitwire/retry"
	"github.com/gitwire-go/gitwire/storage"
)

// Client negotiates advertisements and drives fetches against a single
// remote repository over the Git Smart HTTP transport.
type Client interface {
	// IsAuthorized checks if the client can successfully communicate with the Git server.
	IsAuthorized(ctx context.Context) (bool, error)
	// RepoExists checks if the repository exists on the server.
	RepoExists(ctx context.Context) (bool, error)
	// ListRefs reads the peer's advertisement and returns its resolved ref map,
	// without driving a fetch.
	ListRefs(ctx context.Context) (*ref.Map, error)
	// Fetch negotiates and applies one fetch against the given options.
	Fetch(ctx context.Context, opts FetchOptions) (*FetchResult, error)
}

// Option is a function that configures a Client.
type Option func(*clientImpl) error

// clientImpl is the private implementation of the Client interface.
type clientImpl struct {
	base      *url.URL
	client    *http.Client
	userAgent string
	logger    Logger
	retrier   retry.Retrier
	storage   storage.PackfileStorage
	timeout   time.Duration

	basicAuth *struct{ Username, Password string }
	tokenAuth *string
}

// addDefaultHeaders adds the default headers to the request.
func (c *clientImpl) addDefaultHeaders(req *http.Request) {
	req.Header.Add("Git-Protocol", "version=2")
	if c.userAgent == "" {
		c.userAgent = "gitwire/0"
	}
	req.Header.Add("User-Agent", c.userAgent)

	if c.basicAuth != nil {
		req.SetBasicAuth(c.basicAuth.Username, c.basicAuth.Password)
	} else if c.tokenAuth != nil {
		req.Header.Set("Authorization", *c.tokenAuth)
	}
}

// uploadPack sends a POST request to the git-upload-pack endpoint.
// This endpoint is used to fetch objects and refs from the remote repository.
func (c *clientImpl) uploadPack(ctx context.Context, data []byte) ([]byte, error) {
	return retry.Do(ctx, func() ([]byte, error) {
		body := bytes.NewReader(data)

		// NOTE: This path is defined in the protocol-v2 spec as required under $GIT_URL/git-upload-pack.
		// See: https://git-scm.com/docs/protocol-v2#_http_transport
		u := c.base.JoinPath("git-upload-pack").String()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/x-git-upload-pack-request")
		c.addDefaultHeaders(req)

		res, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode >= 500 {
			return nil, retry.NewServerUnavailableError(res.StatusCode, fmt.Errorf("%s", res.Status))
		}
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return nil, fmt.Errorf("got status code %d: %s", res.StatusCode, res.Status)
		}

		return io.ReadAll(res.Body)
	})
}

// smartInfo sends a GET request to the info/refs endpoint.
func (c *clientImpl) smartInfo(ctx context.Context, service string) ([]byte, error) {
	return retry.Do(ctx, func() ([]byte, error) {
		// NOTE: This path is defined in the protocol-v2 spec as required under $GIT_URL/info/refs.
		// The ?service=git-upload-pack is documented in the protocol-v2 spec. It also implies elsewhere that ?svc is also valid.
		// See: https://git-scm.com/docs/http-protocol#_smart_clients
		// See: https://git-scm.com/docs/protocol-v2#_http_transport
		u := c.base.JoinPath("info/refs")

		query := make(url.Values)
		query.Set("service", service)
		u.RawQuery = query.Encode()

		c.logger.Debug("smart info request", "url", u.String())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}

		c.addDefaultHeaders(req)

		res, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode >= 500 {
			return nil, retry.NewServerUnavailableError(res.StatusCode, fmt.Errorf("%s", res.Status))
		}
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return nil, fmt.Errorf("got status code %d: %s", res.StatusCode, res.Status)
		}

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("smart info response", "status", res.StatusCode, "bytes", len(body))

		return body, nil
	})
}

// NewClient returns a new Client for the given repository.
func NewClient(repo string, options ...Option) (Client, error) {
	if repo == "" {
		return nil, errors.New("repository URL cannot be empty")
	}

	u, err := url.Parse(repo)
	if err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("only HTTP and HTTPS URLs are supported")
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.Path = strings.TrimSuffix(u.Path, ".git")

	c := &clientImpl{
		base:    u,
		client:  &http.Client{},
		logger:  &noopLogger{},
		retrier: &retry.NoopRetrier{},
	}
	for _, option := range options {
		if option == nil { // allow for easy optional options
			continue
		}
		if err := option(c); err != nil {
			return nil, err
		}
	}

	if c.storage == nil {
		c.storage = storage.NewInMemoryStorage(context.Background())
	}

	return c, nil
}

// FetchOptions configures one Fetch call. RefSpecs, TagMode, and
// InitialBranch drive fetchplan's computation; LocalRefs, Connectivity, and
// FetchHeadWriter are the caller's infrastructure collaborators for the
// local side of the fetch (spec §6: this module owns protocol logic, not
// the local object/ref database).
type FetchOptions struct {
	RefSpecs      []string
	TagMode       fetchplan.TagMode
	InitialBranch string
	Prune         bool
	DryRun        bool

	LocalRefs       fetchplan.LocalRefStore
	Connectivity    fetchplan.ConnectivityChecker
	FetchHeadWriter fetchplan.FetchHeadWriter
}

// FetchResult is the outcome of a Fetch call.
type FetchResult struct {
	Plan *fetchplan.Plan
}

// ListRefs implements Client.
func (c *clientImpl) ListRefs(ctx context.Context) (*ref.Map, error) {
	ctx, cancel := c.contextWithClientDefaults(ctx)
	defer cancel()

	adv, err := c.advertise(ctx)
	if err != nil {
		return nil, err
	}
	if adv.Version == advertisement.VersionV0 {
		return adv.Refs, nil
	}
	return c.lsRefs(ctx, adv.Capabilities, nil)
}

// Fetch implements Client.
func (c *clientImpl) Fetch(ctx context.Context, opts FetchOptions) (*FetchResult, error) {
	ctx, cancel := c.contextWithClientDefaults(ctx)
	defer cancel()

	specSet, err := refspec.NewSet(opts.RefSpecs)
	if err != nil {
		return nil, fmt.Errorf("parsing refspecs: %w", err)
	}

	adv, err := c.advertise(ctx)
	if err != nil {
		return nil, err
	}

	var advertised *ref.Map
	if adv.Version == advertisement.VersionV0 {
		advertised = adv.Refs
	} else {
		advertised, err = c.lsRefs(ctx, adv.Capabilities, specSet.Prefixes("HEAD"))
		if err != nil {
			return nil, err
		}
	}

	planner := &fetchplan.Planner{
		Negotiator:   &httpPackNegotiator{client: c, caps: adv.Capabilities},
		Connectivity: opts.Connectivity,
		LocalRefs:    opts.LocalRefs,
		FetchHead:    opts.FetchHeadWriter,
		SourceURI:    c.base.String(),
		Prune:        opts.Prune,
		DryRun:       opts.DryRun,
		Reopen: func(ctx context.Context, prefixes []string) (*ref.Map, error) {
			return c.lsRefs(ctx, adv.Capabilities, prefixes)
		},
	}

	plan, err := planner.Plan(ctx, fetchplan.Input{
		RefSpecs:      specSet,
		Advertised:    advertised,
		TagMode:       opts.TagMode,
		InitialBranch: opts.InitialBranch,
	})
	if err != nil {
		return nil, err
	}

	return &FetchResult{Plan: plan}, nil
}

// advertise performs the info/refs GET and parses its advertisement phase,
// auto-detecting v0 vs v2 (spec §4.2/§4.3).
func (c *clientImpl) advertise(ctx context.Context) (*advertisement.Result, error) {
	body, err := c.smartInfo(ctx, "git-upload-pack")
	if err != nil {
		return nil, err
	}

	dec := pktline.NewDecoder(bytes.NewReader(body))
	if err := stripServiceHeader(dec, "git-upload-pack"); err != nil {
		return nil, err
	}

	adv, err := advertisement.NewReader(dec).Read()
	if err != nil {
		return nil, err
	}
	return adv, nil
}

// lsRefs drives one protocol v2 ls-refs round trip: build the request into a
// buffer, POST it over the same git-upload-pack endpoint a fetch uses, and
// parse the response.
func (c *clientImpl) lsRefs(ctx context.Context, caps *capability.Set, prefixes []string) (*ref.Map, error) {
	var reqBuf bytes.Buffer
	req := advertisement.NewLsRefsRequester(pktline.NewEncoder(&reqBuf), nil)
	if err := req.Request(caps, c.userAgent, prefixes); err != nil {
		return nil, err
	}

	respBody, err := c.uploadPack(ctx, reqBuf.Bytes())
	if err != nil {
		return nil, err
	}

	resp := advertisement.NewLsRefsRequester(nil, pktline.NewDecoder(bytes.NewReader(respBody)))
	return resp.Response()
}

// stripServiceHeader consumes the "# service=<service>" banner line and its
// trailing flush that the info/refs endpoint prepends to the advertisement,
// per the Git Smart HTTP protocol (unique to this transport; absent over a
// direct pipe such as SSH).
func stripServiceHeader(dec *pktline.Decoder, service string) error {
	pkt, err := dec.Read()
	if err != nil {
		return fmt.Errorf("reading service header: %w", err)
	}
	want := "# service=" + service
	if pkt.Text() != want {
		return fmt.Errorf("gitwire: unexpected info/refs header %q", pkt.Text())
	}

	pkt, err = dec.Read()
	if err != nil {
		return fmt.Errorf("reading service header flush: %w", err)
	}
	if !pkt.IsFlush() {
		return errors.New("gitwire: expected flush after service header")
	}
	return nil
}

// httpPackNegotiator adapts packnegotiator.Negotiator to the Git Smart HTTP
// transport's request/response shape: unlike a live duplex connection, the
// full request must be built before the POST is issued, and the response is
// only then available to decode.
type httpPackNegotiator struct {
	client *clientImpl
	caps   *capability.Set
}

func (h *httpPackNegotiator) Negotiate(ctx context.Context, wants, haves []hash.Hash) (bool, error) {
	var reqBuf bytes.Buffer
	n := &packnegotiator.Negotiator{
		Enc:          pktline.NewEncoder(&reqBuf),
		Capabilities: h.caps,
		UserAgent:    h.client.userAgent,
		Storage:      h.client.storage,
	}
	if err := n.SendFetchCommand(wants, haves); err != nil {
		return false, fmt.Errorf("packnegotiator: sending fetch command: %w", err)
	}

	respBody, err := h.client.uploadPack(ctx, reqBuf.Bytes())
	if err != nil {
		return false, err
	}

	n.Dec = pktline.NewDecoder(bytes.NewReader(respBody))
	return n.ReadResponse(log.FromContext(ctx))
}

// contextWithClientDefaults installs this client's logger and retrier into ctx
// so the HTTP round trips (retry.Do) and the pack negotiator's response
// reader can pick them up via retry.FromContext / log.FromContext, and
// applies the configured transport deadline if any.
func (c *clientImpl) contextWithClientDefaults(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = log.ToContext(ctx, c.logger)
	ctx = retry.ToContext(ctx, c.retrier)
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}
