package colour

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	httputil "github.com/datafam/palettes/internal/util/http"
)

// DefaultRemoteURL is the base URL of the public colour naming API.
const DefaultRemoteURL = "https://api.color.pizza/v1"

// RemoteOptions configures a RemoteResolver.
type RemoteOptions struct {
	// BaseURL is the service root; the uppercase hex is appended as a path segment.
	BaseURL string

	// Timeout bounds each request. Zero means httputil.DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles calls. Zero or negative disables throttling.
	RequestsPerSecond float64

	// Burst is the limiter burst size. Values below one are treated as one.
	Burst int

	// Client overrides the HTTP client (tests).
	Client *http.Client

	Logger hclog.Logger
}

// RemoteResolver names colours through the remote colour naming service.
// Any failure degrades to Unknown.
type RemoteResolver struct {
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	client  *http.Client
	logger  hclog.Logger
}

// nameResponse is the subset of the service response we read.
type nameResponse struct {
	Colors []struct {
		Name *string `json:"name"`
	} `json:"colors"`
}

// NewRemoteResolver creates a RemoteResolver.
func NewRemoteResolver(opts RemoteOptions) *RemoteResolver {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultRemoteURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = httputil.DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	r := &RemoteResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  opts.Client,
		logger:  logger,
	}
	if opts.RequestsPerSecond > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), max(opts.Burst, 1))
	}
	return r
}

// Resolve implements Resolver.
func (r *RemoteResolver) Resolve(ctx context.Context, rgb RGB) string {
	hex := strings.ToUpper(rgb.Hex())

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			r.logger.Debug("rate limiter wait aborted", "hex", hex, "error", err)
			return Unknown
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data, err := httputil.Fetch(ctx, r.baseURL+"/"+hex, httputil.FetchOptions{
		Method:  http.MethodPost,
		Timeout: r.timeout,
		Client:  r.client,
	})
	if err != nil {
		r.logger.Debug("colour name lookup failed", "hex", hex, "error", err)
		return Unknown
	}

	var resp nameResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		r.logger.Debug("colour name response not understood", "hex", hex, "error", err)
		return Unknown
	}
	if len(resp.Colors) == 0 || resp.Colors[0].Name == nil || *resp.Colors[0].Name == "" {
		return Unknown
	}

	return *resp.Colors[0].Name
}
