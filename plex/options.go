package plex

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient       HTTPDoer
	timeout          time.Duration
	plexTVURL        string
	clientIdentifier string
	product          string
	version          string
	jsonConfig       JSONConfig
}

const (
	defaultTimeout   = 30 * time.Second
	defaultPlexTVURL = "https://plex.tv"
)

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:    defaultTimeout,
		plexTVURL:  defaultPlexTVURL,
		jsonConfig: DefaultJSONConfig(),
	}
}

// WithHTTPClient overrides the HTTP backend. WithTimeout has no effect on
// a custom backend.
func WithHTTPClient(client HTTPDoer) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

// WithPlexTVURL overrides the plex.tv base URL (used in tests).
func WithPlexTVURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.plexTVURL = strings.TrimRight(baseURL, "/")
	}
}

// WithClientIdentifier sets the X-Plex-Client-Identifier value.
func WithClientIdentifier(id string) Option {
	return func(o *clientOptions) {
		o.clientIdentifier = id
	}
}

// WithProduct sets the X-Plex-Product value.
func WithProduct(product string) Option {
	return func(o *clientOptions) {
		o.product = product
	}
}

// WithVersion sets the X-Plex-Version value.
func WithVersion(version string) Option {
	return func(o *clientOptions) {
		o.version = version
	}
}

// WithJSONConfig sets how JSON responses are decoded.
func WithJSONConfig(cfg JSONConfig) Option {
	return func(o *clientOptions) {
		o.jsonConfig = cfg
	}
}

func (o clientOptions) buildHTTPClient() HTTPDoer {
	if o.httpClient != nil {
		return o.httpClient
	}
	return &http.Client{Timeout: o.timeout}
}
