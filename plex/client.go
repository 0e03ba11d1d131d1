package plex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const (
	signInPath  = "/users/sign_in.json"
	accountPath = "/users/account.json"
	friendsPath = "/pms/friends/all"
	serversPath = "/pms/servers.xml"
)

// Client represents a Plex API client
type Client struct {
	host      string
	plexTVURL string
	headers   HeaderComposer
	transport *Transport
	logger    zerolog.Logger
}

var (
	_ API          = (*Client)(nil)
	_ AccountAPI   = (*Client)(nil)
	_ ImageFetcher = (*Client)(nil)
)

// NewClient creates a new Plex client for the server at host
func NewClient(host string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, fmt.Errorf("%w: plex host is required", ErrInvalidConfig)
	}
	u, err := url.Parse(host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: plex host must be an http(s) URL: %q", ErrInvalidConfig, host)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		host:      strings.TrimRight(host, "/"),
		plexTVURL: o.plexTVURL,
		headers:   NewHeaderComposer(o.clientIdentifier, o.product, o.version),
		transport: NewTransport(o.buildHTTPClient(), o.jsonConfig, logger),
		logger:    logger,
	}, nil
}

// Host returns the server base URL
func (c *Client) Host() string {
	return c.host
}

// ClientIdentifier returns the X-Plex-Client-Identifier sent on every call
func (c *Client) ClientIdentifier() string {
	return c.headers.ClientIdentifier
}

// SignIn exchanges plex.tv credentials for an auth token
func (c *Client) SignIn(ctx context.Context, creds Credentials) (*Authentication, error) {
	req := NewRequest(c.plexTVURL+signInPath, "", http.MethodPost)
	c.headers.Apply(req)
	req.AddJSONBody(signInRequest{
		User: userRequest{Login: creds.Login, Password: creds.Password},
	})

	auth, err := Execute[Authentication](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	c.logger.Debug().Bool("token", auth.Token() != "").Msg("Signed in to plex.tv")
	return &auth, nil
}

// GetLibrarySections lists the server's library sections
func (c *Client) GetLibrarySections(ctx context.Context, authToken string) (*Container, error) {
	container, err := c.getContainer(ctx, authToken, "library/sections")
	if err != nil {
		return nil, fmt.Errorf("failed to get library sections: %w", err)
	}
	return container, nil
}

// GetLibrary lists every item in a library section
func (c *Client) GetLibrary(ctx context.Context, authToken, libraryID string) (*Container, error) {
	container, err := c.getContainer(ctx, authToken, fmt.Sprintf("library/sections/%s/all", url.PathEscape(libraryID)))
	if err != nil {
		return nil, fmt.Errorf("failed to get library %s: %w", libraryID, err)
	}
	return container, nil
}

// GetImage fetches imageURL (absolute or relative to the host) and decodes
// the response as a JSON container. Use GetImageData for the image bytes.
func (c *Client) GetImage(ctx context.Context, authToken, imageURL string) (*Container, error) {
	container, err := c.getContainer(ctx, authToken, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return container, nil
}

// GetImageData downloads imageURL and returns the raw bytes
func (c *Client) GetImageData(ctx context.Context, authToken, imageURL string) (*Image, error) {
	req := NewRequest(imageURL, c.host, http.MethodGet)
	c.headers.ApplyWithToken(req, authToken)
	req.SetHeader("Accept", "image/*")

	raw, err := c.transport.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	return &Image{ContentType: raw.ContentType, Data: raw.Body}, nil
}

// GetAccount returns the signed-in plex.tv account
func (c *Client) GetAccount(ctx context.Context, authToken string) (*Account, error) {
	req := NewRequest(c.plexTVURL+accountPath, "", http.MethodGet)
	c.headers.ApplyWithToken(req, authToken)

	account, err := Execute[Account](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetFriends lists the users the account shares with
func (c *Client) GetFriends(ctx context.Context, authToken string) (*FriendList, error) {
	req := NewRequest(c.plexTVURL+friendsPath, "", http.MethodGet)
	req.ContentType = ContentTypeXML
	c.headers.ApplyWithToken(req, authToken)

	friends, err := Execute[FriendList](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	return &friends, nil
}

// GetServers lists the servers registered to the account
func (c *Client) GetServers(ctx context.Context, authToken string) (*ServerList, error) {
	req := NewRequest(c.plexTVURL+serversPath, "", http.MethodGet)
	req.ContentType = ContentTypeXML
	c.headers.ApplyWithToken(req, authToken)

	servers, err := Execute[ServerList](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get servers: %w", err)
	}
	return &servers, nil
}

func (c *Client) getContainer(ctx context.Context, authToken, target string) (*Container, error) {
	req := NewRequest(target, c.host, http.MethodGet)
	c.headers.ApplyWithToken(req, authToken)

	container, err := Execute[Container](ctx, c.transport, req)
	if err != nil {
		return nil, err
	}
	return &container, nil
}
