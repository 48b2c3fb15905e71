package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"spotlogin/internal/config"
)

const (
	// DefaultHTTPTimeout is the default timeout for Web API requests.
	DefaultHTTPTimeout = 30 * time.Second

	// MaxSearchLimit is the largest page size the search endpoint accepts.
	MaxSearchLimit = 50
)

// OAuth2Config returns the oauth2.Config used to exchange authorization codes.
// Spotify expects the client credentials in a basic auth header.
func OAuth2Config(cfg config.OAuthClientConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       append([]string(nil), cfg.Scopes...),
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// Client is an authenticated Web API session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	market     string
	token      *oauth2.Token
	logger     *slog.Logger
}

type clientOptions struct {
	baseURL    string
	market     string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures the Web API client.
type ClientOption func(*clientOptions)

// WithBaseURL sets the Web API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithMarket sets the market used for top tracks.
func WithMarket(market string) ClientOption {
	return func(o *clientOptions) {
		o.market = market
	}
}

// WithHTTPClient sets the HTTP client whose transport carries the requests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a Web API session that authenticates every request with token.
func NewClient(ctx context.Context, token *oauth2.Token, opts ...ClientOption) (*Client, error) {
	if token == nil || token.AccessToken == "" {
		return nil, errors.New("an access token is required")
	}

	o := clientOptions{
		baseURL: config.DefaultAPIURL,
		market:  config.DefaultMarket,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := o.httpClient
	if base == nil {
		base = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	httpClient := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), oauth2.StaticTokenSource(token))
	httpClient.Timeout = base.Timeout

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(o.baseURL, "/"),
		market:     o.market,
		token:      token,
		logger:     o.logger,
	}, nil
}

// NewSessionFactory returns a function that builds a Client from the token
// produced by the OAuth flow.
func NewSessionFactory(opts ...ClientOption) func(ctx context.Context, token *oauth2.Token) (*Client, error) {
	return func(ctx context.Context, token *oauth2.Token) (*Client, error) {
		return NewClient(ctx, token, opts...)
	}
}

// Token returns the access token the session was created with.
func (c *Client) Token() *oauth2.Token {
	return c.token
}

// CurrentUser returns the profile of the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchArtists searches artists by name. limit is clamped to 1..MaxSearchLimit.
func (c *Client) SearchArtists(ctx context.Context, query string, limit int) ([]Artist, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}
	limit = max(1, min(limit, MaxSearchLimit))

	params := url.Values{
		"q":     {query},
		"type":  {"artist"},
		"limit": {strconv.Itoa(limit)},
	}

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Artists.Items, nil
}

// Artist returns a single artist by ID.
func (c *Client) Artist(ctx context.Context, id string) (*Artist, error) {
	if id == "" {
		return nil, errors.New("artist ID cannot be empty")
	}
	var artist Artist
	if err := c.get(ctx, "/artists/"+url.PathEscape(id), nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ArtistTopTracks returns the artist's top tracks in the configured market.
func (c *Client) ArtistTopTracks(ctx context.Context, id string) ([]Track, error) {
	if id == "" {
		return nil, errors.New("artist ID cannot be empty")
	}
	var resp topTracksResponse
	params := url.Values{"market": {c.market}}
	if err := c.get(ctx, "/artists/"+url.PathEscape(id)+"/top-tracks", params, &resp); err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// ArtistDetails fetches the artist and its top tracks concurrently.
func (c *Client) ArtistDetails(ctx context.Context, id string) (*ArtistDetails, error) {
	var (
		artist *Artist
		tracks []Track
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		artist, err = c.Artist(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		tracks, err = c.ArtistTopTracks(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ArtistDetails{Artist: *artist, TopTracks: tracks}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Endpoint: path}
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil {
			apiErr.Message = errResp.Error.Message
		}
		c.logger.Debug("Web API request failed",
			"path", path,
			"status", resp.StatusCode,
			"message", apiErr.Message)
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}
