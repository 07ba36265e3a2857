package ddragon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	// DefaultBaseURL is the public Data Dragon CDN
	DefaultBaseURL = "https://ddragon.leagueoflegends.com"

	// DefaultLocale is the dataset locale fetched when none is configured
	DefaultLocale = "en_US"

	defaultConnectTimeout = 10 * time.Second
	defaultReadTimeout    = 20 * time.Second

	userAgent = "RiftRoulette/1.0"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fetches versioned JSON resources from the Data Dragon CDN,
// backed by a disk cache keyed by (version, locale, resource name).
type Client struct {
	httpClient *http.Client
	baseURL    string
	locale     string
	cache      *diskCache
	cacheDir   string
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL sets a custom CDN base URL (useful for testing)
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLocale sets the dataset locale
func WithLocale(locale string) Option {
	return func(c *Client) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithCacheDir sets the disk cache root. An empty dir disables caching.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

// WithTimeout sets the overall (read) timeout for CDN requests
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new Data Dragon client with the given options
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: defaultConnectTimeout,
				}).DialContext,
			},
			Timeout: defaultReadTimeout,
		},
		baseURL: DefaultBaseURL,
		locale:  DefaultLocale,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.cache = newDiskCache(c.cacheDir, c.logger)
	return c
}

// Locale returns the configured dataset locale
func (c *Client) Locale() string { return c.locale }

// BaseURL returns the configured CDN base URL
func (c *Client) BaseURL() string { return c.baseURL }

// LatestVersion fetches the newest dataset version. It always hits the
// network: the version listing is the freshness signal that decides whether
// everything else is stale, so it is never served from cache.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	raw, err := c.get(ctx, c.baseURL+"/api/versions.json")
	if err != nil {
		return "", err
	}

	var versions []string
	if err := json.Unmarshal(raw, &versions); err != nil {
		return "", &DataLoadError{Resource: "versions.json", Err: err}
	}
	if len(versions) == 0 {
		return "", &DataLoadError{Resource: "versions.json", Err: ErrNoVersions}
	}
	return versions[0], nil
}

// FetchJSON returns the raw bytes of a versioned dataset resource, serving
// from the disk cache when a non-empty entry exists and persisting fresh
// downloads before returning them.
func (c *Client) FetchJSON(ctx context.Context, name, version string) ([]byte, error) {
	if data, ok := c.cache.Read(version, c.locale, name); ok {
		return data, nil
	}

	url := fmt.Sprintf("%s/cdn/%s/data/%s/%s", c.baseURL, version, c.locale, name)
	raw, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	c.cache.Write(version, c.locale, name, raw)
	return raw, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return raw, nil
}
