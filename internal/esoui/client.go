// SPDX-License-Identifier: MPL-2.0

package esoui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseURL is the ESOUI site root.
	DefaultBaseURL = "https://www.esoui.com"

	// DefaultUserAgent is sent when no WithUserAgent option is given.
	DefaultUserAgent = "openesoui-mm/dev"

	// DefaultPageTimeout bounds one info/download page request.
	DefaultPageTimeout = 30 * time.Second

	// DefaultDownloadTimeout bounds one archive download including the body copy.
	DefaultDownloadTimeout = 5 * time.Minute

	// maxPageBytes is the upper bound on a page body (10 MB). Addon pages are a
	// few hundred KB; anything larger is not an ESOUI page.
	maxPageBytes = 10 << 20
)

// ErrNetwork is the sentinel matched by every NetworkError.
var ErrNetwork = errors.New("network error")

type (
	// NetworkError is returned when a request could not be completed: DNS or
	// connection failure, TLS failure, timeout, or a body that broke off midway.
	NetworkError struct {
		URL string
		Err error
	}

	// Page is a fetched HTML page. A non-2xx StatusCode is returned as data so
	// the caller can decide to degrade instead of fail.
	Page struct {
		URL        string
		StatusCode int
		Body       []byte
	}

	// Client fetches ESOUI pages and addon archives. The zero value is not
	// usable; construct with NewClient.
	Client struct {
		httpClient      *http.Client
		baseURL         string
		userAgent       string
		pageTimeout     time.Duration
		downloadTimeout time.Duration
		tempDir         string // "" means os.TempDir()
		logger          *log.Logger
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

// Unwrap returns the transport error so callers can match context.DeadlineExceeded.
func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// OK reports whether the page was served with a 2xx status.
func (p Page) OK() bool {
	return isSuccess(p.StatusCode)
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxies.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL overrides the site root, primarily for mirrors and test servers.
// An empty base keeps DefaultBaseURL.
func WithBaseURL(base string) ClientOption {
	return func(cl *Client) {
		if base != "" {
			cl.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request. An empty
// ua keeps DefaultUserAgent.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithTimeouts overrides the page and download timeouts. Non-positive values
// keep the defaults.
func WithTimeouts(page, download time.Duration) ClientOption {
	return func(cl *Client) {
		if page > 0 {
			cl.pageTimeout = page
		}
		if download > 0 {
			cl.downloadTimeout = download
		}
	}
}

// WithTempDir sets the parent directory for downloaded archives.
func WithTempDir(dir string) ClientOption {
	return func(cl *Client) {
		cl.tempDir = dir
	}
}

// WithLogger sets the logger used for degraded-page warnings and debug traces.
func WithLogger(l *log.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = l
	}
}

// NewClient creates a Client with defaults: DefaultBaseURL, DefaultUserAgent,
// DefaultPageTimeout, DefaultDownloadTimeout and http.DefaultClient.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:      http.DefaultClient,
		baseURL:         DefaultBaseURL,
		userAgent:       DefaultUserAgent,
		pageTimeout:     DefaultPageTimeout,
		downloadTimeout: DefaultDownloadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "esoui"})
	}
	return c
}

// InfoURL returns the info page URL for id.
func (c *Client) InfoURL(id AddonID) string {
	return fmt.Sprintf("%s/downloads/info%d", c.baseURL, id)
}

// DownloadPageURL returns the download page URL for id.
func (c *Client) DownloadPageURL(id AddonID) string {
	return fmt.Sprintf("%s/downloads/download%d", c.baseURL, id)
}

// FetchPage issues a single GET. It fails only with a NetworkError; any HTTP
// status, including 404 and 5xx, comes back as a Page.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (Page, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pageTimeout)
	defer cancel()

	resp, err := c.doRequest(ctx, pageURL)
	if err != nil {
		return Page{}, &NetworkError{URL: pageURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes+1))
	if err != nil {
		return Page{}, &NetworkError{URL: pageURL, Err: fmt.Errorf("reading body: %w", err)}
	}
	if len(body) > maxPageBytes {
		body = body[:maxPageBytes]
		c.logger.Debug("page truncated", "url", pageURL, "limit", maxPageBytes)
	}

	c.logger.Debug("fetched page", "url", pageURL, "status", resp.StatusCode, "bytes", len(body))

	return Page{URL: pageURL, StatusCode: resp.StatusCode, Body: body}, nil
}

// doRequest creates and executes a GET with the client's User-Agent.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
