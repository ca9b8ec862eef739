package parksite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is read for diagnostics.
const maxErrorBody = 64 << 10

// Client talks to a parksite server over HTTP. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	obs       *observer
}

// New creates a client for the server at baseURL (scheme and host, optional
// path prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("parksite: base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parksite: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("parksite: base URL scheme must be http or https, got %q", base.Scheme)
	}
	if base.Host == "" {
		return nil, errors.New("parksite: base URL has no host")
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, fmt.Errorf("parksite: init observer: %w", err)
	}

	return &Client{
		base:      base,
		http:      hc,
		userAgent: cfg.userAgent,
		obs:       obs,
	}, nil
}

// Search runs the aggregate site search. A query shorter than two characters
// yields an empty slice; an empty query is rejected by the server.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	start := time.Now()
	out := []SearchResult{}
	err := c.getJSON(ctx, "/api/search", url.Values{"q": {query}}, &out)
	c.obs.observe("search", start, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListPosts returns one page of the blog listing, newest first.
// Zero page or limit selects the server defaults.
func (c *Client) ListPosts(ctx context.Context, page, limit int) (PostPage, error) {
	start := time.Now()
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out PostPage
	err := c.getJSON(ctx, "/api/blog", q, &out)
	c.obs.observe("list_posts", start, err)
	return out, err
}

// GetPost returns a single post. Missing posts yield ErrNotFound.
func (c *Client) GetPost(ctx context.Context, slug string) (Post, error) {
	start := time.Now()
	var out Post
	var err error
	if strings.TrimSpace(slug) == "" {
		err = fmt.Errorf("parksite: slug is required: %w", ErrInvalidArgument)
	} else {
		err = c.getJSON(ctx, "/api/blog/"+url.PathEscape(slug), nil, &out)
	}
	c.obs.observe("get_post", start, err)
	return out, err
}

// Sitemap returns the raw sitemap.xml document.
func (c *Client) Sitemap(ctx context.Context) ([]byte, error) {
	start := time.Now()
	body, err := c.get(ctx, "/sitemap.xml", nil, "application/xml")
	c.obs.observe("sitemap", start, err)
	return body, err
}

// getJSON issues a GET and decodes the JSON body into out. Statuses in
// accept are decoded like 200.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any, accept ...int) error {
	resp, err := c.do(ctx, path, q, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && !slices.Contains(accept, resp.StatusCode) {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parksite: decode %s: %w", path, err)
	}
	return nil
}

// get issues a GET and returns the raw 200 body.
func (c *Client) get(ctx context.Context, path string, q url.Values, accept string) ([]byte, error) {
	resp, err := c.do(ctx, path, q, accept)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parksite: read %s: %w", path, err)
	}
	return body, nil
}

// do issues a GET for path, which must already be escaped.
func (c *Client) do(ctx context.Context, path string, q url.Values, accept string) (*http.Response, error) {
	target, err := c.endpoint(path, q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("parksite: build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parksite: GET %s: %w", path, err)
	}
	return resp, nil
}

// endpoint resolves an escaped path against the base URL. RawPath keeps
// escaped separators such as %2F intact.
func (c *Client) endpoint(escapedPath string, q url.Values) (string, error) {
	p, err := url.PathUnescape(escapedPath)
	if err != nil {
		return "", fmt.Errorf("parksite: bad path %q: %w", escapedPath, err)
	}
	u := *c.base
	u.Path = c.base.Path + p
	u.RawPath = c.base.EscapedPath() + escapedPath
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeError builds an *APIError from a non-2xx response. Bodies that are
// not the API's JSON error shape keep the status text as message.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	if json.Unmarshal(raw, &body) == nil && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		return apiErr
	}
	apiErr.Message = http.StatusText(resp.StatusCode)
	return apiErr
}
