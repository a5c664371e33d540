package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	postsPath   = "/wp-json/wp/v2/posts"
	totalHeader = "X-WP-Total"
)

// APIError reports a non-2xx response from the WordPress API.
type APIError struct {
	Op         string
	StatusCode int
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Sprintf("%s: WordPress API denied access (status %d) - the posts endpoint may require authentication", e.Op, e.StatusCode)
	case http.StatusNotFound:
		return fmt.Sprintf("%s: WordPress API not found (status 404) - check the API URL points at a WordPress site", e.Op)
	case http.StatusTooManyRequests:
		return fmt.Sprintf("%s: WordPress API rate limit exceeded - please try again later", e.Op)
	case http.StatusBadRequest:
		return fmt.Sprintf("%s: WordPress API rejected the request (status 400) - the page may be out of range", e.Op)
	}
	if e.StatusCode >= 500 {
		return fmt.Sprintf("%s: WordPress API server error (status %d) - please try again later", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: WordPress API error (status %d)", e.Op, e.StatusCode)
}

// postsURL builds a posts collection URL. _embed is sent as a bare flag.
func (c *Client) postsURL(params url.Values, embed bool) string {
	u := strings.TrimRight(c.baseURL, "/") + postsPath

	qs := params.Encode()
	if embed {
		if qs != "" {
			qs += "&"
		}
		qs += "_embed"
	}
	if qs != "" {
		u += "?" + qs
	}
	return u
}

func (c *Client) doRequest(ctx context.Context, op, url string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "wordpress response", "op", op, "url", url, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &APIError{Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.Header, nil
}

// fetch issues one GET and decodes the JSON body into T.
func fetch[T any](ctx context.Context, c *Client, op, url string) (T, http.Header, error) {
	var out T

	body, header, err := c.doRequest(ctx, op, url)
	if err != nil {
		return out, nil, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, nil, fmt.Errorf("failed to parse %s response: %w", op, err)
	}

	return out, header, nil
}

// fetchOr is fetch with the package's error policy applied: any failure is
// logged once and replaced by fallback.
func fetchOr[T any](ctx context.Context, c *Client, op, url string, fallback T) (T, bool) {
	out, _, err := fetch[T](ctx, c, op, url)
	if err != nil {
		c.fail(ctx, op, err)
		return fallback, false
	}
	return out, true
}

func (c *Client) fail(ctx context.Context, op string, err error) {
	c.logger.ErrorContext(ctx, "wordpress request failed", "op", op, "err", err)
}

// total asks for a single post to read the collection size from X-WP-Total.
func (c *Client) total(ctx context.Context, op string) (int, error) {
	_, header, err := fetch[[]Post](ctx, c, op, c.postsURL(url.Values{"per_page": {"1"}}, false))
	if err != nil {
		return 0, err
	}
	return parseTotal(header.Get(totalHeader)), nil
}

// parseTotal reads X-WP-Total; missing or garbage values count as zero.
func parseTotal(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func pageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// limitPosts truncates to at most n posts and never returns nil.
func limitPosts(posts []Post, n int) []Post {
	if posts == nil {
		return []Post{}
	}
	if n > 0 && len(posts) > n {
		return posts[:n]
	}
	return posts
}
