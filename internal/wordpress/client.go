package wordpress

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the WordPress site wpfetch reads from.
	DefaultBaseURL = "https://thelivenagpur.com"

	DefaultPerPage      = 10
	DefaultRelatedLimit = 3
	DefaultSearchLimit  = 10
	DefaultBatchSize    = 20

	userAgent = "wpfetch"
)

// Operation names attached to diagnostics.
const (
	opPostBySlug = "post by slug"
	opPosts      = "posts"
	opRelated    = "related posts"
	opSearch     = "search posts"
	opAllPosts   = "all posts"
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets the site root the API lives under (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLogger sets the logger that receives request diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client reads posts from the WordPress REST API.
//
// Operations never return errors: failures are logged and replaced by an
// empty result, so "nothing found" and "request failed" look the same to the
// caller. Batches is the exception.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *slog.Logger
}

// NewClient creates a new WordPress API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// PostBySlug returns the first post matching slug with its embedded bundle,
// or nil when nothing matches or the request fails.
func (c *Client) PostBySlug(ctx context.Context, slug string) *Post {
	posts, _ := fetchOr[[]Post](ctx, c, opPostBySlug, c.postsURL(url.Values{"slug": {slug}}, true), nil)
	if len(posts) == 0 {
		return nil
	}
	return &posts[0]
}

// Posts returns one page of posts plus collection totals. The total comes
// from a separate count request issued first. page < 1 is treated as 1 and
// perPage < 1 as DefaultPerPage.
func (c *Client) Posts(ctx context.Context, page, perPage int, opts PageOptions) PostsPage {
	empty := PostsPage{Posts: []Post{}}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	total, err := c.total(ctx, opPosts)
	if err != nil {
		c.fail(ctx, opPosts, err)
		return empty
	}

	params := url.Values{}
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("offset", strconv.Itoa((page-1)*perPage))

	posts, ok := fetchOr[[]Post](ctx, c, opPosts, c.postsURL(params, opts.Embed), nil)
	if !ok {
		return empty
	}

	return PostsPage{
		Posts:      limitPosts(posts, perPage),
		TotalPosts: total,
		TotalPages: pageCount(total, perPage),
	}
}

// RelatedPosts returns up to limit embedded posts in categoryID, leaving out
// excludePostID. limit < 1 means DefaultRelatedLimit.
func (c *Client) RelatedPosts(ctx context.Context, categoryID, excludePostID, limit int) []Post {
	if limit < 1 {
		limit = DefaultRelatedLimit
	}

	params := url.Values{}
	params.Set("categories", strconv.Itoa(categoryID))
	params.Set("exclude", strconv.Itoa(excludePostID))
	params.Set("per_page", strconv.Itoa(limit))

	posts, _ := fetchOr[[]Post](ctx, c, opRelated, c.postsURL(params, true), nil)
	return limitPosts(posts, limit)
}

// RelatedTo returns posts sharing the first embedded category of post.
// A post without embedded categories has no related posts and costs no request.
func (c *Client) RelatedTo(ctx context.Context, post Post, limit int) []Post {
	categories := post.Categories()
	if len(categories) == 0 {
		return []Post{}
	}
	return c.RelatedPosts(ctx, categories[0].ID, post.ID, limit)
}

// SearchPosts returns up to limit embedded posts matching query. A blank
// query returns no posts without contacting the API. limit < 1 means
// DefaultSearchLimit.
func (c *Client) SearchPosts(ctx context.Context, query string, limit int) []Post {
	if strings.TrimSpace(query) == "" {
		return []Post{}
	}
	if limit < 1 {
		limit = DefaultSearchLimit
	}

	params := url.Values{}
	params.Set("search", query)
	params.Set("per_page", strconv.Itoa(limit))

	posts, _ := fetchOr[[]Post](ctx, c, opSearch, c.postsURL(params, true), nil)
	return limitPosts(posts, limit)
}
