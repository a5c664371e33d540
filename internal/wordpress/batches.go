package wordpress

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strconv"
)

// Batches walks the whole posts collection one page of batchSize embedded
// posts at a time, in ascending page order. It first reads the collection
// size, then requests pages 1..ceil(total/batchSize) sequentially. A failed
// request is yielded as an error and ends the sequence. Nothing is fetched
// until the sequence is ranged over. batchSize < 1 means DefaultBatchSize.
func (c *Client) Batches(ctx context.Context, batchSize int) iter.Seq2[[]Post, error] {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	return func(yield func([]Post, error) bool) {
		total, err := c.total(ctx, opAllPosts)
		if err != nil {
			yield(nil, fmt.Errorf("failed to count posts: %w", err))
			return
		}

		pages := pageCount(total, batchSize)
		for page := 1; page <= pages; page++ {
			params := url.Values{}
			params.Set("per_page", strconv.Itoa(batchSize))
			params.Set("page", strconv.Itoa(page))

			posts, _, err := fetch[[]Post](ctx, c, opAllPosts, c.postsURL(params, true))
			if err != nil {
				yield(nil, fmt.Errorf("batch %d of %d: %w", page, pages, err))
				return
			}

			if !yield(limitPosts(posts, batchSize), nil) {
				return
			}
		}
	}
}

// AllPosts returns every post with its embedded bundle, concatenated in page
// order. If any batch fails the whole result is discarded and AllPosts
// returns no posts.
func (c *Client) AllPosts(ctx context.Context, batchSize int) []Post {
	all := []Post{}
	for batch, err := range c.Batches(ctx, batchSize) {
		if err != nil {
			c.fail(ctx, opAllPosts, err)
			return []Post{}
		}
		all = append(all, batch...)
	}
	return all
}

// StaticPaths returns a path descriptor for every post, for static page generation.
func (c *Client) StaticPaths(ctx context.Context, batchSize int) []PostPath {
	posts := c.AllPosts(ctx, batchSize)

	paths := make([]PostPath, 0, len(posts))
	for _, post := range posts {
		paths = append(paths, PostPath{
			Params: PathParams{Slug: post.Slug},
			Props:  PathProps{Post: post},
		})
	}
	return paths
}
