// Package wordpress provides a read-only client for the WordPress REST API
// posts collection.
//
// This package enables wpfetch to:
// - Fetch a single post by slug
// - Page through posts with total counts
// - Find related posts and search results
// - Collect every post for static site generation
package wordpress

import "github.com/gauthierbraillon/wpfetch/internal/dates"

// Taxonomy names used by WordPress core.
const (
	TaxonomyCategory = "category"
	TaxonomyTag      = "post_tag"
)

// Post represents a WordPress post as returned by /wp-json/wp/v2/posts.
type Post struct {
	ID       int       `json:"id"`
	Date     string    `json:"date"`
	Slug     string    `json:"slug"`
	Title    Rendered  `json:"title"`
	Content  Rendered  `json:"content"`
	Excerpt  Rendered  `json:"excerpt"`
	Embedded *Embedded `json:"_embedded,omitempty"`
}

// Rendered holds server-rendered HTML.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Embedded holds related resources, present only when the post was fetched with _embed.
type Embedded struct {
	FeaturedMedia []Media  `json:"wp:featuredmedia,omitempty"`
	Terms         [][]Term `json:"wp:term,omitempty"`
	Authors       []Author `json:"author,omitempty"`
}

// Media is a featured image.
type Media struct {
	SourceURL string `json:"source_url"`
	AltText   string `json:"alt_text,omitempty"`
}

// Term is a taxonomy term such as a category or tag.
type Term struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy,omitempty"`
}

// Author is a post author.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// PostPath pairs a slug route parameter with its post for static page generation.
type PostPath struct {
	Params PathParams `json:"params"`
	Props  PathProps  `json:"props"`
}

type PathParams struct {
	Slug string `json:"slug"`
}

type PathProps struct {
	Post Post `json:"post"`
}

// PostsPage is one page of the posts collection with collection-wide totals.
type PostsPage struct {
	Posts      []Post `json:"posts"`
	TotalPosts int    `json:"total_posts"`
	TotalPages int    `json:"total_pages"`
}

// PageOptions configures Posts.
type PageOptions struct {
	Embed bool
}

// HasEmbedded reports whether the post carries an embedded bundle.
func (p Post) HasEmbedded() bool {
	return p.Embedded != nil
}

// FeaturedMedia returns the featured image, if one was embedded.
func (p Post) FeaturedMedia() (Media, bool) {
	if p.Embedded == nil || len(p.Embedded.FeaturedMedia) == 0 {
		return Media{}, false
	}
	m := p.Embedded.FeaturedMedia[0]
	// WordPress embeds an error object in place of media the caller cannot read.
	if m.SourceURL == "" {
		return Media{}, false
	}
	return m, true
}

// Terms returns the embedded terms of one taxonomy in the order WordPress sent them.
// Terms without a taxonomy name never match.
func (p Post) Terms(taxonomy string) []Term {
	if p.Embedded == nil {
		return nil
	}
	var terms []Term
	for _, group := range p.Embedded.Terms {
		for _, term := range group {
			if term.Taxonomy == taxonomy {
				terms = append(terms, term)
			}
		}
	}
	return terms
}

// Categories returns the embedded category terms.
func (p Post) Categories() []Term {
	return p.Terms(TaxonomyCategory)
}

// Tags returns the embedded tag terms.
func (p Post) Tags() []Term {
	return p.Terms(TaxonomyTag)
}

// Author returns the first embedded author.
func (p Post) Author() (Author, bool) {
	if p.Embedded == nil || len(p.Embedded.Authors) == 0 {
		return Author{}, false
	}
	return p.Embedded.Authors[0], true
}

// Path returns the canonical permalink path, e.g. /2024/03/05/hello-world.
func (p Post) Path() string {
	return dates.PostURL(p.Date, p.Slug)
}
