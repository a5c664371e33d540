// Package contracts holds canonical WordPress REST API responses shared by
// tests. Fixtures keep the fields WordPress actually sends, including ones
// wpfetch ignores, so decoding is exercised against the real shape.
package contracts

// PostsResponse is a GET /wp-json/wp/v2/posts?_embed body with two posts.
// The second post's featured media is an embedded error object, which is
// what WordPress sends when the attachment is not publicly readable.
const PostsResponse = `[
  {
    "id": 101,
    "date": "2024-03-05T10:00:00",
    "date_gmt": "2024-03-05T04:30:00",
    "guid": {"rendered": "https://thelivenagpur.com/?p=101"},
    "modified": "2024-03-06T08:00:00",
    "slug": "hello-world",
    "status": "publish",
    "type": "post",
    "link": "https://thelivenagpur.com/2024/03/05/hello-world/",
    "title": {"rendered": "Hello &#8216;World&#8217;"},
    "content": {"rendered": "<p>First <strong>post</strong> on the site.</p>\n", "protected": false},
    "excerpt": {"rendered": "<p>First post on the site.</p>\n", "protected": false},
    "author": 7,
    "featured_media": 55,
    "categories": [3],
    "tags": [9],
    "_links": {"self": [{"href": "https://thelivenagpur.com/wp-json/wp/v2/posts/101"}]},
    "_embedded": {
      "author": [
        {"id": 7, "name": "Asha Rao", "url": "https://asharao.example", "slug": "asha"}
      ],
      "wp:featuredmedia": [
        {"id": 55, "source_url": "https://thelivenagpur.com/wp-content/uploads/hello.jpg", "alt_text": "Sunrise over Futala lake", "media_type": "image"}
      ],
      "wp:term": [
        [{"id": 3, "name": "City News", "slug": "city-news", "taxonomy": "category", "link": "https://thelivenagpur.com/category/city-news/"}],
        [{"id": 9, "name": "Nagpur", "slug": "nagpur", "taxonomy": "post_tag"}]
      ]
    }
  },
  {
    "id": 102,
    "date": "2024-02-29T18:45:00",
    "slug": "leap-day",
    "title": {"rendered": "Leap Day"},
    "content": {"rendered": "<p>Once every four years.</p>"},
    "excerpt": {"rendered": "<p>Once every four years.</p>"},
    "_embedded": {
      "author": [{"id": 8, "name": "Vikram Joshi"}],
      "wp:featuredmedia": [
        {"code": "rest_forbidden", "message": "Sorry, you are not allowed to do that.", "data": {"status": 401}}
      ],
      "wp:term": [[], []]
    }
  }
]`

// PostsTotal is the X-WP-Total header value sent alongside PostsResponse.
const PostsTotal = "2"

// UnembeddedPostsResponse is a GET /wp-json/wp/v2/posts body without _embed.
const UnembeddedPostsResponse = `[
  {
    "id": 101,
    "date": "2024-03-05T10:00:00",
    "slug": "hello-world",
    "title": {"rendered": "Hello &#8216;World&#8217;"},
    "content": {"rendered": "<p>First <strong>post</strong> on the site.</p>\n"},
    "excerpt": {"rendered": "<p>First post on the site.</p>\n"},
    "categories": [3]
  }
]`

// ErrorResponse is the body WordPress sends with a 400 for an out-of-range page.
const ErrorResponse = `{"code":"rest_post_invalid_page_number","message":"The page number requested is larger than the number of pages available.","data":{"status":400}}`
