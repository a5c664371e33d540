package wordpress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWordPressAPI_IgnoresUnexpectedFields(t *testing.T) {
	body := `[{"id": 1, "slug": "a", "date": "2024-01-01T00:00:00", "title": {"rendered": "A", "raw": "A"},
		"newFieldFromPlugin": {"surprise": true}, "meta": [], "_embedded": {"replies": [[{"id": 3}]]}}]`
	server := serveJSON(t, http.StatusOK, body, nil)

	post := NewClient(WithBaseURL(server.URL)).PostBySlug(context.Background(), "a")

	if post == nil {
		t.Fatal("user should see the post even when plugins add fields")
	}
	if post.Title.Rendered != "A" {
		t.Errorf("expected title 'A', got %q", post.Title.Rendered)
	}
}

func TestWordPressAPI_HandlesNullFields(t *testing.T) {
	body := `[{"id": 1, "slug": "a", "date": null, "title": null, "excerpt": {"rendered": null}, "_embedded": null}]`
	server := serveJSON(t, http.StatusOK, body, nil)

	post := NewClient(WithBaseURL(server.URL)).PostBySlug(context.Background(), "a")

	if post == nil {
		t.Fatal("user should see the post despite null fields")
	}
	if post.HasEmbedded() {
		t.Error("a null _embedded should read as absent")
	}
	if _, ok := post.FeaturedMedia(); ok {
		t.Error("absent bundle should have no featured media")
	}
}

func TestWordPressAPI_NullBodyIsAnEmptyList(t *testing.T) {
	server := serveJSON(t, http.StatusOK, `null`, nil)

	posts := NewClient(WithBaseURL(server.URL)).SearchPosts(context.Background(), "x", 5)

	if posts == nil || len(posts) != 0 {
		t.Errorf("expected an empty slice, got %#v", posts)
	}
}

func TestWordPressAPI_FailuresBecomeEmptyResults(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"malformed json", http.StatusOK, `{"invalid": json}`},
		{"truncated body", http.StatusOK, `[{"id": 1, "slug": "a", "title": {"rendered": "Te`},
		{"html error page", http.StatusOK, `<!DOCTYPE html><html><body>Database error</body></html>`},
		{"object instead of list", http.StatusOK, `{"code":"rest_no_route"}`},
		{"server error", http.StatusInternalServerError, `{"code":"internal_server_error"}`},
		{"forbidden", http.StatusForbidden, `{"code":"rest_forbidden"}`},
		{"out of range page", http.StatusBadRequest, `{"code":"rest_post_invalid_page_number"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := serveJSON(t, tc.status, tc.body, nil)
			logger, logs := captureLogs()
			client := NewClient(WithBaseURL(server.URL), WithLogger(logger))
			ctx := context.Background()

			if post := client.PostBySlug(ctx, "a"); post != nil {
				t.Errorf("PostBySlug should return nil, got %+v", post)
			}
			if page := client.Posts(ctx, 1, 10, PageOptions{Embed: true}); len(page.Posts) != 0 || page.TotalPosts != 0 || page.TotalPages != 0 {
				t.Errorf("Posts should return an empty page, got %+v", page)
			}
			if posts := client.RelatedPosts(ctx, 1, 2, 3); len(posts) != 0 {
				t.Errorf("RelatedPosts should return no posts, got %d", len(posts))
			}
			if posts := client.SearchPosts(ctx, "a", 10); len(posts) != 0 {
				t.Errorf("SearchPosts should return no posts, got %d", len(posts))
			}
			if posts := client.AllPosts(ctx, 20); len(posts) != 0 {
				t.Errorf("AllPosts should return no posts, got %d", len(posts))
			}

			if n := len(errorRecords(t, logs)); n != 5 {
				t.Errorf("each failed operation should log exactly once: expected 5 records, got %d", n)
			}
		})
	}
}

func TestWordPressAPI_UnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	logger, logs := captureLogs()
	post := NewClient(WithBaseURL(baseURL), WithLogger(logger)).PostBySlug(context.Background(), "a")

	if post != nil {
		t.Error("unreachable API should read as no post")
	}
	records := errorRecords(t, logs)
	if len(records) != 1 {
		t.Fatalf("expected one error record, got %d", len(records))
	}
	if msg, _ := records[0]["err"].(string); !strings.Contains(msg, baseURL) {
		t.Errorf("transport errors should carry the request URL, got %q", msg)
	}
}

func TestWordPressAPI_MissingOrGarbageTotalHeaderCountsAsZero(t *testing.T) {
	for _, header := range []string{"", "lots", "-4"} {
		t.Run(header, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if header != "" {
					w.Header().Set(totalHeader, header)
				}
				w.Write([]byte(`[{"id": 1, "slug": "a"}]`))
			}))
			defer server.Close()

			page := NewClient(WithBaseURL(server.URL)).Posts(context.Background(), 1, 10, PageOptions{})

			if page.TotalPosts != 0 || page.TotalPages != 0 {
				t.Errorf("expected zero totals, got %d/%d", page.TotalPosts, page.TotalPages)
			}
			if len(page.Posts) != 1 {
				t.Errorf("the page itself should still be returned, got %d posts", len(page.Posts))
			}
		})
	}
}

func TestWordPressAPI_CancelledContext(t *testing.T) {
	wp := newFakeWordPress(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	posts := NewClient(WithBaseURL(wp.URL)).AllPosts(ctx, 2)

	if len(posts) != 0 {
		t.Errorf("a cancelled context should yield no posts, got %d", len(posts))
	}
	if n := len(wp.Requests()); n != 0 {
		t.Errorf("a cancelled context should not reach the API, got %d requests", n)
	}
}
