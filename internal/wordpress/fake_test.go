package wordpress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeWordPress serves a posts collection of total generated posts and
// records every request it sees. Pagination follows WordPress: offset wins
// over page, and per_page defaults to 10.
type fakeWordPress struct {
	*httptest.Server

	total int

	mu         sync.Mutex
	requests   []url.Values
	failAt     int
	failStatus int
}

func newFakeWordPress(t *testing.T, total int) *fakeWordPress {
	t.Helper()

	f := &fakeWordPress{total: total}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeWordPress) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Query())
	fail := f.failAt == len(f.requests)
	status := f.failStatus
	f.mu.Unlock()

	if r.URL.Path != postsPath {
		http.NotFound(w, r)
		return
	}
	if fail {
		w.WriteHeader(status)
		return
	}

	q := r.URL.Query()
	perPage := atoiOr(q.Get("per_page"), 10)
	start := (atoiOr(q.Get("page"), 1) - 1) * perPage
	if q.Has("offset") {
		start = atoiOr(q.Get("offset"), 0)
	}

	posts := []Post{}
	for id := start + 1; id <= start+perPage && id <= f.total; id++ {
		posts = append(posts, fakePost(id, q.Has("_embed")))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(totalHeader, strconv.Itoa(f.total))
	_ = json.NewEncoder(w).Encode(posts)
}

// FailRequest makes the n-th request (1-based) answer with status.
func (f *fakeWordPress) FailRequest(n, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAt = n
	f.failStatus = status
}

func (f *fakeWordPress) Requests() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.requests...)
}

func fakePost(id int, embed bool) Post {
	p := Post{
		ID:      id,
		Date:    "2024-03-05T10:00:00",
		Slug:    fmt.Sprintf("post-%d", id),
		Title:   Rendered{Rendered: fmt.Sprintf("Post %d", id)},
		Content: Rendered{Rendered: "<p>content</p>"},
		Excerpt: Rendered{Rendered: "<p>excerpt</p>"},
	}
	if embed {
		p.Embedded = &Embedded{
			Authors: []Author{{ID: 1, Name: "Author"}},
			Terms:   [][]Term{{{ID: 3, Name: "News", Slug: "news", Taxonomy: TaxonomyCategory}}},
		}
	}
	return p
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// serveJSON returns a server that always answers with body and status.
func serveJSON(t *testing.T, status int, body string, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// captureLogs returns a logger writing JSON records into the returned buffer.
func captureLogs() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// errorRecords decodes the error-level records written by captureLogs.
func errorRecords(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var records []map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	for dec.More() {
		var rec map[string]interface{}
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("log output is not JSON: %v", err)
		}
		if rec["level"] == "ERROR" {
			records = append(records, rec)
		}
	}
	return records
}
