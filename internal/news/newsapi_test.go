package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewsAPISearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/everything" {
			t.Errorf("path = %q, want /everything", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("q") != `"climate"` {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("apiKey") != "test-key" {
			t.Errorf("apiKey = %q", q.Get("apiKey"))
		}
		if q.Get("pageSize") != "10" {
			t.Errorf("pageSize = %q", q.Get("pageSize"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{
					"source": {"name": "Reuters"},
					"title": "Climate summit opens",
					"description": "Leaders gather",
					"url": "https://example.com/1",
					"publishedAt": "2026-08-30T12:00:00Z"
				},
				{
					"source": {"name": "BBC News"},
					"title": "No URL, dropped",
					"url": "",
					"publishedAt": "2026-08-30T11:00:00Z"
				}
			]
		}`))
	}))
	defer server.Close()

	c := NewNewsAPIClient("test-key")
	c.SetEndpoint(server.URL)

	articles, err := c.Search(context.Background(), Query{Q: `"climate"`, Language: "en", SortBy: "publishedAt", PageSize: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1 (empty-URL row dropped)", len(articles))
	}
	if articles[0].Source.Name != "Reuters" || articles[0].Title != "Climate summit opens" {
		t.Errorf("articles[0] = %+v", articles[0])
	}
}

func TestNewsAPISearchErrorWrapsRetrieval(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"bad key"}`))
	}))
	defer server.Close()

	c := NewNewsAPIClient("bad-key")
	c.SetEndpoint(server.URL)

	_, err := c.Search(context.Background(), Query{Q: "anything"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrRetrieval) {
		t.Errorf("error should wrap ErrRetrieval, got %v", err)
	}
}

func TestNewsAPISearchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// NewsAPI reports some errors with HTTP 200 and status "error"
		w.Write([]byte(`{"status":"error","code":"rateLimited","message":"too many requests"}`))
	}))
	defer server.Close()

	c := NewNewsAPIClient("test-key")
	c.SetEndpoint(server.URL)

	_, err := c.Search(context.Background(), Query{Q: "anything"})
	if !errors.Is(err, ErrRetrieval) {
		t.Errorf("error should wrap ErrRetrieval, got %v", err)
	}
}

func TestNewsAPIMissingKey(t *testing.T) {
	c := NewNewsAPIClient("")
	if c.Available() {
		t.Error("expected Available() = false")
	}

	_, err := c.Search(context.Background(), Query{Q: "anything"})
	if !errors.Is(err, ErrRetrieval) {
		t.Errorf("error should wrap ErrRetrieval, got %v", err)
	}
}

func TestNewsAPITopHeadlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/top-headlines" {
			t.Errorf("path = %q, want /top-headlines", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("country") != "us" || q.Get("category") != "technology" {
			t.Errorf("params = %v", q)
		}
		w.Write([]byte(`{"status":"ok","articles":[{"source":{"name":"Wired"},"title":"Chips","url":"https://example.com/1","publishedAt":"2026-08-30T12:00:00Z"}]}`))
	}))
	defer server.Close()

	c := NewNewsAPIClient("test-key")
	c.SetEndpoint(server.URL)

	articles, err := c.TopHeadlines(context.Background(), HeadlinesQuery{Country: "us", Category: "technology", PageSize: 20})
	if err != nil {
		t.Fatalf("TopHeadlines: %v", err)
	}
	if len(articles) != 1 || articles[0].Source.Name != "Wired" {
		t.Errorf("articles = %+v", articles)
	}
}

func TestArticleText(t *testing.T) {
	a := Article{Title: "Headline", Description: "Details"}
	if got := a.Text(); got != "Headline Details" {
		t.Errorf("Text() = %q", got)
	}

	b := Article{Title: "Headline"}
	if got := b.Text(); got != "Headline" {
		t.Errorf("Text() without description = %q", got)
	}
}
