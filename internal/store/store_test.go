package store

import (
	"testing"
	"time"

	"github.com/ebrowne/newslens/internal/bias"
	"github.com/ebrowne/newslens/internal/news"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveArticlesIgnoresDuplicates(t *testing.T) {
	s := testStore(t)

	articles := []news.Article{
		{URL: "https://example.com/1", Title: "one", Source: news.Source{Name: "Reuters"}, PublishedAt: time.Now()},
		{URL: "https://example.com/2", Title: "two", Source: news.Source{Name: "BBC News"}, PublishedAt: time.Now()},
	}

	n, err := s.SaveArticles(articles)
	if err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}
	if n != 2 {
		t.Errorf("new count = %d, want 2", n)
	}

	n, err = s.SaveArticles(articles)
	if err != nil {
		t.Fatalf("SaveArticles (again): %v", err)
	}
	if n != 0 {
		t.Errorf("new count on resave = %d, want 0", n)
	}
}

func TestRecentArticlesOrder(t *testing.T) {
	s := testStore(t)

	now := time.Now()
	_, err := s.SaveArticles([]news.Article{
		{URL: "https://example.com/old", Title: "old", Source: news.Source{Name: "NPR"}, PublishedAt: now.Add(-2 * time.Hour)},
		{URL: "https://example.com/new", Title: "new", Source: news.Source{Name: "NPR"}, PublishedAt: now},
	})
	if err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}

	articles, err := s.RecentArticles(10)
	if err != nil {
		t.Fatalf("RecentArticles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].URL != "https://example.com/new" {
		t.Errorf("newest first: got %q", articles[0].URL)
	}
}

func TestBiasRoundTrip(t *testing.T) {
	s := testStore(t)

	rec := bias.Record{
		CombinedBias: 1.24,
		Category:     bias.CategoryRight,
		SourceBias:   1.6,
		ContentBias:  1,
		Sentiment:    bias.SentimentNegative,
		Confidence:   0.8,
	}

	if err := s.SaveBias("https://example.com/1", rec); err != nil {
		t.Fatalf("SaveBias: %v", err)
	}

	got, ok, err := s.GetBias("https://example.com/1")
	if err != nil {
		t.Fatalf("GetBias: %v", err)
	}
	if !ok {
		t.Fatal("expected cached record")
	}
	if got != rec {
		t.Errorf("round trip mismatch: %+v vs %+v", got, rec)
	}
}

func TestGetBiasMissing(t *testing.T) {
	s := testStore(t)

	_, ok, err := s.GetBias("https://example.com/nope")
	if err != nil {
		t.Fatalf("GetBias: %v", err)
	}
	if ok {
		t.Error("expected ok = false for missing record")
	}
}

func TestSaveBiasUpserts(t *testing.T) {
	s := testStore(t)

	first := bias.Record{Category: bias.CategoryUnknown, Sentiment: bias.SentimentNeutral}
	second := bias.Record{
		CombinedBias: -0.6,
		Category:     bias.CategoryLeft,
		SourceBias:   -1.5,
		Sentiment:    bias.SentimentNeutral,
		Confidence:   0.8,
	}

	if err := s.SaveBias("https://example.com/1", first); err != nil {
		t.Fatalf("SaveBias: %v", err)
	}
	if err := s.SaveBias("https://example.com/1", second); err != nil {
		t.Fatalf("SaveBias (update): %v", err)
	}

	got, ok, _ := s.GetBias("https://example.com/1")
	if !ok || got.Category != bias.CategoryLeft {
		t.Errorf("upsert failed: %+v", got)
	}
}
