package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Feed is a single RSS/Atom feed to pull articles from.
type Feed struct {
	Name string // Display name, used as the article source name
	URL  string
}

// RSSSearcher retrieves articles from a fixed set of RSS feeds and
// filters them against the query locally. It backs the pipeline when
// no NewsAPI key is configured.
type RSSSearcher struct {
	feeds  []Feed
	client *http.Client
}

// NewRSSSearcher creates a searcher over the given feeds.
func NewRSSSearcher(feeds []Feed) *RSSSearcher {
	return &RSSSearcher{
		feeds: feeds,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Search fetches all feeds and returns items whose title or description
// contains any of the query's OR-joined terms. A feed that fails to fetch
// is skipped; Search only fails when every feed fails.
func (s *RSSSearcher) Search(ctx context.Context, q Query) ([]Article, error) {
	terms := parseQueryTerms(q.Q)

	var articles []Article
	var failures int
	var lastErr error

	for _, feed := range s.feeds {
		items, err := s.fetchFeed(ctx, feed)
		if err != nil {
			failures++
			lastErr = err
			continue
		}
		for _, item := range items {
			if matchesTerms(item, terms) {
				articles = append(articles, item)
			}
		}
	}

	if len(s.feeds) > 0 && failures == len(s.feeds) {
		return nil, fmt.Errorf("%w: all %d feeds failed: %v", ErrRetrieval, failures, lastErr)
	}

	if q.PageSize > 0 && len(articles) > q.PageSize {
		articles = articles[:q.PageSize]
	}
	return articles, nil
}

func (s *RSSSearcher) fetchFeed(ctx context.Context, feed Feed) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "newslens/0.1 (+https://github.com/ebrowne/newslens)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	articles := make([]Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			Source:      Source{Name: feed.Name},
			PublishedAt: published,
		})
	}
	return articles, nil
}

// parseQueryTerms splits an OR-joined query of quoted terms into the
// bare lowercase terms. `"climate change" OR "economy"` -> [climate change, economy]
func parseQueryTerms(q string) []string {
	var terms []string
	for _, part := range strings.Split(q, " OR ") {
		term := strings.Trim(strings.TrimSpace(part), `"`)
		if term != "" {
			terms = append(terms, strings.ToLower(term))
		}
	}
	return terms
}

func matchesTerms(a Article, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	text := strings.ToLower(a.Text())
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// DefaultFeeds is a starter set of general-news feeds used when no
// NewsAPI key is configured.
func DefaultFeeds() []Feed {
	return []Feed{
		{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
		{Name: "Reuters", URL: "https://feeds.reuters.com/reuters/topNews"},
		{Name: "NPR", URL: "https://feeds.npr.org/1001/rss.xml"},
		{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss"},
	}
}
