// Package news provides article retrieval from external news providers.
// Retrieval is the only operation whose failure crosses the engine boundary;
// callers should check for ErrRetrieval and surface a "couldn't load" state.
package news

import (
	"context"
	"errors"
	"time"
)

// ErrRetrieval wraps any query or network failure from an article provider.
var ErrRetrieval = errors.New("article retrieval failed")

// Source identifies the publisher of an article
type Source struct {
	Name string `json:"name"`
}

// Article is a single news item as returned by a provider.
// Immutable once fetched; identity is the URL.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"urlToImage,omitempty"`
	Source      Source    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Text returns the analysis text for classification: title plus description.
func (a Article) Text() string {
	if a.Description == "" {
		return a.Title
	}
	return a.Title + " " + a.Description
}

// Query describes an article search request
type Query struct {
	Q        string
	Language string
	SortBy   string
	PageSize int
}

// HeadlinesQuery describes a top-headlines request
type HeadlinesQuery struct {
	Country  string
	Category string
	PageSize int
}

// Searcher retrieves articles matching a query.
// Implementations must return errors wrapping ErrRetrieval so the
// pipeline can distinguish retrieval failures from everything else.
type Searcher interface {
	// Search retrieves articles matching the query, newest first
	Search(ctx context.Context, q Query) ([]Article, error)
}

// HeadlineProvider retrieves top headlines for a country/category.
type HeadlineProvider interface {
	TopHeadlines(ctx context.Context, q HeadlinesQuery) ([]Article, error)
}
