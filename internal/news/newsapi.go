package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// NewsAPIClient retrieves articles from the NewsAPI v2 REST API.
type NewsAPIClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewNewsAPIClient creates a client for the NewsAPI /v2 endpoints.
func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:   apiKey,
		endpoint: "https://newsapi.org/v2",
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// SetEndpoint overrides the API base URL. Used in tests.
func (c *NewsAPIClient) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
	c.limiter = rate.NewLimiter(rate.Inf, 1)
}

// Available returns true if the NewsAPI key is configured.
func (c *NewsAPIClient) Available() bool {
	return c.apiKey != ""
}

// Search retrieves articles from the /everything endpoint.
func (c *NewsAPIClient) Search(ctx context.Context, q Query) ([]Article, error) {
	params := url.Values{}
	params.Set("q", q.Q)
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	return c.get(ctx, "/everything", params)
}

// TopHeadlines retrieves articles from the /top-headlines endpoint.
func (c *NewsAPIClient) TopHeadlines(ctx context.Context, q HeadlinesQuery) ([]Article, error) {
	params := url.Values{}
	if q.Country != "" {
		params.Set("country", q.Country)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	return c.get(ctx, "/top-headlines", params)
}

func (c *NewsAPIClient) get(ctx context.Context, path string, params url.Values) ([]Article, error) {
	if !c.Available() {
		return nil, fmt.Errorf("%w: missing NewsAPI key", ErrRetrieval)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrRetrieval, err)
	}

	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrRetrieval, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrRetrieval, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRetrieval, resp.StatusCode, string(body))
	}

	var parsed newsAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrRetrieval, err)
	}
	if parsed.Status != "" && parsed.Status != "ok" {
		return nil, fmt.Errorf("%w: %s: %s", ErrRetrieval, parsed.Code, parsed.Message)
	}

	articles := make([]Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.URL == "" {
			continue
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			Source:      Source{Name: a.Source.Name},
			PublishedAt: a.PublishedAt,
		})
	}

	return articles, nil
}

// newsAPIResponse is the wire shape of NewsAPI /v2 responses.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
}
