package recommend

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/ebrowne/newslens/internal/news"
	"github.com/ebrowne/newslens/internal/prefs"
)

// minTokenLength filters out short filler words during title tokenization.
const minTokenLength = 5

// TopicCount is a title token and how often it appeared.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// SourceCount is a publisher and how many history entries it has.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// Insights summarizes a user's reading history.
type Insights struct {
	TotalRead  int           `json:"totalRead"`
	TopSources []SourceCount `json:"topSources"`
	TopTopics  []TopicCount  `json:"topTopics"`
}

// TrendingTopics retrieves a broad batch of current articles and returns
// the top 10 title tokens by frequency.
func TrendingTopics(ctx context.Context, searcher news.Searcher) ([]TopicCount, error) {
	articles, err := searcher.Search(ctx, news.Query{
		Q:        "trending OR breaking OR latest",
		Language: "en",
		SortBy:   "publishedAt",
		PageSize: 50,
	})
	if err != nil {
		return nil, err
	}

	counts := newTokenCounter()
	for _, a := range articles {
		counts.addAll(tokenizeTitle(a.Title))
	}
	return counts.top(10), nil
}

// ReadingInsights computes history statistics. An empty history returns
// an empty insights record, never an error.
func ReadingInsights(p prefs.Preferences) Insights {
	if len(p.ReadingHistory) == 0 {
		return Insights{TopSources: []SourceCount{}, TopTopics: []TopicCount{}}
	}

	sources := newTokenCounter()
	topics := newTokenCounter()
	for _, entry := range p.ReadingHistory {
		if entry.Source != "" {
			sources.add(entry.Source)
		}
		topics.addAll(tokenizeTitle(entry.Title))
	}

	topSources := make([]SourceCount, 0, 5)
	for _, tc := range sources.top(5) {
		topSources = append(topSources, SourceCount{Source: tc.Topic, Count: tc.Count})
	}

	return Insights{
		TotalRead:  len(p.ReadingHistory),
		TopSources: topSources,
		TopTopics:  topics.top(10),
	}
}

// tokenizeTitle lowercases, strips punctuation, splits on whitespace,
// and drops tokens shorter than minTokenLength.
func tokenizeTitle(title string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, title)

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) >= minTokenLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// tokenCounter counts tokens while remembering first-seen order, so that
// frequency ties resolve deterministically.
type tokenCounter struct {
	counts map[string]int
	order  []string
}

func newTokenCounter() *tokenCounter {
	return &tokenCounter{counts: make(map[string]int)}
}

func (c *tokenCounter) add(token string) {
	if _, seen := c.counts[token]; !seen {
		c.order = append(c.order, token)
	}
	c.counts[token]++
}

func (c *tokenCounter) addAll(tokens []string) {
	for _, t := range tokens {
		c.add(t)
	}
}

// top returns the n most frequent tokens, ties broken by first-seen order.
func (c *tokenCounter) top(n int) []TopicCount {
	result := make([]TopicCount, 0, len(c.order))
	for _, token := range c.order {
		result = append(result, TopicCount{Topic: token, Count: c.counts[token]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}
