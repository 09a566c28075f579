// Package prefs holds user personalization state: interests, source
// preferences, and reading history. The scoring pipeline receives a
// Preferences value as an immutable snapshot per call; only the
// surrounding application mutates and persists it.
package prefs

import (
	"strings"
	"time"

	"github.com/ebrowne/newslens/internal/bias"
)

// HistoryCap is the maximum reading-history length. Oldest entries are
// evicted FIFO by insertion order, not by read time.
const HistoryCap = 100

// Entry is one read article in the history.
type Entry struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	ReadAt      time.Time `json:"readAt"`
}

// Preferences is a user's personalization state.
type Preferences struct {
	Interests        []string        `json:"interests"`
	PreferredSources []string        `json:"preferredSources"`
	BlockedSources   []string        `json:"blockedSources"`
	BiasPreference   bias.Preference `json:"biasPreference"`
	Language         string          `json:"language"`
	Country          string          `json:"country"`
	ReadingHistory   []Entry         `json:"readingHistory"` // Most recent first
	LastUpdated      time.Time       `json:"lastUpdated"`
}

// Default returns the preferences for a new user.
func Default() Preferences {
	return Preferences{
		Interests:        []string{},
		PreferredSources: []string{},
		BlockedSources:   []string{},
		BiasPreference:   bias.PreferenceAll,
		Language:         "en",
		Country:          "us",
		ReadingHistory:   []Entry{},
		LastUpdated:      time.Now(),
	}
}

// AddHistory prepends an entry, deduplicating by URL and enforcing the
// cap. Returns the updated preferences; the receiver is not mutated.
func (p Preferences) AddHistory(entry Entry) Preferences {
	for _, existing := range p.ReadingHistory {
		if existing.URL == entry.URL {
			return p
		}
	}

	history := make([]Entry, 0, len(p.ReadingHistory)+1)
	history = append(history, entry)
	history = append(history, p.ReadingHistory...)
	if len(history) > HistoryCap {
		history = history[:HistoryCap]
	}

	p.ReadingHistory = history
	p.LastUpdated = time.Now()
	return p
}

// HasRead reports whether the article was already read, matching by exact
// URL or exact title.
func (p Preferences) HasRead(url, title string) bool {
	for _, entry := range p.ReadingHistory {
		if entry.URL == url || entry.Title == title {
			return true
		}
	}
	return false
}

// PersonalizedQuery builds a search query from interests and source
// preferences: quoted interests OR-joined, preferred sources as source:
// clauses, blocked sources as -source: exclusions.
func (p Preferences) PersonalizedQuery() string {
	var query string

	if len(p.Interests) > 0 {
		quoted := make([]string, len(p.Interests))
		for i, interest := range p.Interests {
			quoted[i] = `"` + interest + `"`
		}
		query = strings.Join(quoted, " OR ")
	}

	if len(p.PreferredSources) > 0 {
		clauses := make([]string, len(p.PreferredSources))
		for i, s := range p.PreferredSources {
			clauses[i] = "source:" + s
		}
		sourcesQuery := strings.Join(clauses, " OR ")
		if query != "" {
			query += " AND (" + sourcesQuery + ")"
		} else {
			query = sourcesQuery
		}
	}

	if len(p.BlockedSources) > 0 {
		clauses := make([]string, len(p.BlockedSources))
		for i, s := range p.BlockedSources {
			clauses[i] = "-source:" + s
		}
		blockedQuery := strings.Join(clauses, " ")
		if query != "" {
			query += " " + blockedQuery
		} else {
			query = blockedQuery
		}
	}

	return strings.TrimSpace(query)
}
