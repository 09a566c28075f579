// Package relevance scores candidate articles for a user. Scoring never
// filters and never reorders: the output has the same articles in the
// same positions as the input, each annotated with a score.
package relevance

import (
	"context"
	"strings"
	"time"

	"github.com/ebrowne/newslens/internal/classify"
	"github.com/ebrowne/newslens/internal/logging"
	"github.com/ebrowne/newslens/internal/news"
	"github.com/ebrowne/newslens/internal/prefs"
)

// Term weights. These are product policy carried over from the original
// design, not calibrated values; treat them as tunables.
const (
	recencyWindowHours = 24.0
	recencyPerHour     = 0.1
	interestWeight     = 2.0
	historyPenalty     = -5.0
	preferredBonus     = 1.0
	topicWeight        = 0.5
)

// Breakdown shows how each term contributed to an article's score.
type Breakdown struct {
	Recency  float64
	Interest float64
	History  float64
	Source   float64
	Topic    float64
	Final    float64
}

// Scored is an article with its relevance score.
type Scored struct {
	Article   news.Article
	Score     float64
	Breakdown Breakdown
}

// Scorer computes relevance scores. The topic classifier is optional;
// when nil or unavailable the topic term is 0 for every article.
type Scorer struct {
	topics classify.Classifier
	now    func() time.Time
}

// NewScorer creates a scorer. topics may be nil.
func NewScorer(topics classify.Classifier) *Scorer {
	return &Scorer{
		topics: topics,
		now:    time.Now,
	}
}

// Score computes scores for all candidates against the preferences
// snapshot. The result has the same length and article order as the
// input. All terms are independent and additive; no term looks at
// another article's score.
func (s *Scorer) Score(ctx context.Context, articles []news.Article, p prefs.Preferences) []Scored {
	now := s.now()
	scored := make([]Scored, len(articles))
	for i, article := range articles {
		scored[i] = s.scoreOne(ctx, article, p, now)
	}
	return scored
}

func (s *Scorer) scoreOne(ctx context.Context, article news.Article, p prefs.Preferences, now time.Time) Scored {
	b := Breakdown{
		Recency:  recencyTerm(article.PublishedAt, now),
		Interest: interestTerm(article, p.Interests),
		Source:   sourceTerm(article, p.PreferredSources),
		Topic:    s.topicTerm(ctx, article, p.Interests),
	}
	if p.HasRead(article.URL, article.Title) {
		b.History = historyPenalty
	}

	b.Final = b.Recency + b.Interest + b.History + b.Source + b.Topic
	return Scored{Article: article, Score: b.Final, Breakdown: b}
}

// recencyTerm decays linearly over 24 hours and never goes negative.
func recencyTerm(published, now time.Time) float64 {
	hours := now.Sub(published).Hours()
	if hours < 0 {
		hours = 0 // Future-dated articles treated as brand new
	}
	remaining := recencyWindowHours - hours
	if remaining < 0 {
		return 0
	}
	return remaining * recencyPerHour
}

// interestTerm counts distinct interests appearing as substrings of the
// lowercased article text.
func interestTerm(article news.Article, interests []string) float64 {
	if len(interests) == 0 {
		return 0
	}
	text := strings.ToLower(article.Text())
	matches := 0
	for _, interest := range interests {
		if strings.Contains(text, strings.ToLower(interest)) {
			matches++
		}
	}
	return float64(matches) * interestWeight
}

func sourceTerm(article news.Article, preferred []string) float64 {
	for _, name := range preferred {
		if article.Source.Name == name {
			return preferredBonus
		}
	}
	return 0
}

// topicTerm is best-effort zero-shot relevance against the interest set.
// Any failure contributes 0 and never fails the scoring pass.
func (s *Scorer) topicTerm(ctx context.Context, article news.Article, interests []string) float64 {
	if s.topics == nil || !s.topics.Available() || len(interests) == 0 {
		return 0
	}

	text := article.Text()
	if len(text) > 500 {
		text = text[:500]
	}

	preds, err := s.topics.Classify(ctx, text, interests)
	if err != nil {
		logging.Warn("topic relevance degraded", "url", article.URL, "error", err)
		return 0
	}
	return classify.MaxScore(preds) * topicWeight
}
