// Package recommend orchestrates the personalization pipeline: build a
// retrieval query from the user's interests, filter candidates by source
// preferences, score and bias-annotate each survivor, and return the
// top-N by relevance.
package recommend

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ebrowne/newslens/internal/bias"
	"github.com/ebrowne/newslens/internal/logging"
	"github.com/ebrowne/newslens/internal/news"
	"github.com/ebrowne/newslens/internal/prefs"
	"github.com/ebrowne/newslens/internal/relevance"
)

// trendingFallback seeds the retrieval query when the user has no
// stated interests.
var trendingFallback = []string{"technology", "climate change", "economy", "health"}

// Recommendation is one ranked, bias-annotated article.
type Recommendation struct {
	Article news.Article
	Score   float64
	Bias    bias.Record
}

// ArticleCache persists retrieved articles best-effort. Implemented by
// store.Store.
type ArticleCache interface {
	SaveArticles([]news.Article) (int, error)
}

// Pipeline runs recommendation requests. Each call is independent and
// request-scoped; preferences are taken as an immutable snapshot.
type Pipeline struct {
	searcher  news.Searcher
	scorer    *relevance.Scorer
	estimator *bias.Estimator
	cache     ArticleCache
}

// NewPipeline creates a pipeline over the given collaborators.
func NewPipeline(searcher news.Searcher, scorer *relevance.Scorer, estimator *bias.Estimator) *Pipeline {
	return &Pipeline{
		searcher:  searcher,
		scorer:    scorer,
		estimator: estimator,
	}
}

// WithCache attaches a best-effort article cache. Cache write failures
// are logged and ignored.
func (p *Pipeline) WithCache(cache ArticleCache) *Pipeline {
	p.cache = cache
	return p
}

// Recommend returns up to limit articles ranked by relevance. Retrieval
// failure is the only error; classification failures degrade silently
// into the scores and bias records.
func (p *Pipeline) Recommend(ctx context.Context, userPrefs prefs.Preferences, limit int) ([]Recommendation, error) {
	requestID := uuid.NewString()
	log := logging.WithPrefix("recommend")

	query := buildQuery(userPrefs, limit)
	if log != nil {
		log.Debug("retrieving candidates", "request", requestID, "query", query.Q, "pageSize", query.PageSize)
	}

	candidates, err := p.searcher.Search(ctx, query)
	if err != nil {
		if log != nil {
			log.Error("retrieval failed", "request", requestID, "error", err)
		}
		return nil, err
	}

	if p.cache != nil {
		if _, err := p.cache.SaveArticles(candidates); err != nil && log != nil {
			log.Warn("article cache write failed", "request", requestID, "error", err)
		}
	}

	candidates = filterSources(candidates, userPrefs.PreferredSources, userPrefs.BlockedSources)

	recs, err := p.scoreAll(ctx, candidates, userPrefs)
	if err != nil {
		return nil, err
	}

	// Stable sort: equal scores keep retrieval order.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}

	if log != nil {
		log.Info("recommendations ready", "request", requestID, "candidates", len(candidates), "returned", len(recs))
	}
	return recs, nil
}

// scoreAll fans out per-article scoring and bias estimation. Concurrency
// is bounded by the candidate count (at most limit*2 goroutines), and
// scoring has no side effects, so cancellation is always safe.
func (p *Pipeline) scoreAll(ctx context.Context, candidates []news.Article, userPrefs prefs.Preferences) ([]Recommendation, error) {
	recs := make([]Recommendation, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, article := range candidates {
		g.Go(func() error {
			scored := p.scorer.Score(gctx, []news.Article{article}, userPrefs)
			rec := Recommendation{
				Article: article,
				Score:   scored[0].Score,
			}
			if p.estimator != nil {
				rec.Bias = p.estimator.Estimate(gctx, article)
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recs, nil
}

// buildQuery constructs the retrieval query: OR-joined quoted interests,
// falling back to trending topics, requesting limit*2 candidates to
// compensate for downstream filtering.
func buildQuery(userPrefs prefs.Preferences, limit int) news.Query {
	terms := userPrefs.Interests
	if len(terms) == 0 {
		terms = trendingFallback
	}

	q := ""
	for i, term := range terms {
		if i > 0 {
			q += " OR "
		}
		q += `"` + term + `"`
	}

	return news.Query{
		Q:        q,
		Language: userPrefs.Language,
		SortBy:   "publishedAt",
		PageSize: limit * 2,
	}
}

// filterSources drops blocked sources and, when a preferred list exists,
// keeps only preferred ones. A source on both lists is dropped: block
// takes precedence.
func filterSources(articles []news.Article, preferred, blocked []string) []news.Article {
	blockedSet := make(map[string]bool, len(blocked))
	for _, s := range blocked {
		blockedSet[s] = true
	}
	preferredSet := make(map[string]bool, len(preferred))
	for _, s := range preferred {
		preferredSet[s] = true
	}

	kept := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		name := a.Source.Name
		if blockedSet[name] {
			continue
		}
		if len(preferredSet) > 0 && !preferredSet[name] {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}
