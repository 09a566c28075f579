package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ebrowne/newslens/internal/bias"
	"github.com/ebrowne/newslens/internal/classify"
	"github.com/ebrowne/newslens/internal/config"
	"github.com/ebrowne/newslens/internal/logging"
	"github.com/ebrowne/newslens/internal/news"
	"github.com/ebrowne/newslens/internal/prefs"
	"github.com/ebrowne/newslens/internal/recommend"
	"github.com/ebrowne/newslens/internal/relevance"
	"github.com/ebrowne/newslens/internal/store"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "newslens",
	Short: "Bias-aware personalized news recommendations",
	Long: `newslens retrieves news articles matching your interests, ranks them by
relevance, and annotates each with an estimated political bias fused from
the publisher's leaning and the article's own content.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(headlinesCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(biasCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newslens %s\n", version)
	},
}

// app bundles the wired collaborators for a single command invocation.
type app struct {
	cfg       *config.Config
	prefStore *prefs.Store
	searcher  news.Searcher
	estimator *bias.Estimator
	pipeline  *recommend.Pipeline
	cache     *store.Store
}

// newApp wires the engine from config. Missing API keys degrade rather
// than fail: without a NewsAPI key retrieval falls back to RSS feeds,
// and without an HF key every classification call degrades to neutral.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var searcher news.Searcher
	if cfg.NewsAPI.APIKey != "" {
		client := news.NewNewsAPIClient(cfg.NewsAPI.APIKey)
		if cfg.NewsAPI.Endpoint != "" {
			client.SetEndpoint(cfg.NewsAPI.Endpoint)
		}
		searcher = client
	} else {
		logging.Warn("no NewsAPI key configured, falling back to RSS feeds")
		searcher = news.NewRSSSearcher(news.DefaultFeeds())
	}

	var content, sentiment, topics classify.Classifier
	if cfg.HF.APIKey != "" {
		content = newHFClassifier(cfg, cfg.HF.BiasModel)
		sentiment = newHFClassifier(cfg, cfg.HF.SentimentModel)
		topics = newHFClassifier(cfg, cfg.HF.ZeroShotModel)
	} else {
		logging.Warn("no Hugging Face key configured, bias and topic signals degrade to neutral")
	}

	estimator := bias.NewEstimator(content, sentiment)
	pipeline := recommend.NewPipeline(searcher, relevance.NewScorer(topics), estimator)

	cache, err := store.Open(filepath.Join(config.DataDir(), "cache.db"))
	if err != nil {
		logging.Warn("article cache unavailable", "error", err)
	} else {
		pipeline.WithCache(cache)
	}

	return &app{
		cfg:       cfg,
		prefStore: prefs.NewStore(prefs.DefaultPath()),
		searcher:  searcher,
		estimator: estimator,
		pipeline:  pipeline,
		cache:     cache,
	}, nil
}

func newHFClassifier(cfg *config.Config, model string) classify.Classifier {
	c := classify.NewHFClassifier(cfg.HF.APIKey, model)
	if cfg.HF.Endpoint != "" {
		c.SetEndpoint(cfg.HF.Endpoint)
	}
	return c
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
}
