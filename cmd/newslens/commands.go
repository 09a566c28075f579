package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebrowne/newslens/internal/bias"
	"github.com/ebrowne/newslens/internal/news"
	"github.com/ebrowne/newslens/internal/prefs"
	"github.com/ebrowne/newslens/internal/recommend"
)

var flagLimit int

func init() {
	recommendCmd.Flags().IntVar(&flagLimit, "limit", 0, "maximum number of recommendations (default from config)")
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print ranked, bias-annotated recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.prefStore.Load()
		if err != nil {
			return err
		}

		limit := flagLimit
		if limit <= 0 {
			limit = a.cfg.Recommend.Limit
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		recs, err := a.pipeline.Recommend(ctx, p, limit)
		if err != nil {
			return fmt.Errorf("couldn't load recommendations: %w", err)
		}

		if len(recs) == 0 {
			fmt.Println(metaStyle.Render("No articles matched your preferences."))
			return nil
		}

		for i, rec := range recs {
			fmt.Printf("%2d. %s %s\n", i+1, titleStyle.Render(rec.Article.Title), biasBadge(rec.Bias))
			fmt.Printf("    %s\n", metaStyle.Render(fmt.Sprintf("%s · %s · %s",
				rec.Article.Source.Name,
				rec.Article.PublishedAt.Format("Jan 2 15:04"),
				scoreStyle.Render(fmt.Sprintf("score %.2f", rec.Score)))))
			fmt.Printf("    %s\n", metaStyle.Render(rec.Article.URL))
		}
		return nil
	},
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show trending topics extracted from current headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		topics, err := recommend.TrendingTopics(ctx, a.searcher)
		if err != nil {
			return fmt.Errorf("couldn't load trending topics: %w", err)
		}

		for i, tc := range topics {
			fmt.Printf("%2d. %s %s\n", i+1, titleStyle.Render(tc.Topic), metaStyle.Render(fmt.Sprintf("(%d)", tc.Count)))
		}
		return nil
	},
}

var flagHeadlinesCategory string

func init() {
	headlinesCmd.Flags().StringVar(&flagHeadlinesCategory, "category", "", "headline category (business, technology, ...)")
}

var headlinesCmd = &cobra.Command{
	Use:   "headlines",
	Short: "Show top headlines for your country",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		provider, ok := a.searcher.(news.HeadlineProvider)
		if !ok {
			return fmt.Errorf("top headlines need a NewsAPI key; the RSS fallback doesn't support them")
		}

		p, err := a.prefStore.Load()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		articles, err := provider.TopHeadlines(ctx, news.HeadlinesQuery{
			Country:  p.Country,
			Category: flagHeadlinesCategory,
			PageSize: a.cfg.Recommend.Limit,
		})
		if err != nil {
			return fmt.Errorf("couldn't load headlines: %w", err)
		}

		for i, art := range articles {
			fmt.Printf("%2d. %s\n", i+1, titleStyle.Render(art.Title))
			fmt.Printf("    %s\n", metaStyle.Render(art.Source.Name+" · "+art.URL))
		}
		return nil
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Summarize your reading history",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.prefStore.Load()
		if err != nil {
			return err
		}

		ins := recommend.ReadingInsights(p)
		fmt.Printf("%s %d\n", titleStyle.Render("Articles read:"), ins.TotalRead)

		if len(ins.TopSources) > 0 {
			fmt.Println(titleStyle.Render("Top sources:"))
			for _, sc := range ins.TopSources {
				fmt.Printf("  %s %s\n", sc.Source, metaStyle.Render(fmt.Sprintf("(%d)", sc.Count)))
			}
		}
		if len(ins.TopTopics) > 0 {
			fmt.Println(titleStyle.Render("Top topics:"))
			for _, tc := range ins.TopTopics {
				fmt.Printf("  %s %s\n", tc.Topic, metaStyle.Render(fmt.Sprintf("(%d)", tc.Count)))
			}
		}
		return nil
	},
}

var (
	flagBiasSource string
)

func init() {
	biasCmd.Flags().StringVar(&flagBiasSource, "source", "", "publisher name for the source prior")
}

var biasCmd = &cobra.Command{
	Use:   "bias [headline text]",
	Short: "Estimate the bias of a headline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		article := news.Article{
			Title:  strings.Join(args, " "),
			Source: news.Source{Name: flagBiasSource},
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		rec := a.estimator.Estimate(ctx, article)
		fmt.Printf("%s %s\n", titleStyle.Render(article.Title), biasBadge(rec))
		fmt.Printf("  source prior %.2f · content %.2f · sentiment %s · confidence %.2f\n",
			rec.SourceBias, rec.ContentBias, rec.Sentiment, rec.Confidence)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show reading history",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.prefStore.Load()
		if err != nil {
			return err
		}

		if len(p.ReadingHistory) == 0 {
			fmt.Println(metaStyle.Render("No reading history yet. Use 'newslens history add' after reading."))
			return nil
		}
		for _, entry := range p.ReadingHistory {
			fmt.Printf("%s %s\n", titleStyle.Render(entry.Title), metaStyle.Render(entry.Source))
			fmt.Printf("  %s\n", metaStyle.Render(entry.URL))
		}
		return nil
	},
}

var (
	flagReadURL    string
	flagReadTitle  string
	flagReadSource string
)

func init() {
	historyAddCmd.Flags().StringVar(&flagReadURL, "url", "", "article URL (required)")
	historyAddCmd.Flags().StringVar(&flagReadTitle, "title", "", "article title")
	historyAddCmd.Flags().StringVar(&flagReadSource, "source", "", "publisher name")
	historyAddCmd.MarkFlagRequired("url")
	historyCmd.AddCommand(historyAddCmd)
}

var historyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a read article",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.prefStore.AppendHistory(prefs.Entry{
			URL:    flagReadURL,
			Title:  flagReadTitle,
			Source: flagReadSource,
			ReadAt: time.Now(),
		})
	},
}

var (
	flagInterests string
	flagPrefer    string
	flagBlock     string
	flagLeaning   string
)

func init() {
	prefsSetCmd.Flags().StringVar(&flagInterests, "interests", "", "comma-separated interests")
	prefsSetCmd.Flags().StringVar(&flagPrefer, "prefer", "", "comma-separated preferred sources")
	prefsSetCmd.Flags().StringVar(&flagBlock, "block", "", "comma-separated blocked sources")
	prefsSetCmd.Flags().StringVar(&flagLeaning, "leaning", "", "bias preference: all, left, center, right")
	prefsCmd.AddCommand(prefsSetCmd)
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show personalization preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.prefStore.Load()
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", titleStyle.Render("Interests:"), strings.Join(p.Interests, ", "))
		fmt.Printf("%s %s\n", titleStyle.Render("Preferred sources:"), strings.Join(p.PreferredSources, ", "))
		fmt.Printf("%s %s\n", titleStyle.Render("Blocked sources:"), strings.Join(p.BlockedSources, ", "))
		fmt.Printf("%s %s\n", titleStyle.Render("Bias preference:"), string(p.BiasPreference))
		if sources := bias.FilteredSources(p.BiasPreference, p.PreferredSources, p.BlockedSources); len(sources) > 0 {
			fmt.Printf("%s %s\n", titleStyle.Render("Matching sources:"), strings.Join(sources, ", "))
		}
		if q := p.PersonalizedQuery(); q != "" {
			fmt.Printf("%s %s\n", titleStyle.Render("Search query:"), metaStyle.Render(q))
		}
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update personalization preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.prefStore.Load()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("interests") {
			p.Interests = splitList(flagInterests)
		}
		if cmd.Flags().Changed("prefer") {
			p.PreferredSources = splitList(flagPrefer)
		}
		if cmd.Flags().Changed("block") {
			p.BlockedSources = splitList(flagBlock)
		}
		if cmd.Flags().Changed("leaning") {
			switch bias.Preference(flagLeaning) {
			case bias.PreferenceAll, bias.PreferenceLeft, bias.PreferenceCenter, bias.PreferenceRight:
				p.BiasPreference = bias.Preference(flagLeaning)
			default:
				return fmt.Errorf("invalid leaning %q: use all, left, center, or right", flagLeaning)
			}
		}

		p.LastUpdated = time.Now()
		return a.prefStore.Save(p)
	},
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
