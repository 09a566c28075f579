package bias

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ebrowne/newslens/internal/classify"
	"github.com/ebrowne/newslens/internal/logging"
	"github.com/ebrowne/newslens/internal/news"
)

// Category is the discrete leaning bucket displayed to readers.
type Category string

const (
	CategoryFarLeft  Category = "far-left"
	CategoryLeft     Category = "left"
	CategoryCenter   Category = "center"
	CategoryRight    Category = "right"
	CategoryFarRight Category = "far-right"
	CategoryUnknown  Category = "unknown"
)

// Fusion weights and clamp bounds. These are policy constants inherited
// from the product design, not calibrated values; tune with care.
const (
	sourceWeight  = 0.4
	contentWeight = 0.6
	minBias       = -2.0
	maxBias       = 2.0
)

// Record is the fused bias estimate for one article.
type Record struct {
	CombinedBias float64   `json:"combinedBias"` // Clamped to [-2, 2]
	Category     Category  `json:"category"`
	SourceBias   float64   `json:"sourceBias"`
	ContentBias  float64   `json:"contentBias"`
	Sentiment    Sentiment `json:"sentiment"`
	Confidence   float64   `json:"confidence"` // min of contributing confidences
}

var (
	errUnavailable       = errors.New("classifier not available")
	errEmptyDistribution = errors.New("empty classification distribution")
)

// Estimator fuses the source prior, content classification, and sentiment
// into one Record per article. Estimate never fails: classifier errors
// degrade to a neutral unknown record.
type Estimator struct {
	content   classify.Classifier
	sentiment classify.Classifier
	cache     *lru.Cache[string, Record]
}

// NewEstimator creates an estimator using the given bias and sentiment
// classifiers. Either may be nil, in which case its signal degrades to
// neutral. Records are cached by article URL.
func NewEstimator(content, sentiment classify.Classifier) *Estimator {
	cache, _ := lru.New[string, Record](512)
	return &Estimator{
		content:   content,
		sentiment: sentiment,
		cache:     cache,
	}
}

// Estimate returns the bias record for an article.
func (e *Estimator) Estimate(ctx context.Context, article news.Article) Record {
	if article.URL != "" {
		if rec, ok := e.cache.Get(article.URL); ok {
			return rec
		}
	}

	rec := e.estimate(ctx, article)

	if article.URL != "" {
		e.cache.Add(article.URL, rec)
	}
	return rec
}

func (e *Estimator) estimate(ctx context.Context, article news.Article) Record {
	source := Lookup(article.Source.Name)
	text := article.Text()

	contentValue, contentConf, err := e.classifyContent(ctx, text)
	if err != nil {
		logging.Warn("bias classification degraded", "source", article.Source.Name, "error", err)
		return Record{
			CombinedBias: 0,
			Category:     CategoryUnknown,
			SourceBias:   source.Bias,
			ContentBias:  0,
			Sentiment:    SentimentNeutral,
			Confidence:   0,
		}
	}

	sentiment := e.classifySentiment(ctx, text)

	combined := clamp(source.Bias*sourceWeight + contentValue*contentWeight)

	return Record{
		CombinedBias: combined,
		Category:     Categorize(combined),
		SourceBias:   source.Bias,
		ContentBias:  contentValue,
		Sentiment:    sentiment,
		Confidence:   min(source.Confidence, contentConf),
	}
}

func (e *Estimator) classifyContent(ctx context.Context, text string) (value, confidence float64, err error) {
	if e.content == nil || !e.content.Available() {
		return 0, 0, errUnavailable
	}

	preds, err := e.content.Classify(ctx, text, nil)
	if err != nil {
		return 0, 0, err
	}

	best, ok := classify.Best(preds)
	if !ok {
		return 0, 0, errEmptyDistribution
	}
	return contentLabelValue(best.Label), best.Score, nil
}

// classifySentiment is best-effort: a failed call reports neutral.
func (e *Estimator) classifySentiment(ctx context.Context, text string) Sentiment {
	if e.sentiment == nil || !e.sentiment.Available() {
		return SentimentNeutral
	}

	preds, err := e.sentiment.Classify(ctx, text, nil)
	if err != nil {
		logging.Warn("sentiment classification degraded", "error", err)
		return SentimentNeutral
	}

	best, ok := classify.Best(preds)
	if !ok {
		return SentimentNeutral
	}
	return sentimentBucket(best.Label)
}

// Categorize buckets a bias value. Thresholds are inclusive on the upper
// bound of each bucket, so every value in [-2, 2] maps to exactly one
// category.
func Categorize(bias float64) Category {
	switch {
	case bias <= -1.5:
		return CategoryFarLeft
	case bias <= -0.5:
		return CategoryLeft
	case bias <= 0.5:
		return CategoryCenter
	case bias <= 1.5:
		return CategoryRight
	default:
		return CategoryFarRight
	}
}

// DisplayName returns the human-readable form of a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFarLeft:
		return "Far Left"
	case CategoryLeft:
		return "Left"
	case CategoryCenter:
		return "Center"
	case CategoryRight:
		return "Right"
	case CategoryFarRight:
		return "Far Right"
	default:
		return "Unknown"
	}
}

func clamp(v float64) float64 {
	if v < minBias {
		return minBias
	}
	if v > maxBias {
		return maxBias
	}
	return v
}
