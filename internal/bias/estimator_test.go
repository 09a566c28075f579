package bias

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ebrowne/newslens/internal/classify"
	"github.com/ebrowne/newslens/internal/news"
)

// fakeClassifier returns canned predictions or a fixed error.
type fakeClassifier struct {
	preds []classify.Prediction
	err   error
	calls int
}

func (f *fakeClassifier) Name() string    { return "fake" }
func (f *fakeClassifier) Available() bool { return true }

func (f *fakeClassifier) Classify(ctx context.Context, text string, labels []string) ([]classify.Prediction, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.preds, nil
}

func testArticle(source string) news.Article {
	return news.Article{
		Title:       "Senate passes sweeping budget bill",
		Description: "The vote followed weeks of negotiation.",
		URL:         "https://example.com/budget-bill",
		Source:      news.Source{Name: source},
		PublishedAt: time.Now(),
	}
}

func TestLookupKnownSource(t *testing.T) {
	entry := Lookup("Fox News")
	if entry.Bias != 1.6 || entry.Confidence != 0.9 {
		t.Errorf("Lookup(Fox News) = %+v", entry)
	}
}

func TestLookupUnknownSource(t *testing.T) {
	entry := Lookup("The Daily Nowhere")
	if entry.Bias != 0.0 || entry.Confidence != 0.5 {
		t.Errorf("unknown source should be (0, 0.5), got %+v", entry)
	}
}

func TestEstimateFusesSourceAndContent(t *testing.T) {
	// Content leans right (+1), source is Fox News (+1.6).
	content := &fakeClassifier{preds: []classify.Prediction{
		{Label: "LABEL_2", Score: 0.9},
		{Label: "LABEL_0", Score: 0.1},
	}}
	sentiment := &fakeClassifier{preds: []classify.Prediction{
		{Label: "Negative", Score: 0.8},
	}}

	e := NewEstimator(content, sentiment)
	rec := e.Estimate(context.Background(), testArticle("Fox News"))

	// 1.6*0.4 + 1*0.6 = 1.24
	want := 1.24
	if rec.CombinedBias < want-1e-9 || rec.CombinedBias > want+1e-9 {
		t.Errorf("CombinedBias = %f, want %f", rec.CombinedBias, want)
	}
	if rec.Category != CategoryRight {
		t.Errorf("Category = %q, want right", rec.Category)
	}
	if rec.Sentiment != SentimentNegative {
		t.Errorf("Sentiment = %q, want negative", rec.Sentiment)
	}
	// min(0.9 source, 0.9 content) = 0.9
	if rec.Confidence != 0.9 {
		t.Errorf("Confidence = %f, want 0.9", rec.Confidence)
	}
}

func TestEstimateConfidenceIsMinimum(t *testing.T) {
	// Source NPR has confidence 0.7; the classifier reports 0.95.
	content := &fakeClassifier{preds: []classify.Prediction{
		{Label: "LABEL_0", Score: 0.95},
	}}

	e := NewEstimator(content, nil)
	rec := e.Estimate(context.Background(), testArticle("NPR"))

	if rec.Confidence != 0.7 {
		t.Errorf("Confidence = %f, want min(0.7, 0.95) = 0.7", rec.Confidence)
	}
}

func TestEstimateClampsCombinedBias(t *testing.T) {
	// Breitbart prior is 2.0 and content says right, so the raw fusion
	// stays inside [-2, 2]; verify the clamp with every label value.
	for label, value := range contentLabelValues {
		content := &fakeClassifier{preds: []classify.Prediction{
			{Label: label, Score: 1.0},
		}}
		e := NewEstimator(content, nil)
		rec := e.Estimate(context.Background(), news.Article{
			Title:  "headline",
			URL:    "https://example.com/" + label,
			Source: news.Source{Name: "Breitbart"},
		})
		if rec.CombinedBias < -2 || rec.CombinedBias > 2 {
			t.Errorf("label %q (value %f): CombinedBias %f outside [-2, 2]", label, value, rec.CombinedBias)
		}
	}
}

func TestEstimateDegradesOnClassifierError(t *testing.T) {
	content := &fakeClassifier{err: errors.New("model loading")}

	e := NewEstimator(content, nil)
	rec := e.Estimate(context.Background(), testArticle("CNN"))

	if rec.CombinedBias != 0 {
		t.Errorf("degraded CombinedBias = %f, want 0", rec.CombinedBias)
	}
	if rec.Category != CategoryUnknown {
		t.Errorf("degraded Category = %q, want unknown", rec.Category)
	}
	if rec.Confidence != 0 {
		t.Errorf("degraded Confidence = %f, want 0", rec.Confidence)
	}
	if rec.Sentiment != SentimentNeutral {
		t.Errorf("degraded Sentiment = %q, want neutral", rec.Sentiment)
	}
}

func TestEstimateNilClassifierDegrades(t *testing.T) {
	e := NewEstimator(nil, nil)
	rec := e.Estimate(context.Background(), testArticle("Reuters"))

	if rec.Category != CategoryUnknown || rec.Confidence != 0 {
		t.Errorf("nil classifier should degrade, got %+v", rec)
	}
}

func TestEstimateCachesByURL(t *testing.T) {
	content := &fakeClassifier{preds: []classify.Prediction{
		{Label: "LABEL_0", Score: 0.9},
	}}

	e := NewEstimator(content, nil)
	article := testArticle("Reuters")

	first := e.Estimate(context.Background(), article)
	second := e.Estimate(context.Background(), article)

	if content.calls != 1 {
		t.Errorf("classifier called %d times, want 1 (cached)", content.calls)
	}
	if first != second {
		t.Errorf("cached record differs: %+v vs %+v", first, second)
	}
}

func TestCategorizeThresholds(t *testing.T) {
	tests := []struct {
		bias float64
		want Category
	}{
		{-2.0, CategoryFarLeft},
		{-1.5, CategoryFarLeft},
		{-1.49, CategoryLeft},
		{-0.5, CategoryLeft},
		{-0.49, CategoryCenter},
		{0.0, CategoryCenter},
		{0.5, CategoryCenter},
		{0.51, CategoryRight},
		{1.5, CategoryRight},
		{1.51, CategoryFarRight},
		{2.0, CategoryFarRight},
	}

	for _, tt := range tests {
		if got := Categorize(tt.bias); got != tt.want {
			t.Errorf("Categorize(%f) = %q, want %q", tt.bias, got, tt.want)
		}
	}
}

// Every value across the range maps to exactly one category and adjacent
// buckets never overlap.
func TestCategorizeExhaustive(t *testing.T) {
	for v := -2.0; v <= 2.0; v += 0.01 {
		c := Categorize(v)
		if c == CategoryUnknown || c == "" {
			t.Fatalf("Categorize(%f) produced no bucket", v)
		}
	}
}

func TestSentimentBucketUnmappedLabel(t *testing.T) {
	if got := sentimentBucket("SOMETHING_NEW"); got != SentimentNeutral {
		t.Errorf("unmapped label bucket = %q, want neutral", got)
	}
}

func TestFilteredSourcesBlockWins(t *testing.T) {
	sources := FilteredSources(PreferenceCenter, []string{"Fox News"}, []string{"Fox News", "Reuters"})

	for _, s := range sources {
		if s == "Fox News" || s == "Reuters" {
			t.Errorf("blocked source %q present in %v", s, sources)
		}
	}
}

func TestFilteredSourcesAllPreference(t *testing.T) {
	sources := FilteredSources(PreferenceAll, []string{"NPR"}, nil)
	if len(sources) != 1 || sources[0] != "NPR" {
		t.Errorf("PreferenceAll should return only preferred, got %v", sources)
	}
}
