package bias

// Label mapping tables for the classifier models. These are versioned
// configuration, swapped wholesale when the model changes; the fusion
// algorithm in estimator.go never special-cases labels.

// contentLabelValues maps bias-model labels to a discrete leaning
// increment in {-1, 0, +1}. Labels absent from the table contribute 0.
// Current table matches d4data/bias-detection-model outputs.
var contentLabelValues = map[string]float64{
	"LABEL_0": 0,  // Neutral/Fair
	"LABEL_1": -1, // Leans left
	"LABEL_2": 1,  // Leans right
	"NEUTRAL": 0,
	"FAIR":    0,
	"BIASED":  0,
}

// Sentiment is the coarse emotional-tone bucket reported on a BiasRecord.
// It is informational only and never enters the combined bias value.
type Sentiment string

const (
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
)

// sentimentBuckets maps the 5-class sentiment model's label space down to
// three buckets. Current table matches tabularisai/multilingual-sentiment-analysis.
var sentimentBuckets = map[string]Sentiment{
	"Very Negative": SentimentNegative,
	"Negative":      SentimentNegative,
	"Neutral":       SentimentNeutral,
	"Positive":      SentimentPositive,
	"Very Positive": SentimentPositive,
	"LABEL_0":       SentimentNegative,
	"LABEL_1":       SentimentNegative,
	"LABEL_2":       SentimentNeutral,
	"LABEL_3":       SentimentPositive,
	"LABEL_4":       SentimentPositive,
}

// contentLabelValue resolves a bias-model label to its leaning increment.
func contentLabelValue(label string) float64 {
	return contentLabelValues[label]
}

// sentimentBucket resolves a sentiment-model label to its bucket.
// Unmapped labels report neutral.
func sentimentBucket(label string) Sentiment {
	if b, ok := sentimentBuckets[label]; ok {
		return b
	}
	return SentimentNeutral
}
