// Package classify provides text classification against hosted inference
// models. Classification is a best-effort capability: callers must treat
// every error as recoverable and degrade to a neutral contribution.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
)

// Prediction is one label's score from a classification call.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier scores text against a label set.
// Implementations should be safe for concurrent use.
type Classifier interface {
	// Name returns the classifier identifier for logging
	Name() string

	// Available returns true if the classifier is configured and ready
	Available() bool

	// Classify returns a label+score distribution for the text.
	// With a nil label set the model's own labels are used; with candidate
	// labels the call is zero-shot against exactly those labels.
	Classify(ctx context.Context, text string, labels []string) ([]Prediction, error)
}

// Best returns the highest-scoring prediction. Ties and equal scores keep
// the first occurrence so the pick is deterministic. ok is false for an
// empty distribution.
func Best(preds []Prediction) (best Prediction, ok bool) {
	if len(preds) == 0 {
		return Prediction{}, false
	}
	best = preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best, true
}

// MaxScore returns the highest score in the distribution, or 0 when empty.
func MaxScore(preds []Prediction) float64 {
	var max float64
	for _, p := range preds {
		if p.Score > max {
			max = p.Score
		}
	}
	return max
}

// normalize flattens the two response shapes inference APIs return:
// a flat list of predictions, or a batch list nested one level deep.
// Zero-shot endpoints instead return {labels: [...], scores: [...]};
// that shape is handled separately by the HF backend.
func normalize(data []byte) ([]Prediction, error) {
	var flat []Prediction
	if err := json.Unmarshal(data, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return flat, nil
	}

	var nested [][]Prediction
	if err := json.Unmarshal(data, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}

	var single Prediction
	if err := json.Unmarshal(data, &single); err == nil && single.Label != "" {
		return []Prediction{single}, nil
	}

	return nil, fmt.Errorf("unrecognized classification response shape")
}
