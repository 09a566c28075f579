package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// HFClassifier calls the Hugging Face hosted inference API.
// One instance is bound to one model; build separate instances for the
// bias, sentiment, and zero-shot models.
type HFClassifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewHFClassifier creates a classifier backed by the given model.
func NewHFClassifier(apiKey, model string) *HFClassifier {
	return &HFClassifier{
		apiKey:   apiKey,
		model:    model,
		endpoint: "https://api-inference.huggingface.co/models",
		client:   &http.Client{Timeout: 30 * time.Second}, // Hosted models can cold-start
		limiter:  rate.NewLimiter(rate.Every(750*time.Millisecond), 1),
	}
}

// SetEndpoint overrides the API base URL. Used in tests.
func (c *HFClassifier) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
	c.limiter = rate.NewLimiter(rate.Inf, 1)
}

// Name returns the classifier identifier for logging.
func (c *HFClassifier) Name() string {
	return "hf/" + c.model
}

// Available returns true if the HF API key is configured.
func (c *HFClassifier) Available() bool {
	return c.apiKey != ""
}

// Classify sends the text to the model. Candidate labels switch the call
// into zero-shot mode.
func (c *HFClassifier) Classify(ctx context.Context, text string, labels []string) ([]Prediction, error) {
	if !c.Available() {
		return nil, fmt.Errorf("hf classifier: missing API key")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqBody := hfRequest{Inputs: text}
	if len(labels) > 0 {
		reqBody.Parameters = &hfParameters{CandidateLabels: labels}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	reqURL := c.endpoint + "/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hf API error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(labels) > 0 {
		return parseZeroShot(body)
	}
	return normalize(body)
}

// parseZeroShot handles the zero-shot response shape:
// {"labels": ["a", "b"], "scores": [0.8, 0.2]}. Labels and scores are
// parallel slices ordered by descending score.
func parseZeroShot(data []byte) ([]Prediction, error) {
	var zs hfZeroShotResponse
	if err := json.Unmarshal(data, &zs); err == nil && len(zs.Labels) > 0 {
		n := len(zs.Labels)
		if len(zs.Scores) < n {
			n = len(zs.Scores)
		}
		preds := make([]Prediction, n)
		for i := 0; i < n; i++ {
			preds[i] = Prediction{Label: zs.Labels[i], Score: zs.Scores[i]}
		}
		return preds, nil
	}

	// Some zero-shot deployments return the standard prediction list.
	return normalize(data)
}

// hfRequest is the inference API request body.
type hfRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters *hfParameters `json:"parameters,omitempty"`
}

type hfParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// hfZeroShotResponse is the zero-shot pipeline's response body.
type hfZeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}
