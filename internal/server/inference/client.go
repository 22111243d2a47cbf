// Package inference wraps the Hugging Face Inference API behind two
// capabilities: text embedding and sentiment classification. The client is
// a thin synchronous wrapper; it does not retry or cache, and every failure
// is reported as a *common.ProviderError the caller can inspect.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
)

// DefaultBaseURL is the public Hugging Face model inference endpoint.
const DefaultBaseURL = "https://api-inference.huggingface.co/models"

// Sentiment is the normalized result of a sentiment classification:
// a lowercase label and an optional confidence in [0,1]. Confidence is nil
// when the provider returned no usable score.
type Sentiment struct {
	Label      string
	Confidence *float64
}

// Config carries the settings needed to construct a Client.
type Config struct {
	BaseURL        string
	APIKey         string
	EmbeddingModel string
	SentimentModel string
	Timeout        time.Duration
}

// Client calls a remote text-inference endpoint with a bearer credential.
// Both capabilities are parameterized by independently configurable model
// identifiers.
type Client struct {
	baseURL        string
	apiKey         string
	embeddingModel string
	sentimentModel string
	httpClient     *http.Client
}

// NewClient constructs a Client, applying defaults for unset fields.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         cfg.APIKey,
		embeddingModel: cfg.EmbeddingModel,
		sentimentModel: cfg.SentimentModel,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Embed converts text into a single fixed-length vector. If the model
// returns per-token vectors, they are average-pooled into one vector.
// Any other response shape is a provider error, never a zero vector.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", common.ErrorValidation)
	}

	body, err := c.post(ctx, c.embeddingModel, inferenceRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	// sentence-transformers models return a flat vector
	var flat []float64
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return toFloat32(flat), nil
	}

	// token-level models return one vector per token
	var tokens [][]float64
	if err := json.Unmarshal(body, &tokens); err == nil && len(tokens) > 0 {
		pooled, err := averagePool(tokens)
		if err != nil {
			return nil, &common.ProviderError{Model: c.embeddingModel, Message: err.Error()}
		}
		return pooled, nil
	}

	return nil, &common.ProviderError{Model: c.embeddingModel, Message: "unexpected embeddings output shape"}
}

type sentimentCandidate struct {
	Label string   `json:"label"`
	Score *float64 `json:"score"`
}

// ClassifySentiment returns the top sentiment candidate with a lowercase
// label. A response with no well-formed candidate normalizes to "neutral"
// with no confidence; sentiment is advisory, so that is not an error.
func (c *Client) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return Sentiment{}, fmt.Errorf("%w: text is required", common.ErrorValidation)
	}

	body, err := c.post(ctx, c.sentimentModel, inferenceRequest{Inputs: text})
	if err != nil {
		return Sentiment{}, err
	}

	first := firstCandidate(body)
	if first == nil || first.Label == "" {
		return Sentiment{Label: "neutral"}, nil
	}
	return Sentiment{Label: strings.ToLower(first.Label), Confidence: first.Score}, nil
}

// firstCandidate extracts the first candidate of the first batch element.
// The endpoint returns either a flat candidate list or a list-of-lists with
// one batch element.
func firstCandidate(body []byte) *sentimentCandidate {
	var nested [][]sentimentCandidate
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil
		}
		return &nested[0][0]
	}

	var flat []sentimentCandidate
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return &flat[0]
	}

	return nil
}

func (c *Client) post(ctx context.Context, model string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &common.ProviderError{Model: model, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.ProviderError{Model: model, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &common.ProviderError{Model: model, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// averagePool computes the element-wise mean across a sequence of
// equal-length vectors. Empty input and ragged rows are errors.
func averagePool(tokens [][]float64) ([]float32, error) {
	if len(tokens) == 0 || len(tokens[0]) == 0 {
		return nil, fmt.Errorf("empty token sequence")
	}

	dim := len(tokens[0])
	sum := make([]float64, dim)
	for _, vec := range tokens {
		if len(vec) != dim {
			return nil, fmt.Errorf("ragged token vectors: got %d, want %d", len(vec), dim)
		}
		for i, v := range vec {
			sum[i] += v
		}
	}

	out := make([]float32, dim)
	n := float64(len(tokens))
	for i, v := range sum {
		out[i] = float32(v / n)
	}
	return out, nil
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
