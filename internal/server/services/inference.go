// Package services contains server-side business logic: user registration,
// journal persistence, embedding indexing, semantic search, and sentiment
// classification.
package services

import (
	"context"

	"github.com/hunterxdhanush/mindful-mentor/internal/server/inference"
)

// Embedder is the embedding capability of the remote inference provider.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SentimentClassifier is the sentiment capability of the remote inference
// provider.
type SentimentClassifier interface {
	ClassifySentiment(ctx context.Context, text string) (inference.Sentiment, error)
}
