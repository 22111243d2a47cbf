package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/inference"
)

// SentimentService classifies the emotional tone of arbitrary text.
// Stateless; nothing is persisted.
type SentimentService struct {
	classifier SentimentClassifier
	logger     logging.Logger
}

// NewSentimentService constructs a SentimentService.
func NewSentimentService(classifier SentimentClassifier, logger logging.Logger) *SentimentService {
	return &SentimentService{
		classifier: classifier,
		logger:     logger.With("module", "sentiment"),
	}
}

// Classify returns the normalized sentiment of the given text.
func (s *SentimentService) Classify(ctx context.Context, text string) (inference.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return inference.Sentiment{}, fmt.Errorf("%w: text is required", common.ErrorValidation)
	}
	return s.classifier.ClassifySentiment(ctx, text)
}
