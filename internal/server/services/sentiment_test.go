package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/inference"
)

func TestClassify_PassThrough(t *testing.T) {
	conf := 0.87
	c := &fakeClassifier{out: inference.Sentiment{Label: "negative", Confidence: &conf}}
	s := NewSentimentService(c, newTestLogger())

	got, err := s.Classify(context.Background(), "a rough day")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if got.Label != "negative" || got.Confidence == nil || *got.Confidence != 0.87 {
		t.Fatalf("unexpected sentiment: %+v", got)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	c := &fakeClassifier{out: inference.Sentiment{Label: "neutral"}}
	s := NewSentimentService(c, newTestLogger())

	_, err := s.Classify(context.Background(), "  \n ")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected ErrorValidation, got %v", err)
	}
	if c.calls != 0 {
		t.Fatalf("classifier must not be called for empty input")
	}
}

func TestClassify_ProviderErrorSurfaces(t *testing.T) {
	provErr := &common.ProviderError{Model: "m", StatusCode: 500, Body: "boom"}
	s := NewSentimentService(&fakeClassifier{err: provErr}, newTestLogger())

	_, err := s.Classify(context.Background(), "text")
	var got *common.ProviderError
	if !errors.As(err, &got) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}
