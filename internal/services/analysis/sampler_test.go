package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"FinBoard/internal/domain/models"
)

type stubScorer struct {
	scores map[string]models.SentimentScore
	err    error
	calls  int
}

func (s *stubScorer) ScoreSentence(_ context.Context, sentence string) (*models.SentimentScore, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if sc, ok := s.scores[sentence]; ok {
		return &sc, nil
	}
	return &models.SentimentScore{Label: models.SentimentNeutral, Score: 0.5}, nil
}

func testSampler(scorer SentenceScorer) *SentimentSampler {
	return NewSentimentSampler(scorer, SamplerConfig{
		MaxSentences:   20,
		MinSentenceLen: 20,
		MaxSentenceLen: 500,
		PacingInterval: time.Millisecond,
	}, nil)
}

func TestSampleSentencesFiltersShortFragments(t *testing.T) {
	s := testSampler(&stubScorer{})
	text := "Short one. This sentence is clearly long enough to keep. Nope! " +
		"Another sentence that comfortably clears the length bar?"

	got := s.SampleSentences(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	for _, sentence := range got {
		if len(sentence) < 20 {
			t.Fatalf("short fragment kept: %q", sentence)
		}
	}
}

func TestSampleSentencesCapsAndTruncates(t *testing.T) {
	s := NewSentimentSampler(&stubScorer{}, SamplerConfig{
		MaxSentences:   3,
		MinSentenceLen: 5,
		MaxSentenceLen: 10,
		PacingInterval: time.Millisecond,
	}, nil)

	text := strings.Repeat("aaaaaaaaaaaaaaaaaaaa. ", 10)
	got := s.SampleSentences(text)
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(got))
	}
	for _, sentence := range got {
		if len(sentence) > 10 {
			t.Fatalf("sentence not truncated: %q", sentence)
		}
	}
}

func TestAnalyzeEmptyTextYieldsNil(t *testing.T) {
	scorer := &stubScorer{}
	s := testSampler(scorer)

	agg, err := s.Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg != nil {
		t.Fatalf("expected nil aggregate, got %+v", agg)
	}
	if scorer.calls != 0 {
		t.Fatalf("no upstream calls expected, got %d", scorer.calls)
	}
}

func TestAnalyzeDropsFailedCalls(t *testing.T) {
	scorer := &stubScorer{err: errors.New("rate limited")}
	s := testSampler(scorer)

	agg, err := s.Analyze(context.Background(), "This sentence is clearly long enough to score properly.")
	if err != nil {
		t.Fatalf("per-sentence failures must not surface: %v", err)
	}
	if agg != nil {
		t.Fatalf("all calls failed, expected nil aggregate, got %+v", agg)
	}
}

func TestAggregateSamplesEmpty(t *testing.T) {
	if got := AggregateSamples(nil); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAggregateSamplesPositiveVerdict(t *testing.T) {
	samples := []models.SentimentSample{
		{Sentence: "a", Sentiment: models.SentimentPositive, Score: 0.9},
		{Sentence: "b", Sentiment: models.SentimentPositive, Score: 0.7},
		{Sentence: "c", Sentiment: models.SentimentNegative, Score: 0.2},
	}

	agg := AggregateSamples(samples)
	if agg.Overall.Sentiment != models.SentimentPositive {
		t.Fatalf("expected POSITIVE, got %s", agg.Overall.Sentiment)
	}
	if agg.Breakdown.Total != 3 || agg.Breakdown.Positive != 2 || agg.Breakdown.Negative != 1 {
		t.Fatalf("unexpected breakdown: %+v", agg.Breakdown)
	}
	if agg.Highlights.MostPositive == nil || agg.Highlights.MostPositive.Sentence != "a" {
		t.Fatalf("unexpected most positive: %+v", agg.Highlights.MostPositive)
	}
	if agg.Highlights.MostNegative == nil || agg.Highlights.MostNegative.Sentence != "c" {
		t.Fatalf("unexpected most negative: %+v", agg.Highlights.MostNegative)
	}
}

func TestAggregateSamplesNeutralBand(t *testing.T) {
	// More positives than negatives but a mean inside the neutral band
	// must stay NEUTRAL.
	samples := []models.SentimentSample{
		{Sentiment: models.SentimentPositive, Score: 0.52},
		{Sentiment: models.SentimentPositive, Score: 0.50},
		{Sentiment: models.SentimentNegative, Score: 0.48},
	}

	agg := AggregateSamples(samples)
	if agg.Overall.Sentiment != models.SentimentNeutral {
		t.Fatalf("expected NEUTRAL inside the band, got %s", agg.Overall.Sentiment)
	}
}

func TestAggregateSamplesNegativeVerdict(t *testing.T) {
	samples := []models.SentimentSample{
		{Sentiment: models.SentimentNegative, Score: 0.1},
		{Sentiment: models.SentimentNegative, Score: 0.2},
		{Sentiment: models.SentimentPositive, Score: 0.8},
	}

	agg := AggregateSamples(samples)
	if agg.Overall.Sentiment != models.SentimentNegative {
		t.Fatalf("expected NEGATIVE, got %s", agg.Overall.Sentiment)
	}
}

func TestAggregateSamplesTieIsNeutral(t *testing.T) {
	samples := []models.SentimentSample{
		{Sentiment: models.SentimentPositive, Score: 0.9},
		{Sentiment: models.SentimentNegative, Score: 0.1},
	}

	agg := AggregateSamples(samples)
	if agg.Overall.Sentiment != models.SentimentNeutral {
		t.Fatalf("label tie must be NEUTRAL, got %s", agg.Overall.Sentiment)
	}
}

func TestAggregateSamplesPercentagesRoundIndependently(t *testing.T) {
	samples := []models.SentimentSample{
		{Sentiment: models.SentimentPositive, Score: 0.9},
		{Sentiment: models.SentimentNegative, Score: 0.1},
		{Sentiment: models.SentimentNeutral, Score: 0.5},
	}

	agg := AggregateSamples(samples)
	r := agg.SentimentRatio
	if r.PositivePercent != 33 || r.NegativePercent != 33 || r.NeutralPercent != 33 {
		t.Fatalf("unexpected ratio: %+v", r)
	}
}
