package analysis

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"FinBoard/internal/domain/models"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/util"

	"golang.org/x/time/rate"
)

// Conservative aggregate thresholds. Ties and near-ties default to NEUTRAL;
// the band between the two means is intentional and must not be re-derived.
const (
	positiveMeanThreshold = 0.55
	negativeMeanThreshold = 0.45
)

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// SentenceScorer scores one sentence against the sentiment endpoint.
type SentenceScorer interface {
	ScoreSentence(ctx context.Context, sentence string) (*models.SentimentScore, error)
}

// SamplerConfig bounds the sample and paces upstream calls.
type SamplerConfig struct {
	MaxSentences   int
	MinSentenceLen int
	MaxSentenceLen int
	PacingInterval time.Duration
}

// SentimentSampler splits text into sentences and scores a bounded sample
// of them sequentially. Calls are paced by a rate limiter to respect the
// provider's limits; parallel fan-out here would defeat that, so the loop
// stays strictly sequential.
type SentimentSampler struct {
	scorer  SentenceScorer
	cfg     SamplerConfig
	limiter *rate.Limiter
	logger  *xlogger.Logger
}

// NewSentimentSampler creates a sampler.
func NewSentimentSampler(scorer SentenceScorer, cfg SamplerConfig, logger *xlogger.Logger) *SentimentSampler {
	if cfg.MaxSentences <= 0 {
		cfg.MaxSentences = 20
	}
	if cfg.MinSentenceLen <= 0 {
		cfg.MinSentenceLen = 20
	}
	if cfg.MaxSentenceLen <= 0 {
		cfg.MaxSentenceLen = 500
	}
	if cfg.PacingInterval <= 0 {
		cfg.PacingInterval = 150 * time.Millisecond
	}
	return &SentimentSampler{
		scorer:  scorer,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.PacingInterval), 1),
		logger:  logger,
	}
}

// Analyze scores a sample of sentences from text and aggregates them.
// A nil aggregate with nil error means "sentiment unknown": either the text
// produced no qualifying sentences or every per-sentence call failed.
func (s *SentimentSampler) Analyze(ctx context.Context, text string) (*models.SentimentAggregate, error) {
	sentences := s.SampleSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	samples := make([]models.SentimentSample, 0, len(sentences))
	for _, sentence := range sentences {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		score, err := s.scorer.ScoreSentence(ctx, sentence)
		if err != nil {
			// a failed call is dropped from the sample, not fatal
			if s.logger != nil {
				s.logger.Debug("sentence score failed", xlogger.Error(err))
			}
			continue
		}
		samples = append(samples, models.SentimentSample{
			Sentence:  sentence,
			Sentiment: score.Label,
			Score:     score.Score,
		})
	}

	return AggregateSamples(samples), nil
}

// SampleSentences splits text on sentence-terminal punctuation, drops short
// fragments, caps the sample, and truncates long sentences before
// submission.
func (s *SentimentSampler) SampleSentences(text string) []string {
	var out []string
	for _, frag := range sentenceBoundary.Split(text, -1) {
		frag = strings.TrimSpace(frag)
		if len(frag) < s.cfg.MinSentenceLen {
			continue
		}
		out = append(out, util.Truncate(frag, s.cfg.MaxSentenceLen))
		if len(out) >= s.cfg.MaxSentences {
			break
		}
	}
	return out
}

// AggregateSamples derives the overall verdict, per-label breakdown,
// highlights, and independently rounded percentages from an ordered sample
// set. Returns nil for an empty set.
func AggregateSamples(samples []models.SentimentSample) *models.SentimentAggregate {
	if len(samples) == 0 {
		return nil
	}

	var sum float64
	var breakdown models.SentimentBreakdown
	var mostPositive, mostNegative *models.SentimentSample

	for i := range samples {
		sm := &samples[i]
		sum += sm.Score
		switch sm.Sentiment {
		case models.SentimentPositive:
			breakdown.Positive++
			if mostPositive == nil || sm.Score > mostPositive.Score {
				mostPositive = sm
			}
		case models.SentimentNegative:
			breakdown.Negative++
			if mostNegative == nil || sm.Score < mostNegative.Score {
				mostNegative = sm
			}
		default:
			breakdown.Neutral++
		}
	}
	breakdown.Total = len(samples)

	mean := sum / float64(len(samples))
	overall := models.SentimentNeutral
	switch {
	case breakdown.Positive > breakdown.Negative && mean > positiveMeanThreshold:
		overall = models.SentimentPositive
	case breakdown.Negative > breakdown.Positive && mean < negativeMeanThreshold:
		overall = models.SentimentNegative
	}

	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(breakdown.Total) * 100))
	}

	return &models.SentimentAggregate{
		Overall: models.SentimentOverall{
			Sentiment: overall,
			Score:     mean,
		},
		Breakdown: breakdown,
		Highlights: models.SentimentHighlights{
			MostPositive: mostPositive,
			MostNegative: mostNegative,
		},
		SentimentRatio: models.SentimentRatio{
			PositivePercent: pct(breakdown.Positive),
			NegativePercent: pct(breakdown.Negative),
			NeutralPercent:  pct(breakdown.Neutral),
		},
	}
}
