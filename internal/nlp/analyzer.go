// Package nlp performs per-review linguistic analysis: sentiment,
// fake-probability estimation, text quality, and duplicate clustering.
// The analyzer is deterministic, all scoring is lexicon and rule based.
package nlp

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/trustlens/review-trust/internal/review"
)

// Analyzer runs the full NLP pipeline over a review batch. Safe for
// concurrent use; it holds no per-request state.
type Analyzer struct {
	cfg *Config
}

func NewAnalyzer(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Analyzer{cfg: cfg}
}

// ReviewAnalysis is the per-review output.
type ReviewAnalysis struct {
	ReviewID         string   `json:"review_id"`
	SentimentScore   float64  `json:"sentiment_score"`
	SentimentLabel   string   `json:"sentiment_label"`
	Confidence       float64  `json:"sentiment_confidence"`
	FakeProbability  float64  `json:"fake_probability"`
	Flags            []string `json:"flags"`
	Quality          float64  `json:"quality"`
	Promotional      float64  `json:"promotional"`
	Readability      float64  `json:"readability"`
	Subjectivity     float64  `json:"subjectivity"`
	LexicalDiversity float64  `json:"lexical_diversity"`
}

// SimilarityCluster groups near-duplicate reviews by id.
type SimilarityCluster struct {
	ClusterID  string   `json:"cluster_id"`
	ReviewIDs  []string `json:"review_ids"`
	Similarity float64  `json:"similarity_score"`
	SampleText string   `json:"sample_text"`
}

// Aggregates are batch-level metrics derived from the per-review values.
type Aggregates struct {
	FakeScore          float64        `json:"nlp_fake_score"`
	MeanFakeProb       float64        `json:"mean_fake_probability"`
	StdFakeProb        float64        `json:"std_fake_probability"`
	MeanSentiment      float64        `json:"mean_sentiment"`
	StdSentiment       float64        `json:"std_sentiment"`
	MeanQuality        float64        `json:"mean_quality"`
	SentimentHistogram map[string]int `json:"sentiment_distribution"`
	TopFlags           []FlagCount    `json:"top_flags"`
	HighRiskReviews    int            `json:"high_risk_reviews_count"`
	DuplicatePercent   float64        `json:"duplicate_reviews_percentage"`
}

// FlagCount is one entry of the flag leaderboard.
type FlagCount struct {
	Flag  string `json:"flag"`
	Count int    `json:"count"`
}

// Report is the full NLP output for one batch.
type Report struct {
	Reviews    []ReviewAnalysis    `json:"reviews"`
	Clusters   []SimilarityCluster `json:"similarity_clusters"`
	Aggregates Aggregates          `json:"aggregates"`
}

// Analyze runs the pipeline: per-review scoring, duplicate clustering,
// the duplicate penalty pass, then aggregate computation. Cancellation
// is checked between reviews.
func (a *Analyzer) Analyze(ctx context.Context, batch *review.Batch) (*Report, error) {
	n := len(batch.Reviews)
	results := make([]ReviewAnalysis, n)
	texts := make([]string, n)

	for i, r := range batch.Reviews {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		texts[i] = cleanText(r.Text)

		// feature extraction and spam checks run on the raw text so
		// casing and digit runs survive
		features := extractFeatures(r.Text)
		sent := a.analyzeSentiment(texts[i])
		readability := a.readabilityScore(features)
		quality := a.qualityScore(features, readability)
		promotional := a.promotionalSignal(strings.ToLower(r.Text))
		fake := a.detectFake(r.Text, r.Rating, sent, features, quality, promotional)

		results[i] = ReviewAnalysis{
			ReviewID:         r.ReviewID,
			SentimentScore:   sent.Score,
			SentimentLabel:   sent.Label,
			Confidence:       sent.Confidence,
			FakeProbability:  fake.Probability,
			Flags:            fake.Flags,
			Quality:          quality,
			Promotional:      promotional,
			Readability:      readability,
			Subjectivity:     sent.Subjectivity,
			LexicalDiversity: features.UniqueWordRatio,
		}
	}

	idxClusters := a.findDuplicateClusters(texts)
	clusters := make([]SimilarityCluster, 0, len(idxClusters))
	var clusteredCount int
	for ci, c := range idxClusters {
		ids := make([]string, 0, len(c.Indices))
		for _, idx := range c.Indices {
			ids = append(ids, batch.Reviews[idx].ReviewID)
			// duplicated content is the strongest single manipulation signal
			r := &results[idx]
			r.FakeProbability = clamp(r.FakeProbability+a.cfg.DuplicatePenalty, 0, 1)
			r.Flags = append(r.Flags, FlagDuplicateContent)
		}
		clusteredCount += len(c.Indices)
		clusters = append(clusters, SimilarityCluster{
			ClusterID:  fmt.Sprintf("cluster_%d", ci+1),
			ReviewIDs:  ids,
			Similarity: c.Similarity,
			SampleText: truncate(texts[c.Indices[0]], 120),
		})
	}

	return &Report{
		Reviews:    results,
		Clusters:   clusters,
		Aggregates: a.aggregate(results, clusteredCount, n),
	}, nil
}

func (a *Analyzer) aggregate(results []ReviewAnalysis, clusteredCount, total int) Aggregates {
	agg := Aggregates{
		SentimentHistogram: map[string]int{
			LabelPositive: 0, LabelNegative: 0, LabelNeutral: 0,
		},
	}
	if total == 0 {
		return agg
	}

	fakeProbs := make([]float64, 0, total)
	sentiments := make([]float64, 0, total)
	flagCounts := make(map[string]int)
	var qualitySum float64
	for _, r := range results {
		fakeProbs = append(fakeProbs, r.FakeProbability)
		sentiments = append(sentiments, r.SentimentScore)
		qualitySum += r.Quality
		agg.SentimentHistogram[r.SentimentLabel]++
		for _, f := range r.Flags {
			flagCounts[f]++
		}
		if r.FakeProbability > a.cfg.HighRiskThreshold {
			agg.HighRiskReviews++
		}
	}

	agg.MeanFakeProb, agg.StdFakeProb = meanStd(fakeProbs)
	agg.MeanSentiment, agg.StdSentiment = meanStd(sentiments)
	agg.MeanQuality = qualitySum / float64(total)
	agg.FakeScore = agg.MeanFakeProb * 100
	agg.DuplicatePercent = float64(clusteredCount) / float64(total) * 100
	agg.TopFlags = topFlags(flagCounts, 10)
	return agg
}

func topFlags(counts map[string]int, limit int) []FlagCount {
	out := make([]FlagCount, 0, len(counts))
	for flag, count := range counts {
		out = append(out, FlagCount{Flag: flag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Flag < out[j].Flag
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func meanStd(vals []float64) (mean, std float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	for _, v := range vals {
		std += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(std / float64(len(vals)))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary so the cut never splits a
	// multi-byte character.
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
