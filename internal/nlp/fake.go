package nlp

import (
	"regexp"
	"strings"
)

// FakeResult is the fake-probability estimate for a single review.
type FakeResult struct {
	Probability float64  `json:"fake_probability"`
	Flags       []string `json:"flags"`
}

// Red-flag identifiers attached to suspicious reviews.
const (
	FlagPromotional      = "promotional_language"
	FlagGenericTemplate  = "generic_template"
	FlagLowQuality       = "low_quality_text"
	FlagSentimentGap     = "rating_sentiment_mismatch"
	FlagSuspiciousText   = "suspicious_text_features"
	FlagSpamPattern      = "spam_pattern"
	FlagDuplicateContent = "duplicate_content"
)

var spamRegexps = compileSpamPatterns(DefaultConfig().SpamPatterns)

func compileSpamPatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// detectFake blends six weighted signals into a fake probability and
// collects the red flags that fired. The promotional signal is computed
// by the caller since it is also reported per review. Duplicate-content
// penalties are applied separately after clustering.
func (a *Analyzer) detectFake(text string, rating float64, sent Sentiment, features textFeatures, quality, promotional float64) FakeResult {
	lower := strings.ToLower(text)
	var flags []string

	if promotional > 0.3 {
		flags = append(flags, FlagPromotional)
	}

	generic := a.genericSignal(lower, features)
	if generic > 0.5 {
		flags = append(flags, FlagGenericTemplate)
	}

	if quality < 0.4 {
		flags = append(flags, FlagLowQuality)
	}

	mismatch, flagrant := a.mismatchSignal(rating, sent.Score)
	if mismatch > 0 {
		flags = append(flags, FlagSentimentGap)
	}

	textSignal := a.textFeatureSignal(features)
	if textSignal > 0.5 {
		flags = append(flags, FlagSuspiciousText)
	}

	spam := spamSignal(lower)
	if spam > 0 {
		flags = append(flags, FlagSpamPattern)
	}

	p := a.cfg.PromotionalWeight*promotional +
		a.cfg.GenericWeight*generic +
		a.cfg.QualityWeight*quality +
		a.cfg.MismatchWeight*mismatch +
		a.cfg.TextFeatureWeight*textSignal +
		a.cfg.SpamWeight*spam

	if flagrant {
		p += a.cfg.FlagrantMismatchPenalty
	}

	return FakeResult{Probability: clamp(p, 0, 1), Flags: flags}
}

// promotionalSignal counts promotional phrase hits, saturating at three.
func (a *Analyzer) promotionalSignal(lower string) float64 {
	var hits int
	for _, phrase := range a.cfg.PromotionalPhrases {
		if strings.Contains(lower, phrase) {
			hits++
		}
	}
	if hits >= 3 {
		return 1.0
	}
	return float64(hits) / 3.0
}

// genericSignal fires for template phrases, boosted when the whole
// review is barely longer than the template itself.
func (a *Analyzer) genericSignal(lower string, f textFeatures) float64 {
	var matched bool
	for _, tmpl := range a.cfg.GenericTemplates {
		if strings.Contains(lower, tmpl) {
			matched = true
			break
		}
	}
	if !matched {
		return 0
	}
	if f.WordCount < a.cfg.ShortReviewWords {
		return 1.0
	}
	return 0.5
}

// mismatchSignal compares the sentiment expected from the star rating
// against the observed sentiment score. The flagrant return marks gaps
// large enough to warrant the additional penalty.
func (a *Analyzer) mismatchSignal(rating, sentiment float64) (signal float64, flagrant bool) {
	var expected float64
	switch {
	case rating >= 4:
		expected = 0.5
	case rating <= 2:
		expected = -0.5
	}
	gap := abs(expected - sentiment)
	switch {
	case gap > 1.0:
		return 0.8, true
	case gap > 0.7:
		return 0.8, false
	case gap > 0.5:
		return 0.4, false
	default:
		return 0, false
	}
}

// textFeatureSignal looks at surface statistics typical of manufactured
// reviews: tiny texts, shouting, exclamation spam, low vocabulary spread.
func (a *Analyzer) textFeatureSignal(f textFeatures) float64 {
	var s float64
	if f.WordCount < a.cfg.ShortReviewWords {
		s += 0.4
	}
	if f.ExclamationCount > a.cfg.MaxExclamations {
		s += 0.3
	}
	if f.CapsRatio > a.cfg.MaxCapsRatio {
		s += 0.3
	}
	if f.WordCount > 20 && f.UniqueWordRatio < a.cfg.MinLexicalDiversity {
		s += 0.3
	}
	return clamp(s, 0, 1)
}

func spamSignal(lower string) float64 {
	for _, re := range spamRegexps {
		if re.MatchString(lower) {
			return 0.9
		}
	}
	return 0
}
