package nlp

import (
	"math"
	"strings"
)

// Sentiment is the per-review sentiment estimate produced by the
// two-method ensemble.
type Sentiment struct {
	Score        float64 `json:"score"`
	Label        string  `json:"label"`
	Confidence   float64 `json:"confidence"`
	Subjectivity float64 `json:"subjectivity"`
}

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// analyzeSentiment combines a valence compound score and an averaged
// polarity score into a single estimate. Agreement between the two
// methods drives the confidence value.
func (a *Analyzer) analyzeSentiment(text string) Sentiment {
	tokens := tokenize(strings.ToLower(text))

	valence := compoundValence(tokens)
	polarity, subjectivity := averagePolarity(tokens)

	score := a.cfg.ValenceWeight*valence + a.cfg.PolarityWeight*polarity

	label := LabelNeutral
	switch {
	case score > a.cfg.PositiveThreshold:
		label = LabelPositive
	case score < a.cfg.NegativeThreshold:
		label = LabelNegative
	}

	conf := 1.0 - math.Abs(valence-polarity)/2.0
	conf = clamp(conf, 0.5, 0.95)

	return Sentiment{
		Score:        score,
		Label:        label,
		Confidence:   conf,
		Subjectivity: subjectivity,
	}
}

// compoundValence sums booster- and negation-adjusted word valences and
// normalizes the total into [-1,1].
func compoundValence(tokens []string) float64 {
	var sum float64
	for i, tok := range tokens {
		v, ok := valenceLexicon[tok]
		if !ok {
			continue
		}
		// scan up to three preceding tokens for modifiers
		for j := i - 1; j >= 0 && j >= i-3; j-- {
			prev := tokens[j]
			if _, neg := negations[prev]; neg {
				v *= -0.74
				continue
			}
			if b, ok := boosters[prev]; ok {
				if v > 0 {
					v += b
				} else {
					v -= b
				}
			}
		}
		sum += v
	}
	if sum == 0 {
		return 0
	}
	return sum / math.Sqrt(sum*sum+15)
}

// averagePolarity returns the mean polarity and subjectivity of the
// lexicon words present in tokens. Negations within the preceding
// window flip polarity at half strength.
func averagePolarity(tokens []string) (polarity, subjectivity float64) {
	var pSum, sSum float64
	var n int
	for i, tok := range tokens {
		e, ok := polarityLexicon[tok]
		if !ok {
			continue
		}
		p := e.Polarity
		for j := i - 1; j >= 0 && j >= i-3; j-- {
			if _, neg := negations[tokens[j]]; neg {
				p *= -0.5
				break
			}
		}
		pSum += p
		sSum += e.Subjectivity
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return pSum / float64(n), sSum / float64(n)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
