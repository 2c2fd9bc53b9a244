package nlp

// qualityScore rates how well-formed a review text is, in [0,1].
// Readability, lexical diversity and length each contribute a band
// score that is blended by the configured weights.
func (a *Analyzer) qualityScore(f textFeatures, readability float64) float64 {
	diversity := diversityScore(f, a.cfg)
	length := lengthScore(f.WordCount, a.cfg)

	return a.cfg.ReadabilityWeight*readability +
		a.cfg.LexicalDiversityWeight*diversity +
		a.cfg.LengthWeight*length
}

// readabilityScore reflects how far word and sentence lengths sit from
// their ideal bands.
func (a *Analyzer) readabilityScore(f textFeatures) float64 {
	return bandScore(f.AvgWordLength, f.AvgSentenceLen, a.cfg)
}

func bandScore(avgWordLen, avgSentLen float64, cfg *Config) float64 {
	score := 1.0
	wordDelta := abs(avgWordLen - cfg.IdealAvgWordLen)
	switch {
	case wordDelta > 3.0:
		score -= 0.4
	case wordDelta > 1.5:
		score -= 0.2
	}
	sentDelta := abs(avgSentLen - cfg.IdealAvgSentenceLen)
	switch {
	case sentDelta > 15:
		score -= 0.4
	case sentDelta > 8:
		score -= 0.2
	}
	return clamp(score, 0, 1)
}

func diversityScore(f textFeatures, cfg *Config) float64 {
	switch {
	case f.WordCount < cfg.ShortReviewWords:
		// too short to judge vocabulary spread
		return 0.5
	case f.UniqueWordRatio >= cfg.MinLexicalDiversity+0.2:
		return 1.0
	case f.UniqueWordRatio >= cfg.MinLexicalDiversity:
		return 0.7
	default:
		return 0.3
	}
}

func lengthScore(words int, cfg *Config) float64 {
	switch {
	case words >= cfg.IdealMinWords && words <= cfg.IdealMaxWords:
		return 1.0
	case words > cfg.IdealMaxWords && words <= cfg.MaxAcceptableWords:
		return 0.7
	case words >= cfg.ShortReviewWords:
		return 0.5
	default:
		return 0.3
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
