package nlp

// Config holds all NLP tuning knobs: thresholds, feature weights, and the
// fixed phrase lists. It is built once at startup and treated as immutable;
// analyzers receive it by reference and never mutate it.
type Config struct {
	// Similarity clustering
	SimilarityThreshold float64
	JaccardThreshold    float64
	TFIDFMaxFeatures    int
	TFIDFNgramMin       int
	TFIDFNgramMax       int

	// Text quality
	MinTextLength       int
	IdealMinWords       int
	IdealMaxWords       int
	MaxAcceptableWords  int
	IdealAvgWordLen     float64
	IdealAvgSentenceLen float64

	// Fake detection
	ShortReviewWords    int
	HighRiskThreshold   float64
	MaxExclamations     int
	MaxCapsRatio        float64
	MinLexicalDiversity float64

	// Feature weights for the fake-probability ensemble. QualityWeight is
	// negative: good writing reduces the fake score.
	PromotionalWeight float64
	GenericWeight     float64
	QualityWeight     float64
	MismatchWeight    float64
	TextFeatureWeight float64
	SpamWeight        float64

	// Extra penalties layered on the weighted ensemble.
	FlagrantMismatchPenalty float64
	DuplicatePenalty        float64

	// Sentiment ensemble
	ValenceWeight     float64
	PolarityWeight    float64
	PositiveThreshold float64
	NegativeThreshold float64

	// Quality score weights
	ReadabilityWeight      float64
	LexicalDiversityWeight float64
	LengthWeight           float64

	PromotionalPhrases []string
	GenericTemplates   []string
	SpamPatterns       []string
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		SimilarityThreshold: 0.75,
		JaccardThreshold:    0.7,
		TFIDFMaxFeatures:    500,
		TFIDFNgramMin:       1,
		TFIDFNgramMax:       3,

		MinTextLength:       10,
		IdealMinWords:       50,
		IdealMaxWords:       200,
		MaxAcceptableWords:  500,
		IdealAvgWordLen:     5.5,
		IdealAvgSentenceLen: 15.0,

		ShortReviewWords:    10,
		HighRiskThreshold:   0.6,
		MaxExclamations:     5,
		MaxCapsRatio:        0.3,
		MinLexicalDiversity: 0.4,

		PromotionalWeight: 0.25,
		GenericWeight:     0.20,
		QualityWeight:     -0.15,
		MismatchWeight:    0.30,
		TextFeatureWeight: 0.15,
		SpamWeight:        0.15,

		FlagrantMismatchPenalty: 0.2,
		DuplicatePenalty:        0.6,

		ValenceWeight:     0.6,
		PolarityWeight:    0.4,
		PositiveThreshold: 0.15,
		NegativeThreshold: -0.15,

		ReadabilityWeight:      0.4,
		LexicalDiversityWeight: 0.3,
		LengthWeight:           0.3,

		PromotionalPhrases: []string{
			"must buy", "highly recommend", "best buy", "grab it", "don't miss",
			"amazing deal", "worth every penny", "go for it", "blindly buy",
			"just buy it", "buy now", "genuine product", "original product",
			"value for money", "paisa vasool", "super product", "best product",
			"excellent choice", "perfect choice", "highly satisfied",
		},
		GenericTemplates: []string{
			"nice product", "good product", "awesome product", "excellent product",
			"great product", "superb product", "amazing product", "loved it",
			"love it", "like it", "satisfied", "happy with", "as expected",
		},
		SpamPatterns: []string{
			`\b\d{10}\b`,
			`whatsapp`,
			`contact.*\d`,
			`click.*link`,
			`visit.*website`,
			`call.*\d`,
			`dm.*me`,
		},
	}
}
