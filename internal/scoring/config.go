package scoring

// Config carries the fusion weights and every classification threshold.
type Config struct {
	NLPWeight         float64
	BehaviorWeight    float64
	StatisticalWeight float64

	// statistical anomaly thresholds
	FiveStarCritical    float64
	FiveStarWarning     float64
	FiveStarNotice      float64
	PolarizationCrit    float64
	PolarizationWarning float64
	MiddleRatioMin      float64
	SmallSampleSize     int
	SmallSampleFiveStar float64

	// confidence
	BaseConfidence     float64
	LargeSampleSize    int
	MediumSampleSize   int
	SmallSampleConf    int
	StrongAgreement    float64
	ModerateAgreement  float64
	HighVerificationPct float64

	// trust bands
	TrustExcellent int
	TrustGood      int
	TrustPoor      int

	// insight thresholds
	HighFakeProb       float64
	MediumFakeProb     float64
	DuplicatePctMin    float64
	UnusuallyPositive  float64
	LowTextQuality     float64
	VeryLowVerifiedPct float64
	LowVerifiedPct     float64
	ExtremeFiveStarPct float64
	HighFiveStarPct    float64
	MaxInsights        int
}

// DefaultConfig returns the production weights and thresholds.
func DefaultConfig() *Config {
	return &Config{
		NLPWeight:         0.5,
		BehaviorWeight:    0.3,
		StatisticalWeight: 0.2,

		FiveStarCritical:    0.8,
		FiveStarWarning:     0.7,
		FiveStarNotice:      0.6,
		PolarizationCrit:    0.7,
		PolarizationWarning: 0.5,
		MiddleRatioMin:      0.15,
		SmallSampleSize:     20,
		SmallSampleFiveStar: 0.9,

		BaseConfidence:      0.5,
		LargeSampleSize:     100,
		MediumSampleSize:    50,
		SmallSampleConf:     20,
		StrongAgreement:     10,
		ModerateAgreement:   20,
		HighVerificationPct: 70,

		TrustExcellent: 80,
		TrustGood:      60,
		TrustPoor:      40,

		HighFakeProb:       0.6,
		MediumFakeProb:     0.4,
		DuplicatePctMin:    10,
		UnusuallyPositive:  0.85,
		LowTextQuality:     0.4,
		VeryLowVerifiedPct: 30,
		LowVerifiedPct:     50,
		ExtremeFiveStarPct: 85,
		HighFiveStarPct:    75,
		MaxInsights:        10,
	}
}
