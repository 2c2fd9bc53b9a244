package nlp

// Sentiment lexicons for the two rule-based scorers. The valence lexicon
// carries intensity on a roughly -4..+4 scale; the polarity lexicon carries
// polarity in [-1,1] together with subjectivity in [0,1].

// valenceLexicon drives the compound scorer (method A).
var valenceLexicon = map[string]float64{
	// strong positive
	"amazing": 3.2, "awesome": 3.1, "excellent": 3.2, "fantastic": 3.3,
	"incredible": 3.0, "outstanding": 3.2, "perfect": 3.4, "phenomenal": 3.2,
	"superb": 3.1, "wonderful": 3.0, "brilliant": 3.0, "exceptional": 3.1,
	"flawless": 3.2, "love": 3.2, "loved": 3.0, "best": 3.2,

	// positive
	"good": 1.9, "great": 3.1, "nice": 1.8, "happy": 2.7, "pleased": 2.2,
	"satisfied": 2.0, "recommend": 1.9, "recommended": 1.9, "worth": 1.7,
	"reliable": 1.8, "sturdy": 1.5, "comfortable": 1.9, "fast": 1.4,
	"helpful": 1.9, "impressed": 2.3, "quality": 1.3, "smooth": 1.5,
	"durable": 1.7, "beautiful": 2.6, "useful": 1.7, "easy": 1.5,
	"exceeded": 2.0, "genuine": 1.4, "value": 1.2, "like": 1.5,
	"liked": 1.6, "enjoy": 2.0, "enjoyed": 2.1, "glad": 2.0,

	// mild
	"okay": 0.9, "ok": 0.8, "decent": 1.1, "fine": 1.0, "average": 0.1,

	// negative
	"bad": -2.5, "poor": -2.3, "slow": -1.3, "cheap": -1.4, "flimsy": -1.8,
	"disappointed": -2.2, "disappointing": -2.3, "defective": -2.6,
	"faulty": -2.4, "damaged": -2.2, "uncomfortable": -1.8, "overpriced": -1.9,
	"useless": -2.7, "waste": -2.4, "wasted": -2.3, "refund": -1.4,
	"returned": -1.2, "return": -1.0, "problem": -1.6, "problems": -1.7,
	"issue": -1.3, "issues": -1.4, "broke": -2.3, "fake": -2.3,
	"misleading": -2.2, "regret": -2.3, "delayed": -1.2, "annoying": -1.9,

	// strong negative
	"terrible": -3.1, "awful": -3.0, "horrible": -3.1, "worst": -3.1,
	"broken": -2.6, "garbage": -2.9, "pathetic": -2.8, "disgusting": -3.0,
	"hate": -2.7, "hated": -2.7, "scam": -3.0, "fraud": -3.0,
	"unusable": -2.8, "dangerous": -2.5,
}

// polarityEntry is one word in the TextBlob-style lexicon.
type polarityEntry struct {
	Polarity     float64
	Subjectivity float64
}

// polarityLexicon drives the averaging scorer (method B) and the
// subjectivity metric.
var polarityLexicon = map[string]polarityEntry{
	"amazing": {0.9, 0.9}, "awesome": {0.9, 0.9}, "excellent": {1.0, 1.0},
	"fantastic": {0.9, 0.9}, "incredible": {0.9, 0.9}, "outstanding": {0.9, 0.9},
	"perfect": {1.0, 1.0}, "superb": {0.9, 0.9}, "wonderful": {0.9, 0.9},
	"brilliant": {0.9, 0.9}, "flawless": {0.9, 0.9}, "love": {0.8, 0.7},
	"loved": {0.8, 0.7}, "best": {1.0, 0.3}, "great": {0.8, 0.75},
	"good": {0.7, 0.6}, "nice": {0.6, 1.0}, "happy": {0.8, 1.0},
	"pleased": {0.7, 0.8}, "satisfied": {0.6, 0.8}, "beautiful": {0.85, 1.0},
	"comfortable": {0.6, 0.7}, "reliable": {0.5, 0.5}, "helpful": {0.5, 0.4},
	"impressed": {0.7, 0.8}, "smooth": {0.5, 0.6}, "durable": {0.5, 0.4},
	"useful": {0.4, 0.3}, "easy": {0.45, 0.8}, "fast": {0.3, 0.5},
	"worth": {0.4, 0.4}, "genuine": {0.4, 0.5}, "enjoy": {0.6, 0.6},
	"enjoyed": {0.6, 0.6}, "glad": {0.7, 0.9}, "recommend": {0.5, 0.4},

	"okay": {0.2, 0.5}, "ok": {0.2, 0.5}, "decent": {0.3, 0.6},
	"fine": {0.25, 0.6}, "average": {-0.05, 0.4},

	"bad": {-0.7, 0.65}, "poor": {-0.6, 0.6}, "slow": {-0.3, 0.4},
	"cheap": {-0.4, 0.7}, "flimsy": {-0.5, 0.6}, "disappointed": {-0.65, 0.8},
	"disappointing": {-0.65, 0.8}, "defective": {-0.7, 0.6}, "faulty": {-0.65, 0.6},
	"damaged": {-0.6, 0.5}, "uncomfortable": {-0.5, 0.7}, "overpriced": {-0.55, 0.8},
	"useless": {-0.8, 0.8}, "waste": {-0.7, 0.6}, "wasted": {-0.7, 0.6},
	"problem": {-0.4, 0.3}, "problems": {-0.4, 0.3}, "broke": {-0.6, 0.4},
	"fake": {-0.7, 0.7}, "misleading": {-0.6, 0.7}, "regret": {-0.7, 0.8},
	"delayed": {-0.3, 0.3}, "annoying": {-0.6, 0.8},

	"terrible": {-1.0, 1.0}, "awful": {-1.0, 1.0}, "horrible": {-1.0, 1.0},
	"worst": {-1.0, 0.3}, "broken": {-0.7, 0.4}, "garbage": {-0.9, 0.9},
	"pathetic": {-0.9, 0.95}, "disgusting": {-0.95, 1.0}, "hate": {-0.8, 0.9},
	"hated": {-0.8, 0.9}, "scam": {-0.9, 0.8}, "fraud": {-0.9, 0.8},
	"unusable": {-0.85, 0.7},
}

// negations flip the valence of the following sentiment word.
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nothing": {},
	"neither": {}, "nor": {}, "cannot": {}, "can't": {}, "won't": {},
	"don't": {}, "doesn't": {}, "didn't": {}, "isn't": {}, "wasn't": {},
	"aren't": {}, "wouldn't": {}, "couldn't": {}, "shouldn't": {},
	"hardly": {}, "barely": {},
}

// boosters scale the valence of the following sentiment word.
var boosters = map[string]float64{
	"very": 0.293, "really": 0.293, "extremely": 0.293, "absolutely": 0.293,
	"incredibly": 0.293, "totally": 0.293, "completely": 0.293, "so": 0.2,
	"super": 0.293, "highly": 0.293, "truly": 0.2,
	"somewhat": -0.293, "slightly": -0.293, "kind": -0.15, "kinda": -0.293,
	"marginally": -0.293, "barely": -0.293,
}

// stopwords used by the TF-IDF vectorizer for unigram filtering.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"of": {}, "at": {}, "by": {}, "for": {}, "with": {}, "about": {},
	"to": {}, "from": {}, "in": {}, "on": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "be": {}, "been": {}, "being": {}, "have": {}, "has": {},
	"had": {}, "do": {}, "does": {}, "did": {}, "i": {}, "me": {}, "my": {},
	"we": {}, "our": {}, "you": {}, "your": {}, "it": {}, "its": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "as": {}, "so": {},
	"than": {}, "too": {}, "can": {}, "will": {}, "just": {},
}
