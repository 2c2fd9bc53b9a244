package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlRe   = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailRe = regexp.MustCompile(`\S+@\S+`)
	phoneRe = regexp.MustCompile(`\b\d{10,}\b`)
	spaceRe = regexp.MustCompile(`\s+`)
	wordRe  = regexp.MustCompile(`[a-z0-9']+`)
	sentRe  = regexp.MustCompile(`[.!?]+`)
)

// textFeatures are the structural signals extracted once per review and
// shared by the quality and fake-detection stages.
type textFeatures struct {
	Length           int
	WordCount        int
	SentenceCount    int
	AvgWordLength    float64
	AvgSentenceLen   float64
	ExclamationCount int
	QuestionCount    int
	CapsRatio        float64
	UniqueWordRatio  float64
}

// cleanText lowercases and strips URLs, email addresses, long digit runs,
// and redundant whitespace.
func cleanText(text string) string {
	if text == "" {
		return ""
	}
	t := strings.ToLower(text)
	t = urlRe.ReplaceAllString(t, "")
	t = emailRe.ReplaceAllString(t, "")
	t = phoneRe.ReplaceAllString(t, "")
	t = spaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// tokenize splits cleaned text into lowercase word tokens.
func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// countSentences counts sentence boundaries; text without terminal
// punctuation counts as a single sentence.
func countSentences(text string) int {
	n := len(sentRe.FindAllString(text, -1))
	if n == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return n
}

func extractFeatures(text string) textFeatures {
	if strings.TrimSpace(text) == "" {
		return textFeatures{}
	}

	tokens := tokenize(cleanText(text))
	sentences := countSentences(text)

	f := textFeatures{
		Length:           len(text),
		WordCount:        len(tokens),
		SentenceCount:    sentences,
		ExclamationCount: strings.Count(text, "!"),
		QuestionCount:    strings.Count(text, "?"),
	}

	if len(tokens) > 0 {
		totalLen := 0
		unique := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			totalLen += len(tok)
			unique[tok] = struct{}{}
		}
		f.AvgWordLength = float64(totalLen) / float64(len(tokens))
		f.UniqueWordRatio = float64(len(unique)) / float64(len(tokens))
	}
	if sentences > 0 {
		f.AvgSentenceLen = float64(len(tokens)) / float64(sentences)
	}

	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if len(text) > 0 {
		f.CapsRatio = float64(upper) / float64(len(text))
	}

	return f
}
