package nlp

import (
	"math"
	"sort"
	"strings"
)

// indexCluster is a group of near-duplicate reviews by batch index.
// Similarity is the mean cosine similarity between the anchor (first
// member) and the remaining members.
type indexCluster struct {
	Indices    []int
	Similarity float64
}

// findDuplicateClusters vectorizes the texts and greedily groups any
// review whose vector is close enough to an earlier unclustered anchor.
// Texts too short to vectorize fall back to token-set comparison.
func (a *Analyzer) findDuplicateClusters(texts []string) []indexCluster {
	n := len(texts)
	if n < 2 {
		return nil
	}

	vecs := a.vectorize(texts)

	clustered := make([]bool, n)
	var clusters []indexCluster
	for i := 0; i < n; i++ {
		if clustered[i] {
			continue
		}
		members := []int{i}
		var simSum float64
		for j := i + 1; j < n; j++ {
			if clustered[j] {
				continue
			}
			sim := pairSimilarity(vecs[i], vecs[j], texts[i], texts[j], a.cfg)
			if sim >= a.cfg.SimilarityThreshold {
				members = append(members, j)
				simSum += sim
			}
		}
		if len(members) < 2 {
			continue
		}
		for _, m := range members {
			clustered[m] = true
		}
		clusters = append(clusters, indexCluster{
			Indices:    members,
			Similarity: simSum / float64(len(members)-1),
		})
	}
	return clusters
}

// pairSimilarity is cosine similarity when both vectors are non-empty,
// otherwise Jaccard on token sets scaled through the cosine threshold.
func pairSimilarity(a, b sparseVec, ta, tb string, cfg *Config) float64 {
	if len(a) > 0 && len(b) > 0 {
		return cosine(a, b)
	}
	j := jaccard(tokenize(strings.ToLower(ta)), tokenize(strings.ToLower(tb)))
	if j >= cfg.JaccardThreshold {
		// report at the clustering threshold so short duplicates still group
		return cfg.SimilarityThreshold
	}
	return 0
}

type sparseVec map[int]float64

// vectorize builds TF-IDF vectors over word ngrams, keeping only the
// highest-document-frequency terms up to the configured feature cap.
func (a *Analyzer) vectorize(texts []string) []sparseVec {
	n := len(texts)
	docs := make([][]string, n)
	df := make(map[string]int)
	for i, t := range texts {
		grams := a.ngrams(tokenize(strings.ToLower(t)))
		docs[i] = grams
		seen := make(map[string]struct{}, len(grams))
		for _, g := range grams {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			df[g]++
		}
	}

	// vocabulary capped to the most frequent terms
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > a.cfg.TFIDFMaxFeatures {
		terms = terms[:a.cfg.TFIDFMaxFeatures]
	}
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}

	vecs := make([]sparseVec, n)
	for i, grams := range docs {
		tf := make(map[int]float64)
		for _, g := range grams {
			if id, ok := vocab[g]; ok {
				tf[id]++
			}
		}
		vec := make(sparseVec, len(tf))
		var norm float64
		for id, count := range tf {
			idf := math.Log(float64(n+1)/float64(df[terms[id]]+1)) + 1
			w := count * idf
			vec[id] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for id := range vec {
				vec[id] /= norm
			}
		}
		vecs[i] = vec
	}
	return vecs
}

// ngrams expands a token slice into word ngrams within the configured
// range. Unigram stopwords are dropped; longer grams keep them so
// phrase structure survives.
func (a *Analyzer) ngrams(tokens []string) []string {
	var out []string
	for size := a.cfg.TFIDFNgramMin; size <= a.cfg.TFIDFNgramMax; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			if size == 1 {
				if _, stop := stopwords[tokens[i]]; stop {
					continue
				}
				out = append(out, tokens[i])
				continue
			}
			out = append(out, strings.Join(tokens[i:i+size], " "))
		}
	}
	return out
}

func cosine(a, b sparseVec) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for id, w := range a {
		if w2, ok := b[id]; ok {
			dot += w * w2
		}
	}
	// vectors are L2-normalized already
	return dot
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}
	var inter int
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
