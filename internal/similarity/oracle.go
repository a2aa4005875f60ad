// Package similarity provides semantic text similarity over embedding
// vectors. It wraps an embedding provider and exposes pure ranking
// operations from (query, corpus) to scored matches.
package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Embedder converts text into embedding vectors.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one vector per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Match is a corpus entry scored against a query.
type Match struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Index int     `json:"index"`
}

// Oracle ranks corpus texts by cosine similarity to a query.
type Oracle struct {
	embedder Embedder
}

// NewOracle creates an Oracle over the given embedder.
func NewOracle(embedder Embedder) *Oracle {
	return &Oracle{embedder: embedder}
}

// BestMatch returns the single highest-scoring corpus entry for the query.
// An empty corpus yields an error.
func (o *Oracle) BestMatch(ctx context.Context, query string, corpus []string) (Match, error) {
	matches, err := o.Rank(ctx, query, corpus, 1)
	if err != nil {
		return Match{}, err
	}
	if len(matches) == 0 {
		return Match{}, fmt.Errorf("corpus is empty")
	}
	return matches[0], nil
}

// Rank scores every corpus entry against the query and returns the top K
// by descending similarity. K <= 0 returns all matches.
func (o *Oracle) Rank(ctx context.Context, query string, corpus []string, topK int) ([]Match, error) {
	if len(corpus) == 0 {
		return nil, nil
	}

	queryVec, err := o.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	corpusVecs, err := o.embedder.EmbedBatch(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("failed to embed corpus: %w", err)
	}
	if len(corpusVecs) != len(corpus) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(corpusVecs), len(corpus))
	}

	matches := make([]Match, 0, len(corpus))
	for i, vec := range corpusVecs {
		matches = append(matches, Match{
			Text:  corpus[i],
			Score: Cosine(queryVec, vec),
			Index: i,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Cosine computes the cosine similarity of two vectors. Mismatched or
// zero-magnitude vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
