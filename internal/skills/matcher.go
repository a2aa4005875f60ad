// Package skills performs semantic gap analysis between the skills a user
// has and the skills a role or transition requires.
package skills

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/msaswata15/career-navigation-platform/internal/similarity"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// DefaultThreshold is the cosine similarity above which a user skill counts
// as covering a required skill.
const DefaultThreshold = 0.7

// Matcher matches user skills against required skills via embeddings.
type Matcher struct {
	embedder  similarity.Embedder
	threshold float64
	log       *zap.Logger
}

// New creates a Matcher. threshold <= 0 selects the default.
func New(embedder similarity.Embedder, threshold float64, log *zap.Logger) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{embedder: embedder, threshold: threshold, log: log}
}

// Match computes the skill gap between userSkills and requiredSkills. Each
// required skill is matched against the user's semantically closest skill;
// scores at or above the threshold count as covered. Either list being empty
// short-circuits without touching the embedder.
func (m *Matcher) Match(ctx context.Context, userSkills, requiredSkills []string) (types.SkillGapResult, error) {
	required := dedupeNonEmpty(requiredSkills)
	user := dedupeNonEmpty(userSkills)

	if len(required) == 0 {
		// Nothing required means nothing to measure against, reported as
		// a zero match with no missing skills.
		return types.SkillGapResult{}, nil
	}
	if len(user) == 0 {
		return types.SkillGapResult{MissingSkills: required}, nil
	}

	userVecs, err := m.embedder.EmbedBatch(ctx, user)
	if err != nil {
		return types.SkillGapResult{}, fmt.Errorf("failed to embed user skills: %w", err)
	}
	requiredVecs, err := m.embedder.EmbedBatch(ctx, required)
	if err != nil {
		return types.SkillGapResult{}, fmt.Errorf("failed to embed required skills: %w", err)
	}
	if len(userVecs) != len(user) || len(requiredVecs) != len(required) {
		return types.SkillGapResult{}, fmt.Errorf("embedder returned mismatched vector counts")
	}

	result := types.SkillGapResult{}
	for i, req := range required {
		bestScore := 0.0
		bestSkill := ""
		for j, u := range user {
			if score := similarity.Cosine(requiredVecs[i], userVecs[j]); score > bestScore {
				bestScore = score
				bestSkill = u
			}
		}

		if bestScore >= m.threshold {
			result.MatchedSkills = append(result.MatchedSkills, types.SkillMatch{
				Required:   req,
				UserHas:    bestSkill,
				MatchScore: round2(bestScore),
			})
		} else {
			result.MissingSkills = append(result.MissingSkills, req)
		}
	}

	result.MatchPercentage = round2(float64(len(result.MatchedSkills)) / float64(len(required)) * 100)
	return result, nil
}

// MatchBatch runs Match for each required-skill list concurrently and
// returns results in input order. A failed match degrades to an all-missing
// result for that entry rather than failing the batch.
func (m *Matcher) MatchBatch(ctx context.Context, userSkills []string, requiredLists [][]string) ([]types.SkillGapResult, error) {
	results := make([]types.SkillGapResult, len(requiredLists))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, required := range requiredLists {
		g.Go(func() error {
			res, err := m.Match(gctx, userSkills, required)
			if err != nil {
				m.log.Warn("skill gap analysis failed, reporting all skills missing",
					zap.Int("index", i), zap.Error(err))
				res = types.SkillGapResult{MissingSkills: dedupeNonEmpty(required)}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// dedupeNonEmpty trims, drops empties, and removes case-insensitive
// duplicates while preserving first-seen order and casing.
func dedupeNonEmpty(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
