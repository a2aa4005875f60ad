// Package engine orchestrates a career path request end to end: role
// resolution, graph path search, skill gap analysis, enrichment, scoring,
// and, when the graph has nothing to offer, cross-industry synthesis.
package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/enrichment"
	"github.com/msaswata15/career-navigation-platform/internal/graph"
	"github.com/msaswata15/career-navigation-platform/internal/ranking"
	"github.com/msaswata15/career-navigation-platform/internal/resolver"
	"github.com/msaswata15/career-navigation-platform/internal/search"
	"github.com/msaswata15/career-navigation-platform/internal/skills"
	"github.com/msaswata15/career-navigation-platform/internal/synthesis"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// ErrServiceUnavailable indicates a required collaborator could not serve
// the request at all. The transport layer maps it to 503.
var ErrServiceUnavailable = errors.New("a required backing service is unavailable")

// Timeouts bounding each class of external call within a request.
const (
	resolveTimeout   = 20 * time.Second
	searchTimeout    = 30 * time.Second
	analysisTimeout  = 60 * time.Second
	synthesisTimeout = 90 * time.Second
)

// Engine wires the pipeline stages together.
type Engine struct {
	graph       graph.Store
	resolver    *resolver.Resolver
	searcher    *search.Searcher
	matcher     *skills.Matcher
	enricher    *enrichment.Enricher
	synthesizer *synthesis.Synthesizer
	log         *zap.Logger
}

// New creates an Engine. The enricher and synthesizer may be nil; the
// corresponding stages are then skipped.
func New(
	store graph.Store,
	res *resolver.Resolver,
	searcher *search.Searcher,
	matcher *skills.Matcher,
	enricher *enrichment.Enricher,
	synthesizer *synthesis.Synthesizer,
	log *zap.Logger,
) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		graph:       store,
		resolver:    res,
		searcher:    searcher,
		matcher:     matcher,
		enricher:    enricher,
		synthesizer: synthesizer,
		log:         log,
	}
}

// FindCareerPaths serves one request. Business-level "not found" outcomes
// produce a well-formed empty response; only total collaborator failure
// surfaces as an error.
func (e *Engine) FindCareerPaths(ctx context.Context, req types.CareerPathRequest) (*types.CareerPathResponse, error) {
	titles, err := e.allRoleTitles(ctx)
	if err != nil {
		return nil, err
	}

	currentRole, ok := e.resolveRole(ctx, req.CurrentRole, titles)
	if !ok {
		// An unrecognized current role queries nothing; there is no
		// graph position to search from.
		e.log.Info("current role did not resolve, returning empty response",
			zap.String("input", req.CurrentRole))
		return types.EmptyResponse(), nil
	}

	targetRole := ""
	if req.TargetRole != "" {
		if resolved, ok := e.resolveRole(ctx, req.TargetRole, titles); ok {
			targetRole = resolved
		} else {
			// The target stays as raw input so cross-industry synthesis
			// can still aim at it when the graph yields nothing.
			targetRole = req.TargetRole
		}
	}

	sctx, cancel := context.WithTimeout(ctx, searchTimeout)
	paths, err := e.searcher.Search(sctx, currentRole, targetRole)
	cancel()
	if err != nil {
		e.log.Error("path search failed", zap.Error(err))
		return nil, ErrServiceUnavailable
	}

	if len(paths) == 0 {
		if req.TargetRole == "" {
			return types.EmptyResponse(), nil
		}
		return e.synthesize(ctx, currentRole, targetRole, req.UserSkills)
	}

	actx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()
	return e.analyze(actx, paths, req.UserSkills)
}

func (e *Engine) allRoleTitles(ctx context.Context) ([]string, error) {
	rctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	titles, err := e.graph.AllRoleTitles(rctx)
	if err != nil {
		e.log.Error("failed to list role titles", zap.Error(err))
		return nil, ErrServiceUnavailable
	}
	return titles, nil
}

func (e *Engine) resolveRole(ctx context.Context, input string, titles []string) (string, bool) {
	rctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	res, err := e.resolver.Resolve(rctx, input, titles)
	if err != nil {
		return "", false
	}
	e.log.Debug("resolved role",
		zap.String("input", input),
		zap.String("title", res.Title),
		zap.String("stage", string(res.Stage)))
	return res.Title, true
}

// analyze turns raw graph paths into scored, gap-annotated, enriched results.
func (e *Engine) analyze(ctx context.Context, paths []types.Path, userSkills []string) (*types.CareerPathResponse, error) {
	scored := make([]types.ScoredPath, 0, len(paths))
	gaps := make([]types.PathSkillGap, 0, len(paths))

	for i := range paths {
		path := &paths[i]

		// Per-step gaps for every transition plus one path-level gap
		// against the final role, all dispatched as one batch.
		lists := make([][]string, 0, len(path.Transitions)+1)
		for _, t := range path.Transitions {
			lists = append(lists, t.RequiredSkills)
		}
		lists = append(lists, path.RequiredSkills)

		results, err := e.matcher.MatchBatch(ctx, userSkills, lists)
		if err != nil {
			e.log.Error("skill gap batch failed", zap.Error(err))
			return nil, ErrServiceUnavailable
		}

		pathGap := results[len(results)-1]
		for j := range path.Transitions {
			path.Transitions[j].SkillsToLearn = results[j].MissingSkills
			path.Transitions[j].SkillsMatch = results[j].MatchedSkills
		}

		if e.enricher != nil {
			e.enricher.EnrichPath(ctx, path, userSkills)
		}

		sp := types.ScoredPath{
			Roles:         path.Roles,
			TotalMonths:   path.TotalMonths,
			AvgDifficulty: path.AvgDifficulty,
			SalaryGrowth:  path.SalaryGrowth,
			SkillMatch:    pathGap.MatchPercentage,
			MatchedSkills: pathGap.MatchedSkills,
			MissingSkills: pathGap.MissingSkills,
			Transitions:   path.Transitions,
		}
		sp.Score = ranking.ScorePath(sp)
		scored = append(scored, sp)

		gaps = append(gaps, types.PathSkillGap{
			Roles:           path.Roles,
			MatchPercentage: pathGap.MatchPercentage,
			MatchedSkills:   pathGap.MatchedSkills,
			MissingSkills:   pathGap.MissingSkills,
		})
	}

	ranked := ranking.Rank(scored)
	resp := &types.CareerPathResponse{
		Paths:     ranked,
		SkillGaps: gaps,
	}
	if len(ranked) > 0 {
		resp.RecommendedPath = &ranked[0]
	}
	return resp, nil
}

// synthesize handles the no-paths-with-target case. Synthesis failures
// degrade to an empty response; the graph simply had nothing and the
// service could not help.
func (e *Engine) synthesize(ctx context.Context, currentRole, targetRole string, userSkills []string) (*types.CareerPathResponse, error) {
	if e.synthesizer == nil {
		return types.EmptyResponse(), nil
	}

	sctx, cancel := context.WithTimeout(ctx, synthesisTimeout)
	defer cancel()

	outcome, err := e.synthesizer.Synthesize(sctx, currentRole, targetRole, userSkills)
	if err != nil {
		e.log.Warn("cross-industry synthesis failed",
			zap.String("current", currentRole),
			zap.String("target", targetRole),
			zap.Error(err))
		return types.EmptyResponse(), nil
	}

	if !outcome.Feasible {
		notFeasible := false
		return &types.CareerPathResponse{
			Paths: []types.ScoredPath{},
			RecommendedPath: &types.ScoredPath{
				IsCrossIndustry:  true,
				IsFeasible:       &notFeasible,
				FeasibilityNote:  outcome.FeasibilityNote,
				Challenges:       outcome.Challenges,
				AlternativePaths: outcome.AlternativePaths,
			},
			SkillGaps: []types.PathSkillGap{},
		}, nil
	}

	path := *outcome.Path
	return &types.CareerPathResponse{
		Paths:           []types.ScoredPath{path},
		RecommendedPath: &path,
		SkillGaps: []types.PathSkillGap{{
			Roles:           path.Roles,
			MatchPercentage: path.SkillMatch,
			MatchedSkills:   path.MatchedSkills,
			MissingSkills:   path.MissingSkills,
		}},
	}, nil
}
