// Package search runs bounded-hop path queries against the career graph and
// attaches per-step skill context to the results.
package search

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/msaswata15/career-navigation-platform/internal/graph"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// Searcher finds transition paths and decorates them with skill requirements.
type Searcher struct {
	store   graph.Store
	maxHops int
	log     *zap.Logger
}

// New creates a Searcher. maxHops <= 0 selects the default bound.
func New(store graph.Store, maxHops int, log *zap.Logger) *Searcher {
	if maxHops <= 0 {
		maxHops = graph.DefaultMaxHops
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{store: store, maxHops: maxHops, log: log}
}

// Search returns paths from currentRole, each with per-step and path-level
// skill requirements attached. targetRole may be empty for open-ended
// exploration. Paths that fail structural validation are dropped.
func (s *Searcher) Search(ctx context.Context, currentRole, targetRole string) ([]types.Path, error) {
	paths, err := s.store.FindPaths(ctx, currentRole, targetRole, s.maxHops)
	if err != nil {
		return nil, err
	}

	valid := paths[:0]
	for _, path := range paths {
		if ok, reason := validatePath(path, currentRole, s.maxHops); ok {
			valid = append(valid, path)
		} else {
			s.log.Warn("dropping invalid path",
				zap.Strings("roles", path.Roles), zap.String("reason", reason))
		}
	}
	paths = valid

	if len(paths) == 0 {
		return paths, nil
	}

	skills, err := s.fetchSkills(ctx, paths)
	if err != nil {
		return nil, err
	}

	for i := range paths {
		attachSkills(&paths[i], skills)
	}
	return paths, nil
}

// validatePath checks the structural invariants of a path: it starts at the
// queried role, stays within the hop bound, and its transitions chain.
func validatePath(path types.Path, currentRole string, maxHops int) (bool, string) {
	if len(path.Roles) < 2 {
		return false, "fewer than two roles"
	}
	if path.Roles[0] != currentRole {
		return false, "does not start at current role"
	}
	if path.Hops() > maxHops {
		return false, "exceeds hop bound"
	}
	if len(path.Transitions) != len(path.Roles)-1 {
		return false, "transition count does not match role count"
	}
	for i, t := range path.Transitions {
		if t.FromRole != path.Roles[i] || t.ToRole != path.Roles[i+1] {
			return false, "transitions do not chain"
		}
	}
	return true, ""
}

// fetchSkills loads high-importance skills for every destination role across
// the given paths, one concurrent lookup per distinct role. A failed lookup
// degrades to no skills for that role rather than failing the search.
func (s *Searcher) fetchSkills(ctx context.Context, paths []types.Path) (map[string][]types.SkillRequirement, error) {
	roles := make(map[string]bool)
	for _, path := range paths {
		for _, t := range path.Transitions {
			roles[t.ToRole] = true
		}
	}

	skills := make(map[string][]types.SkillRequirement, len(roles))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for role := range roles {
		g.Go(func() error {
			reqs, err := s.store.HighImportanceSkills(gctx, role)
			if err != nil {
				s.log.Warn("skill lookup failed for role",
					zap.String("role", role), zap.Error(err))
				return nil
			}
			mu.Lock()
			skills[role] = reqs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return skills, nil
}

// attachSkills fills each transition's required skills from its destination
// role, and the path-level requirement list from the final role.
func attachSkills(path *types.Path, skills map[string][]types.SkillRequirement) {
	for i := range path.Transitions {
		path.Transitions[i].RequiredSkills = skillNames(skills[path.Transitions[i].ToRole])
	}
	finalRole := path.Roles[len(path.Roles)-1]
	path.RequiredSkills = skillNames(skills[finalRole])
}

func skillNames(reqs []types.SkillRequirement) []string {
	if len(reqs) == 0 {
		return nil
	}
	names := make([]string, len(reqs))
	for i, r := range reqs {
		names[i] = r.SkillName
	}
	return names
}
