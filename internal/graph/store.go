// Package graph provides the career graph store: role nodes, transition
// edges, and skill requirements, with bounded-hop path queries.
package graph

import (
	"context"
	"errors"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// DefaultMaxHops bounds path length. Four hops covers realistic multi-step
// careers while keeping the shortest-path search tractable.
const DefaultMaxHops = 4

// Result caps keeping the downstream analysis and enrichment fan-out bounded.
const (
	TargetedPathLimit  = 10
	OpenEndedPathLimit = 20
)

// ErrRoleNotFound indicates a query referenced a role title absent from the graph.
var ErrRoleNotFound = errors.New("role not found in graph")

// Store is the read/write surface of the career graph.
type Store interface {
	// AllRoleTitles lists every canonical role title in the graph.
	AllRoleTitles(ctx context.Context) ([]string, error)
	// AllSkillNames lists every skill name in the graph.
	AllSkillNames(ctx context.Context) ([]string, error)
	// FindPaths returns transition paths from currentRole. With a target it
	// returns shortest paths ordered by duration then difficulty; without
	// one it returns distinct destinations ordered by salary growth.
	FindPaths(ctx context.Context, currentRole, targetRole string, maxHops int) ([]types.Path, error)
	// HighImportanceSkills returns the high/critical skill requirements of a
	// role, strongest proficiency first.
	HighImportanceSkills(ctx context.Context, roleTitle string) ([]types.SkillRequirement, error)
	// Close releases the underlying connection pool.
	Close(ctx context.Context) error
}

// Seeder is the write surface used by the seeding command.
type Seeder interface {
	// EnsureSchema creates uniqueness constraints for role titles and skill names.
	EnsureSchema(ctx context.Context) error
	// UpsertRole creates or updates a role node keyed by title.
	UpsertRole(ctx context.Context, role types.Role) error
	// UpsertTransition creates or updates a transition edge between two role titles.
	UpsertTransition(ctx context.Context, fromTitle, toTitle string, t types.Transition) error
	// UpsertSkillRequirement links a role to a skill it requires.
	UpsertSkillRequirement(ctx context.Context, roleTitle string, req types.SkillRequirement) error
}
