// Package seed loads the built-in career dataset into the graph store.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/graph"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

//go:embed data.json
var rawDataset []byte

// Dataset is the career graph seed: roles, the transitions between them,
// and the skills each role requires. Transitions and skill requirements
// reference roles by ID.
type Dataset struct {
	Roles             []types.Role             `json:"roles"`
	Transitions       []types.Transition       `json:"transitions"`
	SkillRequirements []types.SkillRequirement `json:"skill_requirements"`
}

// Load decodes the embedded dataset and verifies that every transition and
// skill requirement references a known role.
func Load() (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(rawDataset, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode embedded dataset: %w", err)
	}

	titles := make(map[string]string, len(ds.Roles))
	for _, role := range ds.Roles {
		if role.ID == "" || role.Title == "" {
			return nil, fmt.Errorf("role %q has empty id or title", role.ID)
		}
		if _, exists := titles[role.ID]; exists {
			return nil, fmt.Errorf("duplicate role id %q", role.ID)
		}
		titles[role.ID] = role.Title
	}
	for _, t := range ds.Transitions {
		if _, ok := titles[t.FromRoleID]; !ok {
			return nil, fmt.Errorf("transition references unknown role %q", t.FromRoleID)
		}
		if _, ok := titles[t.ToRoleID]; !ok {
			return nil, fmt.Errorf("transition references unknown role %q", t.ToRoleID)
		}
	}
	for _, req := range ds.SkillRequirements {
		if _, ok := titles[req.RoleID]; !ok {
			return nil, fmt.Errorf("skill requirement references unknown role %q", req.RoleID)
		}
	}

	return &ds, nil
}

// roleTitle resolves a role ID to its title. Load guarantees the ID exists.
func (ds *Dataset) roleTitle(id string) string {
	for _, role := range ds.Roles {
		if role.ID == id {
			return role.Title
		}
	}
	return ""
}

// Apply writes the dataset into the graph through the seeder. The schema is
// ensured first so the title-keyed upserts merge instead of duplicating.
func Apply(ctx context.Context, ds *Dataset, seeder graph.Seeder, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	if err := seeder.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure graph schema: %w", err)
	}

	log.Info("seeding roles", zap.Int("count", len(ds.Roles)))
	for _, role := range ds.Roles {
		if err := seeder.UpsertRole(ctx, role); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", role.Title, err)
		}
	}

	log.Info("seeding transitions", zap.Int("count", len(ds.Transitions)))
	for _, t := range ds.Transitions {
		from := ds.roleTitle(t.FromRoleID)
		to := ds.roleTitle(t.ToRoleID)
		if err := seeder.UpsertTransition(ctx, from, to, t); err != nil {
			return fmt.Errorf("failed to seed transition %s -> %s: %w", from, to, err)
		}
	}

	log.Info("seeding skill requirements", zap.Int("count", len(ds.SkillRequirements)))
	for _, req := range ds.SkillRequirements {
		role := ds.roleTitle(req.RoleID)
		if err := seeder.UpsertSkillRequirement(ctx, role, req); err != nil {
			return fmt.Errorf("failed to seed skill %q for %q: %w", req.SkillName, role, err)
		}
	}

	return nil
}
