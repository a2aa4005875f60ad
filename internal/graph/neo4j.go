package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// Variable-length hop bounds cannot be query parameters in Cypher, so the
// bound is formatted into the query after validation.
const (
	targetedPathQuery = `
MATCH p = allShortestPaths((current:Role {title: $current})-[:TRANSITIONS_TO*1..%d]->(target:Role {title: $target}))
WITH p,
     reduce(months = 0, r IN relationships(p) | months + r.avg_months) AS total_months,
     toFloat(reduce(diff = 0, r IN relationships(p) | diff + r.difficulty)) / size(relationships(p)) AS avg_difficulty
RETURN [n IN nodes(p) | n.title] AS roles,
       [n IN nodes(p) | n.avg_salary] AS salaries,
       [r IN relationships(p) | r.avg_months] AS hop_months,
       [r IN relationships(p) | r.difficulty] AS hop_difficulties,
       [r IN relationships(p) | r.success_rate] AS hop_success_rates,
       total_months,
       avg_difficulty,
       last([n IN nodes(p) | n.avg_salary]) - head([n IN nodes(p) | n.avg_salary]) AS salary_growth
ORDER BY total_months, avg_difficulty
LIMIT %d`

	openEndedPathQuery = `
MATCH p = (current:Role {title: $current})-[:TRANSITIONS_TO*1..%d]->(target:Role)
WHERE target.title <> $current
WITH DISTINCT p,
     reduce(months = 0, r IN relationships(p) | months + r.avg_months) AS total_months,
     toFloat(reduce(diff = 0, r IN relationships(p) | diff + r.difficulty)) / size(relationships(p)) AS avg_difficulty,
     last([n IN nodes(p) | n.avg_salary]) - head([n IN nodes(p) | n.avg_salary]) AS salary_growth
RETURN [n IN nodes(p) | n.title] AS roles,
       [n IN nodes(p) | n.avg_salary] AS salaries,
       [r IN relationships(p) | r.avg_months] AS hop_months,
       [r IN relationships(p) | r.difficulty] AS hop_difficulties,
       [r IN relationships(p) | r.success_rate] AS hop_success_rates,
       total_months,
       avg_difficulty,
       salary_growth
ORDER BY salary_growth DESC, total_months
LIMIT %d`

	highImportanceSkillsQuery = `
MATCH (r:Role {title: $title})-[req:REQUIRES_SKILL]->(s:Skill)
WHERE req.importance IN ['high', 'critical']
RETURN s.name AS skill_name,
       req.proficiency AS proficiency,
       req.importance AS importance
ORDER BY req.proficiency DESC`

	allRoleTitlesQuery = `MATCH (r:Role) RETURN r.title AS title ORDER BY title`

	allSkillNamesQuery = `MATCH (s:Skill) RETURN s.name AS name ORDER BY name`
)

// Neo4jStore implements Store and Seeder against a Neo4j database.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
	log    *zap.Logger
}

// NewNeo4jStore connects to Neo4j and verifies connectivity.
func NewNeo4jStore(ctx context.Context, uri, username, password string, log *zap.Logger) (*Neo4jStore, error) {
	if log == nil {
		log = zap.NewNop()
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create graph driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("graph database unreachable: %w", err)
	}

	return &Neo4jStore{driver: driver, log: log}, nil
}

// Close releases the connection pool.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// AllRoleTitles lists every role title in the graph.
func (s *Neo4jStore) AllRoleTitles(ctx context.Context) ([]string, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, allRoleTitlesQuery, nil)
		if err != nil {
			return nil, err
		}

		var titles []string
		for res.Next(ctx) {
			if title, ok := res.Record().Get("title"); ok {
				if t, ok := title.(string); ok {
					titles = append(titles, t)
				}
			}
		}
		return titles, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list role titles: %w", err)
	}
	return result.([]string), nil
}

// AllSkillNames lists every skill name in the graph.
func (s *Neo4jStore) AllSkillNames(ctx context.Context) ([]string, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, allSkillNamesQuery, nil)
		if err != nil {
			return nil, err
		}

		var names []string
		for res.Next(ctx) {
			if name, ok := res.Record().Get("name"); ok {
				if n, ok := name.(string); ok {
					names = append(names, n)
				}
			}
		}
		return names, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list skill names: %w", err)
	}
	return result.([]string), nil
}

// FindPaths runs the bounded-hop path search. An empty targetRole switches to
// the open-ended query, which ranks destinations by salary growth.
func (s *Neo4jStore) FindPaths(ctx context.Context, currentRole, targetRole string, maxHops int) ([]types.Path, error) {
	if maxHops <= 0 || maxHops > DefaultMaxHops {
		maxHops = DefaultMaxHops
	}

	var query string
	params := map[string]any{"current": currentRole}
	if targetRole != "" {
		query = fmt.Sprintf(targetedPathQuery, maxHops, TargetedPathLimit)
		params["target"] = targetRole
	} else {
		query = fmt.Sprintf(openEndedPathQuery, maxHops, OpenEndedPathLimit)
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		var paths []types.Path
		for res.Next(ctx) {
			path, err := pathFromRecord(res.Record().AsMap())
			if err != nil {
				s.log.Warn("skipping malformed path record", zap.Error(err))
				continue
			}
			paths = append(paths, path)
		}
		return paths, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("path search failed: %w", err)
	}
	return result.([]types.Path), nil
}

// HighImportanceSkills returns a role's high/critical skill requirements.
func (s *Neo4jStore) HighImportanceSkills(ctx context.Context, roleTitle string) ([]types.SkillRequirement, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, highImportanceSkillsQuery, map[string]any{"title": roleTitle})
		if err != nil {
			return nil, err
		}

		var reqs []types.SkillRequirement
		for res.Next(ctx) {
			req, err := skillRequirementFromRecord(res.Record().AsMap())
			if err != nil {
				s.log.Warn("skipping malformed skill record",
					zap.String("role", roleTitle), zap.Error(err))
				continue
			}
			reqs = append(reqs, req)
		}
		return reqs, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("skill requirement lookup failed: %w", err)
	}
	return result.([]types.SkillRequirement), nil
}

// EnsureSchema creates the uniqueness constraints the upserts rely on.
func (s *Neo4jStore) EnsureSchema(ctx context.Context) error {
	constraints := []string{
		`CREATE CONSTRAINT role_title IF NOT EXISTS FOR (r:Role) REQUIRE r.title IS UNIQUE`,
		`CREATE CONSTRAINT skill_name IF NOT EXISTS FOR (s:Skill) REQUIRE s.name IS UNIQUE`,
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, constraint := range constraints {
		if _, err := session.Run(ctx, constraint, nil); err != nil {
			return fmt.Errorf("failed to create constraint: %w", err)
		}
	}
	return nil
}

// UpsertRole creates or updates a role node keyed by title.
func (s *Neo4jStore) UpsertRole(ctx context.Context, role types.Role) error {
	const query = `
MERGE (r:Role {title: $title})
SET r.industry = $industry,
    r.level = $level,
    r.avg_salary = $avg_salary,
    r.growth_rate = $growth_rate,
    r.demand_score = $demand_score`

	return s.write(ctx, query, map[string]any{
		"title":        role.Title,
		"industry":     role.Industry,
		"level":        role.Level,
		"avg_salary":   role.AvgSalary,
		"growth_rate":  role.GrowthRate,
		"demand_score": role.DemandScore,
	})
}

// UpsertTransition creates or updates a transition edge between role titles.
func (s *Neo4jStore) UpsertTransition(ctx context.Context, fromTitle, toTitle string, t types.Transition) error {
	const query = `
MATCH (from:Role {title: $from}), (to:Role {title: $to})
MERGE (from)-[r:TRANSITIONS_TO]->(to)
SET r.avg_months = $avg_months,
    r.difficulty = $difficulty,
    r.success_rate = $success_rate,
    r.common_path = $common_path`

	return s.write(ctx, query, map[string]any{
		"from":         fromTitle,
		"to":           toTitle,
		"avg_months":   t.AvgMonths,
		"difficulty":   t.Difficulty,
		"success_rate": t.SuccessRate,
		"common_path":  t.CommonPath,
	})
}

// UpsertSkillRequirement links a role to a required skill.
func (s *Neo4jStore) UpsertSkillRequirement(ctx context.Context, roleTitle string, req types.SkillRequirement) error {
	const query = `
MATCH (r:Role {title: $role})
MERGE (s:Skill {name: $skill})
MERGE (r)-[req:REQUIRES_SKILL]->(s)
SET req.proficiency = $proficiency,
    req.importance = $importance`

	return s.write(ctx, query, map[string]any{
		"role":        roleTitle,
		"skill":       req.SkillName,
		"proficiency": req.Proficiency,
		"importance":  req.Importance,
	})
}

func (s *Neo4jStore) write(ctx context.Context, query string, params map[string]any) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, query, params)
	})
	if err != nil {
		return fmt.Errorf("graph write failed: %w", err)
	}
	return nil
}
