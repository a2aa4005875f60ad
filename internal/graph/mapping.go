package graph

import (
	"fmt"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// pathFromRecord converts one path query record into a Path. The driver
// surfaces integers as int64 and lists as []any, so every value is coerced.
func pathFromRecord(record map[string]any) (types.Path, error) {
	roles, err := asStringSlice(record["roles"])
	if err != nil {
		return types.Path{}, fmt.Errorf("roles: %w", err)
	}
	if len(roles) < 2 {
		return types.Path{}, fmt.Errorf("path has %d roles, need at least 2", len(roles))
	}

	salaries, err := asIntSlice(record["salaries"])
	if err != nil {
		return types.Path{}, fmt.Errorf("salaries: %w", err)
	}
	hopMonths, err := asIntSlice(record["hop_months"])
	if err != nil {
		return types.Path{}, fmt.Errorf("hop_months: %w", err)
	}
	hopDifficulties, err := asIntSlice(record["hop_difficulties"])
	if err != nil {
		return types.Path{}, fmt.Errorf("hop_difficulties: %w", err)
	}
	hopSuccessRates, err := asFloatSlice(record["hop_success_rates"])
	if err != nil {
		return types.Path{}, fmt.Errorf("hop_success_rates: %w", err)
	}

	hops := len(roles) - 1
	if len(salaries) != len(roles) || len(hopMonths) != hops ||
		len(hopDifficulties) != hops || len(hopSuccessRates) != hops {
		return types.Path{}, fmt.Errorf("inconsistent path record: %d roles, %d salaries, %d months, %d difficulties, %d success rates",
			len(roles), len(salaries), len(hopMonths), len(hopDifficulties), len(hopSuccessRates))
	}

	transitions := make([]types.TransitionDetail, hops)
	for i := 0; i < hops; i++ {
		transitions[i] = types.TransitionDetail{
			Step:           i + 1,
			FromRole:       roles[i],
			ToRole:         roles[i+1],
			DurationMonths: hopMonths[i],
			Difficulty:     hopDifficulties[i],
			SuccessRate:    hopSuccessRates[i],
			SalaryFrom:     salaries[i],
			SalaryTo:       salaries[i+1],
			SalaryIncrease: salaries[i+1] - salaries[i],
		}
	}

	totalMonths, err := asInt(record["total_months"])
	if err != nil {
		return types.Path{}, fmt.Errorf("total_months: %w", err)
	}
	avgDifficulty, err := asFloat(record["avg_difficulty"])
	if err != nil {
		return types.Path{}, fmt.Errorf("avg_difficulty: %w", err)
	}
	salaryGrowth, err := asInt(record["salary_growth"])
	if err != nil {
		return types.Path{}, fmt.Errorf("salary_growth: %w", err)
	}

	return types.Path{
		Roles:         roles,
		TotalMonths:   totalMonths,
		AvgDifficulty: avgDifficulty,
		SalaryGrowth:  salaryGrowth,
		Transitions:   transitions,
	}, nil
}

// skillRequirementFromRecord converts one skill query record.
func skillRequirementFromRecord(record map[string]any) (types.SkillRequirement, error) {
	name, ok := record["skill_name"].(string)
	if !ok || name == "" {
		return types.SkillRequirement{}, fmt.Errorf("missing skill_name")
	}
	proficiency, err := asInt(record["proficiency"])
	if err != nil {
		return types.SkillRequirement{}, fmt.Errorf("proficiency: %w", err)
	}
	importance, _ := record["importance"].(string)

	return types.SkillRequirement{
		SkillName:   name,
		Proficiency: proficiency,
		Importance:  importance,
	}, nil
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func asStringSlice(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("element %d: expected string, got %T", i, item)
		}
		out[i] = s
	}
	return out, nil
}

func asIntSlice(v any) ([]int, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", v)
	}
	out := make([]int, len(items))
	for i, item := range items {
		n, err := asInt(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

func asFloatSlice(v any) ([]float64, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", v)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := asFloat(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}
