// Package ranking scores candidate career paths and orders them by
// desirability. Two formulas exist: one for graph-derived paths and one for
// synthesized cross-industry plans. Scores are comparable within a single
// response, not across formulas or requests.
package ranking

import (
	"math"
	"sort"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// Graph-path component weights.
const (
	weightSkillMatch   = 0.4
	weightSalaryGrowth = 0.3
	weightTimeline     = 0.2
	weightDifficulty   = 0.1
)

// Cross-industry component weights.
const (
	xWeightSkillMatch  = 0.30
	xWeightSalary      = 0.25
	xWeightSuccessRate = 0.25
	xWeightTimeline    = 0.10
	xWeightDifficulty  = 0.10
)

// ScorePath computes the composite score of a graph-derived path. The
// salary component saturates at one; negative components are not clamped,
// so a very long timeline or a pay cut can drive the score below zero.
// Only relative order matters to ranking.
func ScorePath(p types.ScoredPath) float64 {
	skillComponent := p.SkillMatch / 100
	salaryComponent := math.Min(float64(p.SalaryGrowth)/50000, 1)
	timelineComponent := 1 - float64(p.TotalMonths)/60
	difficultyComponent := 1 - p.AvgDifficulty/10

	return weightSkillMatch*skillComponent +
		weightSalaryGrowth*salaryComponent +
		weightTimeline*timelineComponent +
		weightDifficulty*difficultyComponent
}

// ScoreCrossIndustry computes the 0-100 score of a synthesized plan.
// currentSalary anchors the salary-growth component; salary potential is
// capped at double the current salary.
func ScoreCrossIndustry(p types.ScoredPath, currentSalary, longTermSalary int, successRate float64, difficulty float64) float64 {
	skillComponent := p.SkillMatch / 100

	salaryRatio := 0.0
	if currentSalary > 0 {
		salaryRatio = clamp(float64(longTermSalary)/float64(currentSalary), 0, 2) / 2
	}

	successComponent := successRate / 100
	timelineComponent := math.Max(0, 1-float64(p.TotalMonths)/72)
	difficultyComponent := math.Max(0, 1-difficulty/10)

	score := xWeightSkillMatch*skillComponent +
		xWeightSalary*salaryRatio +
		xWeightSuccessRate*successComponent +
		xWeightTimeline*timelineComponent +
		xWeightDifficulty*difficultyComponent

	return math.Round(score*100*100) / 100
}

// Rank sorts paths by descending score, stably so equal-scored paths keep
// their upstream order. The first element is the recommended path.
func Rank(paths []types.ScoredPath) []types.ScoredPath {
	sorted := make([]types.ScoredPath, len(paths))
	copy(sorted, paths)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
