// Package synthesis generates cross-industry transition plans when the
// career graph holds no path to a requested target. Plans come from the
// generative text service as structured JSON and are converted into the
// same path shape graph-derived results use.
package synthesis

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/llm"
	"github.com/msaswata15/career-navigation-platform/internal/prompts"
	"github.com/msaswata15/career-navigation-platform/internal/ranking"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

//go:embed schema.json
var planSchema string

// Defaults applied when the service omits a field.
const (
	defaultStepDuration = 12
	defaultDifficulty   = 7.0
	defaultSuccessRate  = 50.0
)

// Outcome is the result of a synthesis attempt. Path is nil when the
// service judged the transition infeasible.
type Outcome struct {
	Feasible         bool
	Path             *types.ScoredPath
	FeasibilityNote  string
	Challenges       []string
	AlternativePaths []string
}

// Synthesizer builds cross-industry transition plans.
type Synthesizer struct {
	llm    llm.Client
	schema *gojsonschema.Schema
	log    *zap.Logger
}

// New creates a Synthesizer. It panics if the embedded plan schema is
// malformed, which only happens on a broken build.
func New(client llm.Client, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(planSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded plan schema: %v", err))
	}
	return &Synthesizer{llm: client, schema: schema, log: log}
}

// plan mirrors the JSON structure the service is instructed to produce.
type plan struct {
	IsFeasible              bool                      `json:"is_feasible"`
	FeasibilityNote         string                    `json:"feasibility_note"`
	EstimatedTimelineMonths int                       `json:"estimated_timeline_months"`
	DifficultyRating        float64                   `json:"difficulty_rating"`
	SalaryInfo              planSalary                `json:"salary_info"`
	SkillAnalysis           planSkills                `json:"skill_analysis"`
	TransitionSteps         []planStep                `json:"transition_steps"`
	Challenges              []string                  `json:"challenges"`
	SuccessTips             []string                  `json:"success_tips"`
	AlternativePaths        []string                  `json:"alternative_paths"`
	RealisticSuccessRate    float64                   `json:"realistic_success_rate"`
	CommunityResources      []types.CommunityResource `json:"community_resources"`
	MentorshipOpportunities []string                  `json:"mentorship_opportunities"`
}

type planSalary struct {
	CurrentRoleAvgSalary    float64 `json:"current_role_avg_salary"`
	TargetRoleAvgSalary     float64 `json:"target_role_avg_salary"`
	InitialSalaryDrop       float64 `json:"initial_salary_drop"`
	LongTermSalaryPotential float64 `json:"long_term_salary_potential"`
	SalaryNote              string  `json:"salary_note"`
}

type planSkills struct {
	TransferableSkills    []string                 `json:"transferable_skills"`
	SkillMatchPercentage  float64                  `json:"skill_match_percentage"`
	SkillsThatTranslate   []types.SkillTranslation `json:"skills_that_translate"`
	MissingCriticalSkills []string                 `json:"missing_critical_skills"`
}

type planStep struct {
	Step              int                      `json:"step"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	DurationMonths    int                      `json:"duration_months"`
	EstimatedSalary   *float64                 `json:"estimated_salary"`
	SkillsToAcquire   []string                 `json:"skills_to_acquire"`
	Actions           []string                 `json:"actions"`
	EstimatedCost     int                      `json:"estimated_cost"`
	LearningResources []types.LearningResource `json:"learning_resources"`
	Certifications    []types.Certification    `json:"certifications"`
	PracticalProjects []types.PracticalProject `json:"practical_projects"`
}

// Synthesize asks the service for a step-by-step transition plan and
// converts it into a scored path. Service, decode, and schema failures all
// surface as errors; an infeasible plan is a successful Outcome without a path.
func (s *Synthesizer) Synthesize(ctx context.Context, currentRole, targetRole string, userSkills []string) (Outcome, error) {
	template := prompts.MustGet("synthesis.json", "cross-industry-plan")
	prompt := prompts.Format(template, map[string]string{
		"CurrentRole": currentRole,
		"TargetRole":  targetRole,
		"UserSkills":  strings.Join(userSkills, ", "),
	})

	reply, err := s.llm.CompleteJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return Outcome{}, fmt.Errorf("plan generation failed: %w", err)
	}
	reply = llm.CleanJSONBlock(reply)

	validation, err := s.schema.Validate(gojsonschema.NewStringLoader(reply))
	if err != nil {
		return Outcome{}, fmt.Errorf("plan is not valid JSON: %w", err)
	}
	if !validation.Valid() {
		return Outcome{}, fmt.Errorf("plan violates schema: %s", formatSchemaErrors(validation))
	}

	var p plan
	if err := json.Unmarshal([]byte(reply), &p); err != nil {
		return Outcome{}, fmt.Errorf("failed to decode plan: %w", err)
	}

	s.log.Info("synthesized cross-industry plan",
		zap.String("current", currentRole),
		zap.String("target", targetRole),
		zap.Bool("feasible", p.IsFeasible),
		zap.Int("steps", len(p.TransitionSteps)))

	if !p.IsFeasible {
		note := p.FeasibilityNote
		if note == "" {
			note = "This transition is very challenging"
		}
		return Outcome{
			Feasible:         false,
			FeasibilityNote:  note,
			Challenges:       p.Challenges,
			AlternativePaths: p.AlternativePaths,
		}, nil
	}

	path := p.toPath(currentRole, targetRole)
	return Outcome{
		Feasible:         true,
		Path:             &path,
		FeasibilityNote:  p.FeasibilityNote,
		Challenges:       p.Challenges,
		AlternativePaths: p.AlternativePaths,
	}, nil
}

// toPath converts a feasible plan into a scored path. Missing figures fall
// back conservatively: a step without a salary inherits the current salary,
// difficulty defaults to 7, success rate to 50%.
func (p *plan) toPath(currentRole, targetRole string) types.ScoredPath {
	currentSalary := int(p.SalaryInfo.CurrentRoleAvgSalary)

	difficulty := p.DifficultyRating
	if difficulty == 0 {
		difficulty = defaultDifficulty
	}
	successRate := p.RealisticSuccessRate
	if successRate == 0 {
		successRate = defaultSuccessRate
	}

	roles := make([]string, 0, len(p.TransitionSteps)+2)
	roles = append(roles, currentRole)

	transitions := make([]types.TransitionDetail, 0, len(p.TransitionSteps))
	prevSalary := currentSalary
	prevRole := currentRole
	for i, step := range p.TransitionSteps {
		title := step.Title
		if title == "" {
			title = fmt.Sprintf("Step %d", i+1)
		}
		roles = append(roles, title)

		stepSalary := currentSalary
		if step.EstimatedSalary != nil {
			stepSalary = int(*step.EstimatedSalary)
		}
		duration := step.DurationMonths
		if duration == 0 {
			duration = defaultStepDuration
		}

		transitions = append(transitions, types.TransitionDetail{
			Step:              i + 1,
			FromRole:          prevRole,
			ToRole:            title,
			DurationMonths:    duration,
			Difficulty:        int(difficulty),
			SuccessRate:       successRate / 100,
			SalaryFrom:        prevSalary,
			SalaryTo:          stepSalary,
			SalaryIncrease:    stepSalary - prevSalary,
			RequiredSkills:    step.SkillsToAcquire,
			SkillsToLearn:     step.SkillsToAcquire,
			Description:       step.Description,
			Actions:           step.Actions,
			EstimatedCost:     step.EstimatedCost,
			LearningResources: step.LearningResources,
			Certifications:    step.Certifications,
			PracticalProjects: step.PracticalProjects,
		})
		prevSalary = stepSalary
		prevRole = title
	}
	roles = append(roles, targetRole)

	finalSalary := int(p.SalaryInfo.TargetRoleAvgSalary)
	if finalSalary == 0 {
		finalSalary = prevSalary
	}
	longTerm := int(p.SalaryInfo.LongTermSalaryPotential)
	if longTerm == 0 {
		longTerm = finalSalary
	}

	timeline := p.EstimatedTimelineMonths
	if timeline == 0 {
		for _, t := range transitions {
			timeline += t.DurationMonths
		}
	}

	missing := dedupeSkills(p.SkillAnalysis.MissingCriticalSkills, p.TransitionSteps)
	matched := make([]types.SkillMatch, 0, len(p.SkillAnalysis.TransferableSkills))
	for _, skill := range p.SkillAnalysis.TransferableSkills {
		matched = append(matched, types.SkillMatch{Required: skill, UserHas: skill, MatchScore: 1})
	}

	feasible := true
	scored := types.ScoredPath{
		Roles:           roles,
		TotalMonths:     timeline,
		AvgDifficulty:   difficulty,
		SalaryGrowth:    finalSalary - currentSalary,
		SkillMatch:      p.SkillAnalysis.SkillMatchPercentage,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Transitions:     transitions,
		IsCrossIndustry: true,
		IsFeasible:      &feasible,
		FeasibilityNote: p.FeasibilityNote,
		Challenges:      p.Challenges,
		SuccessTips:     p.SuccessTips,
		AlternativePaths: p.AlternativePaths,
		SalaryInfo: &types.SalaryInfo{
			CurrentAvg:        currentSalary,
			TargetAvg:         finalSalary,
			InitialDrop:       int(p.SalaryInfo.InitialSalaryDrop),
			LongTermPotential: longTerm,
			Note:              p.SalaryInfo.SalaryNote,
		},
		SkillTranslation:        p.SkillAnalysis.SkillsThatTranslate,
		SuccessRate:             successRate,
		CommunityResources:      p.CommunityResources,
		MentorshipOpportunities: p.MentorshipOpportunities,
	}
	scored.Score = ranking.ScoreCrossIndustry(scored, currentSalary, longTerm, successRate, difficulty)
	return scored
}

// dedupeSkills merges top-level missing skills with every step's
// skills-to-acquire, dropping duplicates while keeping first-seen order.
func dedupeSkills(missing []string, steps []planStep) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(skill string) {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, skill)
	}

	for _, s := range missing {
		add(s)
	}
	for _, step := range steps {
		for _, s := range step.SkillsToAcquire {
			add(s)
		}
	}
	return out
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
