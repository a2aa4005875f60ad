// Package types provides type definitions for structured data used throughout the career-navigation system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Role represents a career role node in the graph store.
// Titles are unique within the graph so resolution is unambiguous.
type Role struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Industry    string  `json:"industry"`
	Level       string  `json:"level"`
	AvgSalary   int     `json:"avg_salary"`
	GrowthRate  float64 `json:"growth_rate"`
	DemandScore int     `json:"demand_score"`
}

// Transition represents a directed edge between two roles: an observed career move.
type Transition struct {
	FromRoleID  string  `json:"from_role_id"`
	ToRoleID    string  `json:"to_role_id"`
	AvgMonths   int     `json:"avg_months"`
	Difficulty  int     `json:"difficulty"`   // 1-10 ordinal
	SuccessRate float64 `json:"success_rate"` // 0-1
	CommonPath  bool    `json:"common_path"`
}

// SkillRequirement associates a role with a required skill.
// Only "high"/"critical" importance entries are binding for gap analysis.
type SkillRequirement struct {
	RoleID      string `json:"role_id"`
	SkillID     string `json:"skill_id"`
	SkillName   string `json:"skill_name"`
	Proficiency int    `json:"proficiency"` // 1-5
	Importance  string `json:"importance"`  // low, medium, high, critical
}

// TransitionDetail describes a single hop within a path, enriched with
// per-step skill context and optional learning material.
type TransitionDetail struct {
	Step           int      `json:"step"`
	FromRole       string   `json:"from_role"`
	ToRole         string   `json:"to_role"`
	DurationMonths int      `json:"duration_months"`
	Difficulty     int      `json:"difficulty"`
	SuccessRate    float64  `json:"success_rate"`
	SalaryFrom     int      `json:"salary_from"`
	SalaryTo       int      `json:"salary_to"`
	SalaryIncrease int      `json:"salary_increase"`
	RequiredSkills []string `json:"required_skills"`

	// Populated after gap analysis and enrichment.
	SkillsToLearn     []string           `json:"skills_to_learn,omitempty"`
	SkillsMatch       []SkillMatch       `json:"skills_match,omitempty"`
	Description       string             `json:"description,omitempty"`
	Actions           []string           `json:"actions,omitempty"`
	EstimatedCost     int                `json:"estimated_cost,omitempty"`
	LearningResources []LearningResource `json:"learning_resources,omitempty"`
	Certifications    []Certification    `json:"certifications,omitempty"`
	PracticalProjects []PracticalProject `json:"practical_projects,omitempty"`
}

// Path is an ordered role sequence connected by consecutive transitions.
// Computed per query; never persisted.
type Path struct {
	Roles          []string           `json:"roles"`
	TotalMonths    int                `json:"timeline_months"`
	AvgDifficulty  float64            `json:"difficulty"`
	SalaryGrowth   int                `json:"salary_growth"`
	RequiredSkills []string           `json:"required_skills,omitempty"`
	Transitions    []TransitionDetail `json:"transitions"`
}

// Hops returns the number of transition edges in the path.
func (p *Path) Hops() int {
	return len(p.Transitions)
}

// ScoredPath is a path plus its composite desirability score and, for
// synthesized paths, the auxiliary narrative fields.
type ScoredPath struct {
	Roles           []string           `json:"roles"`
	TotalMonths     int                `json:"timeline_months"`
	AvgDifficulty   float64            `json:"difficulty"`
	SalaryGrowth    int                `json:"salary_growth"`
	SkillMatch      float64            `json:"skill_match"`
	MatchedSkills   []SkillMatch       `json:"matched_skills"`
	MissingSkills   []string           `json:"missing_skills"`
	Transitions     []TransitionDetail `json:"transitions"`
	Score           float64            `json:"score"`
	IsCrossIndustry bool               `json:"is_cross_industry,omitempty"`

	// Cross-industry narrative fields (absent on graph-derived paths).
	IsFeasible              *bool               `json:"is_feasible,omitempty"`
	FeasibilityNote         string              `json:"feasibility_note,omitempty"`
	Challenges              []string            `json:"challenges,omitempty"`
	SuccessTips             []string            `json:"success_tips,omitempty"`
	AlternativePaths        []string            `json:"alternative_paths,omitempty"`
	SalaryInfo              *SalaryInfo         `json:"salary_info,omitempty"`
	SkillTranslation        []SkillTranslation  `json:"skill_translation,omitempty"`
	SuccessRate             float64             `json:"realistic_success_rate,omitempty"`
	CommunityResources      []CommunityResource `json:"community_resources,omitempty"`
	MentorshipOpportunities []string            `json:"mentorship_opportunities,omitempty"`
}

// SalaryInfo summarizes the salary trajectory of a synthesized transition.
type SalaryInfo struct {
	CurrentAvg        int    `json:"current_avg"`
	TargetAvg         int    `json:"target_avg"`
	InitialDrop       int    `json:"initial_drop"`
	LongTermPotential int    `json:"long_term_potential"`
	Note              string `json:"note"`
}

// SkillTranslation maps a current skill to how it applies in the target role.
type SkillTranslation struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// LearningResource points at concrete study material for a skill.
type LearningResource struct {
	Skill          string `json:"skill"`
	ResourceType   string `json:"resource_type"` // youtube, course, documentation, certification, book, bootcamp
	Title          string `json:"title"`
	URL            string `json:"url"`
	Provider       string `json:"provider"`
	Duration       string `json:"duration"`
	Cost           string `json:"cost"`
	Difficulty     string `json:"difficulty"`
	WhyRecommended string `json:"why_recommended"`
}

// Certification describes a credential worth acquiring during a transition step.
type Certification struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	EstimatedCost int    `json:"estimated_cost"`
	StudyDuration string `json:"study_duration"`
	Validity      string `json:"validity"`
	URL           string `json:"url"`
	Importance    string `json:"importance"`
}

// PracticalProject is a hands-on project suggestion for a transition step.
type PracticalProject struct {
	ProjectTitle  string   `json:"project_title"`
	Description   string   `json:"description"`
	EstimatedTime string   `json:"estimated_time"`
	Resources     []string `json:"resources"`
}

// CommunityResource points at a community relevant to the target field.
type CommunityResource struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
