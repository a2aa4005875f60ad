package types

// CareerPathRequest is the caller-supplied query for the path engine.
type CareerPathRequest struct {
	CurrentRole string   `json:"current_role" validate:"required,min=2"`
	TargetRole  string   `json:"target_role,omitempty"`
	UserSkills  []string `json:"user_skills" validate:"dive,min=1"`
}

// CareerPathResponse is the engine's result structure. It is always
// well-formed: business-level "not found" conditions produce empty slices,
// never errors.
type CareerPathResponse struct {
	Paths           []ScoredPath   `json:"paths"`
	RecommendedPath *ScoredPath    `json:"recommended_path"`
	SkillGaps       []PathSkillGap `json:"skill_gaps"`
}

// EmptyResponse returns a well-formed response with no paths.
func EmptyResponse() *CareerPathResponse {
	return &CareerPathResponse{
		Paths:     []ScoredPath{},
		SkillGaps: []PathSkillGap{},
	}
}
