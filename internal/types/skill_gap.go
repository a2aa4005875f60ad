package types

// SkillMatch pairs a required skill with the user's best-matching skill.
type SkillMatch struct {
	Required   string  `json:"required"`
	UserHas    string  `json:"user_has"`
	MatchScore float64 `json:"match_score"`
}

// SkillGapResult is the outcome of matching a user's skills against a
// required-skill list. Ephemeral, computed per request.
type SkillGapResult struct {
	MatchPercentage float64      `json:"match_percentage"` // always within [0,100]
	MatchedSkills   []SkillMatch `json:"matched_skills"`
	MissingSkills   []string     `json:"missing_skills"`
}

// PathSkillGap reports the gap analysis for one candidate path.
type PathSkillGap struct {
	Roles           []string     `json:"roles"`
	MatchPercentage float64      `json:"match_percentage"`
	MatchedSkills   []SkillMatch `json:"matched_skills"`
	MissingSkills   []string     `json:"missing_skills"`
}
