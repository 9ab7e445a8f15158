package models

// RankRequest is the non-file part of the multipart ranking form.
type RankRequest struct {
	JobDescription     string  `form:"jd_text" validate:"required"`
	TechSkills         string  `form:"tech_skills"`
	SoftSkills         string  `form:"soft_skills"`
	WeightSkills       float64 `form:"weight_skills" validate:"finite,gte=0"`
	WeightExperience   float64 `form:"weight_experience" validate:"finite,gte=0"`
	WeightEducation    float64 `form:"weight_education" validate:"finite,gte=0"`
	WeightProjects     float64 `form:"weight_projects" validate:"finite,gte=0"`
	WeightAchievements float64 `form:"weight_achievements" validate:"finite,gte=0"`
	TopN               int     `form:"top_n" validate:"gte=0"`
}

func (r *RankRequest) Weights() ScoreWeights {
	return ScoreWeights{
		WeightSkills:       r.WeightSkills,
		WeightExperience:   r.WeightExperience,
		WeightEducation:    r.WeightEducation,
		WeightProjects:     r.WeightProjects,
		WeightAchievements: r.WeightAchievements,
	}
}

type RankResponse struct {
	Results    []ResumeScore `json:"results"`
	TechSkills []string      `json:"tech_skills"`
	SoftSkills []string      `json:"soft_skills"`
}

type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Data    *AnalysisReport `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type ExtractTextResponse struct {
	FileName string `json:"file_name"`
	Text     string `json:"text"`
	NumPages *int   `json:"numpages"`
	Email    string `json:"email"`
}
