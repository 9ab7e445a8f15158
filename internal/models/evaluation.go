package models

const UnknownCandidate = "Unknown"

// Weight categories in the order they are rendered into prompts.
const (
	WeightSkills       = "skills"
	WeightExperience   = "experience"
	WeightEducation    = "education"
	WeightProjects     = "projects"
	WeightAchievements = "achievements"
)

var WeightCategories = []string{
	WeightSkills,
	WeightExperience,
	WeightEducation,
	WeightProjects,
	WeightAchievements,
}

// ScoreWeights maps a weight category to a non-negative emphasis. An empty
// or all-zero mapping asks for balanced default weighting.
type ScoreWeights map[string]float64

func (w ScoreWeights) HasEmphasis() bool {
	for _, category := range WeightCategories {
		if w[category] > 0 {
			return true
		}
	}
	return false
}

// RankCriteria is everything a ranking run is scored against.
type RankCriteria struct {
	JobDescription string
	TechSkills     []string
	SoftSkills     []string
	Weights        ScoreWeights
	TopN           int
}

type ResumeScore struct {
	CandidateName    string             `json:"candidate_name"`
	TechSkillsScores map[string]float64 `json:"tech_skills_scores"`
	SoftSkillsScores map[string]float64 `json:"soft_skills_scores"`
	FinalScore       float64            `json:"final_score"`
	Analysis         string             `json:"analysis"`
	FileName         string             `json:"file_name"`
	Email            string             `json:"email"`
}

type AnalysisReport struct {
	CandidateName string              `json:"candidate_name"`
	Scores        AnalysisScores      `json:"scores"`
	Subpoints     AnalysisSubpoints   `json:"subpoints"`
	Suggestions   AnalysisSuggestions `json:"suggestions"`
}

// AnalysisScores are 0-100 section scores.
type AnalysisScores struct {
	ContentQuality  float64 `json:"content_quality"`
	ResumeStructure float64 `json:"resume_structure"`
	ATSEssentials   float64 `json:"ats_essentials"`
	OverallScore    float64 `json:"overall_score"`
}

type AnalysisSubpoints struct {
	ContentQuality  ContentQualityChecks  `json:"content_quality"`
	ResumeStructure ResumeStructureChecks `json:"resume_structure"`
	ATSEssentials   ATSEssentialsChecks   `json:"ats_essentials"`
}

type ContentQualityChecks struct {
	ImpactStatements bool `json:"impact_statements"`
	Grammar          bool `json:"grammar"`
	ATSReadability   bool `json:"ats_readability"`
}

type ResumeStructureChecks struct {
	Education   bool `json:"education"`
	Experience  bool `json:"experience"`
	ContactInfo bool `json:"contact_info"`
}

type ATSEssentialsChecks struct {
	Format     bool `json:"format"`
	Design     bool `json:"design"`
	Email      bool `json:"email"`
	Hyperlinks bool `json:"hyperlinks"`
}

type AnalysisSuggestions struct {
	ContentQuality  string `json:"content_quality"`
	ResumeStructure string `json:"resume_structure"`
	ATSEssentials   string `json:"ats_essentials"`
	Overall         string `json:"overall"`
}
