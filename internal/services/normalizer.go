package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-ranker/internal/models"
)

// Placeholder analysis texts for ranking entries that could not be scored.
const (
	AnalysisLLMFailed        = "LLM failed to respond"
	AnalysisExtractionFailed = "Failed to extract text from resume"
	AnalysisUnsupportedFile  = "Unsupported file type"
)

// NormalizeResumeScore maps a recovered ranking object onto ResumeScore.
// FileName and Email are left for the caller.
func NormalizeResumeScore(obj map[string]any) models.ResumeScore {
	return models.ResumeScore{
		CandidateName:    candidateName(obj),
		TechSkillsScores: asScoreMap(obj["tech_skills_scores"]),
		SoftSkillsScores: asScoreMap(obj["soft_skills_scores"]),
		FinalScore:       RoundScore(asFloat(obj["final_score"])),
		Analysis:         asString(obj["analysis"]),
	}
}

// FailedResumeScore is the zero-score entry used when a resume could not be scored.
func FailedResumeScore(analysis string) models.ResumeScore {
	return models.ResumeScore{
		CandidateName:    models.UnknownCandidate,
		TechSkillsScores: map[string]float64{},
		SoftSkillsScores: map[string]float64{},
		FinalScore:       0.0,
		Analysis:         analysis,
	}
}

// RoundScore rounds half away from zero to 2 decimals and clamps into [0, 1].
func RoundScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	rounded := math.Round(score*100) / 100
	return math.Min(1, math.Max(0, rounded))
}

// NormalizeAnalysisReport maps a recovered review object onto AnalysisReport.
func NormalizeAnalysisReport(obj map[string]any) *models.AnalysisReport {
	scores := asObject(obj["scores"])
	subpoints := asObject(obj["subpoints"])
	content := asObject(subpoints["content_quality"])
	structure := asObject(subpoints["resume_structure"])
	ats := asObject(subpoints["ats_essentials"])
	suggestions := asObject(obj["suggestions"])

	return &models.AnalysisReport{
		CandidateName: candidateName(obj),
		Scores: models.AnalysisScores{
			ContentQuality:  asFloat(scores["content_quality"]),
			ResumeStructure: asFloat(scores["resume_structure"]),
			ATSEssentials:   asFloat(scores["ats_essentials"]),
			OverallScore:    asFloat(scores["overall_score"]),
		},
		Subpoints: models.AnalysisSubpoints{
			ContentQuality: models.ContentQualityChecks{
				ImpactStatements: asBool(content["impact_statements"]),
				Grammar:          asBool(content["grammar"]),
				ATSReadability:   asBool(content["ats_readability"]),
			},
			ResumeStructure: models.ResumeStructureChecks{
				Education:   asBool(structure["education"]),
				Experience:  asBool(structure["experience"]),
				ContactInfo: asBool(structure["contact_info"]),
			},
			ATSEssentials: models.ATSEssentialsChecks{
				Format:     asBool(ats["format"]),
				Design:     asBool(ats["design"]),
				Email:      asBool(ats["email"]),
				Hyperlinks: asBool(ats["hyperlinks"]),
			},
		},
		Suggestions: models.AnalysisSuggestions{
			ContentQuality:  asString(suggestions["content_quality"]),
			ResumeStructure: asString(suggestions["resume_structure"]),
			ATSEssentials:   asString(suggestions["ats_essentials"]),
			Overall:         asString(suggestions["overall"]),
		},
	}
}

func candidateName(obj map[string]any) string {
	name := strings.TrimSpace(asString(obj["candidate_name"]))
	if name == "" {
		return models.UnknownCandidate
	}
	return name
}

func asObject(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

func asScoreMap(v any) map[string]float64 {
	scores := map[string]float64{}
	for skill, raw := range asObject(v) {
		if score, ok := asNumber(raw); ok {
			scores[skill] = score
		}
	}
	return scores
}

func asFloat(v any) float64 {
	f, _ := asNumber(v)
	return f
}

// asNumber accepts JSON numbers and finite numeric strings.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		return false
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
