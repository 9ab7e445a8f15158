package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"alfredoptarigan/resume-ranker/internal/models"
)

// MaxReviewResumeRunes caps the resume text embedded in the review prompt.
// The ranking prompt always embeds the full resume.
const MaxReviewResumeRunes = 5000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeReviewPrompt creates prompt for the qualitative single resume review
func (pb *PromptBuilder) BuildResumeReviewPrompt(resumeText string) string {
	prompt := fmt.Sprintf(`You are an expert AI resume reviewer.

Your job is to deeply scrutinize the given resume and provide a structured and comprehensive review as an HR expert would.

---

🎯 **Your Tasks:**
1. **Review each section in detail**:
   - Check for measurable impact statements, grammar quality, and ATS readability under "Content Quality"
   - Check presence and clarity of Education, Experience, and Contact Info under "Resume Structure"
   - Check design elements, format suitability, professional email presence, and proper hyperlink handling under "ATS Essentials"

2. **Give a score (0-100)** for each main section:
   - content_quality
   - resume_structure
   - ats_essentials

3. **Also provide ONE overall score (0-100)** that reflects total resume effectiveness and alignment with best practices.

4. **For each main section**, provide:
   - Sub-point evaluations (true/false) with JSON-friendly boolean values
   - A **detailed recruiter-style review in 4-5 lines**, not a generic tip but an accurate, expert-level evaluation

5. **For the final section**, give a highly detailed "overall" analysis (5-6 lines) that:
   - Summarizes strengths and weaknesses
   - Suggests improvements in clarity, layout, ATS success, and professional impact

---

📦 **Expected JSON Output**:
{
  "candidate_name": "Extracted full name from the resume",
  "scores": {
    "content_quality": 0-100,
    "resume_structure": 0-100,
    "ats_essentials": 0-100,
    "overall_score": 0-100
  },
  "subpoints": {
    "content_quality": {
      "impact_statements": true/false,
      "grammar": true/false,
      "ats_readability": true/false
    },
    "resume_structure": {
      "education": true/false,
      "experience": true/false,
      "contact_info": true/false
    },
    "ats_essentials": {
      "format": true/false,
      "design": true/false,
      "email": true/false,
      "hyperlinks": true/false
    }
  },
  "suggestions": {
    "content_quality": "Detailed review for content quality (4-5 lines)",
    "resume_structure": "Detailed review for structure (4-5 lines)",
    "ats_essentials": "Detailed review for ATS essentials (4-5 lines)",
    "overall": "Very detailed final summary (5-6 lines)"
  }
}

---

📄 Resume to Review:
%s`, truncateRunes(resumeText, MaxReviewResumeRunes))

	return strings.TrimSpace(prompt)
}

// BuildRankingPrompt creates prompt for scoring one resume against a job description
func (pb *PromptBuilder) BuildRankingPrompt(jobDescription, resumeText string, techSkills, softSkills []string, weights models.ScoreWeights) string {
	prompt := fmt.Sprintf(`You are an expert AI recruiter assistant.
Your task is to evaluate a candidate's resume based on the following:

### Objective:
Evaluate the candidate's resume against the job description and calculate a **final score (0.0 - 1.0)**.

### Scoring Guidelines:
1. **Base Score:**
   - Start by evaluating the overall alignment of the resume with the JD.
   - Consider roles, responsibilities, and requirements.

2. **Skill-based Improvement:**
   - For each technical skill listed, if the candidate has it (explicitly or implied), increase the score slightly.
   - Do the same for soft skills.
   - Assign individual scores for each skill (0.0 to 1.0) based on strength and evidence.

3. **Custom Weights:**
   - If custom section weights are provided, give additional scrutiny to these sections (skills, experience, education, projects, achievements).
   - Adjust the final score upward or downward slightly based on these weights.

4. **Location Penalty:**
   - If the JD specifies a location and the candidate is in a different city or region, **slightly reduce** the final score.

5. **Final Score Adjustment:**
   - Ensure the final score is between 0.0 and 1.0 after all adjustments.

### Output JSON (STRICT FORMAT):
{
  "candidate_name": "Full name or Unknown",
  "tech_skills_scores": {
    "skill_1": 0.0,
    "skill_2": 0.0
  },
  "soft_skills_scores": {
    "skill_1": 0.0,
    "skill_2": 0.0
  },
  "final_score": 0.0,
  "analysis": "Brief explanation of strengths, weaknesses, and final score reasoning."
}

### Technical Skills to Evaluate:
%s

### Soft Skills to Evaluate:
%s

%s

### Job Description:
%s

### Resume:
%s`,
		FormatSkillList(techSkills),
		FormatSkillList(softSkills),
		FormatWeightBlock(weights),
		jobDescription,
		resumeText,
	)

	return strings.TrimSpace(prompt)
}

// NormalizeSkills trims and lower-cases every skill and drops empty entries.
func NormalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		normalized = append(normalized, skill)
	}
	return normalized
}

// SplitSkills parses a comma separated form value.
func SplitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return NormalizeSkills(strings.Split(raw, ","))
}

func FormatSkillList(skills []string) string {
	normalized := NormalizeSkills(skills)
	if len(normalized) == 0 {
		return "None"
	}
	return strings.Join(normalized, ", ")
}

func FormatWeightBlock(weights models.ScoreWeights) string {
	if !weights.HasEmphasis() {
		return "### Use balanced default weighting across resume sections."
	}

	lines := []string{"### Additional Section Weights:"}
	for _, category := range models.WeightCategories {
		value := weights[category]
		if value <= 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", capitalize(category), formatWeight(value)))
	}
	lines = append(lines, "- Give slightly more importance to sections with higher weights.")

	return strings.Join(lines, "\n")
}

// formatWeight renders 0.5 as "0.5" and 1 as "1.0".
func formatWeight(value float64) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
