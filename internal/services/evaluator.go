package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"alfredoptarigan/resume-ranker/internal/models"
)

type EvaluatorService interface {
	AnalyzeResume(ctx context.Context, file SourceFile) (*models.AnalysisReport, error)
	RankResumes(ctx context.Context, criteria models.RankCriteria, files []SourceFile) (*models.RankResponse, error)
	ExtractDocument(file SourceFile) (*models.ExtractTextResponse, error)
}

type evaluatorService struct {
	parser        DocumentParserService
	completer     Completer
	promptBuilder *PromptBuilder
}

func NewEvaluatorService(parser DocumentParserService, completer Completer) EvaluatorService {
	return &evaluatorService{
		parser:        parser,
		completer:     completer,
		promptBuilder: NewPromptBuilder(),
	}
}

func (e *evaluatorService) AnalyzeResume(ctx context.Context, file SourceFile) (*models.AnalysisReport, error) {
	log.Printf("📄 Parsing resume %s...\n", file.Name)
	extraction, err := e.parser.Extract(file.Path, file.Ext())
	if err != nil {
		return nil, err
	}
	if !extraction.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, file.Name)
	}

	prompt := e.promptBuilder.BuildResumeReviewPrompt(extraction.Text)
	log.Printf("📝 Review prompt length: %d characters\n", len(prompt))

	log.Println("🤖 Reviewing resume with LLM...")
	response, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	obj, err := RecoverJSON(response)
	if err != nil {
		return nil, err
	}

	report := NormalizeAnalysisReport(obj)
	log.Printf("✅ Review completed for %s (overall %.0f)\n", report.CandidateName, report.Scores.OverallScore)
	return report, nil
}

// RankResumes scores every file against criteria one at a time, in input
// order. A file that cannot be scored becomes a zero-score placeholder and
// never aborts the batch.
func (e *evaluatorService) RankResumes(ctx context.Context, criteria models.RankCriteria, files []SourceFile) (*models.RankResponse, error) {
	if strings.TrimSpace(criteria.JobDescription) == "" || len(files) == 0 {
		return nil, fmt.Errorf("%w: job description or resume files missing", ErrInvalidRequest)
	}
	if criteria.TopN < 0 {
		return nil, fmt.Errorf("%w: top_n must not be negative", ErrInvalidRequest)
	}

	techSkills := NormalizeSkills(criteria.TechSkills)
	softSkills := NormalizeSkills(criteria.SoftSkills)

	results := make([]models.ResumeScore, 0, len(files))
	for _, file := range files {
		results = append(results, e.scoreFile(ctx, criteria, techSkills, softSkills, file))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})

	if criteria.TopN > 0 && criteria.TopN < len(results) {
		results = results[:criteria.TopN]
	}

	return &models.RankResponse{
		Results:    results,
		TechSkills: techSkills,
		SoftSkills: softSkills,
	}, nil
}

func (e *evaluatorService) scoreFile(ctx context.Context, criteria models.RankCriteria, techSkills, softSkills []string, file SourceFile) models.ResumeScore {
	log.Printf("🔍 Processing file: %s\n", file.Name)

	parsed, err := e.extractForRanking(file)
	if err != nil {
		log.Printf("❌ Failed to extract %s: %v\n", file.Name, err)
		score := FailedResumeScore(AnalysisExtractionFailed)
		score.FileName = file.Name
		score.Email = models.EmailNotFound
		return score
	}
	log.Printf("   ↳ email: %s | text length: %d\n", parsed.Email, len(parsed.Text))

	if parsed.Email == models.EmailUnsupportedFile {
		score := FailedResumeScore(AnalysisUnsupportedFile)
		score.FileName = parsed.FileName
		score.Email = parsed.Email
		return score
	}

	score := e.scoreText(ctx, criteria, techSkills, softSkills, parsed.Text)
	score.FileName = parsed.FileName
	score.Email = parsed.Email
	return score
}

// extractForRanking reads text and email for one ranking entry. Unsupported
// files are reported through the email sentinel, not an error.
func (e *evaluatorService) extractForRanking(file SourceFile) (*models.ExtractionResult, error) {
	extraction, err := e.parser.Extract(file.Path, file.Ext())
	if err != nil {
		return nil, err
	}
	if !extraction.Supported() {
		return &models.ExtractionResult{
			FileName: file.Name,
			Email:    models.EmailUnsupportedFile,
		}, nil
	}

	return &models.ExtractionResult{
		FileName: file.Name,
		Email:    EmailOrNotFound(extraction.Text),
		Text:     strings.TrimSpace(extraction.Text),
	}, nil
}

func (e *evaluatorService) scoreText(ctx context.Context, criteria models.RankCriteria, techSkills, softSkills []string, resumeText string) models.ResumeScore {
	prompt := e.promptBuilder.BuildRankingPrompt(criteria.JobDescription, resumeText, techSkills, softSkills, criteria.Weights)

	response, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("❌ LLM Error: %v\n", err)
		return FailedResumeScore(AnalysisLLMFailed)
	}

	obj, err := RecoverJSON(response)
	if err != nil {
		log.Printf("❌ LLM Error: %v\n", err)
		return FailedResumeScore(AnalysisLLMFailed)
	}

	score := NormalizeResumeScore(obj)
	log.Printf("🧠 %s → %.2f\n", score.CandidateName, score.FinalScore)
	return score
}

func (e *evaluatorService) ExtractDocument(file SourceFile) (*models.ExtractTextResponse, error) {
	extraction, err := e.parser.Extract(file.Path, file.Ext())
	if err != nil {
		return nil, err
	}
	if !extraction.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, file.Name)
	}

	response := &models.ExtractTextResponse{
		FileName: file.Name,
		Text:     extraction.Text,
		Email:    EmailOrNotFound(extraction.Text),
	}
	if extraction.Format == models.FormatPDF {
		pages := extraction.PageCount
		response.NumPages = &pages
	}

	return response, nil
}
