package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

func main() {
	var (
		jdText     string
		jdFile     string
		techSkills string
		softSkills string
		topN       int
	)

	flag.StringVar(&jdText, "jd", "", "Job description text")
	flag.StringVar(&jdFile, "jd-file", "", "Path to a file holding the job description")
	flag.StringVar(&techSkills, "tech", "", "Comma separated technical skills")
	flag.StringVar(&softSkills, "soft", "", "Comma separated soft skills")
	flag.IntVar(&topN, "top-n", 0, "Only print the best N resumes (0 prints all)")

	weightValues := make(map[string]*float64, len(models.WeightCategories))
	for _, category := range models.WeightCategories {
		weightValues[category] = flag.Float64("weight-"+category, 0, "Emphasis on the "+category+" section")
	}
	flag.Parse()

	if jdFile != "" {
		raw, err := os.ReadFile(jdFile)
		if err != nil {
			log.Fatalf("❌ Failed to read job description: %v", err)
		}
		jdText = string(raw)
	}

	paths := flag.Args()
	if strings.TrimSpace(jdText) == "" || len(paths) == 0 {
		log.Fatal("❌ Usage: rank_documents -jd \"...\" [-tech go,sql] [-weight-skills 0.5] resume.pdf resume.docx ...")
	}

	weights := models.ScoreWeights{}
	for category, value := range weightValues {
		if *value < 0 || math.IsNaN(*value) || math.IsInf(*value, 0) {
			log.Fatalf("❌ -weight-%s must be a finite, non-negative number", category)
		}
		weights[category] = *value
	}

	// Load configuration
	cfg := config.Load()

	completer, err := services.NewCompleter(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("❌ Failed to initialize LLM client: %v", err)
	}

	evaluator := services.NewEvaluatorService(services.NewDocumentParserService(), completer)

	files := make([]services.SourceFile, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			log.Printf("⚠️  %s not readable, it will be ranked as a failed entry: %v", path, err)
		}
		files = append(files, services.SourceFile{Name: filepath.Base(path), Path: path})
	}

	log.Printf("🚀 Ranking %d resumes...", len(files))
	resp, err := evaluator.RankResumes(context.Background(), models.RankCriteria{
		JobDescription: jdText,
		TechSkills:     services.SplitSkills(techSkills),
		SoftSkills:     services.SplitSkills(softSkills),
		Weights:        weights,
		TopN:           topN,
	}, files)
	if err != nil {
		log.Fatalf("❌ Ranking failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(resp); err != nil {
		log.Fatalf("❌ Failed to write results: %v", err)
	}

	log.Println("✅ Ranking complete")
}
