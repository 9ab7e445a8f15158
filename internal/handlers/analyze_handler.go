package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

type AnalyzeHandler struct {
	storage   services.StorageService
	evaluator services.EvaluatorService
}

func NewAnalyzeHandler(storage services.StorageService, evaluator services.EvaluatorService) *AnalyzeHandler {
	return &AnalyzeHandler{
		storage:   storage,
		evaluator: evaluator,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.AnalyzeResponse{
			Error: "Invalid file format",
		})
	}

	header := firstFile(form, "resume")
	if header == nil || !isSupportedUpload(header.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(models.AnalyzeResponse{
			Error: "Invalid file format",
		})
	}

	staged, cleanup, err := stageUploads(h.storage, []*multipart.FileHeader{header})
	if err != nil {
		return c.Status(uploadErrorStatus(err)).JSON(models.AnalyzeResponse{
			Error: uploadErrorMessage(err),
		})
	}
	defer cleanup()

	report, err := h.evaluator.AnalyzeResume(c.UserContext(), staged[0])
	if err != nil {
		log.Printf("❌ [%s] Error analyzing resume %s: %v\n", requestID(c), header.Filename, err)
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(models.AnalyzeResponse{
				Error: "Invalid file format",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.AnalyzeResponse{
			Error: "Error during resume analysis",
		})
	}

	return c.JSON(models.AnalyzeResponse{
		Success: true,
		Data:    report,
	})
}

func isSupportedUpload(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
