package handlers

import (
	"errors"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/services"
)

type ExtractHandler struct {
	storage   services.StorageService
	evaluator services.EvaluatorService
}

func NewExtractHandler(storage services.StorageService, evaluator services.EvaluatorService) *ExtractHandler {
	return &ExtractHandler{
		storage:   storage,
		evaluator: evaluator,
	}
}

// HandleExtract handles POST /extract-text
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	header := firstFile(form, "resume")
	if header == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	staged, cleanup, err := stageUploads(h.storage, []*multipart.FileHeader{header})
	if err != nil {
		return c.Status(uploadErrorStatus(err)).JSON(fiber.Map{
			"error": uploadErrorMessage(err),
		})
	}
	defer cleanup()

	resp, err := h.evaluator.ExtractDocument(staged[0])
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported file type",
			})
		}
		log.Printf("❌ [%s] Failed to extract %s: %v\n", requestID(c), header.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to extract text",
		})
	}

	return c.JSON(resp)
}
