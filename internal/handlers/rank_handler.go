package handlers

import (
	"errors"
	"log"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

const errMissingRankInput = "Job description or resume files missing"

var validate = newValidator()

// newValidator reports fields by their form names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		log.Fatalf("❌ Failed to register validator: %v", err)
	}
	return v
}

// isFinite rejects NaN and the infinities, which form parsing accepts.
func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type RankHandler struct {
	storage   services.StorageService
	evaluator services.EvaluatorService
}

func NewRankHandler(storage services.StorageService, evaluator services.EvaluatorService) *RankHandler {
	return &RankHandler{
		storage:   storage,
		evaluator: evaluator,
	}
}

// HandleRank handles POST /rank
func (h *RankHandler) HandleRank(c *fiber.Ctx) error {
	var req models.RankRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	req.JobDescription = strings.TrimSpace(req.JobDescription)

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMissingRankInput,
		})
	}

	headers := form.File["resumes"]
	if req.JobDescription == "" || len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMissingRankInput,
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	staged, cleanup, err := stageUploads(h.storage, headers)
	if err != nil {
		return c.Status(uploadErrorStatus(err)).JSON(fiber.Map{
			"error": uploadErrorMessage(err),
		})
	}
	defer cleanup()

	criteria := models.RankCriteria{
		JobDescription: req.JobDescription,
		TechSkills:     services.SplitSkills(req.TechSkills),
		SoftSkills:     services.SplitSkills(req.SoftSkills),
		Weights:        req.Weights(),
		TopN:           req.TopN,
	}

	log.Printf("📥 [%s] Ranking %d resumes\n", requestID(c), len(staged))
	resp, err := h.evaluator.RankResumes(c.UserContext(), criteria, staged)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": errMissingRankInput,
			})
		}
		log.Printf("❌ [%s] Ranking failed: %v\n", requestID(c), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error during resume ranking",
		})
	}

	return c.JSON(resp)
}

func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Invalid request payload"
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Field())
	}
	return "Invalid value for: " + strings.Join(fields, ", ")
}
