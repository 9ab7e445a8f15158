package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/services"
)

// stageUploads saves every upload to disk. The returned cleanup removes
// whatever was staged and must always be called.
func stageUploads(storage services.StorageService, headers []*multipart.FileHeader) ([]services.SourceFile, func(), error) {
	staged := make([]services.SourceFile, 0, len(headers))
	cleanup := func() {
		for _, file := range staged {
			if err := storage.DeleteFile(file); err != nil {
				log.Printf("⚠️  Failed to remove staged upload %s: %v\n", file.Path, err)
			}
		}
	}

	for _, header := range headers {
		file, err := storage.SaveFile(header)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		staged = append(staged, file)
	}

	return staged, cleanup, nil
}

func uploadErrorStatus(err error) int {
	if errors.Is(err, services.ErrFileTooLarge) {
		return fiber.StatusRequestEntityTooLarge
	}
	return fiber.StatusInternalServerError
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, services.ErrFileTooLarge) {
		return err.Error()
	}
	return fmt.Sprintf("failed to save uploaded file: %v", err)
}

// requestID returns the id set by the requestid middleware, if any.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "-"
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if files, exists := form.File[field]; exists && len(files) > 0 {
		return files[0]
	}
	return nil
}
