package services

import (
	"regexp"

	"alfredoptarigan/resume-ranker/internal/models"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// FindFirstEmail returns the first email-shaped token in text in document order.
func FindFirstEmail(text string) (string, bool) {
	email := emailPattern.FindString(text)
	return email, email != ""
}

// EmailOrNotFound substitutes the "Not Found" sentinel when text has no email.
func EmailOrNotFound(text string) string {
	if email, ok := FindFirstEmail(text); ok {
		return email
	}
	return models.EmailNotFound
}
