package services

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/setidure/blog-api/errs"
	"github.com/setidure/blog-api/models"
)

// Defaults holds the configured fallback values substituted for absent
// optional submission fields.
type Defaults struct {
	Author string
	Image  string
}

// Field constraints for a blog post submission.
const (
	titleMinLen   = 5
	titleMaxLen   = 200
	excerptMinLen = 10
	excerptMaxLen = 500
	contentMinLen = 50
)

// ValidateSubmission gate-checks an inbound payload. All rules are evaluated
// together and every violation is reported, so a client can fix everything in
// one round trip. On success the returned submission has defaults filled in
// for every absent optional field.
func ValidateSubmission(sub models.BlogPostSubmission, defaults Defaults) (models.BlogPostSubmission, *errs.ValidationError) {
	var messages []string

	switch n := utf8.RuneCountInString(sub.Title); {
	case n == 0:
		messages = append(messages, "title is required")
	case n < titleMinLen || n > titleMaxLen:
		messages = append(messages, fmt.Sprintf("title must be between %d and %d characters", titleMinLen, titleMaxLen))
	}

	switch n := utf8.RuneCountInString(sub.Excerpt); {
	case n == 0:
		messages = append(messages, "excerpt is required")
	case n < excerptMinLen || n > excerptMaxLen:
		messages = append(messages, fmt.Sprintf("excerpt must be between %d and %d characters", excerptMinLen, excerptMaxLen))
	}

	switch n := utf8.RuneCountInString(sub.Content); {
	case n == 0:
		messages = append(messages, "content is required")
	case n < contentMinLen:
		messages = append(messages, fmt.Sprintf("content must be at least %d characters", contentMinLen))
	}

	if sub.Image != nil && !isValidURI(*sub.Image) {
		messages = append(messages, "image must be a valid URI")
	}

	if len(messages) > 0 {
		return models.BlogPostSubmission{}, errs.NewValidationError(messages...)
	}

	normalized := sub
	if normalized.Author == nil || *normalized.Author == "" {
		author := defaults.Author
		normalized.Author = &author
	}
	if normalized.Tags == nil {
		normalized.Tags = []string{}
	}
	if normalized.Featured == nil {
		featured := false
		normalized.Featured = &featured
	}
	if normalized.Image == nil || *normalized.Image == "" {
		image := defaults.Image
		normalized.Image = &image
	}
	return normalized, nil
}

// isValidURI accepts absolute URLs and absolute paths like the placeholder
// image URI "/api/placeholder/800/400".
func isValidURI(s string) bool {
	if s == "" {
		return true // empty falls through to the default
	}
	_, err := url.ParseRequestURI(s)
	return err == nil
}
