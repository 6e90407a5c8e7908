package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Slug validation errors
var (
	ErrInvalidSlugFormat = errors.New("slug must contain only lowercase letters, numbers, and hyphens")
	ErrSlugEmpty         = errors.New("slug cannot be empty")
	ErrSlugTooLong       = errors.New("slug is too long")
)

// Compile regex patterns once at package level
var (
	slugValidationRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugReplaceRegex    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugCollapseRegex   = regexp.MustCompile(`-+`)
)

// ValidateSlugFormat checks if a slug has valid format.
func ValidateSlugFormat(slug string, maxLength int) error {
	if slug == "" {
		return ErrSlugEmpty
	}

	if len(slug) > maxLength {
		return ErrSlugTooLong
	}

	if !slugValidationRegex.MatchString(slug) {
		return ErrInvalidSlugFormat
	}

	return nil
}

// GenerateSlug creates a URL-safe slug from a text string: lowercase,
// punctuation stripped, whitespace runs collapsed to single hyphens.
func GenerateSlug(text string) string {
	slug := strings.ToLower(text)

	// Replace spaces and special characters with hyphens
	slug = slugReplaceRegex.ReplaceAllString(slug, "-")

	// Remove leading/trailing hyphens
	slug = strings.Trim(slug, "-")

	// Collapse multiple hyphens
	slug = slugCollapseRegex.ReplaceAllString(slug, "-")

	return slug
}

// TruncateRunes returns at most n characters of s. Characters are counted,
// not bytes, so a multi-byte character is never split.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// MakeSlugUnique appends a numeric suffix to disambiguate a colliding slug.
func MakeSlugUnique(baseSlug string, suffix int) string {
	if suffix <= 0 {
		return baseSlug
	}

	return fmt.Sprintf("%s-%d", baseSlug, suffix)
}
