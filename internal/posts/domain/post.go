package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/inkpress/inkpress/internal/platform/validator"
)

// Business rule constants
const (
	MaxTitleLength = 200
	MaxSlugLength  = 250

	// SlugTitleRunes is how much of the title feeds the slug. Characters,
	// not bytes.
	SlugTitleRunes = 26
)

// Validation errors
var (
	ErrInvalidTitle   = errors.New("title is required and must not exceed 200 characters")
	ErrInvalidContent = errors.New("content is required")
)

// Post is a blog post. ID is assigned once at creation and never reused.
// PublishedAt is set at creation and never changes afterwards; edits only
// move UpdatedAt. The timestamp keeps the author's zone offset because the
// slug date suffix is derived from the author's wall-clock date.
type Post struct {
	ID          uuid.UUID
	Title       string
	Subtitle    *string
	Content     string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

// NewPost creates a new post with validation. The publication timestamp is
// taken from now, including its zone offset.
func NewPost(title string, subtitle *string, content string, now time.Time) (*Post, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	return &Post{
		ID:          uuid.New(),
		Title:       title,
		Subtitle:    subtitle,
		Content:     content,
		PublishedAt: now,
		UpdatedAt:   now,
	}, nil
}

// Revise replaces the mutable fields with validation. PublishedAt is left
// untouched so the slug date stays anchored to first publication.
func (p *Post) Revise(title string, subtitle *string, content string, now time.Time) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateContent(content); err != nil {
		return err
	}

	p.Title = title
	p.Subtitle = subtitle
	p.Content = content
	p.UpdatedAt = now

	return nil
}

// BaseSlug derives the candidate canonical slug: the first SlugTitleRunes
// characters of the title, slugified, plus a -YYYY-MM-DD suffix from the
// publication date in the post's stored zone offset. Pure and deterministic;
// collision numbering is the slug directory's concern.
func (p *Post) BaseSlug() string {
	short := validator.TruncateRunes(p.Title, SlugTitleRunes)
	return validator.GenerateSlug(short) + p.PublishedAt.Format("-2006-01-02")
}

func validateTitle(title string) error {
	if title == "" || len(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func validateContent(content string) error {
	if content == "" {
		return ErrInvalidContent
	}
	return nil
}
