package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkpress/inkpress/internal/posts/domain"
)

// RevisionParams is the validated input for a publish or update: the title,
// an optional subtitle, and the body content.
type RevisionParams struct {
	Title    string
	Subtitle *string
	Content  string
}

// RevisionResult identifies the post and the canonical slug a successful
// publish or update left behind.
type RevisionResult struct {
	ID   uuid.UUID
	Slug string
}

// ReadResult is the outcome of resolving a slug: either the post addressed
// by it, or the canonical slug the caller should be redirected to.
type ReadResult struct {
	Post *domain.Post
	// RedirectTo is non-empty when the requested slug is superseded. When
	// set, Post is nil; resolution is always a single hop.
	RedirectTo string
}

// RevisionCoordinator is the single entry point for the operations the
// transport layer dispatches: publish, update, read-by-slug, plus the
// recent-posts window for the index page.
type RevisionCoordinator interface {
	Publish(ctx context.Context, params RevisionParams) (*RevisionResult, error)
	Update(ctx context.Context, id uuid.UUID, params RevisionParams) (*RevisionResult, error)
	ReadBySlug(ctx context.Context, slug string) (*ReadResult, error)
	ListRecent(ctx context.Context) ([]*PostSummary, error)
}
