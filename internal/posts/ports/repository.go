package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inkpress/inkpress/internal/posts/domain"
)

// Repository errors - the canonical errors repository implementations
// return. The PostgreSQL implementations translate driver-level conditions
// (pgx.ErrNoRows, unique violations) to these.
var (
	// ErrPostNotFound is returned when a post cannot be found by id.
	ErrPostNotFound = errors.New("post not found")

	// ErrSlugNotFound is returned when a slug was never issued.
	ErrSlugNotFound = errors.New("slug not found")

	// ErrSlugExists is returned on a uniqueness violation inserting a slug.
	// The collision-resolution protocol should make this unreachable; it is
	// surfaced rather than swallowed so a protocol bug cannot silently
	// overwrite a mapping.
	ErrSlugExists = errors.New("slug already exists")
)

// PostSummary is a lightweight DTO for the recent-posts index. Slug is the
// post's current canonical slug.
type PostSummary struct {
	ID          uuid.UUID
	Title       string
	Subtitle    *string
	Slug        string
	PublishedAt time.Time
}

// SlugResolution is the result of looking up a slug in the directory.
type SlugResolution struct {
	PostID uuid.UUID
	// Canonical is the slug that currently addresses the post: the
	// superseded-by pointer when the looked-up slug is retired, or the
	// looked-up slug itself.
	Canonical string
}

// PostRepository persists current post content.
type PostRepository interface {
	// Insert saves a new post. Fails if the id already exists.
	Insert(ctx context.Context, post *domain.Post) error

	// FindByID retrieves a post by its id.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// Update overwrites the mutable fields of an existing post.
	Update(ctx context.Context, post *domain.Post) error

	// ListRecent returns the most recently published posts with their
	// canonical slugs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*PostSummary, error)

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) PostRepository
}

// SlugRepository is the slug directory: every slug ever issued, with
// redirect pointers for the retired ones.
type SlugRepository interface {
	// CountSimilar counts existing slugs that start with prefix.
	CountSimilar(ctx context.Context, prefix string) (int, error)

	// FindSimilar returns existing slugs starting with prefix, keyed by
	// owning post id.
	FindSimilar(ctx context.Context, prefix string) (map[uuid.UUID]string, error)

	// Insert creates a new slug row with no superseded-by pointer.
	// Returns ErrSlugExists if the slug is already taken.
	Insert(ctx context.Context, slug string, postID uuid.UUID) error

	// ResolveCanonical looks up a slug. Returns ErrSlugNotFound if the slug
	// was never issued.
	ResolveCanonical(ctx context.Context, slug string) (*SlugResolution, error)

	// Retarget makes canonical the single live slug for the post: every
	// other slug row of the post is pointed directly at it (superseded
	// slugs are repointed, never chained), and the canonical row's own
	// pointer is cleared.
	Retarget(ctx context.Context, postID uuid.UUID, canonical string) error

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) SlugRepository
}

// ArchiveRepository is the append-only archive of superseded post versions.
type ArchiveRepository interface {
	// Insert writes a snapshot of the post's current field values. Called
	// immediately before an update overwrites the post row.
	Insert(ctx context.Context, post *domain.Post) error

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx pgx.Tx) ArchiveRepository
}
