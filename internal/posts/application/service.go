package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/inkpress/inkpress/internal/platform/apperror"
	"github.com/inkpress/inkpress/internal/platform/eventbus"
	"github.com/inkpress/inkpress/internal/platform/events"
	"github.com/inkpress/inkpress/internal/platform/logger"
	"github.com/inkpress/inkpress/internal/platform/postgres"
	"github.com/inkpress/inkpress/internal/platform/validator"
	"github.com/inkpress/inkpress/internal/posts/domain"
	"github.com/inkpress/inkpress/internal/posts/ports"
)

// Error definitions for service operations
var (
	ErrPostNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePostNotFound,
		"post not found",
		http.StatusNotFound,
	)

	ErrSlugUnknown = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeSlugNotFound,
		"no post with that slug",
		http.StatusNotFound,
	)

	ErrInvalidPostData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid post data",
		http.StatusBadRequest,
	)

	// ErrDanglingSlug marks a slug that resolves to a post id with no post
	// row. The revision transaction makes this impossible unless the data
	// has been corrupted, so it is reported as a server error and flagged
	// separately from ordinary storage failures.
	ErrDanglingSlug = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeDanglingSlug,
		"slug resolves to a missing post",
		http.StatusInternalServerError,
	)
)

// RecentWindow is the fixed size of the recent-posts index.
const RecentWindow = 10

// RevisionService coordinates publish, update and read-by-slug. Each
// publish/update runs as a single database transaction: post write, slug
// assignment with collision resolution, archive write and redirect
// retargeting either all commit together or none of them do.
type RevisionService struct {
	txm     postgres.TransactionManager
	posts   ports.PostRepository
	slugs   ports.SlugRepository
	archive ports.ArchiveRepository
	bus     *eventbus.Bus
	logger  logger.Logger
}

// NewRevisionService creates a new revision service.
func NewRevisionService(
	txm postgres.TransactionManager,
	posts ports.PostRepository,
	slugs ports.SlugRepository,
	archive ports.ArchiveRepository,
	bus *eventbus.Bus,
	logger logger.Logger,
) *RevisionService {
	return &RevisionService{
		txm:     txm,
		posts:   posts,
		slugs:   slugs,
		archive: archive,
		bus:     bus,
		logger:  logger,
	}
}

var _ ports.RevisionCoordinator = (*RevisionService)(nil)

// Publish creates a new post and its first canonical slug.
func (s *RevisionService) Publish(ctx context.Context, params ports.RevisionParams) (*ports.RevisionResult, error) {
	post, err := domain.NewPost(params.Title, params.Subtitle, params.Content, time.Now())
	if err != nil {
		return nil, ErrInvalidPostData.WithDetails(err.Error())
	}

	tx, err := s.txm.BeginTx(ctx)
	if err != nil {
		return nil, s.storageFailure(ctx, err, "begin publish transaction", "post_id", post.ID)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	posts := s.posts.WithTx(tx.Tx())
	slugs := s.slugs.WithTx(tx.Tx())

	if err := posts.Insert(ctx, post); err != nil {
		return nil, s.storageFailure(ctx, err, "insert post", "post_id", post.ID)
	}

	slug, err := s.createSlug(ctx, slugs, post)
	if err != nil {
		return nil, err
	}

	if err := slugs.Insert(ctx, slug, post.ID); err != nil {
		return nil, s.storageFailure(ctx, err, "insert slug", "post_id", post.ID, "slug", slug)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.storageFailure(ctx, err, "commit publish transaction", "post_id", post.ID)
	}

	s.logger.Info(ctx, "post published", "post_id", post.ID, "slug", slug)
	s.bus.Publish(ctx, eventbus.Event{
		Topic: events.RevisionPublishedTopic,
		Payload: events.RevisionPublishedEvent{
			PostID:     post.ID,
			Title:      post.Title,
			Slug:       slug,
			OccurredAt: time.Now(),
		},
	})

	return &ports.RevisionResult{ID: post.ID, Slug: slug}, nil
}

// Update revises an existing post: archives the pre-image, overwrites the
// post row, resolves the slug (reusing the post's own slug when the base is
// unchanged) and repoints the post's older slugs at the winner.
func (s *RevisionService) Update(ctx context.Context, id uuid.UUID, params ports.RevisionParams) (*ports.RevisionResult, error) {
	tx, err := s.txm.BeginTx(ctx)
	if err != nil {
		return nil, s.storageFailure(ctx, err, "begin update transaction", "post_id", id)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	posts := s.posts.WithTx(tx.Tx())
	slugs := s.slugs.WithTx(tx.Tx())
	archive := s.archive.WithTx(tx.Tx())

	post, err := posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, s.storageFailure(ctx, err, "find post", "post_id", id)
	}

	// Pre-image first, then overwrite.
	if err := archive.Insert(ctx, post); err != nil {
		return nil, s.storageFailure(ctx, err, "archive post", "post_id", id)
	}

	if err := post.Revise(params.Title, params.Subtitle, params.Content, time.Now()); err != nil {
		return nil, ErrInvalidPostData.WithDetails(err.Error())
	}

	if err := posts.Update(ctx, post); err != nil {
		return nil, s.storageFailure(ctx, err, "update post", "post_id", id)
	}

	slug, minted, err := s.updateSlug(ctx, slugs, post)
	if err != nil {
		return nil, err
	}

	if minted {
		if err := slugs.Insert(ctx, slug, post.ID); err != nil {
			return nil, s.storageFailure(ctx, err, "insert slug", "post_id", id, "slug", slug)
		}
	}

	if err := slugs.Retarget(ctx, post.ID, slug); err != nil {
		return nil, s.storageFailure(ctx, err, "retarget slugs", "post_id", id, "slug", slug)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.storageFailure(ctx, err, "commit update transaction", "post_id", id)
	}

	s.logger.Info(ctx, "post updated", "post_id", id, "slug", slug, "slug_minted", minted)
	s.bus.Publish(ctx, eventbus.Event{
		Topic: events.RevisionUpdatedTopic,
		Payload: events.RevisionUpdatedEvent{
			PostID:     post.ID,
			Title:      post.Title,
			Slug:       slug,
			SlugMinted: minted,
			OccurredAt: time.Now(),
		},
	})

	return &ports.RevisionResult{ID: post.ID, Slug: slug}, nil
}

// ReadBySlug resolves a slug to either the post it addresses or a redirect
// to the current canonical slug. Runs outside any transaction; the store's
// isolation guarantees it never sees a half-committed revision.
func (s *RevisionService) ReadBySlug(ctx context.Context, slug string) (*ports.ReadResult, error) {
	// A slug that could never have been issued skips the directory lookup.
	if err := validator.ValidateSlugFormat(slug, domain.MaxSlugLength); err != nil {
		return nil, ErrSlugUnknown
	}

	resolution, err := s.slugs.ResolveCanonical(ctx, slug)
	if err != nil {
		if errors.Is(err, ports.ErrSlugNotFound) {
			return nil, ErrSlugUnknown
		}
		return nil, s.storageFailure(ctx, err, "resolve slug", "slug", slug)
	}

	if resolution.Canonical != slug {
		s.logger.Debug(ctx, "slug superseded", "slug", slug, "canonical", resolution.Canonical)
		return &ports.ReadResult{RedirectTo: resolution.Canonical}, nil
	}

	post, err := s.posts.FindByID(ctx, resolution.PostID)
	if err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			s.logger.Error(ctx, "slug resolves to missing post",
				"slug", slug,
				"post_id", resolution.PostID,
			)
			return nil, ErrDanglingSlug
		}
		return nil, s.storageFailure(ctx, err, "find post", "post_id", resolution.PostID, "slug", slug)
	}

	return &ports.ReadResult{Post: post}, nil
}

// ListRecent returns the fixed recent-posts window for the index page.
func (s *RevisionService) ListRecent(ctx context.Context) ([]*ports.PostSummary, error) {
	summaries, err := s.posts.ListRecent(ctx, RecentWindow)
	if err != nil {
		return nil, s.storageFailure(ctx, err, "list recent posts")
	}
	return summaries, nil
}

// createSlug resolves the slug for a brand new post: the base, or the base
// with the collision count appended.
//
// Two concurrent publishes with the same base can read the same count; the
// loser either commits a higher number or hits the slug uniqueness
// constraint and fails cleanly. Accepted as a rare cosmetic anomaly, the
// transaction is the only serialization point.
func (s *RevisionService) createSlug(ctx context.Context, slugs ports.SlugRepository, post *domain.Post) (string, error) {
	base := post.BaseSlug()

	n, err := slugs.CountSimilar(ctx, base)
	if err != nil {
		return "", s.storageFailure(ctx, err, "count similar slugs", "post_id", post.ID, "base", base)
	}

	return validator.MakeSlugUnique(base, n), nil
}

// updateSlug resolves the slug for an updated post. If the post already
// owns a slug with the new base as prefix, that exact slug is reused and
// nothing is minted; an unchanged title never causes slug churn.
func (s *RevisionService) updateSlug(ctx context.Context, slugs ports.SlugRepository, post *domain.Post) (slug string, minted bool, err error) {
	base := post.BaseSlug()

	similar, err := slugs.FindSimilar(ctx, base)
	if err != nil {
		return "", false, s.storageFailure(ctx, err, "find similar slugs", "post_id", post.ID, "base", base)
	}

	if owned, ok := similar[post.ID]; ok {
		return owned, false, nil
	}

	if len(similar) > 0 {
		return validator.MakeSlugUnique(base, len(similar)), true, nil
	}

	return base, true, nil
}

// storageFailure logs a failed storage operation with its context and wraps
// it in the generic server-error kind. Never retried here; retrying is the
// caller's decision.
func (s *RevisionService) storageFailure(ctx context.Context, err error, op string, args ...any) *apperror.AppError {
	s.logger.Error(ctx, op+" failed", append([]any{"error", err}, args...)...)
	return apperror.Wrap(
		err,
		apperror.CodeInternalError,
		apperror.BusinessCodeStorageFailure,
		op+" failed",
		http.StatusInternalServerError,
	)
}
