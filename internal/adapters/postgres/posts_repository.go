package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/inkpress/internal/platform/postgres"
	"github.com/inkpress/inkpress/internal/posts/domain"
	"github.com/inkpress/inkpress/internal/posts/ports"
)

// PostRepository implements ports.PostRepository using PostgreSQL.
type PostRepository struct {
	postgres.BaseRepository
}

// NewPostRepository creates a new PostgreSQL posts repository.
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a repository instance bound to the provided transaction.
func (r *PostRepository) WithTx(tx pgx.Tx) ports.PostRepository {
	return &PostRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Insert saves a new post row.
func (r *PostRepository) Insert(ctx context.Context, post *domain.Post) error {
	// The zone offset is stored alongside the UTC instant so the author's
	// wall-clock date survives the round trip through timestamptz.
	_, offset := post.PublishedAt.Zone()

	query, args, err := r.SB.
		Insert("posts").
		Columns("id", "title", "subtitle", "content", "published_at", "published_offset", "updated_at").
		Values(
			pgtype.UUID{Bytes: post.ID, Valid: true},
			post.Title,
			post.Subtitle,
			post.Content,
			pgtype.Timestamptz{Time: post.PublishedAt, Valid: true},
			offset,
			pgtype.Timestamptz{Time: post.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Insert: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Insert: %w", err)
	}

	return nil
}

// FindByID retrieves a post by its id.
func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query, args, err := r.SB.
		Select("id", "title", "subtitle", "content", "published_at", "published_offset", "updated_at").
		From("posts").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.FindByID: build query: %w", err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.FindByID: %w", err)
	}

	return post, nil
}

// Update overwrites the mutable fields of an existing post. published_at
// and published_offset are deliberately left alone.
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	query, args, err := r.SB.
		Update("posts").
		Set("title", post.Title).
		Set("subtitle", post.Subtitle).
		Set("content", post.Content).
		Set("updated_at", pgtype.Timestamptz{Time: post.UpdatedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: post.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Update: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrPostNotFound
	}

	return nil
}

// ListRecent returns the newest posts with their canonical slugs. The
// canonical slug is the post's single slug row without a redirect pointer.
func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]*ports.PostSummary, error) {
	query, args, err := r.SB.
		Select("p.id", "p.title", "p.subtitle", "s.slug", "p.published_at", "p.published_offset").
		From("posts p").
		Join("slugs s ON s.post_id = p.id AND s.superseded_by IS NULL").
		OrderBy("p.published_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListRecent: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListRecent: %w", err)
	}
	defer rows.Close()

	var summaries []*ports.PostSummary
	for rows.Next() {
		var (
			id          pgtype.UUID
			title       string
			subtitle    *string
			slug        string
			publishedAt pgtype.Timestamptz
			offset      int
		)
		if err := rows.Scan(&id, &title, &subtitle, &slug, &publishedAt, &offset); err != nil {
			return nil, fmt.Errorf("PostRepository.ListRecent: scan: %w", err)
		}
		summaries = append(summaries, &ports.PostSummary{
			ID:          uuid.UUID(id.Bytes),
			Title:       title,
			Subtitle:    subtitle,
			Slug:        slug,
			PublishedAt: publishedAt.Time.In(time.FixedZone("", offset)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostRepository.ListRecent: %w", err)
	}

	return summaries, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		id          pgtype.UUID
		title       string
		subtitle    *string
		content     string
		publishedAt pgtype.Timestamptz
		offset      int
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &title, &subtitle, &content, &publishedAt, &offset, &updatedAt); err != nil {
		return nil, err
	}

	return &domain.Post{
		ID:          uuid.UUID(id.Bytes),
		Title:       title,
		Subtitle:    subtitle,
		Content:     content,
		PublishedAt: publishedAt.Time.In(time.FixedZone("", offset)),
		UpdatedAt:   updatedAt.Time,
	}, nil
}
