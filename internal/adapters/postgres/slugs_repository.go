package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/inkpress/internal/platform/postgres"
	"github.com/inkpress/inkpress/internal/posts/ports"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// SlugRepository implements ports.SlugRepository using PostgreSQL.
type SlugRepository struct {
	postgres.BaseRepository
}

// NewSlugRepository creates a new PostgreSQL slug directory.
func NewSlugRepository(db *pgxpool.Pool) *SlugRepository {
	return &SlugRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a repository instance bound to the provided transaction.
func (r *SlugRepository) WithTx(tx pgx.Tx) ports.SlugRepository {
	return &SlugRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// CountSimilar counts slugs that start with prefix. Slugs only ever contain
// [a-z0-9-], so the prefix needs no LIKE escaping.
func (r *SlugRepository) CountSimilar(ctx context.Context, prefix string) (int, error) {
	query, args, err := r.SB.
		Select("count(*)").
		From("slugs").
		Where(sq.Like{"slug": prefix + "%"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("SlugRepository.CountSimilar: build query: %w", err)
	}

	var count int
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("SlugRepository.CountSimilar: %w", err)
	}

	return count, nil
}

// FindSimilar returns slugs starting with prefix, keyed by owning post id.
// A post owning several similar slugs keeps only one entry; any of them is
// good enough for the reuse-on-update decision.
func (r *SlugRepository) FindSimilar(ctx context.Context, prefix string) (map[uuid.UUID]string, error) {
	query, args, err := r.SB.
		Select("post_id", "slug").
		From("slugs").
		Where(sq.Like{"slug": prefix + "%"}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("SlugRepository.FindSimilar: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("SlugRepository.FindSimilar: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]string)
	for rows.Next() {
		var (
			postID pgtype.UUID
			slug   string
		)
		if err := rows.Scan(&postID, &slug); err != nil {
			return nil, fmt.Errorf("SlugRepository.FindSimilar: scan: %w", err)
		}
		result[uuid.UUID(postID.Bytes)] = slug
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SlugRepository.FindSimilar: %w", err)
	}

	return result, nil
}

// Insert creates a new slug row with no redirect pointer. A uniqueness
// violation is surfaced as ports.ErrSlugExists, never swallowed: the
// collision protocol should make it unreachable, and a silent overwrite
// would corrupt the directory.
func (r *SlugRepository) Insert(ctx context.Context, slug string, postID uuid.UUID) error {
	query, args, err := r.SB.
		Insert("slugs").
		Columns("slug", "post_id").
		Values(slug, pgtype.UUID{Bytes: postID, Valid: true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("SlugRepository.Insert: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("SlugRepository.Insert %q: %w", slug, ports.ErrSlugExists)
		}
		return fmt.Errorf("SlugRepository.Insert: %w", err)
	}

	return nil
}

// ResolveCanonical looks up a slug and returns the owning post id together
// with the slug that currently addresses it.
func (r *SlugRepository) ResolveCanonical(ctx context.Context, slug string) (*ports.SlugResolution, error) {
	query, args, err := r.SB.
		Select("post_id", "COALESCE(superseded_by, slug)").
		From("slugs").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("SlugRepository.ResolveCanonical: build query: %w", err)
	}

	var (
		postID    pgtype.UUID
		canonical string
	)
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&postID, &canonical); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrSlugNotFound
		}
		return nil, fmt.Errorf("SlugRepository.ResolveCanonical: %w", err)
	}

	return &ports.SlugResolution{
		PostID:    uuid.UUID(postID.Bytes),
		Canonical: canonical,
	}, nil
}

// Retarget points every slug of the post directly at canonical and clears
// the canonical row's own pointer. Slugs that pointed elsewhere are
// repointed, not chained, so resolution is always a single hop.
func (r *SlugRepository) Retarget(ctx context.Context, postID uuid.UUID, canonical string) error {
	query, args, err := r.SB.
		Update("slugs").
		Set("superseded_by", sq.Expr("CASE WHEN slug = ? THEN NULL ELSE ? END", canonical, canonical)).
		Where(sq.Eq{"post_id": pgtype.UUID{Bytes: postID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("SlugRepository.Retarget: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("SlugRepository.Retarget: %w", err)
	}

	return nil
}
