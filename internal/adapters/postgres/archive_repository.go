package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/inkpress/internal/platform/postgres"
	"github.com/inkpress/inkpress/internal/posts/domain"
	"github.com/inkpress/inkpress/internal/posts/ports"
)

// ArchiveRepository implements ports.ArchiveRepository using PostgreSQL.
// Snapshots are stored as jsonb, one row per superseded version, ordered by
// a serial key. Write-only: nothing in the core reads them back.
type ArchiveRepository struct {
	postgres.BaseRepository
}

// NewArchiveRepository creates a new PostgreSQL archive repository.
func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a repository instance bound to the provided transaction.
func (r *ArchiveRepository) WithTx(tx pgx.Tx) ports.ArchiveRepository {
	return &ArchiveRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// postSnapshot is the serialized pre-image. The zone offset is captured
// explicitly because JSON timestamps round-trip through RFC 3339.
type postSnapshot struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Subtitle        *string   `json:"subtitle,omitempty"`
	Content         string    `json:"content"`
	PublishedAt     time.Time `json:"published_at"`
	PublishedOffset int       `json:"published_offset"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Insert writes a snapshot of the post's current field values.
func (r *ArchiveRepository) Insert(ctx context.Context, post *domain.Post) error {
	_, offset := post.PublishedAt.Zone()
	snapshot, err := json.Marshal(postSnapshot{
		ID:              post.ID,
		Title:           post.Title,
		Subtitle:        post.Subtitle,
		Content:         post.Content,
		PublishedAt:     post.PublishedAt,
		PublishedOffset: offset,
		UpdatedAt:       post.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("ArchiveRepository.Insert: marshal snapshot: %w", err)
	}

	query, args, err := r.SB.
		Insert("post_archive").
		Columns("post_id", "snapshot").
		Values(pgtype.UUID{Bytes: post.ID, Valid: true}, snapshot).
		ToSql()
	if err != nil {
		return fmt.Errorf("ArchiveRepository.Insert: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ArchiveRepository.Insert: %w", err)
	}

	return nil
}

var _ ports.ArchiveRepository = (*ArchiveRepository)(nil)
