package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkpress/inkpress/internal/platform/eventbus"
)

// Event topics for post revisions
const (
	RevisionPublishedTopic eventbus.Topic = "revision.published"
	RevisionUpdatedTopic   eventbus.Topic = "revision.updated"
)

// RevisionPublishedEvent is emitted after a new post is committed.
type RevisionPublishedEvent struct {
	PostID     uuid.UUID
	Title      string
	Slug       string
	OccurredAt time.Time
}

// RevisionUpdatedEvent is emitted after an update to an existing post is
// committed. Slug carries the winning canonical slug, which may be the same
// one the post already had.
type RevisionUpdatedEvent struct {
	PostID     uuid.UUID
	Title      string
	Slug       string
	SlugMinted bool // true when the update created a new canonical slug
	OccurredAt time.Time
}
