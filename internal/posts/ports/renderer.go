package ports

import (
	"context"

	"github.com/inkpress/inkpress/internal/posts/domain"
)

// Renderer turns resolved posts into response bodies. It is injected into
// the HTTP adapters; the core never formats user-facing output itself.
type Renderer interface {
	RenderPost(ctx context.Context, post *domain.Post) ([]byte, error)
	RenderIndex(ctx context.Context, posts []*PostSummary) ([]byte, error)
}
