package render

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/posts/domain"
	"github.com/inkpress/inkpress/internal/posts/ports"
)

func newTestRenderer(t *testing.T) *HTMLRenderer {
	t.Helper()
	r, err := NewHTMLRenderer(Config{PageRoot: "/blog"})
	require.NoError(t, err)
	return r
}

func testPost(content string) *domain.Post {
	sub := "a closer look"
	return &domain.Post{
		ID:          uuid.New(),
		Title:       "Hello World",
		Subtitle:    &sub,
		Content:     content,
		PublishedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderPost(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.RenderPost(context.Background(), testPost("# Heading\n\nSome *emphasis* here."))

	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<title>Hello World</title>")
	assert.Contains(t, html, "a closer look")
	assert.Contains(t, html, "<h1>Heading</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")
	assert.Contains(t, html, `href="/blog/"`)
	assert.Contains(t, html, "March 5, 2024")
}

func TestRenderPost_GFMTables(t *testing.T) {
	r := newTestRenderer(t)

	content := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	out, err := r.RenderPost(context.Background(), testPost(content))

	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
}

func TestRenderPost_SanitizesScript(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.RenderPost(context.Background(), testPost("hi <script>alert(1)</script> there"))

	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "hi")
}

func TestRenderIndex(t *testing.T) {
	r := newTestRenderer(t)

	sub := "second thoughts"
	posts := []*ports.PostSummary{
		{
			ID:          uuid.New(),
			Title:       "First Post",
			Slug:        "first-post-2024-03-05",
			PublishedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			Title:       "Second Post",
			Subtitle:    &sub,
			Slug:        "second-post-2024-03-04",
			PublishedAt: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		},
	}

	out, err := r.RenderIndex(context.Background(), posts)

	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `href="/blog/first-post-2024-03-05"`)
	assert.Contains(t, html, `href="/blog/second-post-2024-03-04"`)
	assert.Contains(t, html, "second thoughts")
}

func TestRenderIndex_Empty(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.RenderIndex(context.Background(), nil)

	require.NoError(t, err)
	assert.Contains(t, string(out), "Recent posts")
}
