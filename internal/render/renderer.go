package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/inkpress/inkpress/internal/posts/domain"
	"github.com/inkpress/inkpress/internal/posts/ports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	pageTemplate  = "page.html.tmpl"
	indexTemplate = "index.html.tmpl"
)

// Config controls the HTML renderer.
type Config struct {
	// PageRoot is prepended to generated links.
	PageRoot string
	// TemplatesDir optionally overrides the embedded templates with files
	// on disk.
	TemplatesDir string
	// Reload re-parses the on-disk templates on every render. Development
	// convenience only; requires TemplatesDir.
	Reload bool
}

// HTMLRenderer renders posts to full HTML pages: the markdown body goes
// through goldmark, the result through a sanitizer, and the sanitized HTML
// into the page template.
type HTMLRenderer struct {
	cfg    Config
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu  sync.RWMutex // guards tpl when Reload swaps it
	tpl *template.Template
}

// NewHTMLRenderer creates a renderer. Templates come from TemplatesDir when
// set, otherwise from the embedded copies.
func NewHTMLRenderer(cfg Config) (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		cfg: cfg,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		policy: bluemonday.UGCPolicy(),
	}

	tpl, err := r.parseTemplates()
	if err != nil {
		return nil, err
	}
	r.tpl = tpl

	return r, nil
}

var _ ports.Renderer = (*HTMLRenderer)(nil)

type pageData struct {
	Title       string
	Subtitle    *string
	Body        template.HTML
	PublishedAt time.Time
	PageRoot    string
}

// RenderPost renders a single post page.
func (r *HTMLRenderer) RenderPost(ctx context.Context, post *domain.Post) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(post.Content), &body); err != nil {
		return nil, fmt.Errorf("render post %s: markdown: %w", post.ID, err)
	}

	data := pageData{
		Title:       post.Title,
		Subtitle:    post.Subtitle,
		Body:        template.HTML(r.policy.SanitizeBytes(body.Bytes())),
		PublishedAt: post.PublishedAt,
		PageRoot:    r.cfg.PageRoot,
	}

	return r.execute(ctx, pageTemplate, data)
}

type indexData struct {
	Posts    []*ports.PostSummary
	PageRoot string
}

// RenderIndex renders the recent-posts index page.
func (r *HTMLRenderer) RenderIndex(ctx context.Context, posts []*ports.PostSummary) ([]byte, error) {
	data := indexData{
		Posts:    posts,
		PageRoot: r.cfg.PageRoot,
	}
	return r.execute(ctx, indexTemplate, data)
}

func (r *HTMLRenderer) execute(ctx context.Context, name string, data any) ([]byte, error) {
	if r.cfg.Reload && r.cfg.TemplatesDir != "" {
		tpl, err := r.parseTemplates()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.tpl = tpl
		r.mu.Unlock()
	}

	r.mu.RLock()
	tpl := r.tpl
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

func (r *HTMLRenderer) parseTemplates() (*template.Template, error) {
	if r.cfg.TemplatesDir != "" {
		tpl, err := template.ParseGlob(filepath.Join(r.cfg.TemplatesDir, "*.tmpl"))
		if err != nil {
			return nil, fmt.Errorf("parse templates from %s: %w", r.cfg.TemplatesDir, err)
		}
		return tpl, nil
	}

	tpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	return tpl, nil
}
