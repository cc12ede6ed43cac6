// Package htmldoc renders a single HTML page documenting every schema, model
// and field. Names are escaped by the template engine; descriptions may
// carry markup and are sanitised with bluemonday's UGC policy instead.
package htmldoc

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/template"
)

// Name is the generator name.
const Name = "htmldoc"

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded templates so callers can copy and adapt
// them. Overrides are passed back with WithTemplates and must keep the
// templates/page.tmpl path.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// Sanitize strips unsafe markup from a description.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(descriptionPolicy.Sanitize(trimmed))
}

// Option customises the page.
type Option func(*config)

type config struct {
	title       string
	templates   fs.FS
	templateDir string
}

// WithTitle sets the page title. Defaults to "Schema reference".
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// WithTemplateDir loads templates from dir first, falling back to the
// embedded or WithTemplates set for anything dir does not contain.
func WithTemplateDir(dir string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(dir)
	}
}

// WithTemplates replaces the embedded templates.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

type pageField struct {
	Name        string `json:"name"`
	Anchor      string `json:"anchor"`
	Type        string `json:"type"`
	Nullable    bool   `json:"nullable"`
	Description string `json:"description"`
}

type pageModel struct {
	Name        string      `json:"name"`
	Anchor      string      `json:"anchor"`
	Description string      `json:"description,omitempty"`
	Fields      []pageField `json:"fields"`
}

type pageSchema struct {
	Name         string      `json:"name"`
	Anchor       string      `json:"anchor"`
	Description  string      `json:"description,omitempty"`
	DatabaseType string      `json:"databaseType,omitempty"`
	Models       []pageModel `json:"models"`
}

type page struct {
	Schemas []pageSchema `json:"schemas"`
}

type htmldoc struct {
	cfg    config
	engine *template.Engine
}

// New builds the generator. Templates see the page title and generator
// name as the globals title and generator.
func New(options ...Option) (generator.Generator, error) {
	cfg := config{title: "Schema reference", templates: embeddedTemplates}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templates == nil && cfg.templateDir == "" {
		return nil, errors.New("htmldoc: templates are required")
	}
	engine, err := template.New(
		template.WithName(Name),
		template.WithBaseDir(cfg.templateDir),
		template.WithFS(cfg.templates),
		template.WithGlobalData(map[string]any{"title": cfg.title, "generator": Name}),
	)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: %w", err)
	}
	h := &htmldoc{cfg: cfg, engine: engine}
	return generator.NewFunc(Name, h.generate), nil
}

func (h *htmldoc) generate(_ context.Context, tree builder.Tree, out io.Writer) error {
	p := page{Schemas: make([]pageSchema, 0, len(tree.Schemas))}
	for _, s := range tree.Schemas {
		ps := pageSchema{
			Name:         s.Name,
			Anchor:       anchor(builder.Path{Schema: s.Name}),
			Description:  Sanitize(s.Description),
			DatabaseType: s.DatabaseType,
			Models:       make([]pageModel, 0, len(s.Models)),
		}
		for _, m := range s.Models {
			pm := pageModel{
				Name:        m.Name,
				Anchor:      anchor(builder.Path{Schema: s.Name, Model: m.Name}),
				Description: Sanitize(m.Description),
				Fields:      make([]pageField, 0, len(m.Fields)),
			}
			for _, f := range m.Fields {
				pm.Fields = append(pm.Fields, pageField{
					Name:        f.Name,
					Anchor:      anchor(builder.Path{Schema: s.Name, Model: m.Name, Field: f.Name}),
					Type:        string(f.Type),
					Nullable:    f.Bool("nullable"),
					Description: Sanitize(f.Description),
				})
			}
			ps.Models = append(ps.Models, pm)
		}
		p.Schemas = append(p.Schemas, ps)
	}

	if _, err := h.engine.Render("templates/page", p, out); err != nil {
		return &generator.GenerationError{Err: err}
	}
	return nil
}

func anchor(path builder.Path) string {
	return strings.ReplaceAll(template.Snake(path.String()), ".", "-")
}
