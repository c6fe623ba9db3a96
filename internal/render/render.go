// Package render executes theme templates against page contexts.
package render

import (
	"os"
	"path/filepath"
	"time"

	"github.com/flosch/pongo2/v6"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/pages"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/urls"
)

// Template names every theme provides.
const (
	TemplateMain     = "main.html"
	TemplatePost     = "post.html"
	TemplateNotFound = "404.html"
)

// Renderer turns a named template and a context into a page.
type Renderer interface {
	Render(name string, ctx pages.Context) (string, error)
}

// Engine renders templates from one theme directory with pongo2.
type Engine struct {
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// Helpers returns the functions and values every template can use.
func Helpers(now time.Time) pongo2.Context {
	return pongo2.Context{
		"generate_post_url": func(p *post.Post) string {
			return urls.PostURL(p.Slug, p.Title, p.Date)
		},
		"generate_category_url": urls.CategoryURL,
		"generate_tag_url":      urls.TagURL,
		"current_year":          now.Year(),
	}
}

// NewEngine loads templates from themeDir. now fixes current_year for the build.
func NewEngine(themeDir string, now time.Time) (*Engine, error) {
	if info, err := os.Stat(themeDir); err != nil || !info.IsDir() {
		return nil, foundation.ValidationError("theme directory not found").WithContext("path", themeDir).Build()
	}
	loader, err := pongo2.NewLocalFileSystemLoader(themeDir)
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryRender, "open theme").
			WithContext("path", themeDir).Fatal().Build()
	}
	set := pongo2.NewSet(filepath.Base(themeDir), loader)
	set.Globals.Update(Helpers(now))
	return &Engine{set: set, templates: map[string]*pongo2.Template{}}, nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	if tpl, ok := e.templates[name]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryRender, "load template").
			WithContext("template", name).Fatal().Build()
	}
	e.templates[name] = tpl
	return tpl, nil
}

// Render executes the named template with ctx.
func (e *Engine) Render(name string, ctx pages.Context) (string, error) {
	tpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	out, err := tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", foundation.WrapError(err, foundation.CategoryRender, "execute template").
			WithContext("template", name).Fatal().Build()
	}
	return out, nil
}

// WriteFile renders name with ctx into root/rel, creating parent directories.
// rel must stay inside root.
func WriteFile(r Renderer, name string, ctx pages.Context, root, rel string) error {
	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return foundation.FileSystemError("output path escapes the build directory").
			WithContext("path", rel).Build()
	}
	out, err := r.Render(name, ctx)
	if err != nil {
		return err
	}
	path := filepath.Join(root, local)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "create output directory").
			WithContext("path", path).Fatal().Build()
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "write page").
			WithContext("path", path).Fatal().Build()
	}
	return nil
}
