/*
Package site renders a tree of markdown files into a static website.

Sources are read through an fs.FS rooted at the site root, output is written
to the public directory under that root on the local disk.
*/
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/flytaly/mdsite/pkg/log"
	"github.com/flytaly/mdsite/pkg/parser"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotDir        = errors.New("not a directory")
	ErrNoPlaceholder = errors.New("template has no " + ContentPlaceholder + " placeholder")
)

const pageExtension = ".md"

var pageFiles = regexp.MustCompile(`(?i)\` + pageExtension + `$`)

var ExcludedDirs = map[string]bool{"node_modules": true}

// ShouldSkipDir reports hidden and excluded directories
func ShouldSkipDir(name string) bool {
	if name == "." {
		return false
	}
	return strings.HasPrefix(name, ".") || ExcludedDirs[name]
}

// IsPage reports whether name is a markdown source
func IsPage(name string) bool {
	return pageFiles.MatchString(name)
}

type Generator struct {
	fsys fs.FS
	root string // path to the site root on disk
	cfg  Config
	log  log.Logger
}

// New creates a Generator. cfg is normalized, a nil logger discards messages.
func New(fsys fs.FS, root string, cfg Config, logger log.Logger) *Generator {
	if logger == nil {
		logger = log.NewEmptyLog()
	}
	cfg.Normalize()
	return &Generator{fsys: fsys, root: root, cfg: cfg, log: logger}
}

func (g *Generator) Config() Config {
	return g.cfg
}

// PublicPath returns the location on disk of rel inside the public directory
func (g *Generator) PublicPath(rel string) string {
	return filepath.Join(g.root, filepath.FromSlash(g.cfg.PublicDir), filepath.FromSlash(rel))
}

var writeFile = func(absPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(absPath, data, 0644)
}

// Clean removes the public directory and creates it empty
func (g *Generator) Clean() error {
	public := g.PublicPath("")
	if err := os.RemoveAll(public); err != nil {
		return fmt.Errorf("remove %s: %w", public, err)
	}
	g.log.Info("Removed %s", public)
	return os.MkdirAll(public, 0755)
}

func (g *Generator) checkDir(dir string) error {
	fi, err := fs.Stat(g.fsys, dir)
	if err != nil {
		return fmt.Errorf("%s: %w", dir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDir)
	}
	return nil
}

// CopyStatic copies every file of the static directory into the public one
// and returns the number of copied files
func (g *Generator) CopyStatic() (int, error) {
	if err := g.checkDir(g.cfg.StaticDir); err != nil {
		return 0, err
	}
	copied := 0
	err := fs.WalkDir(g.fsys, g.cfg.StaticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != g.cfg.StaticDir && ShouldSkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		data, err := fs.ReadFile(g.fsys, p)
		if err != nil {
			return err
		}
		dest := g.PublicPath(relPath(g.cfg.StaticDir, p))
		if err := writeFile(dest, data); err != nil {
			return err
		}
		copied++
		g.log.Info("Copied %s -> %s", p, dest)
		return nil
	})
	return copied, err
}

// ContentFiles returns the sorted paths of all markdown sources
func (g *Generator) ContentFiles() ([]string, error) {
	if err := g.checkDir(g.cfg.ContentDir); err != nil {
		return nil, err
	}
	var files []string
	err := fs.WalkDir(g.fsys, g.cfg.ContentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != g.cfg.ContentDir && ShouldSkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !IsPage(d.Name()) {
			g.log.Warning("Skipped %s: not a markdown file", p)
			return nil
		}
		files = append(files, p)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// DestPath maps a source inside contentDir to its page path inside the
// public directory
func DestPath(contentDir, src string) string {
	rel := relPath(contentDir, src)
	return rel[:len(rel)-len(path.Ext(rel))] + ".html"
}

func relPath(dir, p string) string {
	if dir == "." {
		return p
	}
	return strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
}

// LoadTemplate reads the page template
func (g *Generator) LoadTemplate() (string, error) {
	data, err := fs.ReadFile(g.fsys, g.cfg.Template)
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	tmpl := string(data)
	if !strings.Contains(tmpl, ContentPlaceholder) {
		return "", fmt.Errorf("%s: %w", g.cfg.Template, ErrNoPlaceholder)
	}
	return tmpl, nil
}

// GeneratePage renders the markdown source src with tmpl and writes it to
// dest inside the public directory
func (g *Generator) GeneratePage(tmpl, src, dest string) error {
	destPath := g.PublicPath(dest)
	g.log.Info("Generating page from %s to %s using %s", src, destPath, g.cfg.Template)

	data, err := fs.ReadFile(g.fsys, src)
	if err != nil {
		return err
	}
	md := string(data)

	content, err := parser.RenderDocument(md)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	title, err := parser.ExtractTitle(md)
	if err != nil {
		return err
	}

	page := ApplyTemplate(tmpl, title, content, g.cfg.BasePath)
	return writeFile(destPath, []byte(page))
}

type PageResult struct {
	Source string
	Dest   string
	Err    error
}

type Report struct {
	Pages    []PageResult
	Assets   int
	Duration time.Duration
}

func (r *Report) Failed() []PageResult {
	var failed []PageResult
	for _, p := range r.Pages {
		if p.Err != nil {
			failed = append(failed, p)
		}
	}
	return failed
}

// Err joins the errors of all failed pages
func (r *Report) Err() error {
	var errs []error
	for _, p := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", p.Source, p.Err))
	}
	return errors.Join(errs...)
}

// Build regenerates the whole site: the public directory is recreated, static
// files are copied and every page is rendered. Inputs are checked before the
// public directory is touched, so a broken source tree leaves the previous
// output in place. A failing page is recorded in the report and does not stop
// the others. The returned error is set only if the build could not run.
func (g *Generator) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	tmpl, err := g.LoadTemplate()
	if err != nil {
		return report, err
	}
	sources, err := g.ContentFiles()
	if err != nil {
		return report, fmt.Errorf("content: %w", err)
	}
	if err := g.checkDir(g.cfg.StaticDir); err != nil {
		return report, fmt.Errorf("copy static: %w", err)
	}

	if err := g.Clean(); err != nil {
		return report, err
	}
	assets, err := g.CopyStatic()
	report.Assets = assets
	if err != nil {
		return report, fmt.Errorf("copy static: %w", err)
	}

	report.Pages = make([]PageResult, len(sources))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Workers, 1))
	for i, src := range sources {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			dest := DestPath(g.cfg.ContentDir, src)
			err := g.GeneratePage(tmpl, src, dest)
			if err != nil {
				g.log.Error("Page %s failed: %v", src, err)
			}
			report.Pages[i] = PageResult{Source: src, Dest: dest, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return report, err
	}

	report.Duration = time.Since(start)
	return report, nil
}
