package pubfront

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"
)

// buildWorkers bounds how many pages render concurrently during Build.
const buildWorkers = 8

// Build renders every page of the site into outDir as a static tree that any
// file server can host: section and tag lists with their pagination, post
// pages, the 404 page, feed, sitemap and robots.txt. Tag counts are fetched
// once and shared by all list pages; a failure aborts the build.
func (a *App) Build(ctx context.Context, outDir string) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return fmt.Errorf("pubfront: build: %w", err)
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return fmt.Errorf("pubfront: build: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	b := *a
	b.Tags = &onceCounter{inner: a.Tags}
	counts, err := b.Tags.ListArticleTagCounts(ctx)
	if err != nil {
		return fmt.Errorf("pubfront: build: list tag counts: %w", err)
	}
	a.Echo.Logger.Infof("fetched %d tag counts", len(counts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(buildWorkers)

	page := func(rel string, assemble func() (templ.Component, error)) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cmp, err := assemble()
			if err != nil {
				return fmt.Errorf("pubfront: build %s: %w", rel, err)
			}
			if err := writeComponent(ctx, filepath.Join(outDir, rel), cmp); err != nil {
				return err
			}
			a.Echo.Logger.Debugf("wrote %s", rel)
			return nil
		})
	}

	for n := 1; n <= TotalPages(len(posts), a.Config.PostsPerPage); n++ {
		n := n
		page(pageFile(blogSection, n), func() (templ.Component, error) { return b.BlogListPage(ctx, n) })
	}
	for _, slug := range tagSlugs(tags) {
		slug := slug
		tagged, err := a.Cache.ListPosts(slug)
		if err != nil {
			return err
		}
		for n := 1; n <= TotalPages(len(tagged), a.Config.PostsPerPage); n++ {
			n := n
			page(pageFile("tags/"+slug, n), func() (templ.Component, error) { return b.TagListPage(ctx, slug, n) })
		}
	}
	for _, p := range posts {
		slug := p.Slug
		page(filepath.Join(p.Path, "index.html"), func() (templ.Component, error) { return b.PostPage(ctx, slug) })
	}
	page("404.html", func() (templ.Component, error) { return b.NotFoundPage(), nil })

	g.Go(func() error {
		return writeFile(filepath.Join(outDir, "feed.xml"), func(w io.Writer) error {
			return writeRSS(w, a.Config, posts)
		})
	})
	g.Go(func() error {
		return writeFile(filepath.Join(outDir, "sitemap.xml"), func(w io.Writer) error {
			return writeSitemap(w, a.Config.URL, posts, tags)
		})
	})
	g.Go(func() error {
		return writeFile(filepath.Join(outDir, "robots.txt"), func(w io.Writer) error {
			_, err := io.WriteString(w, robotsTxt(a.Config.URL))
			return err
		})
	})
	g.Go(func() error {
		return writeFile(filepath.Join(outDir, "index.html"), func(w io.Writer) error {
			_, err := io.WriteString(w, redirectHTML("/blog/"))
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if err := copyStatic(a.staticDir, filepath.Join(outDir, "public")); err != nil {
		return fmt.Errorf("pubfront: build: copy static: %w", err)
	}
	a.Echo.Logger.Infof("built %d posts and %d tags into %s", len(posts), len(tags), outDir)
	return nil
}

// pageFile is the file that serves listPath(base, n).
func pageFile(base string, n int) string {
	return filepath.Join(strings.TrimPrefix(listPath(base, n), "/"), "index.html")
}

func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	return writeFile(path, func(w io.Writer) error {
		return cmp.Render(ctx, w)
	})
}

// writeFile renders into memory first so a failed render leaves no partial file.
func writeFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func redirectHTML(to string) string {
	return `<!DOCTYPE html><html><head><meta charset="utf-8"><meta http-equiv="refresh" content="0; url=` +
		templ.EscapeString(to) + `"><link rel="canonical" href="` + templ.EscapeString(to) + `"></head><body></body></html>`
}

func copyStatic(src, dst string) error {
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	return os.CopyFS(dst, os.DirFS(src))
}
