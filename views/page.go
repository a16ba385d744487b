package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// Page wraps body in the document shell shared by every page.
func Page(cfg SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := cfg.Locale
		if lang == "" {
			lang = defaultLocale
		}
		title := meta.Title
		if title == "" {
			title = cfg.Name
		} else if title != cfg.Name {
			title += " | " + cfg.Name
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		jsonLD := meta.JSONLD
		if jsonLD == "" {
			jsonLD = WebsiteJsonLD(cfg)
		}

		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title>`)
		if meta.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", meta.Description)
			h.raw(`>`)
		}
		if meta.URL != "" {
			h.raw(`<link rel="canonical"`)
			h.attr("href", meta.URL)
			h.raw(`><meta property="og:url"`)
			h.attr("content", meta.URL)
			h.raw(`>`)
		}
		h.raw(`<meta property="og:title"`)
		h.attr("content", title)
		h.raw(`><meta property="og:type"`)
		h.attr("content", ogType)
		h.raw(`><meta property="og:site_name"`)
		h.attr("content", cfg.Name)
		h.raw(`><link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		h.attr("title", cfg.Name)
		h.raw(`><link rel="stylesheet" href="/public/styles.css"><script type="application/ld+json">`)
		// json.Marshal escapes <, > and &, so the block cannot close the script tag.
		h.raw(jsonLD)
		h.raw(`</script></head><body class="bg-white text-black antialiased dark:bg-gray-950 dark:text-white">`)
		h.raw(`<header class="mx-auto flex max-w-5xl items-center justify-between px-4 py-10"><a href="/blog/" class="text-2xl font-semibold">`)
		h.text(cfg.Name)
		h.raw(`</a></header><main class="mx-auto max-w-5xl px-4">`)
		h.component(ctx, body)
		h.raw(`</main><footer class="mx-auto max-w-5xl px-4 py-8 text-sm text-gray-500 dark:text-gray-400">`)
		h.text("© " + strconv.Itoa(time.Now().Year()))
		if cfg.Author != "" {
			h.text(" " + cfg.Author)
		}
		h.raw(`</footer></body></html>`)
		return h.err
	})
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return Page(cfg, PageMeta{Title: "Page not found"}, message("404", "The page you were looking for does not exist."))
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return Page(cfg, PageMeta{Title: "Server error"}, message("500", "Something went wrong. Please try again later."))
}

func message(code, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="flex flex-col items-start justify-start md:mt-24 md:flex-row md:items-center md:justify-center md:space-x-6"><h1 class="text-6xl font-extrabold leading-9 tracking-tight text-gray-900 dark:text-gray-100 md:px-6 md:text-8xl md:leading-14">`)
		h.text(code)
		h.raw(`</h1><div class="max-w-md"><p class="mb-8">`)
		h.text(text)
		h.raw(`</p><a href="/blog/" class="text-primary-500">Back to all posts</a></div></div>`)
		return h.err
	})
}
