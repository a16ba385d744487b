package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const navLinkClass = "text-primary-500 hover:text-primary-600 dark:hover:text-primary-400"

// PostSimple renders a single post: header, body, optional comments and
// links to the neighbouring posts.
func PostSimple(cfg SiteConfig, props PostLayoutProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		post := props.Post
		h := &htmlWriter{w: w}
		h.raw(`<section class="mx-auto max-w-3xl px-4 sm:px-6 xl:max-w-5xl xl:px-0"><article class="-mx-3"><div><header><div class="space-y-1 border-b border-gray-200 pb-10 text-center dark:border-gray-700">`)
		writePublished(h, cfg, post.Date)
		h.raw(`<div><h1 class="text-3xl font-extrabold leading-9 tracking-tight text-gray-900 dark:text-gray-100 sm:text-4xl sm:leading-10 md:text-5xl md:leading-14">`)
		h.text(post.Title)
		h.raw(`</h1><div class="flex flex-wrap items-center justify-center">`)
		for _, tag := range post.Tags {
			writeTag(h, tag)
		}
		h.raw(`</div></div></div></header>`)

		h.raw(`<div class="grid-rows-[auto_1fr] divide-y divide-gray-200 pb-8 dark:divide-gray-700 xl:divide-y-0"><div class="divide-y divide-gray-200 dark:divide-gray-700 xl:col-span-3 xl:row-span-2 xl:pb-0"><div class="prose max-w-none pb-8 pt-10 dark:prose-invert">`)
		h.component(ctx, props.Content)
		h.raw(`</div></div>`)

		if cfg.Comments && props.Comments != nil {
			h.raw(`<div class="pb-6 pt-6 text-center text-gray-700 dark:text-gray-300" id="comment">`)
			h.component(ctx, props.Comments)
			h.raw(`</div>`)
		}

		h.raw(`<footer><div class="flex flex-col text-sm font-medium sm:flex-row sm:justify-between sm:text-base">`)
		if prev := props.Prev; prev != nil && prev.Path != "" {
			h.raw(`<div class="pt-4 xl:pt-8"><a`)
			h.href(PostHref(prev.Path))
			h.attr("class", navLinkClass)
			h.attr("aria-label", "Previous post: "+prev.Title)
			h.raw(`>&larr; `)
			h.text(prev.Title)
			h.raw(`</a></div>`)
		}
		if next := props.Next; next != nil && next.Path != "" {
			h.raw(`<div class="pt-4 xl:pt-8"><a`)
			h.href(PostHref(next.Path))
			h.attr("class", navLinkClass)
			h.attr("aria-label", "Next post: "+next.Title)
			h.raw(`>`)
			h.text(next.Title)
			h.raw(` &rarr;</a></div>`)
		}
		h.raw(`</div></footer></div></div></article></section>`)
		return h.err
	})
}
