package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

const (
	sidebarClass      = "hidden max-h-screen h-full sm:flex flex-wrap bg-gray-100 dark:bg-zinc-800/50 shadow-lg transition-colors duration-200 pt-5 rounded min-w-[280px] max-w-[280px]"
	allPostsLinkClass = "font-bold uppercase text-gray-700 dark:text-gray-300 hover:text-primary-500 dark:hover:text-primary-500"
	activeTagClass    = "flex py-2 px-3 uppercase text-sm font-bold text-primary-600/100 dark:text-green-500 p-3 rounded-md bg-zinc-300 dark:bg-white/10 group w-full justify-start cursor-pointer transition ease-in-out"
	tagLinkClass      = "py-2 px-3 uppercase text-sm font-bold text-gray-700 dark:text-gray-300 hover:text-primary-500 dark:hover:text-green-500 hover:bg-zinc-200 rounded-md hover:dark:bg-white/10 hover:font-bold group flex p-3 w-full justify-start cursor-pointer transition ease-in-out"
	postTitleClass    = "text-gray-900 dark:text-gray-100 hover:dark:text-green-400 text-2xl font-bold leading-8 tracking-tight"
)

// DisplayPosts returns the posts a list page shows: the current page slice
// when one is given, otherwise every post of the section.
func (p ListLayoutProps) DisplayPosts() []PostSummary {
	if len(p.InitialDisplayPosts) > 0 {
		return p.InitialDisplayPosts
	}
	return p.Posts
}

// ActiveTagSlug returns the tag slug selected by currentPath, or "" when the
// path is not a tag listing.
func ActiveTagSlug(currentPath string) string {
	_, rest, ok := strings.Cut(currentPath, "/tags/")
	if !ok {
		return ""
	}
	slug, _, _ := strings.Cut(rest, "/")
	return slug
}

// ListLayoutWithTags renders a post list next to a sidebar of tag counts.
// Tags are rendered in the order given; the caller owns sorting.
func ListLayoutWithTags(cfg SiteConfig, props ListLayoutProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div><div class="pb-6 pt-6"><h1 class="sm:hidden text-3xl font-extrabold leading-9 tracking-tight text-gray-900 dark:text-gray-100 sm:text-4xl sm:leading-10 md:text-6xl md:leading-14">`)
		h.text(props.Title)
		h.raw(`</h1></div><div class="flex sm:space-x-24">`)
		writeSidebar(h, cfg, props)
		h.raw(`<div><ul>`)
		for _, post := range props.DisplayPosts() {
			writePostItem(h, cfg, post)
		}
		h.raw(`</ul>`)
		if pg := props.Pagination; pg != nil && pg.TotalPages > 1 {
			h.component(ctx, PaginationNav(*pg, props.CurrentPath))
		}
		h.raw(`</div></div></div>`)
		return h.err
	})
}

func writeSidebar(h *htmlWriter, cfg SiteConfig, props ListLayoutProps) {
	h.raw(`<div`)
	h.attr("class", sidebarClass)
	h.raw(`><div class="py-4 px-6">`)
	if strings.HasPrefix(props.CurrentPath, "/blog") {
		h.raw(`<h3 class="text-primary-500 font-bold uppercase">`)
		h.text(cfg.AllPostsLabel)
		h.raw(`</h3>`)
	} else {
		h.raw(`<a href="/blog/"`)
		h.attr("class", allPostsLinkClass)
		h.raw(`>`)
		h.text(cfg.AllPostsLabel)
		h.raw(`</a>`)
	}
	active := ActiveTagSlug(props.CurrentPath)
	h.raw(`<ul>`)
	for _, item := range props.Tags {
		label := item.Tag + " (" + strconv.Itoa(item.Count) + ")"
		h.raw(`<li class="my-3"><div class="w-full mr-10">`)
		if active != "" && active == Slug(item.Tag) {
			h.raw(`<h3`)
			h.attr("class", activeTagClass)
			h.raw(`>`)
			h.text(label)
			h.raw(`</h3>`)
		} else {
			h.raw(`<a`)
			h.href(TagHref(item.Tag))
			h.attr("class", tagLinkClass)
			h.attr("aria-label", "View posts tagged "+item.Tag)
			h.raw(`>`)
			h.text(label)
			h.raw(`</a>`)
		}
		h.raw(`</div></li>`)
	}
	h.raw(`</ul></div></div>`)
}

func writePostItem(h *htmlWriter, cfg SiteConfig, post PostSummary) {
	h.raw(`<li class="py-5 sm:-ml-6"><article class="space-y-2 flex flex-col xl:space-y-0 hover:bg-gray-100 hover:dark:bg-zinc-800/90 p-2 rounded-lg">`)
	writePublished(h, cfg, post.Date)
	h.raw(`<div class="space-y-3"><div><div class="w-full flex flex-row justify-between"><div class="w-full"><a`)
	h.href(PostHref(post.Path))
	h.attr("class", postTitleClass)
	h.raw(`><div>`)
	h.text(post.Title)
	h.raw(`</div></a></div></div><div class="flex flex-wrap">`)
	for _, tag := range post.Tags {
		writeTag(h, tag)
	}
	h.raw(`</div></div><div class="prose max-w-none text-gray-500 dark:text-gray-400">`)
	h.text(post.Summary)
	h.raw(`</div></div></article></li>`)
}

func writePublished(h *htmlWriter, cfg SiteConfig, date string) {
	h.raw(`<dl><dt class="sr-only">Published on</dt><dd class="text-base font-medium leading-6 text-gray-500 dark:text-gray-400"><time`)
	h.attr("datetime", date)
	h.raw(`>`)
	h.text(FormatDate(date, cfg.Locale))
	h.raw(`</time></dd></dl>`)
}
