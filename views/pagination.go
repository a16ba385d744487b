package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.CurrentPage-1 > 0
}

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool {
	return p.CurrentPage+1 <= p.TotalPages
}

// PrevHref links to the previous page. Page 1 is the section root.
func (p Pagination) PrevHref(basePath string) string {
	if p.CurrentPage-1 == 1 {
		return "/" + basePath + "/"
	}
	return pageHref(basePath, p.CurrentPage-1)
}

// NextHref links to the next page.
func (p Pagination) NextHref(basePath string) string {
	return pageHref(basePath, p.CurrentPage+1)
}

func pageHref(basePath string, n int) string {
	return "/" + basePath + "/page/" + strconv.Itoa(n) + "/"
}

// BasePath strips the leading slash and any trailing /page/<n> from a
// request path: "/tags/go/page/3/" becomes "tags/go".
func BasePath(currentPath string) string {
	segs := strings.Split(strings.Trim(currentPath, "/"), "/")
	if n := len(segs); n >= 2 && segs[n-2] == "page" {
		if _, err := strconv.Atoi(segs[n-1]); err == nil {
			segs = segs[:n-2]
		}
	}
	return strings.Join(segs, "/")
}

// PaginationNav renders the previous/next navigation for a list page.
// A direction that does not exist is rendered as a disabled button.
func PaginationNav(p Pagination, currentPath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		base := BasePath(currentPath)
		h := &htmlWriter{w: w}
		h.raw(`<div class="space-y-2 pb-8 pt-6 md:space-y-5"><nav class="flex justify-between">`)
		if p.HasPrev() {
			h.raw(`<a`)
			h.href(p.PrevHref(base))
			h.raw(` rel="prev">Previous</a>`)
		} else {
			h.raw(`<button class="cursor-auto disabled:opacity-50" disabled>Previous</button>`)
		}
		h.raw(`<span>`)
		h.text(strconv.Itoa(p.CurrentPage) + " of " + strconv.Itoa(p.TotalPages))
		h.raw(`</span>`)
		if p.HasNext() {
			h.raw(`<a`)
			h.href(p.NextHref(base))
			h.raw(` rel="next">Next</a>`)
		} else {
			h.raw(`<button class="cursor-auto disabled:opacity-50" disabled>Next</button>`)
		}
		h.raw(`</nav></div>`)
		return h.err
	})
}
