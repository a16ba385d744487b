package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const tagClass = "mr-3 text-sm font-medium uppercase text-primary-500 hover:text-primary-600 dark:hover:text-primary-400"

// Tag renders a tag pill linking to the tag's listing.
func Tag(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		writeTag(h, text)
		return h.err
	})
}

func writeTag(h *htmlWriter, text string) {
	h.raw(`<a`)
	h.href(TagHref(text))
	h.attr("class", tagClass)
	h.raw(`>`)
	h.text(strings.Join(strings.Split(text, " "), "-"))
	h.raw(`</a>`)
}
