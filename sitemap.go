package pubfront

import (
	"encoding/xml"
	"io"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeSitemap lists the blog index, every tag listing and every post.
func writeSitemap(w io.Writer, base string, posts []BlogPost, tags []string) error {
	urls := []sitemapURL{
		{Loc: BuildURL(base, blogSection)},
	}
	for _, slug := range tagSlugs(tags) {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "tags", slug)})
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, p.Path),
			LastMod: p.Date,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
