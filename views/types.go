package views

import "github.com/a-h/templ"

// SiteConfig holds the site-wide settings the layouts read.
// Every page component receives it so nothing is hardcoded.
type SiteConfig struct {
	Name          string
	URL           string
	Description   string
	Author        string
	Locale        string // BCP 47 tag used for <html lang> and date formatting
	Comments      bool   // render the comment block on post pages
	AllPostsLabel string // sidebar entry that links back to /blog
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// PostSummary is one entry of a post list.
type PostSummary struct {
	Path    string // site-relative, without leading slash, e.g. "blog/hello"
	Date    string
	Title   string
	Summary string
	Tags    []string
}

// TagCount is a tag and the number of published articles carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// Pagination describes where a list page sits in its section.
type Pagination struct {
	TotalPages  int
	CurrentPage int
}

// PostNav is the neighbour link shown at the bottom of a post.
type PostNav struct {
	Path  string
	Title string
}

// PostContent is the header data of a single post.
type PostContent struct {
	Path  string
	Slug  string
	Date  string
	Title string
	Tags  []string
}

// ListLayoutProps is everything ListLayoutWithTags needs.
type ListLayoutProps struct {
	Posts               []PostSummary
	Title               string
	InitialDisplayPosts []PostSummary
	Pagination          *Pagination
	Tags                []TagCount
	CurrentPath         string
}

// PostLayoutProps is everything PostSimple needs.
type PostLayoutProps struct {
	Post     PostContent
	Content  templ.Component
	Prev     *PostNav
	Next     *PostNav
	Comments templ.Component
}
