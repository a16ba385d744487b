package pubfront

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/a-h/templ"

	"github.com/eringen/pubfront/markdown"
	"github.com/eringen/pubfront/views"
)

const blogSection = "blog"

// BlogListPage assembles page n of the full post list.
func (a *App) BlogListPage(ctx context.Context, page int) (templ.Component, error) {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return nil, err
	}
	return a.listPage(ctx, posts, a.Config.AllPostsLabel, blogSection, page)
}

// TagListPage assembles page n of the posts tagged with tagSlug.
// Unknown tags yield ErrNotFound.
func (a *App) TagListPage(ctx context.Context, tagSlug string, page int) (templ.Component, error) {
	if tagSlug == "" {
		return nil, ErrNotFound
	}
	name, err := a.Cache.TagName(tagSlug)
	if err != nil {
		return nil, err
	}
	posts, err := a.Cache.ListPosts(tagSlug)
	if err != nil {
		return nil, err
	}
	return a.listPage(ctx, posts, tagTitle(name), "tags/"+tagSlug, page)
}

// tagTitle capitalizes the first letter and joins words with '-'.
func tagTitle(tag string) string {
	t := strings.Join(strings.Split(tag, " "), "-")
	r, size := utf8.DecodeRuneInString(t)
	if r == utf8.RuneError {
		return t
	}
	return string(unicode.ToUpper(r)) + t[size:]
}

// TotalPages returns how many pages n posts fill; an empty section still
// has one page.
func TotalPages(n, perPage int) int {
	if n <= perPage {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// listPath returns the request path of page n of a section.
func listPath(basePath string, page int) string {
	if page == 1 {
		return "/" + basePath + "/"
	}
	return "/" + basePath + "/page/" + strconv.Itoa(page) + "/"
}

func (a *App) listPage(ctx context.Context, posts []BlogPost, title, basePath string, page int) (templ.Component, error) {
	perPage := a.Config.PostsPerPage
	total := TotalPages(len(posts), perPage)
	if page < 1 || page > total {
		return nil, ErrNotFound
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}

	counts, err := a.Tags.ListArticleTagCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("pubfront: list tag counts: %w", err)
	}

	currentPath := listPath(basePath, page)
	props := views.ListLayoutProps{
		Posts:               summaries(posts),
		Title:               title,
		InitialDisplayPosts: summaries(posts[start:end]),
		Pagination:          &views.Pagination{TotalPages: total, CurrentPage: page},
		Tags:                viewTagCounts(counts),
		CurrentPath:         currentPath,
	}
	meta := views.PageMeta{
		Title:       title,
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL, currentPath),
		OGType:      "website",
	}
	cfg := a.Config.View()
	return views.Page(cfg, meta, views.ListLayoutWithTags(cfg, props)), nil
}

// PostPage assembles the detail page of the post with slug.
func (a *App) PostPage(ctx context.Context, slug string) (templ.Component, error) {
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		return nil, err
	}
	prev, next, err := a.Cache.Neighbors(slug)
	if err != nil {
		return nil, err
	}

	props := views.PostLayoutProps{
		Post:    post.content(),
		Content: markdown.Markdown(post.Content),
	}
	if prev != nil {
		props.Prev = prev.nav()
	}
	if next != nil {
		props.Next = next.nav()
	}
	if a.comments != nil {
		props.Comments = a.comments(post)
	}

	description := post.Summary
	if description == "" {
		description = markdown.PlainText(post.Content, 160)
	}
	cfg := a.Config.View()
	meta := views.PageMeta{
		Title:       post.Title,
		Description: description,
		URL:         BuildURL(a.Config.URL, post.Path),
		OGType:      "article",
		JSONLD:      views.BlogPostingJsonLD(cfg, post.content(), description),
	}
	return views.Page(cfg, meta, views.PostSimple(cfg, props)), nil
}

// NotFoundPage is the 404 page.
func (a *App) NotFoundPage() templ.Component {
	return views.NotFound(a.Config.View())
}

// ServerErrorPage is the 500 page.
func (a *App) ServerErrorPage() templ.Component {
	return views.ServerError(a.Config.View())
}
