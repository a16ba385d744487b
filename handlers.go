package pubfront

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubfront/tagcount"
)

func (a *App) handleBlog(c echo.Context) error {
	cmp, err := a.BlogListPage(c.Request().Context(), 1)
	return a.renderPage(c, cmp, err)
}

func (a *App) handleBlogPage(c echo.Context) error {
	page, err := parsePage(c.Param("page"))
	if err != nil {
		return a.renderPage(c, nil, err)
	}
	if page == 1 {
		return c.Redirect(http.StatusMovedPermanently, "/blog/")
	}
	cmp, err := a.BlogListPage(c.Request().Context(), page)
	return a.renderPage(c, cmp, err)
}

func (a *App) handleTag(c echo.Context) error {
	tag, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return a.renderPage(c, nil, ErrNotFound)
	}
	cmp, err := a.TagListPage(c.Request().Context(), tag, 1)
	return a.renderPage(c, cmp, err)
}

func (a *App) handleTagPage(c echo.Context) error {
	tag, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return a.renderPage(c, nil, ErrNotFound)
	}
	page, err := parsePage(c.Param("page"))
	if err != nil {
		return a.renderPage(c, nil, err)
	}
	if page == 1 {
		return c.Redirect(http.StatusMovedPermanently, listPath("tags/"+url.PathEscape(tag), 1))
	}
	cmp, err := a.TagListPage(c.Request().Context(), tag, page)
	return a.renderPage(c, cmp, err)
}

func (a *App) handlePost(c echo.Context) error {
	cmp, err := a.PostPage(c.Request().Context(), c.Param("slug"))
	return a.renderPage(c, cmp, err)
}

// handleTagCounts serves the local tag counts in the same envelope the
// remote tag count service uses, so other sites can point TagAPIURL here.
func (a *App) handleTagCounts(c echo.Context) error {
	if !a.apiLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, tagcount.Response{
			Code:    http.StatusTooManyRequests,
			Message: "too many requests",
		})
	}
	counts, err := a.Store.CountTags()
	if err != nil {
		return fmt.Errorf("pubfront: count tags: %w", err)
	}
	return c.JSON(http.StatusOK, tagcount.Response{
		Code:    http.StatusOK,
		Message: "ok",
		Data:    counts,
	})
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config.URL, posts, tags)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config, posts)
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, robotsTxt(a.Config.URL))
}

func robotsTxt(siteURL string) string {
	return fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", siteURL)
}

func handleRootRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/blog/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if (ok && he.Code == http.StatusNotFound) || errors.Is(err, ErrNotFound) {
		_ = RenderStatus(c, http.StatusNotFound, a.NotFoundPage())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.ServerErrorPage())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
