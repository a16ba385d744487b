package pubfront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pubfront/tagcount"
)

type fakeCounter struct {
	counts []tagcount.Count
	err    error
	calls  int
}

func (f *fakeCounter) ListArticleTagCounts(ctx context.Context) ([]tagcount.Count, error) {
	f.calls++
	return f.counts, f.err
}

func newTestApp(t *testing.T, tc TagCounter, opts ...Option) *App {
	t.Helper()
	cfg := SiteConfig{
		Name:         "Test Blog",
		URL:          "https://example.com",
		DatabasePath: filepath.Join(t.TempDir(), "blog.db"),
		PostsPerPage: 2,
	}
	if tc != nil {
		opts = append(opts, WithTagCounter(tc))
	}
	a := New(cfg, append(opts, WithStaticDir(t.TempDir()))...)
	require.NoError(t, a.Open())
	t.Cleanup(func() { a.Close() })

	seedPosts(t, a.Store,
		BlogPost{Slug: "first", Title: "First", Date: "2024-01-01", Tags: []string{"go"}, Summary: "one", Content: "Hello **one**", Published: true},
		BlogPost{Slug: "second", Title: "Second", Date: "2024-02-01", Tags: []string{"go", "web dev"}, Summary: "two", Content: "two", Published: true},
		BlogPost{Slug: "third", Title: "Third", Date: "2024-03-01", Tags: []string{"rust"}, Summary: "three", Content: "three", Published: true},
	)
	a.Handler()
	return a
}

func get(a *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestBlogListFirstPage(t *testing.T) {
	tc := &fakeCounter{counts: []tagcount.Count{{Tag: "rust", Count: 1}, {Tag: "go", Count: 2}, {Tag: "web dev", Count: 1}}}
	a := newTestApp(t, tc)

	rec := get(a, "/blog/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<title>All Posts | Test Blog</title>")
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, body, `disabled>Previous</button>`)
	assert.Contains(t, body, `href="/blog/page/2/" rel="next"`)
	assert.Contains(t, body, `href="/blog/third/"`)
	assert.Contains(t, body, `href="/blog/second/"`)
	assert.NotContains(t, body, `href="/blog/first/"`)
	assert.Less(t, indexOf(t, body, "rust (1)"), indexOf(t, body, "go (2)"))
	assert.Less(t, indexOf(t, body, "go (2)"), indexOf(t, body, "web dev (1)"))
}

func TestBlogListLastPage(t *testing.T) {
	a := newTestApp(t, &fakeCounter{})

	rec := get(a, "/blog/page/2/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/blog/" rel="prev"`)
	assert.Contains(t, body, `disabled>Next</button>`)
	assert.Contains(t, body, `href="/blog/first/"`)
	assert.Contains(t, body, "2 of 2")
}

func TestBlogListPageBounds(t *testing.T) {
	a := newTestApp(t, &fakeCounter{})

	assert.Equal(t, http.StatusNotFound, get(a, "/blog/page/3/").Code)
	assert.Equal(t, http.StatusNotFound, get(a, "/blog/page/0/").Code)
	assert.Equal(t, http.StatusNotFound, get(a, "/blog/page/abc/").Code)

	rec := get(a, "/blog/page/1/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/blog/", rec.Header().Get("Location"))
}

func TestTagList(t *testing.T) {
	a := newTestApp(t, &fakeCounter{counts: []tagcount.Count{{Tag: "go", Count: 2}, {Tag: "web dev", Count: 1}}})

	rec := get(a, "/tags/web-dev/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Web-dev | Test Blog</title>")
	assert.Contains(t, body, ">web dev (1)</h3>")
	assert.Contains(t, body, `href="/blog/second/"`)
	assert.NotContains(t, body, `href="/blog/third/"`)
	assert.NotContains(t, body, "<nav")

	assert.Equal(t, http.StatusNotFound, get(a, "/tags/missing/").Code)
	assert.Equal(t, http.StatusNotFound, get(a, "/tags/go/page/2/").Code)
}

func TestTagCountFailureIsServerError(t *testing.T) {
	a := newTestApp(t, &fakeCounter{err: errors.New("upstream down")})

	rec := get(a, "/blog/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t, &fakeCounter{})

	rec := get(a, "/blog/second/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Second | Test Blog</title>")
	assert.Contains(t, body, `aria-label="Previous post: First"`)
	assert.Contains(t, body, `aria-label="Next post: Third"`)
	assert.Contains(t, body, `"@type":"BlogPosting"`)

	rec = get(a, "/blog/first/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>one</strong>")

	assert.Equal(t, http.StatusNotFound, get(a, "/blog/missing/").Code)
}

func TestPostPageComments(t *testing.T) {
	comments := WithComments(func(p BlogPost) templ.Component {
		return templ.Raw(`<div class="giscus" data-term="` + p.Slug + `"></div>`)
	})
	a := newTestApp(t, &fakeCounter{}, comments)

	rec := get(a, "/blog/second/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `id="comment"`)

	a.Config.Comments = true
	rec = get(a, "/blog/second/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="comment"><div class="giscus" data-term="second"></div></div>`)
}

func TestPostPageDescriptionEscapedOnce(t *testing.T) {
	a := newTestApp(t, &fakeCounter{})
	seedPosts(t, a.Store, BlogPost{Slug: "cartoon", Title: "Cartoon", Date: "2024-04-01", Content: "Tom & Jerry", Published: true})
	a.Cache.Invalidate()

	rec := get(a, "/blog/cartoon/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<meta name="description" content="Tom &amp; Jerry">`)
	assert.NotContains(t, body, "&amp;amp;")
	assert.Contains(t, body, `"description":"Tom \u0026 Jerry"`)
}

func TestAllPostsLabelTitlesBlogList(t *testing.T) {
	a := newTestApp(t, &fakeCounter{})
	a.Config.AllPostsLabel = "全部文章"

	rec := get(a, "/blog/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>全部文章 | Test Blog</title>")
	assert.Contains(t, body, `<h3 class="text-primary-500 font-bold uppercase">全部文章</h3>`)
}

func TestCustomRoutes(t *testing.T) {
	a := newTestApp(t, &fakeCounter{}, WithCustomRoutes(func(a *App) {
		a.Echo.GET("/healthz/", func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
	}))

	rec := get(a, "/healthz/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestTagCountsEndpoint(t *testing.T) {
	a := newTestApp(t, nil)

	rec := get(a, tagcount.Path)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Code int              `json:"code"`
		Data []tagcount.Count `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []tagcount.Count{{Tag: "go", Count: 2}, {Tag: "rust", Count: 1}, {Tag: "web dev", Count: 1}}, resp.Data)
}

func TestTagCountsEndpointRateLimited(t *testing.T) {
	a := newTestApp(t, nil)
	a.apiLimiter.Stop()
	a.apiLimiter = NewRateLimiter(1, time.Minute)

	assert.Equal(t, http.StatusOK, get(a, tagcount.Path).Code)
	rec := get(a, tagcount.Path)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLocalCounterServesSidebar(t *testing.T) {
	a := newTestApp(t, nil)

	rec := get(a, "/blog/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go (2)")
}

func TestFeedSitemapRobots(t *testing.T) {
	a := newTestApp(t, &fakeCounter{})

	rec := get(a, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<link>https://example.com/blog/third/</link>")
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))

	rec = get(a, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://example.com/tags/web-dev/")

	rec = get(a, "/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://example.com/sitemap.xml")
}

func TestRootRedirects(t *testing.T) {
	a := newTestApp(t, &fakeCounter{})

	rec := get(a, "/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/blog/", rec.Header().Get("Location"))
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	i := strings.Index(s, sub)
	require.GreaterOrEqual(t, i, 0, "%q not found", sub)
	return i
}
