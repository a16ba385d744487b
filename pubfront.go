// Package pubfront is the reading side of a blog: paginated post lists
// filtered by tag with a sidebar of tag counts, and single post pages.
// It serves pages with Echo and can also write them out as a static site.
package pubfront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pubfront/tagcount"
)

// App wires together the store, cache, tag counter, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Tags   TagCounter

	apiLimiter   *RateLimiter
	comments     func(BlogPost) templ.Component
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration. Call Open (or Start,
// which opens for you) before serving or building.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Logger.SetPrefix("pubfront")

	a := &App{
		Config:    cfg,
		Echo:      e,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Open validates the configuration and opens the database. The tag counter
// defaults to the remote service when TagAPIURL is set and to the local
// database otherwise.
func (a *App) Open() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("pubfront: init store: %w", err)
		}
		a.Store = store
	}
	if a.Cache == nil {
		a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	}

	if a.Tags == nil {
		if a.Config.TagAPIURL != "" {
			a.Tags = tagcount.New(a.Config.TagAPIURL, tagcount.WithTimeout(a.Config.TagAPITimeout))
			a.Echo.Logger.Infof("tag counts from %s", a.Config.TagAPIURL)
		} else {
			a.Tags = storeCounter{store: a.Store}
		}
	}
	return nil
}

// Handler sets up middleware and routes and returns the resulting handler.
func (a *App) Handler() http.Handler {
	if a.apiLimiter == nil {
		a.apiLimiter = NewRateLimiter(a.Config.TagAPIRateLimit, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a.Echo
}

// Start opens the app and serves it until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Open(); err != nil {
		return err
	}
	a.Handler()

	errc := make(chan error, 1)
	go func() {
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", handleRootRedirect)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/page/:page/", a.handleBlogPage)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/tags/:tag/", a.handleTag)
	e.GET("/tags/:tag/page/:page/", a.handleTagPage)

	e.GET(tagcount.Path, a.handleTagCounts)
}

// Close releases the database and background workers.
func (a *App) Close() error {
	if a.apiLimiter != nil {
		a.apiLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
