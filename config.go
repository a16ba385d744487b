package pubfront

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/eringen/pubfront/views"
)

// SiteConfig holds all configuration for a pubfront site.
type SiteConfig struct {
	// Name defaults to "Blog".
	Name string `yaml:"name"`
	URL  string `yaml:"url" validate:"required,url"`
	// Description is used by RSS and meta tags.
	Description string `yaml:"description"`
	// Author appears in JSON-LD and the footer.
	Author string `yaml:"author"`
	// Locale drives date formatting (default "en-US").
	Locale string `yaml:"locale"`
	// AllPostsLabel titles /blog and its sidebar entry (default "All Posts").
	AllPostsLabel string `yaml:"all_posts_label"`
	// Comments renders the comment block on posts.
	Comments bool `yaml:"comments"`

	// Addr is the listen address (default ":3000").
	Addr string `yaml:"addr"`
	// DatabasePath is the SQLite file (default "data/blog.db").
	DatabasePath string `yaml:"database_path" validate:"required"`
	// PostsPerPage defaults to 5.
	PostsPerPage int `yaml:"posts_per_page" validate:"gte=1,lte=100"`
	// OutputDir is the static build target (default "out").
	OutputDir string `yaml:"output_dir"`

	// TagAPIURL is the base URL of the tag count service. When empty the
	// counts come from the local database.
	TagAPIURL string `yaml:"tag_api_url" validate:"omitempty,url"`
	// TagAPITimeout defaults to 10s.
	TagAPITimeout time.Duration `yaml:"tag_api_timeout"`
	// TagAPIRateLimit is requests per IP per minute (default 120).
	TagAPIRateLimit int `yaml:"tag_api_rate_limit" validate:"gte=1"`

	// PostCacheTTL defaults to 5 minutes.
	PostCacheTTL time.Duration `yaml:"post_cache_ttl"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Locale == "" {
		c.Locale = "en-US"
	}
	if c.AllPostsLabel == "" {
		c.AllPostsLabel = "All Posts"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostsPerPage == 0 {
		c.PostsPerPage = 5
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.TagAPITimeout == 0 {
		c.TagAPITimeout = 10 * time.Second
	}
	if c.TagAPIRateLimit == 0 {
		c.TagAPIRateLimit = 120
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Validate fills in defaults and checks the result.
func (c *SiteConfig) Validate() error {
	c.setDefaults()
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("pubfront: invalid config: %w", err)
	}
	return nil
}

// View returns the subset of the configuration the layouts read.
func (c SiteConfig) View() views.SiteConfig {
	return views.SiteConfig{
		Name:          c.Name,
		URL:           c.URL,
		Description:   c.Description,
		Author:        c.Author,
		Locale:        c.Locale,
		Comments:      c.Comments,
		AllPostsLabel: c.AllPostsLabel,
	}
}

// LoadConfigFile reads a YAML configuration file. Missing fields keep their
// zero value and are defaulted by Validate.
func LoadConfigFile(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("pubfront: read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("pubfront: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithTagCounter overrides where the sidebar tag counts come from.
func WithTagCounter(tc TagCounter) Option {
	return func(a *App) {
		a.Tags = tc
	}
}

// WithComments plugs in the comment widget rendered under each post when
// SiteConfig.Comments is set.
func WithComments(fn func(BlogPost) templ.Component) Option {
	return func(a *App) {
		a.comments = fn
	}
}
