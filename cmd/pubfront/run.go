package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/eringen/pubfront"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("PUBFRONT_CONFIG"), "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := pubfront.New(cfg)
	defer app.Close()
	return app.Start(ctx)
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("PUBFRONT_CONFIG"), "YAML configuration file")
	out := fs.String("out", "", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *out != "" {
		cfg.OutputDir = *out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := pubfront.New(cfg)
	defer app.Close()
	if err := app.Open(); err != nil {
		return err
	}
	return app.Build(ctx, app.Config.OutputDir)
}

// loadConfig reads the optional YAML file and then applies environment
// overrides on top of it.
func loadConfig(path string) (pubfront.SiteConfig, error) {
	var cfg pubfront.SiteConfig
	if path != "" {
		var err error
		if cfg, err = pubfront.LoadConfigFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Name = pubfront.EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = pubfront.EnvOr("SITE_URL", cfg.URL)
	cfg.Description = pubfront.EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Author = pubfront.EnvOr("SITE_AUTHOR", cfg.Author)
	cfg.Locale = pubfront.EnvOr("SITE_LOCALE", cfg.Locale)
	cfg.DatabasePath = pubfront.EnvOr("DATABASE_PATH", cfg.DatabasePath)
	cfg.TagAPIURL = pubfront.EnvOr("TAG_API_URL", cfg.TagAPIURL)
	cfg.Addr = pubfront.EnvOr("ADDR", cfg.Addr)

	if v := os.Getenv("POSTS_PER_PAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("POSTS_PER_PAGE: %w", err)
		}
		cfg.PostsPerPage = n
	}
	if v := os.Getenv("COMMENTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("COMMENTS: %w", err)
		}
		cfg.Comments = b
	}
	return cfg, nil
}
