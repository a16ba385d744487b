package pubfront

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Pages carry no inline scripts; JSON-LD blocks are data, not code.
const contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; frame-src https:; connect-src 'self'"

// rawFiles are served as-is: no trailing slash redirect.
var rawFiles = map[string]bool{
	"/sitemap.xml": true,
	"/feed.xml":    true,
	"/robots.txt":  true,
	"/favicon.svg": true,
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)
	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogStatus:  true,
			LogURI:     true,
			LogMethod:  true,
			LogLatency: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
				return nil
			},
		}),
		middleware.Recover(),
		middleware.GzipWithConfig(middleware.GzipConfig{
			Level:   5,
			Skipper: isStaticAsset,
		}),
		middleware.SecureWithConfig(middleware.SecureConfig{
			XSSProtection:         "1; mode=block",
			ContentTypeNosniff:    "nosniff",
			XFrameOptions:         "DENY",
			ReferrerPolicy:        "strict-origin-when-cross-origin",
			ContentSecurityPolicy: contentSecurityPolicy,
			HSTSMaxAge:            31536000,
		}),
		middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
			RedirectCode: http.StatusMovedPermanently,
			Skipper: func(c echo.Context) bool {
				path := c.Request().URL.Path
				return isStaticAsset(c) || strings.HasPrefix(path, "/api/") || rawFiles[path]
			},
		}),
		cacheControl,
	)
}

func isStaticAsset(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/public/")
}

// cacheControl sets Cache-Control by route class. List pages embed tag
// counts from another service, so HTML is kept short-lived.
func cacheControl(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		var value string
		switch {
		case isStaticAsset(c):
			value = "public, max-age=31536000, immutable"
		case rawFiles[path]:
			value = "public, max-age=86400"
		case strings.HasPrefix(path, "/api/"):
			value = "public, max-age=60"
		default:
			value = "public, max-age=300"
		}
		c.Response().Header().Set("Cache-Control", value)
		return next(c)
	}
}
