package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

//go:embed all:static
var staticFiles embed.FS

// faviconSVG is served at /favicon.ico so no icon file is needed
const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64"><rect width="64" height="64" rx="8" fill="#2563eb"/><text x="32" y="44" font-family="Arial,sans-serif" font-weight="900" font-size="36" fill="white" text-anchor="middle">L</text></svg>`

// contentTypes maps the extensions shipped under static/
var contentTypes = map[string]string{
	".css":   "text/css; charset=utf-8",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".woff2": "font/woff2",
}

// SetupStaticFiles serves the embedded stylesheet and the favicon
func SetupStaticFiles(s *rweb.Server) {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(err, "failed to get static subdirectory")
		return
	}

	s.Get("/favicon.ico", func(c rweb.Context) error {
		c.Response().SetHeader("Content-Type", "image/svg+xml")
		c.Response().SetHeader("Cache-Control", "public, max-age=86400")
		return c.Bytes([]byte(faviconSVG))
	})

	s.Get("/static/*", func(c rweb.Context) error {
		name := strings.TrimPrefix(c.Request().Path(), "/static/")
		if name == "" || strings.Contains(name, "..") {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		content, err := fs.ReadFile(staticFS, name)
		if err != nil {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		if ct, ok := contentTypes[path.Ext(name)]; ok {
			c.Response().SetHeader("Content-Type", ct)
		}
		c.Response().SetHeader("Cache-Control", "public, max-age=3600")
		return c.Bytes(content)
	})
}
