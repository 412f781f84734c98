package server

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"bcf-backend/internal/shared/server/respond"
)

const indexFile = "index.html"

// registerStatic serves files from the public tree for every unmatched path.
// Unknown non-API paths get index.html so client-side links keep working.
func registerStatic(r *gin.Engine, public fs.FS) {
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			respond.Error(c, http.StatusNotFound, "not_found", "no such endpoint", nil)
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			respond.Error(c, http.StatusMethodNotAllowed, "method_not_allowed", "only GET and HEAD are served", nil)
			return
		}
		if public == nil {
			respond.Error(c, http.StatusNotFound, "not_found", "no static assets configured", nil)
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+p), "/")
		if name != "" && name != indexFile {
			if info, err := fs.Stat(public, name); err == nil && !info.IsDir() {
				http.ServeFileFS(c.Writer, c.Request, public, name)
				return
			}
		}
		serveIndex(c, public)
	})
}

// serveIndex writes index.html directly; http.ServeFileFS would redirect it to "./".
func serveIndex(c *gin.Context, public fs.FS) {
	body, err := fs.ReadFile(public, indexFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			respond.Error(c, http.StatusNotFound, "not_found", "index.html missing", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "static_read_failed", "failed to read index.html", nil)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
