package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/pkg/apierrors"
)

// mountStatic serves a built single-page front-end from dir. Unknown paths
// under /api/ always get a JSON 404, everything else falls back to index.html.
func mountStatic(r *gin.Engine, dir string) {
	indexPath := ""
	if dir != "" {
		indexPath = resolveIndex(dir)
	}

	r.NoRoute(middleware.LanguageMiddleware(), func(c *gin.Context) {
		if indexPath == "" || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgEndpointNotFound, middleware.GetLang(c)),
			)
			return
		}
		c.File(indexPath)
	})

	if indexPath == "" {
		return
	}

	r.GET("/", func(c *gin.Context) { c.File(indexPath) })

	if assets := filepath.Join(dir, "assets"); isDir(assets) {
		r.StaticFS("/assets", gin.Dir(assets, false))
	}
	if favicon := filepath.Join(dir, "favicon.ico"); fileExists(favicon) {
		r.StaticFile("/favicon.ico", favicon)
	}
}

func resolveIndex(dir string) string {
	if !isDir(dir) {
		zap.L().Warn("static directory missing, serving API only", zap.String("path", dir))
		return ""
	}
	indexPath := filepath.Join(dir, "index.html")
	if !fileExists(indexPath) {
		zap.L().Warn("index.html not found, serving API only", zap.String("path", indexPath))
		return ""
	}
	return indexPath
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
