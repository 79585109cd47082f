package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beesaferoot/yatube/internal/auth"
)

// bodyWriter keeps a copy of everything written to the response.
type bodyWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// pageCacheKey identifies a rendered page: the path and page number plus who
// is looking, since the navigation differs per user. Other query parameters
// do not change the page and are left out.
func pageCacheKey(c *gin.Context) string {
	viewer := "anon"
	if actor := auth.Actor(c); actor != nil {
		viewer = "user:" + strconv.FormatUint(uint64(actor.ID), 10)
	}
	return viewer + ":" + c.Request.URL.Path + "?page=" + c.Query("page")
}

// cachePage serves successful responses from the page cache for cacheTTL.
// Writes elsewhere do not invalidate entries; they expire on their own.
func (app *App) cachePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.cacheTTL <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := pageCacheKey(c)
		body, ok, err := app.cache.Get(ctx, key)
		if err != nil {
			app.errorLog.Printf("page cache get %s: %v", key, err)
		}
		if ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}

		w := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		c.Writer = w.ResponseWriter

		if w.Status() != http.StatusOK || c.IsAborted() {
			return
		}
		if err := app.cache.Set(ctx, key, w.body.Bytes(), app.cacheTTL); err != nil {
			app.errorLog.Printf("page cache set %s: %v", key, err)
		}
	}
}
