package web

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/beesaferoot/yatube/internal/posts"
)

// render writes a page after it executed completely, so a template error
// never leaves half a page behind.
func (app *App) render(c *gin.Context, status int, page string, data *HTMLData) {
	if data.Path == "" {
		data.Path = c.Request.URL.Path
	}
	body, err := app.templates.Render(page, data)
	if err != nil {
		app.serverError(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

func (app *App) serverError(c *gin.Context, err error) {
	app.errorLog.Printf("%s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, err, debug.Stack())
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	c.Abort()
}

func (app *App) notFound(c *gin.Context) {
	app.render(c, http.StatusNotFound, pageNotFound, app.data(c, "Page not found"))
}

// fail renders the page matching err: 404 for missing objects, 500 otherwise.
func (app *App) fail(c *gin.Context, err error) {
	if errors.Is(err, context.Canceled) {
		c.Abort()
		return
	}
	if posts.IsNotFound(err) {
		app.notFound(c)
		return
	}
	app.serverError(c, err)
}
