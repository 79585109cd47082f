package web

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/beesaferoot/yatube/internal/auth"
	"github.com/beesaferoot/yatube/internal/media"
	"github.com/beesaferoot/yatube/internal/telemetry"
)

// Routes builds the gin engine serving every page.
func (app *App) Routes() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.LoggerWithConfig(gin.LoggerConfig{Output: app.accessLog}),
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			app.serverError(c, fmt.Errorf("panic: %v", rec))
		}),
		telemetry.Middleware(app.tracer),
		app.sessions.LoadActor(),
	)

	r.GET("/", app.cachePage(), app.index)
	r.GET("/group/:slug/", app.groupPosts)
	r.GET("/profile/:username/", app.profile)
	r.GET("/posts/:id/", app.postDetail)

	private := r.Group("/", auth.RequireLogin())
	private.GET("/create/", app.postCreateForm)
	private.POST("/create/", app.postCreate)
	private.GET("/posts/:id/edit/", app.postEditForm)
	private.POST("/posts/:id/edit/", app.postEdit)
	private.POST("/posts/:id/comment/", app.addComment)
	private.GET("/follow/", app.followIndex)
	private.GET("/profile/:username/follow/", app.profileFollow)
	private.GET("/profile/:username/unfollow/", app.profileUnfollow)

	accounts := r.Group("/auth")
	accounts.GET("/login/", app.loginForm)
	accounts.POST("/login/", app.login)
	accounts.GET("/logout/", app.logout)
	accounts.POST("/logout/", app.logout)
	accounts.GET("/signup/", app.signupForm)
	accounts.POST("/signup/", app.signup)

	if app.mediaRoot != "" {
		r.Static(strings.TrimSuffix(media.URLPrefix, "/"), app.mediaRoot)
	}

	r.NoRoute(app.notFound)
	return r
}
