package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beesaferoot/yatube/internal/auth"
	"github.com/beesaferoot/yatube/internal/posts"
)

func (app *App) data(c *gin.Context, title string) *HTMLData {
	return &HTMLData{Title: title, Path: c.Request.URL.Path, Actor: auth.Actor(c)}
}

func (app *App) index(c *gin.Context) {
	page, err := app.posts.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		app.fail(c, err)
		return
	}
	data := app.data(c, "Latest posts")
	data.Index = page
	app.render(c, http.StatusOK, pageIndex, data)
}

func (app *App) groupPosts(c *gin.Context) {
	page, err := app.posts.GroupPosts(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		app.fail(c, err)
		return
	}
	data := app.data(c, page.Group.Title)
	data.Group = page
	app.render(c, http.StatusOK, pageGroupList, data)
}

func (app *App) profile(c *gin.Context) {
	page, err := app.posts.Profile(c.Request.Context(), auth.Actor(c), c.Param("username"), c.Query("page"))
	if err != nil {
		app.fail(c, err)
		return
	}
	data := app.data(c, "Profile of "+page.Author.Username)
	data.Profile = page
	app.render(c, http.StatusOK, pageProfile, data)
}

func (app *App) postDetail(c *gin.Context) {
	id, err := posts.ParsePostID(c.Param("id"))
	if err != nil {
		app.fail(c, err)
		return
	}
	page, err := app.posts.PostDetail(c.Request.Context(), auth.Actor(c), id)
	if err != nil {
		app.fail(c, err)
		return
	}
	data := app.data(c, "Post "+page.Post.String())
	data.Detail = page
	app.render(c, http.StatusOK, pagePostDetail, data)
}

func (app *App) followIndex(c *gin.Context) {
	page, err := app.posts.FollowIndex(c.Request.Context(), auth.Actor(c), c.Query("page"))
	if err != nil {
		app.fail(c, err)
		return
	}
	data := app.data(c, "Following")
	data.Feed = page
	app.render(c, http.StatusOK, pageFollow, data)
}

func (app *App) profileFollow(c *gin.Context) {
	to, err := app.posts.Follow(c.Request.Context(), auth.Actor(c), c.Param("username"))
	if err != nil {
		app.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, to)
}

func (app *App) profileUnfollow(c *gin.Context) {
	to, err := app.posts.Unfollow(c.Request.Context(), auth.Actor(c), c.Param("username"))
	if err != nil {
		app.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, to)
}
