package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/beesaferoot/yatube/internal/auth"
	"github.com/beesaferoot/yatube/internal/forms"
	"github.com/beesaferoot/yatube/internal/posts"
)

// bindPost reads the post form, including an optional uploaded image.
func bindPost(c *gin.Context) (forms.PostInput, error) {
	var in forms.PostInput
	if err := c.ShouldBindWith(&in, binding.Form); err != nil {
		return in, err
	}
	if fh, err := c.FormFile("image"); err == nil {
		in.Image = fh
	}
	return in, nil
}

func (app *App) respond(c *gin.Context, out posts.Outcome) {
	if out.Redirect != "" {
		c.Redirect(http.StatusFound, out.Redirect)
		return
	}
	title := "New post"
	if out.Form.IsEdit {
		title = "Edit post"
	}
	data := app.data(c, title)
	data.Form = out.Form
	app.render(c, http.StatusOK, pageCreatePost, data)
}

func (app *App) postCreateForm(c *gin.Context) {
	form, err := app.posts.NewPostForm(c.Request.Context())
	if err != nil {
		app.fail(c, err)
		return
	}
	app.respond(c, posts.Outcome{Form: form})
}

func (app *App) postCreate(c *gin.Context) {
	in, err := bindPost(c)
	if err != nil {
		c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	}
	out, err := app.posts.CreatePost(c.Request.Context(), auth.Actor(c), in)
	if err != nil {
		app.fail(c, err)
		return
	}
	app.respond(c, out)
}

func (app *App) postEditForm(c *gin.Context) {
	id, err := posts.ParsePostID(c.Param("id"))
	if err != nil {
		app.fail(c, err)
		return
	}
	out, err := app.posts.EditPostForm(c.Request.Context(), auth.Actor(c), id)
	if err != nil {
		app.fail(c, err)
		return
	}
	app.respond(c, out)
}

func (app *App) postEdit(c *gin.Context) {
	id, err := posts.ParsePostID(c.Param("id"))
	if err != nil {
		app.fail(c, err)
		return
	}
	ok, err := app.posts.CanEdit(c.Request.Context(), auth.Actor(c), id)
	if err != nil {
		app.fail(c, err)
		return
	}
	if !ok {
		c.Redirect(http.StatusFound, posts.PostDetailURL(id))
		return
	}
	in, err := bindPost(c)
	if err != nil {
		c.String(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	}
	out, err := app.posts.EditPost(c.Request.Context(), auth.Actor(c), id, in)
	if err != nil {
		app.fail(c, err)
		return
	}
	app.respond(c, out)
}

func (app *App) addComment(c *gin.Context) {
	id, err := posts.ParsePostID(c.Param("id"))
	if err != nil {
		app.fail(c, err)
		return
	}
	var in forms.CommentInput
	_ = c.ShouldBindWith(&in, binding.Form)

	to, err := app.posts.AddComment(c.Request.Context(), auth.Actor(c), id, in)
	if err != nil {
		app.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, to)
}
