package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/beesaferoot/yatube/internal/auth"
	"github.com/beesaferoot/yatube/internal/forms"
)

const (
	msgBadLogin      = "Please enter a correct username and password. Note that both fields may be case-sensitive."
	msgUsernameTaken = "A user with that username already exists."
)

func (app *App) renderAccount(c *gin.Context, page, title string, form *AccountForm) {
	if form.Errors == nil {
		form.Errors = forms.FieldErrors{}
	}
	data := app.data(c, title)
	data.Account = form
	app.render(c, http.StatusOK, page, data)
}

func (app *App) loginForm(c *gin.Context) {
	app.renderAccount(c, pageLogin, "Log in", &AccountForm{Next: c.Query("next")})
}

func (app *App) login(c *gin.Context) {
	var in forms.LoginInput
	_ = c.ShouldBindWith(&in, binding.Form)
	next := c.PostForm("next")

	res := forms.ValidateLogin(in)
	form := &AccountForm{Username: res.Value.Username, Next: next, Errors: res.Errors}
	if !res.Valid() {
		app.renderAccount(c, pageLogin, "Log in", form)
		return
	}

	user, err := app.accounts.Authenticate(c.Request.Context(), res.Value.Username, res.Value.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		form.Errors.Add(forms.NonFieldErrors, msgBadLogin)
		app.renderAccount(c, pageLogin, "Log in", form)
		return
	}
	if err != nil {
		app.serverError(c, err)
		return
	}

	if err := app.sessions.Login(c, user); err != nil {
		app.serverError(c, err)
		return
	}
	app.infoLog.Printf("user %s logged in", user.Username)
	c.Redirect(http.StatusFound, auth.SafeNext(next, "/"))
}

func (app *App) logout(c *gin.Context) {
	app.sessions.Logout(c)
	c.Redirect(http.StatusFound, "/")
}

func (app *App) signupForm(c *gin.Context) {
	app.renderAccount(c, pageSignup, "Sign up", &AccountForm{})
}

func (app *App) signup(c *gin.Context) {
	var in forms.SignupInput
	_ = c.ShouldBindWith(&in, binding.Form)

	res := forms.ValidateSignup(in)
	form := &AccountForm{Username: res.Value.Username, Errors: res.Errors}
	if !res.Valid() {
		app.renderAccount(c, pageSignup, "Sign up", form)
		return
	}

	user, err := app.accounts.Register(c.Request.Context(), res.Value.Username, res.Value.Password)
	if errors.Is(err, auth.ErrUsernameTaken) {
		form.Errors.Add("username", msgUsernameTaken)
		app.renderAccount(c, pageSignup, "Sign up", form)
		return
	}
	if err != nil {
		app.serverError(c, err)
		return
	}

	if err := app.sessions.Login(c, user); err != nil {
		app.serverError(c, err)
		return
	}
	app.infoLog.Printf("user %s signed up", user.Username)
	c.Redirect(http.StatusFound, "/")
}
