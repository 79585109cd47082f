package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/beesaferoot/yatube/internal/models"
)

const (
	// CookieName is the session cookie.
	CookieName = "yatube_session"
	// LoginPath is the login form every protected page sends guests to.
	LoginPath = "/auth/login/"

	actorKey = "actor"
)

// Sessions binds tokens to cookies and resolves the acting user.
type Sessions struct {
	service *Service
	tokens  *Tokens
	secure  bool
}

func NewSessions(service *Service, tokens *Tokens, secure bool) *Sessions {
	return &Sessions{service: service, tokens: tokens, secure: secure}
}

// Login starts a session for user.
func (s *Sessions) Login(c *gin.Context, user *models.User) error {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(s.tokens.TTL().Seconds()), "/", "", s.secure, true)
	c.Set(actorKey, user)
	return nil
}

// Logout ends the current session.
func (s *Sessions) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", s.secure, true)
	c.Set(actorKey, (*models.User)(nil))
}

// LoadActor resolves the session cookie to a user. Requests without a valid
// session proceed anonymously.
func (s *Sessions) LoadActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		claims, err := s.tokens.Parse(raw)
		if err != nil {
			s.Logout(c)
			c.Next()
			return
		}
		id, err := claims.UserID()
		if err != nil {
			s.Logout(c)
			c.Next()
			return
		}
		user, err := s.service.UserByID(c.Request.Context(), id)
		if err != nil {
			s.Logout(c)
			c.Next()
			return
		}

		c.Set(actorKey, user)
		c.Next()
	}
}

// RequireLogin sends anonymous requests to the login page, remembering where
// they were headed.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Actor(c) == nil {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor returns the logged in user, or nil.
func Actor(c *gin.Context) *models.User {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// LoginURL builds the login address that returns to next afterwards. Slashes
// in next stay readable.
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext returns next if it is a path on this site, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
