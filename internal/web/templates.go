package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beesaferoot/yatube/internal/forms"
	"github.com/beesaferoot/yatube/internal/media"
	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/posts"
)

//go:embed templates
var templateFS embed.FS

const layout = "base"

// Page template names, relative to templates/ without extension.
const (
	pageIndex      = "posts/index"
	pageGroupList  = "posts/group_list"
	pageProfile    = "posts/profile"
	pagePostDetail = "posts/post_detail"
	pageCreatePost = "posts/create_post"
	pageFollow     = "posts/follow"
	pageLogin      = "auth/login"
	pageSignup     = "auth/signup"
	pageNotFound   = "core/404"
)

var pageNames = []string{
	pageIndex, pageGroupList, pageProfile, pagePostDetail, pageCreatePost,
	pageFollow, pageLogin, pageSignup, pageNotFound,
}

// HTMLData is passed to every page template.
type HTMLData struct {
	Title string
	Path  string
	Actor *models.User

	Index   *posts.IndexPage
	Group   *posts.GroupPage
	Profile *posts.ProfilePage
	Detail  *posts.PostDetailPage
	Form    *posts.PostForm
	Feed    *posts.FollowPage
	Account *AccountForm
}

// AccountForm backs the login and signup pages.
type AccountForm struct {
	Username string
	Next     string
	Errors   forms.FieldErrors
}

var functions = template.FuncMap{
	"mediaURL":       media.URL,
	"groupURL":       posts.GroupURL,
	"profileURL":     posts.ProfileURL,
	"postURL":        posts.PostDetailURL,
	"editURL":        posts.PostEditURL,
	"commentURL":     posts.CommentURL,
	"followURL":      posts.FollowURL,
	"unfollowURL":    posts.UnfollowURL,
	"followIndexURL": posts.FollowIndexURL,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
	"idstr": func(id uint) string {
		return strconv.FormatUint(uint64(id), 10)
	},
	"pageURL": func(n int) string {
		return "?" + url.Values{"page": {strconv.Itoa(n)}}.Encode()
	},
	"lines": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
}

// templates holds one parsed set per page, each built from the layout, the
// shared includes and the page itself.
type templates struct {
	pages map[string]*template.Template
}

func loadTemplates() (*templates, error) {
	root, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	t := &templates{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		ts, err := template.New(layout).Funcs(functions).ParseFS(root,
			"base.html",
			"includes/*.html",
			name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %v", name, err)
		}
		t.pages[name] = ts
	}
	return t, nil
}

// Render executes a page into memory.
func (t *templates) Render(name string, data any) ([]byte, error) {
	ts, ok := t.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %s", name)
	}
	var buf bytes.Buffer
	if err := ts.ExecuteTemplate(&buf, layout, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
