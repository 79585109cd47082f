// Package web is the HTTP surface of yatube: a gin engine with the blog's
// routes, HTML templates and error pages.
package web

import (
	"errors"
	"io"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/beesaferoot/yatube/internal/auth"
	"github.com/beesaferoot/yatube/internal/cache"
	"github.com/beesaferoot/yatube/internal/posts"
)

// Options configures an App. Posts, Accounts and Sessions are required.
type Options struct {
	Posts    *posts.Service
	Accounts *auth.Service
	Sessions *auth.Sessions

	// Cache holds the rendered index page. Nil uses an in-memory cache.
	Cache    cache.Cache
	CacheTTL time.Duration

	// MediaRoot is served under /media/. Empty disables media serving.
	MediaRoot string

	InfoLog   *log.Logger
	ErrorLog  *log.Logger
	AccessLog io.Writer

	// TracerProvider records request spans. Nil uses the global provider.
	TracerProvider trace.TracerProvider
}

type App struct {
	infoLog   *log.Logger
	errorLog  *log.Logger
	accessLog io.Writer

	posts    *posts.Service
	accounts *auth.Service
	sessions *auth.Sessions

	cache     cache.Cache
	cacheTTL  time.Duration
	mediaRoot string
	tracer    trace.TracerProvider

	templates *templates
}

func New(opts Options) (*App, error) {
	if opts.Posts == nil || opts.Accounts == nil || opts.Sessions == nil {
		return nil, errors.New("web: posts, accounts and sessions are required")
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	app := &App{
		infoLog:   opts.InfoLog,
		errorLog:  opts.ErrorLog,
		accessLog: opts.AccessLog,
		posts:     opts.Posts,
		accounts:  opts.Accounts,
		sessions:  opts.Sessions,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		mediaRoot: opts.MediaRoot,
		tracer:    opts.TracerProvider,
		templates: tmpl,
	}
	if app.infoLog == nil {
		app.infoLog = log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	}
	if app.errorLog == nil {
		app.errorLog = log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)
	}
	if app.accessLog == nil {
		app.accessLog = os.Stdout
	}
	if app.cache == nil {
		app.cache = cache.NewMemory()
	}
	return app, nil
}

// Cache returns the page cache used for the index.
func (app *App) Cache() cache.Cache {
	return app.cache
}
