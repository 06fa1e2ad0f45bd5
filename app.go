// Package techreader is a server-rendered blog frontend for a Strapi headless CMS,
// built with Go, Echo, and templ.
//
// Pages read posts through a time-bounded cache; the admin form and the
// internal JSON API write through the strapi package. Users provide their
// own page templates via the ViewFuncs struct.
package techreader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/techreader/strapi"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home        func(posts []strapi.Post, meta PageMeta) templ.Component
	Post        func(post strapi.Post, more []strapi.Post, meta PageMeta) templ.Component
	Categories  func(categories []strapi.Category, meta PageMeta) templ.Component
	About       func(meta PageMeta) templ.Component
	Contact     func(form ContactForm, meta PageMeta) templ.Component
	CreatePost  func(form PostForm, meta PageMeta) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

func (v ViewFuncs) missing() []string {
	var out []string
	check := func(name string, ok bool) {
		if !ok {
			out = append(out, name)
		}
	}
	check("Home", v.Home != nil)
	check("Post", v.Post != nil)
	check("Categories", v.Categories != nil)
	check("About", v.About != nil)
	check("Contact", v.Contact != nil)
	check("CreatePost", v.CreatePost != nil)
	check("NotFound", v.NotFound != nil)
	check("ServerError", v.ServerError != nil)
	return out
}

// App is the central techreader application. It wires together the CMS
// client, cache, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	CMS    *strapi.Client
	Cache  *PostCache
	Views  ViewFuncs
	Logger *zap.Logger

	limiter      *SubmitLimiter
	cacheStore   ResponseCache
	customRoutes []func(*App)
	closers      []io.Closer
	ready        bool
}

// New creates a new App with the given configuration, CMS client and views.
func New(cfg SiteConfig, cms *strapi.Client, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		CMS:    cms,
		Views:  views,
		Logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithLogger sets the application logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.Logger = l
		}
	}
}

// Setup validates configuration and installs the cache, middleware and routes.
// Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if a.CMS == nil {
		return errors.New("techreader: CMS client is required")
	}
	if a.Config.SessionSecret == "" {
		return errors.New("techreader: SessionSecret is required")
	}
	if missing := a.Views.missing(); len(missing) > 0 {
		return fmt.Errorf("techreader: missing views: %v", missing)
	}

	if a.cacheStore == nil {
		if a.Config.RedisURL != "" {
			rc, err := NewRedisCache(ctx, a.Config.RedisURL)
			if err != nil {
				return fmt.Errorf("techreader: init cache: %w", err)
			}
			a.cacheStore = rc
			a.closers = append(a.closers, rc)
		} else {
			a.cacheStore = NewMemoryCache()
		}
	}
	a.Cache = NewPostCache(a.CMS, a.cacheStore, a.Config.CacheTTL, a.Logger.Named("cache"))

	if a.Config.SubmitRate > 0 {
		a.limiter = NewSubmitLimiter(a.Config.SubmitRate, a.Config.SubmitBurst, 10*time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the App up and serves HTTP until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting", zap.String("addr", a.Config.Addr), zap.String("cms", a.CMS.URL("/")))
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.StaticFS("/public", echo.MustSubFS(StaticAssets, "static"))
	e.GET("/favicon.svg", handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Pages
	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/categories/", a.handleCategories)
	e.GET("/about/", a.handleAbout)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit, a.limitSubmissions)
	e.GET("/admin", handleAdminRedirect)
	e.GET("/admin/create-post/", a.handleCreatePostForm)
	e.POST("/admin/create-post/", a.handleCreatePostSubmit, a.limitSubmissions)

	// Internal JSON API
	api := e.Group("/api", a.limitSubmissions)
	api.POST("/posts", a.apiCreatePost)
	api.PUT("/posts", a.apiUpdatePost)
	api.DELETE("/posts", a.apiDeletePost)
	api.POST("/upload", a.apiUpload)
	api.POST("/contact", a.apiContact)
	api.POST("/newsletter", a.apiNewsletter)
}

// Close releases resources held by the App. Call it after Start returns.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
