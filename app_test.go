package techreader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/techreader/strapi"
)

type cmsCall struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeCMS records every request and answers through respond.
type fakeCMS struct {
	srv   *httptest.Server
	mu    sync.Mutex
	calls []cmsCall
}

func newFakeCMS(t *testing.T, respond func(w http.ResponseWriter, r *http.Request, body []byte)) *fakeCMS {
	t.Helper()
	f := &fakeCMS{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.calls = append(f.calls, cmsCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		f.mu.Unlock()
		respond(w, r, body)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeCMS) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCMS) call(i int) cmsCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

// countPath reports how many calls hit method and path.
func (f *fakeCMS) countPath(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func okCMS(t *testing.T) *fakeCMS {
	return newFakeCMS(t, func(w http.ResponseWriter, _ *http.Request, _ []byte) {
		writeJSON(w, http.StatusOK, `{"data":[]}`)
	})
}

func testConfig() SiteConfig {
	return SiteConfig{
		Name:          "Tech Reader",
		URL:           "https://reader.example",
		SessionSecret: strings.Repeat("s", 32),
		SubmitRate:    1000,
		SubmitBurst:   1000,
		CacheTTL:      time.Minute,
	}
}

func stubText(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

// stubViews renders a compact text summary of what each page received.
func stubViews() ViewFuncs {
	return ViewFuncs{
		Home: func(posts []strapi.Post, meta PageMeta) templ.Component {
			titles := make([]string, 0, len(posts))
			for _, p := range posts {
				titles = append(titles, p.Title)
			}
			return stubText("home posts=%d titles=%s", len(posts), strings.Join(titles, ","))
		},
		Post: func(post strapi.Post, more []strapi.Post, meta PageMeta) templ.Component {
			return stubText("post title=%s more=%d desc=%s flash=%s", post.Title, len(more), meta.Description, strings.Join(meta.Flash, "|"))
		},
		Categories: func(categories []strapi.Category, meta PageMeta) templ.Component {
			return stubText("categories=%d", len(categories))
		},
		About: func(meta PageMeta) templ.Component {
			return stubText("about title=%s", meta.Title)
		},
		Contact: func(form ContactForm, meta PageMeta) templ.Component {
			return stubText("contact csrf=%s; error=%s; flash=%s", meta.CSRFToken, form.Error, strings.Join(meta.Flash, "|"))
		},
		CreatePost: func(form PostForm, meta PageMeta) templ.Component {
			return stubText("create-post csrf=%s; error=%s; slug=%s", meta.CSRFToken, form.Error, form.Slug)
		},
		NotFound:    func() templ.Component { return stubText("not-found") },
		ServerError: func() templ.Component { return stubText("server-error") },
	}
}

func newTestApp(t *testing.T, cms *fakeCMS, mutate ...func(*SiteConfig)) *App {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	client, err := strapi.NewClient(strapi.Config{BaseURL: cms.srv.URL, Token: "tok"})
	require.NoError(t, err)
	app := New(cfg, client, stubViews())
	require.NoError(t, app.Setup(context.Background()))
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func TestSetupRequiresViewsAndSecret(t *testing.T) {
	cms := okCMS(t)
	client, err := strapi.NewClient(strapi.Config{BaseURL: cms.srv.URL})
	require.NoError(t, err)

	views := stubViews()
	views.Contact = nil
	err = New(testConfig(), client, views).Setup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Contact")

	cfg := testConfig()
	cfg.SessionSecret = ""
	err = New(cfg, client, stubViews()).Setup(context.Background())
	assert.EqualError(t, err, "techreader: SessionSecret is required")

	err = New(testConfig(), nil, stubViews()).Setup(context.Background())
	assert.Error(t, err)
}

func TestNewAppliesDefaults(t *testing.T) {
	app := New(SiteConfig{StrapiURL: "http://cms:1337"}, nil, stubViews())

	assert.Equal(t, "Tech Reader", app.Config.Name)
	assert.Equal(t, ":3000", app.Config.Addr)
	assert.Equal(t, "http://cms:1337", app.Config.StrapiPublicURL)
	assert.Equal(t, 60*time.Second, app.Config.CacheTTL)
	assert.Equal(t, int64(5<<20), app.Config.UploadMaxBytes)
	assert.Equal(t, "image/*", app.Config.UploadAccept)
}

func TestCustomRoutes(t *testing.T) {
	cms := okCMS(t)
	client, err := strapi.NewClient(strapi.Config{BaseURL: cms.srv.URL})
	require.NoError(t, err)
	app := New(testConfig(), client, stubViews(), WithCustomRoutes(func(a *App) {
		a.Echo.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
		a.Echo.GET("/status/live", func(c echo.Context) error { return c.String(http.StatusOK, "live") })
	}))
	require.NoError(t, app.Setup(context.Background()))
	defer app.Close()

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/status/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "live", rec.Body.String())
}
