package httpserver

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	custommw "github.com/anns25/stayhub-web/internal/web/httpserver/middleware"
	"github.com/anns25/stayhub-web/internal/web/i18n"
	"github.com/anns25/stayhub-web/internal/web/observability"
	"github.com/anns25/stayhub-web/internal/web/templates/cards"
	"github.com/anns25/stayhub-web/public"
)

// Config holds runtime options for the auth pages HTTP server.
type Config struct {
	Address          string
	BasePath         string
	AuthEndpoint     string
	Theme            string
	Backdrop         bool
	CSRFCookieName   string
	CSRFCookieSecure bool
	CSRFHeaderName   string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration

	Logger  *zap.Logger
	Bundle  *i18n.Bundle
	Metrics *observability.Metrics
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

// NewHandler builds the router without binding a listener.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bundle := cfg.Bundle
	if bundle == nil {
		var err error
		bundle, err = i18n.LoadEmbedded("ja", []string{"ja", "en"})
		if err != nil {
			return nil, fmt.Errorf("load locales: %w", err)
		}
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.Trace())
	router.Use(observability.RequestLogger(logger))
	router.Use(observability.Recoverer(logger))
	router.Use(chimw.GetHead)
	router.Use(chimw.Timeout(durationOr(cfg.WriteTimeout, 30*time.Second)))
	router.Use(chimw.Compress(5))

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("embed static: %w", err)
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))
	script := ""
	if _, err := fs.Stat(staticContent, public.HTMXFile); err == nil {
		script = htmxScriptPath
	} else {
		logger.Warn("htmx bundle missing from static assets; pages render without it", zap.String("file", public.HTMXFile))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", metrics.Handler())

	basePath := custommw.NormaliseBase(cfg.BasePath)
	mountAuthPages(router, basePath, routeOptions{
		Handlers: &pageHandlers{
			authEndpoint: normalizeEndpoint(cfg.AuthEndpoint),
			backdrop:     cfg.Backdrop,
			script:       script,
			metrics:      metrics,
		},
		Bundle: bundle,
		Theme:  cfg.Theme,
		CSRF: custommw.CSRFConfig{
			CookieName: cfg.CSRFCookieName,
			CookiePath: basePath,
			HeaderName: cfg.CSRFHeaderName,
			Secure:     cfg.CSRFCookieSecure,
		},
	})

	return router, nil
}

type routeOptions struct {
	Handlers *pageHandlers
	Bundle   *i18n.Bundle
	Theme    string
	CSRF     custommw.CSRFConfig
}

func mountAuthPages(router chi.Router, base string, opts routeOptions) {
	login := custommw.JoinBase(base, pagePath(cards.NameLogin))
	redirect := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, login, http.StatusFound)
	}
	router.Get("/", redirect)
	if base != "/" {
		router.Get(base, redirect)
		router.Get(base+"/", redirect)
	}

	router.Group(func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.RequestInfoMiddleware(base))
		r.Use(custommw.Locale(opts.Bundle))
		r.Use(custommw.Theme(opts.Theme))
		r.Use(custommw.CSRF(opts.CSRF))

		for _, p := range authPages {
			r.Get(custommw.JoinBase(base, p.Path), opts.Handlers.serve(p))
		}
	})
}

func normalizeEndpoint(endpoint string) string {
	e := strings.TrimSpace(endpoint)
	if e == "" {
		return "/api/auth"
	}
	return strings.TrimRight(e, "/")
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
