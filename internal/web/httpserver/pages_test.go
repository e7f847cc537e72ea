package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	custommw "github.com/anns25/stayhub-web/internal/web/httpserver/middleware"
	"github.com/anns25/stayhub-web/internal/web/observability"
	"github.com/anns25/stayhub-web/internal/web/templates/cards"
	"github.com/anns25/stayhub-web/internal/web/templates/pages"
)

func TestServeRenderFailure(t *testing.T) {
	t.Parallel()

	metrics := observability.NewMetrics()
	h := &pageHandlers{authEndpoint: "/api/auth", metrics: metrics}

	failing := templ.ComponentFunc(func(context.Context, io.Writer) error {
		return errors.New("render exploded")
	})
	page := authPage{
		Path: "/login",
		Name: cards.NameLogin,
		Page: func(pages.Data) templ.Component { return failing },
	}

	core, logs := observer.New(zapcore.InfoLevel)
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req = req.WithContext(observability.WithLogger(req.Context(), zap.New(core)))
	rec := httptest.NewRecorder()

	h.serve(page).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal server error\n", rec.Body.String())

	entries := logs.FilterMessage("render page failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, cards.NameLogin, fields["page"])
	require.Equal(t, "render exploded", fields["error"])

	metricsRec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, metricsRec.Body.String(), `web_page_renders_total{page="login",status="500"} 1`)
	require.NotContains(t, metricsRec.Body.String(), `web_page_renders_total{page="login",status="200"}`)
}

func TestPageDataLinksFollowRouteTable(t *testing.T) {
	t.Parallel()

	h := &pageHandlers{authEndpoint: "/api/auth", script: htmxScriptPath}

	var got pages.Data
	handler := custommw.RequestInfoMiddleware("/accounts")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = h.pageData(r, authPages[0])
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/accounts/forgot-password", nil))

	links := map[string]string{
		cards.NameLogin:          got.Card.Links.Login,
		cards.NameRegister:       got.Card.Links.Register,
		cards.NameForgotPassword: got.Card.Links.ForgotPassword,
	}
	require.Len(t, links, len(authPages))
	for _, p := range authPages {
		require.Equal(t, "/accounts"+p.Path, links[p.Name], "link for %s", p.Name)
		require.Equal(t, p.Path, pagePath(p.Name))
	}
	require.Equal(t, "/", pagePath("unknown"))

	require.Equal(t, "/api/auth/forgot-password", got.Card.Action)
	require.Equal(t, "/public/static/htmx.min.js", got.Document.Script)
	require.Equal(t, stylesheetPath, got.Document.Stylesheet)
}
