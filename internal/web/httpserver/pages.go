package httpserver

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "github.com/anns25/stayhub-web/internal/web/httpserver/middleware"
	"github.com/anns25/stayhub-web/internal/web/observability"
	"github.com/anns25/stayhub-web/internal/web/templates/cards"
	"github.com/anns25/stayhub-web/internal/web/templates/layout"
	"github.com/anns25/stayhub-web/internal/web/templates/pages"
)

type pageHandlers struct {
	authEndpoint string
	backdrop     bool
	script       string
	metrics      *observability.Metrics
}

func (h *pageHandlers) serve(p authPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := http.StatusOK

		component := p.Page(h.pageData(r, p))
		handler := templ.Handler(component, templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			status = http.StatusInternalServerError
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				observability.FromContext(r.Context()).Error("render page failed",
					zap.String("page", p.Name),
					zap.Error(err),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			})
		}))
		handler.ServeHTTP(w, r)

		h.metrics.ObservePageRender(p.Name, status, time.Since(start))
	}
}

func (h *pageHandlers) pageData(r *http.Request, p authPage) pages.Data {
	ctx := r.Context()
	loc := custommw.LocalizerFromContext(ctx)
	csrf := custommw.CSRFFromContext(ctx)
	theme := custommw.ThemeFromContext(ctx)

	return pages.Data{
		Title: loc.T(p.TitleKey),
		Document: layout.DocumentData{
			AppName:    loc.T("app.name"),
			Lang:       loc.Lang(),
			Theme:      theme,
			Stylesheet: stylesheetPath,
			Script:     h.script,
			CSRF:       csrf,
		},
		Container: layout.ContainerProps{
			Theme:    theme,
			Backdrop: h.backdrop,
		},
		Card: cards.CardData{
			Localizer: loc,
			Action:    h.authEndpoint + p.Flow,
			CSRF:      csrf,
			Theme:     theme,
			Links: cards.Links{
				Login:          custommw.HrefFromContext(ctx, pagePath(cards.NameLogin)),
				Register:       custommw.HrefFromContext(ctx, pagePath(cards.NameRegister)),
				ForgotPassword: custommw.HrefFromContext(ctx, pagePath(cards.NameForgotPassword)),
			},
		},
		Fragment: custommw.HTMXInfoFromContext(ctx).Fragment(),
	}
}
