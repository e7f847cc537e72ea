package layout

import (
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/anns25/stayhub-web/internal/web/httpserver/middleware"
)

// DocumentData is the HTML shell around a page body.
type DocumentData struct {
	Title      string
	AppName    string
	Lang       string
	Theme      string
	Stylesheet string
	// Script is the htmx bundle, served from the embedded static files.
	Script string
	CSRF   middleware.CSRFState
}

func documentClasses(theme string) string {
	return templ.Classes("h-full", templ.KV("dark", theme == ThemeDark)).String()
}

// hxHeaders carries the CSRF header on every htmx request issued from the page.
func hxHeaders(csrf middleware.CSRFState) string {
	if csrf.HeaderName == "" {
		return ""
	}
	raw, err := json.Marshal(map[string]string{csrf.HeaderName: csrf.Token})
	if err != nil {
		return ""
	}
	return string(raw)
}

func pageTitle(title, app string) string {
	switch {
	case title == "":
		return app
	case app == "":
		return title
	default:
		return title + " | " + app
	}
}
