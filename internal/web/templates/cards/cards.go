// Package cards holds the presentational auth cards. Their forms post to the external
// auth endpoint; nothing in this service handles those submissions.
package cards

import (
	"github.com/a-h/templ"

	"github.com/anns25/stayhub-web/internal/web/httpserver/middleware"
	"github.com/anns25/stayhub-web/internal/web/i18n"
	"github.com/anns25/stayhub-web/internal/web/templates/layout"
)

// Card names, rendered as data-card and used as metric labels.
const (
	NameLogin          = "login"
	NameRegister       = "register"
	NameForgotPassword = "forgot-password"
)

// Links are the sibling auth pages a card points to.
type Links struct {
	Login          string
	Register       string
	ForgotPassword string
}

// CardData is everything a card needs to render.
type CardData struct {
	Localizer i18n.Localizer
	// Action is the full form action URL, already suffixed with the flow path.
	Action string
	CSRF   middleware.CSRFState
	Links  Links
	Theme  string
	// Footnote overrides the localized markdown footnote on cards that have one.
	Footnote string
}

type field struct {
	name         string
	kind         string
	labelKey     string
	autocomplete string
}

var (
	emailField = field{name: "email", kind: "email", labelKey: "field.email", autocomplete: "email"}
	nameField  = field{name: "name", kind: "text", labelKey: "field.name", autocomplete: "name"}

	currentPasswordField = field{name: "password", kind: "password", labelKey: "field.password", autocomplete: "current-password"}
	newPasswordField     = field{name: "password", kind: "password", labelKey: "field.password", autocomplete: "new-password"}
	confirmPasswordField = field{name: "password_confirm", kind: "password", labelKey: "field.password_confirm", autocomplete: "new-password"}
)

func (d CardData) dark() bool {
	return d.Theme == layout.ThemeDark
}

func surfaceClasses(d CardData) string {
	return templ.Classes(
		"w-full max-w-md rounded-2xl p-8 shadow-xl ring-1",
		templ.KV("bg-white ring-slate-200", !d.dark()),
		templ.KV("bg-slate-900 ring-slate-800", d.dark()),
	).String()
}

func mutedClasses(d CardData) string {
	return templ.Classes(
		"text-sm",
		templ.KV("text-slate-500", !d.dark()),
		templ.KV("text-slate-400", d.dark()),
	).String()
}

func inputClasses(d CardData) string {
	return templ.Classes(
		"block w-full rounded-lg border px-3 py-2 text-sm focus:outline-none focus:ring-2 focus:ring-sky-500",
		templ.KV("border-slate-300 bg-white", !d.dark()),
		templ.KV("border-slate-700 bg-slate-950", d.dark()),
	).String()
}

func footerClasses(d CardData) string {
	return "mt-6 text-center " + mutedClasses(d)
}

func footnoteClasses(d CardData) string {
	return "mt-4 " + mutedClasses(d)
}

func registerFootnote(d CardData) string {
	if d.Footnote != "" {
		return d.Footnote
	}
	return d.Localizer.T("card.register.terms")
}

func csrfFieldName(state middleware.CSRFState) string {
	if state.FieldName == "" {
		return "_csrf"
	}
	return state.FieldName
}
