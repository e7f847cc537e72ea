package httpserver

import (
	"github.com/a-h/templ"

	"github.com/anns25/stayhub-web/internal/web/templates/cards"
	"github.com/anns25/stayhub-web/internal/web/templates/pages"
	"github.com/anns25/stayhub-web/public"
)

// authPage maps a URL path, relative to the base path, to the page that renders it.
type authPage struct {
	Path     string
	Name     string
	Flow     string
	TitleKey string
	Page     func(pages.Data) templ.Component
}

var authPages = []authPage{
	{
		Path:     "/forgot-password",
		Name:     cards.NameForgotPassword,
		Flow:     "/forgot-password",
		TitleKey: "page.forgot_password.title",
		Page:     pages.ForgotPasswordPage,
	},
	{
		Path:     "/login",
		Name:     cards.NameLogin,
		Flow:     "/login",
		TitleKey: "page.login.title",
		Page:     pages.LoginPage,
	},
	{
		Path:     "/register",
		Name:     cards.NameRegister,
		Flow:     "/register",
		TitleKey: "page.register.title",
		Page:     pages.RegisterPage,
	},
}

const (
	stylesheetPath = "/public/static/auth.css"
	htmxScriptPath = "/public/static/" + public.HTMXFile
)

// pagePath returns the mount path of the auth page rendering the named card.
func pagePath(name string) string {
	for _, p := range authPages {
		if p.Name == name {
			return p.Path
		}
	}
	return "/"
}

// Route describes a mounted auth page.
type Route struct {
	Path string
	Card string
}

// Routes lists the auth pages in mount order.
func Routes() []Route {
	out := make([]Route, 0, len(authPages))
	for _, p := range authPages {
		out = append(out, Route{Path: p.Path, Card: p.Name})
	}
	return out
}
