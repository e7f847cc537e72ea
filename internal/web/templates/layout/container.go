package layout

import "github.com/a-h/templ"

// Theme names accepted by ContainerProps.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ContainerProps drives the class composition of the auth page container.
type ContainerProps struct {
	Theme    string
	Backdrop bool
	// Compact is used when the container is swapped into an existing page by htmx and
	// must not claim the full viewport.
	Compact bool
}

// ClassList returns the container's class attribute for props.
func ClassList(props ContainerProps) string {
	dark := props.Theme == ThemeDark
	return templ.Classes(
		"flex w-full items-center justify-center px-4 py-12",
		templ.KV("min-h-screen", !props.Compact),
		templ.KV("min-h-full", props.Compact),
		templ.KV("bg-slate-950 text-slate-100", dark),
		templ.KV("bg-slate-50 text-slate-900", !dark),
		templ.KV("bg-auth-backdrop bg-cover bg-center", props.Backdrop),
	).String()
}

func themeName(theme string) string {
	if theme == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}
