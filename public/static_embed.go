package public

import (
	"embed"
	"io/fs"
)

//go:generate curl -sSfL -o static/htmx.min.js https://unpkg.com/htmx.org@2.0.3/dist/htmx.min.js

// HTMXFile is the vendored htmx bundle inside StaticFS.
const HTMXFile = "htmx.min.js"

//go:embed static/*
var static embed.FS

// StaticFS exposes the stylesheet, backdrop and htmx bundle served under /public/static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}
