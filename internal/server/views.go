// Package server contains the HTTP handlers and routing for the application.
package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// newViewsEngine builds the HTML template engine over the embedded views.
func newViewsEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// NewApp creates a Fiber app configured with the application's template
// engine. Tests use this too so rendered pages match production output.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName: "Warbler",
		Views:   newViewsEngine(),
	})
}
