package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

//go:embed templates/map.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

const pageTitle = "Earthquakes, Past Day"

type pageData struct {
	Title      string
	Doc        domain.MapDocument
	LegendHTML string
}

// RenderPage writes the Leaflet map page for a composed document. The
// document is embedded as a JSON literal; the inline script only instantiates
// what it describes.
func RenderPage(w io.Writer, doc domain.MapDocument) error {
	data := pageData{
		Title:      pageTitle,
		Doc:        doc,
		LegendHTML: doc.Legend.HTML(),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	return nil
}
