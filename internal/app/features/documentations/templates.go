// internal/app/features/documentations/templates.go
package documentations

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "documentations",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
