// internal/app/features/studies/templates.go
package studies

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "studies",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
