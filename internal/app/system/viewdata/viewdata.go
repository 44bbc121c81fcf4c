// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/flash"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in the header and page titles.
const SiteName = "The Humor Project"

// BaseVM contains common fields for all view models.
// Embed it in feature view models:
//
//	data := pageData{BaseVM: viewdata.NewBaseVM(r, "Assignments", "/")}
type BaseVM struct {
	SiteName string

	// User context (from the route guard or LoadSessionUser)
	IsLoggedIn   bool
	UserID       string
	UserName     string
	UserEmail    string
	IsSuperAdmin bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	CSRFToken   string

	// Dates render in this zone; TimeZone is "" when the server default applies.
	Dates    datefmt.Formatter
	TimeZone string

	Flashes []flash.Message
}

// NewBaseVM builds the shared part of every page model.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	dates := datefmt.FromRequest(r)
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
		Dates:       dates,
		TimeZone:    dates.ZoneName(),
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.UserID = u.ID
		vm.UserName = u.Name
		vm.UserEmail = u.Email
		vm.IsSuperAdmin = u.IsSuperAdmin
	}
	return vm
}

// DisplayName is the user's name, or their email when no name is known.
func (vm BaseVM) DisplayName() string {
	if vm.UserName != "" {
		return vm.UserName
	}
	return vm.UserEmail
}

// WithFlashes pops queued flash messages into the view model.
func (vm BaseVM) WithFlashes(w http.ResponseWriter, r *http.Request, fs *flash.Store) BaseVM {
	vm.Flashes = fs.Pop(w, r)
	return vm
}
