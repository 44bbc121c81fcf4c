// internal/app/features/admin/documentations.go
package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/store/audit"
	docstore "github.com/dalemusser/humorproject/internal/app/store/documentations"
	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

const docsPath = "/admin/documentations"

const (
	MsgDocIncomplete = "Complete all documentation fields before saving."
	MsgDocCreated    = "Documentation created."
	MsgDocUpdated    = "Documentation updated."
	MsgDocDeleted    = "Documentation deleted."
	MsgDocNotFound   = "Documentation not found."
)

type docInput struct {
	Title   string `validate:"notblank" label:"Title"`
	Content string `validate:"richtext" label:"Content"`
}

func readDoc(r *http.Request) (docInput, bool) {
	in := docInput{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: r.PostFormValue("content"),
	}
	return in, !inputval.Validate(in).HasErrors()
}

type docRow struct {
	ID          string
	Title       string
	Content     string
	UpdatedText string
	Confirm     string
}

type docsData struct {
	viewdata.BaseVM
	Rows []docRow
}

// ServeDocs handles GET /admin/documentations.
func (h *Handler) ServeDocs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := docsData{BaseVM: viewdata.NewBaseVM(r, "Manage documentation", "/admin")}
	docs, err := h.Docs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "admin documentation load failed", err, "Unable to load documentation.", "/admin")
		return
	}
	for _, d := range docs {
		data.Rows = append(data.Rows, docRow{
			ID:          d.ID.Hex(),
			Title:       d.Title,
			Content:     d.Content,
			UpdatedText: data.Dates.Long(d.LastUpdated()),
			Confirm:     deleteConfirm("documentation", d.Title),
		})
	}
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	templates.Render(w, r, "admin_documentations", data)
}

// HandleDocCreate handles POST /admin/documentations.
func (h *Handler) HandleDocCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", docsPath)
		return
	}
	in, ok := readDoc(r)
	if !ok {
		h.reject(w, r, docsPath, MsgDocIncomplete)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	d, err := h.Docs.Create(ctx, in.Title, in.Content)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create documentation failed", err, "Unable to save documentation.", docsPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventDocumentationCreated, d.ID.Hex(), d.Title)
	h.back(w, r, docsPath, MsgDocCreated)
}

// HandleDocSave handles POST /admin/documentations/{id}.
func (h *Handler) HandleDocSave(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.reject(w, r, docsPath, MsgDocNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", docsPath)
		return
	}
	in, ok := readDoc(r)
	if !ok {
		h.reject(w, r, docsPath, MsgDocIncomplete)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	err := h.Docs.Update(ctx, id, in.Title, in.Content)
	if errors.Is(err, docstore.ErrNotFound) {
		h.reject(w, r, docsPath, MsgDocNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update documentation failed", err, "Unable to save documentation.", docsPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventDocumentationUpdated, id.Hex(), in.Title)
	h.back(w, r, docsPath, MsgDocUpdated)
}

// HandleDocDelete handles POST /admin/documentations/{id}/delete.
func (h *Handler) HandleDocDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.reject(w, r, docsPath, MsgDocNotFound)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	d, err := h.Docs.GetByID(ctx, id)
	if err == nil {
		err = h.Docs.Delete(ctx, id)
	}
	if errors.Is(err, docstore.ErrNotFound) {
		h.reject(w, r, docsPath, MsgDocNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete documentation failed", err, "Unable to delete documentation.", docsPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventDocumentationDeleted, id.Hex(), d.Title)
	h.back(w, r, docsPath, MsgDocDeleted)
}
