// internal/app/features/admin/form.go
package admin

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// semesterOption is one entry of a semester <select>.
type semesterOption struct {
	ID   string
	Name string
}

func semesterOptions(list []models.Semester) []semesterOption {
	out := make([]semesterOption, 0, len(list))
	for _, s := range list {
		out = append(out, semesterOption{ID: s.ID.Hex(), Name: s.Name})
	}
	return out
}

// deleteConfirm is the text of the browser confirm() before a delete.
func deleteConfirm(kind, title string) string {
	return fmt.Sprintf("Delete %s %q? This cannot be undone.", kind, strings.TrimSpace(title))
}

func actorID(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.ID
	}
	return ""
}

func idParam(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return oid, err == nil
}

// back flashes msg as a success and returns to path.
func (h *Handler) back(w http.ResponseWriter, r *http.Request, path, msg string) {
	h.Flash.Success(w, r, msg)
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// reject flashes msg as an error and returns to path without writing.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, path, msg string) {
	h.Flash.Error(w, r, msg)
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// semesterExists resolves a form's semester_id. ok is false for malformed or
// unknown ids.
func (h *Handler) semesterExists(ctx context.Context, hex string) (primitive.ObjectID, bool, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, false, nil
	}
	ok, err := h.Semesters.Exists(ctx, oid)
	return oid, ok, err
}
