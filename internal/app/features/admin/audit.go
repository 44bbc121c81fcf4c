// internal/app/features/admin/audit.go
package admin

import (
	"context"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/store/audit"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const auditLimit = 100

type categoryOption struct {
	Value string
	Label string
}

var auditCategories = []categoryOption{
	{Value: audit.CategoryAuth, Label: "Authentication"},
	{Value: audit.CategoryAdmin, Label: "Administration"},
}

var (
	authEvents = []string{
		audit.EventLoginSuccess,
		audit.EventLoginFailed,
		audit.EventLoginRejectedDomain,
		audit.EventLoginRateLimited,
		audit.EventLogout,
		audit.EventSessionExpired,
		audit.EventSessionDomainRevoked,
	}
	adminEvents = []string{
		audit.EventAssignmentCreated,
		audit.EventAssignmentUpdated,
		audit.EventAssignmentDeleted,
		audit.EventAgendaCreated,
		audit.EventAgendaUpdated,
		audit.EventAgendaDeleted,
		audit.EventDocumentationCreated,
		audit.EventDocumentationUpdated,
		audit.EventDocumentationDeleted,
		audit.EventSemesterCreated,
		audit.EventSemesterUpdated,
		audit.EventSemesterDeleted,
		audit.EventSuperAdminGranted,
		audit.EventSuperAdminRevoked,
	}
)

// eventTypesFor lists the event types offered for category; all of them when
// category is empty.
func eventTypesFor(category string) []string {
	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	case "":
		all := make([]string, 0, len(authEvents)+len(adminEvents))
		all = append(all, authEvents...)
		return append(all, adminEvents...)
	default:
		return nil
	}
}

type auditRow struct {
	WhenText  string
	Category  string
	EventType string
	Actor     string
	Subject   string
	IP        string
	Success   bool
	Reason    string
	Details   string
}

type auditData struct {
	viewdata.BaseVM
	Category   string
	EventType  string
	Categories []categoryOption
	EventTypes []string
	Rows       []auditRow
}

// detailsText renders details as sorted key=value pairs.
func detailsText(d map[string]string) string {
	if len(d) == 0 {
		return ""
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+d[k])
	}
	return strings.Join(parts, ", ")
}

// auditRows queries events and resolves actor and subject ids to names in one
// batch. Ids whose profile is gone are shown as-is.
func (h *Handler) auditRows(ctx context.Context, dates datefmt.Formatter, filter audit.QueryFilter) ([]auditRow, error) {
	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var ids []string
	for _, e := range events {
		for _, id := range []string{e.ActorID, e.ProfileID} {
			if _, ok := seen[id]; id != "" && !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	names := make(map[string]string, len(ids))
	profiles, err := h.Profiles.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Warn("failed to resolve names for audit log", zap.Error(err))
	}
	for _, p := range profiles {
		if n := p.DisplayName(); n != "" {
			names[p.ID] = n
		} else {
			names[p.ID] = p.Email
		}
	}
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	rows := make([]auditRow, 0, len(events))
	for _, e := range events {
		row := auditRow{
			WhenText:  dates.Zoned(e.Timestamp),
			Category:  e.Category,
			EventType: e.EventType,
			Actor:     name(e.ActorID),
			Subject:   name(e.ProfileID),
			IP:        e.IP,
			Success:   e.Success,
			Reason:    e.FailureReason,
			Details:   detailsText(e.Details),
		}
		if row.Subject == "" {
			row.Subject = e.Email
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ServeAudit handles GET /admin/audit?category=&event_type=.
func (h *Handler) ServeAudit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	category := query.Get(r, "category")
	eventType := query.Get(r, "event_type")
	types := eventTypesFor(category)
	if !slices.Contains(types, eventType) {
		eventType = ""
	}

	data := auditData{
		BaseVM:     viewdata.NewBaseVM(r, "Audit log", "/admin"),
		Category:   category,
		EventType:  eventType,
		Categories: auditCategories,
		EventTypes: types,
	}
	rows, err := h.auditRows(ctx, data.Dates, audit.QueryFilter{
		Category:  category,
		EventType: eventType,
		Limit:     auditLimit,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "audit query failed", err, "Unable to load the audit log.", "/admin")
		return
	}
	data.Rows = rows

	templates.Render(w, r, "admin_audit", data)
}
