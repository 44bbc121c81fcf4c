// internal/app/features/submissions/list.go
package submissions

import (
	"context"
	"html/template"
	"net/http"

	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/richtext"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

type entry struct {
	CreatedText string
	Content     template.HTML
	HasContent  bool
}

type card struct {
	AssignmentID string
	Title        string
	DueText      string
	Closed       bool
	Entries      []entry
}

type listData struct {
	viewdata.BaseVM
	Cards []card
}

// cards reads assignments and the user's submissions concurrently and groups
// the submissions under their assignment.
func (h *Handler) cards(ctx context.Context, profileID string, dates datefmt.Formatter) ([]card, error) {
	var (
		assignments []models.Assignment
		subs        []models.Submission
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = h.Assignments.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = h.Submissions.ListByProfile(gctx, profileID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byAssignment := make(map[primitive.ObjectID][]entry, len(assignments))
	for _, s := range subs {
		e := entry{
			CreatedText: dates.Long(s.CreatedAt),
			HasContent:  richtext.HasVisibleContent(s.Content),
		}
		if e.HasContent {
			e.Content = richtext.Render(s.Content)
		}
		byAssignment[s.AssignmentID] = append(byAssignment[s.AssignmentID], e)
	}

	now := h.now()
	out := make([]card, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, card{
			AssignmentID: a.ID.Hex(),
			Title:        a.Title,
			DueText:      dates.Due(a.DueDate),
			Closed:       a.IsPastDue(now),
			Entries:      byAssignment[a.ID],
		})
	}
	return out, nil
}

// ServeList handles GET /submissions.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := listData{BaseVM: viewdata.NewBaseVM(r, "Submissions", "/")}
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	cards, err := h.cards(ctx, user.ID, data.Dates)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load submissions failed", err, "Unable to load submissions.", "/")
		return
	}
	data.Cards = cards

	templates.Render(w, r, "submissions_list", data)
}
