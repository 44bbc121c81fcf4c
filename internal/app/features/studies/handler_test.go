package studies

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/studiesapi"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	studies []models.Study
	err     error
	email   string
}

func (f *fakeFetcher) Fetch(_ context.Context, email string) ([]models.Study, error) {
	f.email = email
	return f.studies, f.err
}

func TestPage_Rows(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	f := &fakeFetcher{studies: []models.Study{
		{Slug: "puns-1", StartAt: &start, CaptionCount: 8, RatedCaptionCount: 2},
		{Slug: "overflow", CaptionCount: 4, RatedCaptionCount: 9},
	}}
	h := NewHandler(f, zap.NewNop())

	data := h.page(testutil.NewAuthenticatedRequest(http.MethodGet, "/studies", testutil.StudentUser()))

	if data.Error != "" {
		t.Fatalf("unexpected error %q", data.Error)
	}
	if f.email != testutil.StudentUser().Email {
		t.Errorf("fetched for %q", f.email)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("got %d rows", len(data.Rows))
	}
	if data.Rows[0].Progress != "25%" {
		t.Errorf("progress = %q, want 25%%", data.Rows[0].Progress)
	}
	if data.Rows[1].ProgressPct != 100 {
		t.Errorf("progress should clamp to 100, got %v", data.Rows[1].ProgressPct)
	}
	if data.Rows[1].StartText != "" {
		t.Errorf("missing start should render empty, got %q", data.Rows[1].StartText)
	}
}

func TestRowsFor_ProgressRoundsHalfUp(t *testing.T) {
	cases := []struct {
		rated, total int
		want         string
	}{
		{1, 8, "13%"},
		{3, 8, "38%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{0, 0, "0%"},
	}
	for _, tc := range cases {
		rows := rowsFor([]models.Study{{CaptionCount: tc.total, RatedCaptionCount: tc.rated}}, datefmt.New(nil))
		if rows[0].Progress != tc.want {
			t.Errorf("%d/%d progress = %q, want %q", tc.rated, tc.total, rows[0].Progress, tc.want)
		}
	}
}

func TestPage_NoEmail(t *testing.T) {
	f := &fakeFetcher{}
	h := NewHandler(f, zap.NewNop())

	r := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/studies", nil), &auth.SessionUser{ID: "p-1"})
	data := h.page(r)
	if data.Error != MsgNoEmail {
		t.Errorf("Error = %q", data.Error)
	}
}

func TestPage_FetchErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{studiesapi.ErrNotConfigured, studiesapi.MsgNotConfigured},
		{&studiesapi.Error{Status: 404, Message: studiesapi.MsgNotFound}, studiesapi.MsgNotFound},
		{errors.New("dial tcp: refused"), studiesapi.MsgUnavailable},
	}
	for _, tt := range tests {
		h := NewHandler(&fakeFetcher{err: tt.err}, zap.NewNop())
		data := h.page(testutil.NewAuthenticatedRequest(http.MethodGet, "/studies", testutil.StudentUser()))
		if data.Error != tt.want {
			t.Errorf("err %v: Error = %q, want %q", tt.err, data.Error, tt.want)
		}
	}
}

func TestPage_NotFoundFromAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := studiesapi.New(srv.URL, 2*time.Second, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	h := NewHandler(client, zap.NewNop())
	data := h.page(testutil.NewAuthenticatedRequest(http.MethodGet, "/studies", testutil.StudentUser()))
	if data.Error != "No humor studies found for this account." {
		t.Errorf("Error = %q", data.Error)
	}
}
