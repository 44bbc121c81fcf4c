package flash_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/humorproject/internal/app/system/flash"
	"go.uber.org/zap"
)

func TestAddThenPop(t *testing.T) {
	store, err := flash.New("test-session-key-must-be-32-chars-long", "", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rec := httptest.NewRecorder()
	store.Success(rec, httptest.NewRequest("POST", "/admin/assignments", nil), "Assignment created.")

	req := httptest.NewRequest("GET", "/admin/assignments", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	popRec := httptest.NewRecorder()
	msgs := store.Pop(popRec, req)
	if len(msgs) != 1 || msgs[0].Text != "Assignment created." || msgs[0].Kind != flash.KindSuccess {
		t.Fatalf("Pop = %+v", msgs)
	}

	// The cleared cookie carries no messages.
	next := httptest.NewRequest("GET", "/admin/assignments", nil)
	for _, c := range popRec.Result().Cookies() {
		next.AddCookie(c)
	}
	if again := store.Pop(httptest.NewRecorder(), next); len(again) != 0 {
		t.Errorf("expected messages to be consumed, got %+v", again)
	}
}

func TestPop_NoCookie(t *testing.T) {
	store, _ := flash.New("test-session-key-must-be-32-chars-long", "f", "", false, zap.NewNop())
	if msgs := store.Pop(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil)); msgs != nil {
		t.Errorf("expected nil, got %+v", msgs)
	}
}

func TestNilStore(t *testing.T) {
	var store *flash.Store
	store.Success(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), "x")
	if store.Pop(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil)) != nil {
		t.Error("nil store should pop nothing")
	}
}

func TestNew_EmptyKey(t *testing.T) {
	if _, err := flash.New("", "f", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for empty key")
	}
}
