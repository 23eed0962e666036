package doctors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinops/console/internal/platform/metrics"
)

func newTestHandler(repo *mockRepo) (*Handler, *echo.Echo) {
	mtx, _ := metrics.New()
	h := NewHandler(NewService(repo, zerolog.Nop()), mtx)
	e := echo.New()
	return h, e
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestHandler_List(t *testing.T) {
	h, e := newTestHandler(&mockRepo{doctors: roster()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got []*Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

// An absent status query param means no status filtering at all.
func TestHandler_List_NoStatusParamMatchesAll(t *testing.T) {
	h, e := newTestHandler(&mockRepo{doctors: roster()})
	req := httptest.NewRequest(http.MethodGet, "/?search=", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []*Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 (pending and approved both returned)", len(got))
	}
}

func TestHandler_List_SearchAndStatusParams(t *testing.T) {
	h, e := newTestHandler(&mockRepo{doctors: roster()})
	req := httptest.NewRequest(http.MethodGet, "/?search=smith&status=pending", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []*Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "d1" {
		t.Errorf("filtered = %v, want just d1", got)
	}
}

func TestHandler_Get(t *testing.T) {
	h, e := newTestHandler(&mockRepo{doctors: roster()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("d2")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "d2" {
		t.Errorf("id = %q, want d2", got.ID)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler(&mockRepo{doctors: roster()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("d9")

	err := h.Get(c)
	if err == nil {
		t.Fatal("expected error for unknown doctor")
	}
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestHandler_Transitions(t *testing.T) {
	h, e := newTestHandler(&mockRepo{doctors: roster()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("d1")

	if err := h.Transitions(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []Status
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// d1 is pending; the console may offer the other two states.
	if len(got) != 2 {
		t.Errorf("transitions = %v, want two states", got)
	}
}

func TestHandler_Transitions_NotFound(t *testing.T) {
	h, e := newTestHandler(&mockRepo{doctors: roster()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("d9")

	err := h.Transitions(c)
	if err == nil {
		t.Fatal("expected error for unknown doctor")
	}
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func setStatusContext(e *echo.Echo, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestHandler_SetStatus(t *testing.T) {
	repo := &mockRepo{doctors: roster()}
	h, e := newTestHandler(repo)
	c, rec := setStatusContext(e, `{"status":"approved"}`, "d1")

	if err := h.SetStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(repo.writes) != 1 || repo.writes[0] != "d1:approved" {
		t.Errorf("writes = %v, want [d1:approved]", repo.writes)
	}

	// The response is the patched record.
	var got Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "d1" || got.Status != StatusApproved {
		t.Errorf("body = %+v, want d1 approved", got)
	}
}

func TestHandler_SetStatus_InvalidStatus(t *testing.T) {
	repo := &mockRepo{doctors: roster()}
	h, e := newTestHandler(repo)
	c, _ := setStatusContext(e, `{"status":"banned"}`, "d1")

	err := h.SetStatus(c)
	if err == nil {
		t.Fatal("expected error for invalid status")
	}
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
	if len(repo.writes) != 0 {
		t.Error("no write may be issued for an invalid status")
	}
}

func TestHandler_SetStatus_NotFound(t *testing.T) {
	h, e := newTestHandler(&mockRepo{doctors: roster()})
	c, _ := setStatusContext(e, `{"status":"approved"}`, "d9")

	err := h.SetStatus(c)
	if err == nil {
		t.Fatal("expected error for unknown doctor")
	}
	if code := httpCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestHandler_SetStatus_WriteFailure(t *testing.T) {
	repo := &mockRepo{doctors: roster(), writeErr: fmt.Errorf("store rejected write")}
	h, e := newTestHandler(repo)
	c, _ := setStatusContext(e, `{"status":"approved"}`, "d1")

	err := h.SetStatus(c)
	if err == nil {
		t.Fatal("expected error when the store write fails")
	}
	if code := httpCode(t, err); code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", code)
	}
}
