package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_CountsRequests(t *testing.T) {
	m, _ := New()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/doctors")

	handler := m.Middleware()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/doctors", "200"))
	if got != 1 {
		t.Errorf("request counter = %v, want 1", got)
	}
}

func TestRecordTransition(t *testing.T) {
	m, _ := New()

	m.RecordTransition("doctors", nil)
	m.RecordTransition("doctors", nil)
	m.RecordTransition("appointments", errors.New("store down"))

	if got := testutil.ToFloat64(m.StatusTransitions.WithLabelValues("doctors", "ok")); got != 2 {
		t.Errorf("doctors ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.StatusTransitions.WithLabelValues("appointments", "error")); got != 1 {
		t.Errorf("appointments error = %v, want 1", got)
	}
}
