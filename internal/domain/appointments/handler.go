package appointments

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinops/console/internal/platform/metrics"
	"github.com/clinops/console/internal/platform/search"
)

type Handler struct {
	svc *Service
	mtx *metrics.Metrics
}

func NewHandler(svc *Service, mtx *metrics.Metrics) *Handler {
	return &Handler{svc: svc, mtx: mtx}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/appointments", h.List)
	g.GET("/appointments/:patient_id/:id/transitions", h.Transitions)
	g.PUT("/appointments/:patient_id/:id/status", h.SetStatus)
}

func (h *Handler) List(c echo.Context) error {
	term := c.QueryParam("search")
	status := c.QueryParam("status")
	if status == "" {
		status = search.All
	}

	book := h.svc.List(c.Request().Context())
	return c.JSON(http.StatusOK, Filter(book, term, status))
}

func (h *Handler) Transitions(c echo.Context) error {
	book := h.svc.List(c.Request().Context())
	for _, a := range book {
		if a.PatientID == c.Param("patient_id") && a.ID == c.Param("id") {
			return c.JSON(http.StatusOK, NextStatuses(a.Status))
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	next := Status(req.Status)
	if !validStatuses[next] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment status: "+req.Status)
	}

	ctx := c.Request().Context()
	book := h.svc.List(ctx)

	patientID, id := c.Param("patient_id"), c.Param("id")
	var target *Appointment
	for _, a := range book {
		if a.PatientID == patientID && a.ID == id {
			target = a
			break
		}
	}
	if target == nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}

	err := h.svc.SetStatus(ctx, book, patientID, id, next)
	h.mtx.RecordTransition("appointments", err)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "status update failed")
	}
	return c.JSON(http.StatusOK, target)
}
