package doctors

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
	g.GET("/doctors", h.List)
	g.GET("/doctors/:id", h.Get)
	g.GET("/doctors/:id/transitions", h.Transitions)
	g.PUT("/doctors/:id/status", h.SetStatus)
}

func (h *Handler) List(c echo.Context) error {
	term := c.QueryParam("search")
	status := c.QueryParam("status")
	if status == "" {
		status = search.All
	}

	roster := h.svc.List(c.Request().Context())
	return c.JSON(http.StatusOK, Filter(roster, term, status))
}

func (h *Handler) Get(c echo.Context) error {
	roster := h.svc.List(c.Request().Context())
	for _, d := range roster {
		if d.ID == c.Param("id") {
			return c.JSON(http.StatusOK, d)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
}

func (h *Handler) Transitions(c echo.Context) error {
	roster := h.svc.List(c.Request().Context())
	for _, d := range roster {
		if d.ID == c.Param("id") {
			return c.JSON(http.StatusOK, NextStatuses(d.Status))
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
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
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor status: "+req.Status)
	}

	ctx := c.Request().Context()
	roster := h.svc.List(ctx)

	id := c.Param("id")
	var target *Doctor
	for _, d := range roster {
		if d.ID == id {
			target = d
			break
		}
	}
	if target == nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}

	err := h.svc.SetStatus(ctx, roster, id, next)
	h.mtx.RecordTransition("doctors", err)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "status update failed")
	}
	return c.JSON(http.StatusOK, target)
}
