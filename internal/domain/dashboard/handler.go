package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard/overview", h.GetOverview)
	g.GET("/dashboard/weekly", h.GetWeekly)
}

func (h *Handler) GetOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Overview(c.Request().Context()))
}

func (h *Handler) GetWeekly(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Weekly(c.Request().Context()))
}
