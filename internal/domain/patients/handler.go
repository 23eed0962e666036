package patients

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
	g.GET("/patients", h.List)
}

func (h *Handler) List(c echo.Context) error {
	directory := h.svc.List(c.Request().Context())
	return c.JSON(http.StatusOK, Filter(directory, c.QueryParam("search")))
}
