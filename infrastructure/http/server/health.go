package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status  string `json:"status"`
	Mode    string `json:"mode"`
	Gateway string `json:"gateway"`
	Stats   any    `json:"stats,omitempty"`
}

func (h *Handler) Health(c echo.Context) error {
	response := healthResponse{
		Status:  "ok",
		Mode:    string(h.resolver.Mode()),
		Gateway: string(h.options.GatewayMode),
	}
	if h.stats != nil {
		response.Stats = h.stats.Stats()
	}
	return c.JSON(http.StatusOK, response)
}
