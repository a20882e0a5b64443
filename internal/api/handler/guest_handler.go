package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicaps/clubs-portal/internal/core/ports"
)

type GuestHandler struct {
	service ports.GuestService
}

func NewGuestHandler(service ports.GuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// Feed handles GET /guest/feed.
//
// @Summary      Clubs, events and new-event notifications
// @Tags         guest
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  guestFeedResponse
// @Router       /guest/feed [get]
func (h *GuestHandler) Feed(c echo.Context) error {
	feed, err := h.service.Feed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGuestFeedResponse(feed))
}
