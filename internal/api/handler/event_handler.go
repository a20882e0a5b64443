package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicaps/clubs-portal/internal/core/ports"
)

// EventHandler serves the event lists of the admin screen and the member's
// event management.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// ListAll handles GET /admin/events.
//
// @Summary      List all events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  eventResponse
// @Router       /admin/events [get]
func (h *EventHandler) ListAll(c echo.Context) error {
	events, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// ListForMember handles GET /member/events: every event plus the member's own.
//
// @Summary      Member event lists
// @Tags         member
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  memberEventsResponse
// @Router       /member/events [get]
func (h *EventHandler) ListForMember(c echo.Context) error {
	member, err := sessionUser(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListForSession(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, memberEventsResponse{
		Member: toUserResponse(*member),
		All:    toEventResponses(res.All),
		Own:    toEventResponses(res.Own),
	})
}

// Create handles POST /member/events under the member's club.
//
// @Summary      Create an event
// @Tags         member
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event"
// @Success      201   {object}  eventResponse
// @Failure      422   {object}  errorResponse
// @Router       /member/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	event, err := h.service.Create(c.Request().Context(), ports.EventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(*event))
}

// Update handles PUT /member/events/:id. Only the creator may edit.
//
// @Summary      Edit an event
// @Tags         member
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event id"
// @Param        body  body      eventRequest  true  "Event"
// @Success      200   {object}  eventResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /member/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req eventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	event, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.EventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(*event))
}

// Delete handles DELETE /member/events/:id. Only the creator may delete.
//
// @Summary      Delete an event
// @Tags         member
// @Security     BearerAuth
// @Param        id   path  string  true  "Event id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /member/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
