package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicaps/clubs-portal/internal/api/metrics"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

// ClubHandler serves the admin club screen.
type ClubHandler struct {
	service ports.ClubService
}

func NewClubHandler(service ports.ClubService) *ClubHandler {
	return &ClubHandler{service: service}
}

// List handles GET /admin/clubs.
//
// @Summary      List clubs with member and event counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   clubSummaryResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/clubs [get]
func (h *ClubHandler) List(c echo.Context) error {
	clubs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClubSummaries(clubs))
}

// Create handles POST /admin/clubs. The id is derived from the name.
//
// @Summary      Create a club
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clubRequest  true  "Club"
// @Success      201   {object}  clubResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/clubs [post]
func (h *ClubHandler) Create(c echo.Context) error {
	var req clubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	club, err := h.service.Create(c.Request().Context(), ports.ClubInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toClubResponse(*club))
}

// Update handles PUT /admin/clubs/:id and renames the club on its events.
//
// @Summary      Update a club
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Club id"
// @Param        body  body      clubRequest  true  "Club"
// @Success      200   {object}  cascadeResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/clubs/{id} [put]
func (h *ClubHandler) Update(c echo.Context) error {
	var req clubRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ClubInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return err
	}
	metrics.CascadeRecordsTotal.WithLabelValues("events_renamed").Add(float64(res.EventsRenamed))
	return c.JSON(http.StatusOK, toCascadeResponse(res))
}

// Delete handles DELETE /admin/clubs/:id together with the club's members and events.
//
// @Summary      Delete a club
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Club id"
// @Success      200  {object}  cascadeResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/clubs/{id} [delete]
func (h *ClubHandler) Delete(c echo.Context) error {
	res, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.CascadeRecordsTotal.WithLabelValues("members_removed").Add(float64(res.MembersRemoved))
	metrics.CascadeRecordsTotal.WithLabelValues("events_removed").Add(float64(res.EventsRemoved))
	return c.JSON(http.StatusOK, toCascadeResponse(res))
}
