package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicaps/clubs-portal/internal/core/ports"
)

// MemberHandler serves the admin member screen.
type MemberHandler struct {
	service ports.MemberService
}

func NewMemberHandler(service ports.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// List handles GET /admin/members.
//
// @Summary      List members
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  memberResponse
// @Router       /admin/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m.User, m.ClubName))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /admin/members.
//
// @Summary      Add a member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      memberRequest  true  "Member"
// @Success      201   {object}  memberResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/members [post]
func (h *MemberHandler) Create(c echo.Context) error {
	var req memberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.service.Add(c.Request().Context(), ports.MemberInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMemberResponse(*user, ""))
}

// Update handles PUT /admin/members/:id.
//
// @Summary      Edit a member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Member id"
// @Param        body  body      memberRequest  true  "Member"
// @Success      200   {object}  memberResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/members/{id} [put]
func (h *MemberHandler) Update(c echo.Context) error {
	var req memberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.MemberInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMemberResponse(*user, ""))
}

// Delete handles DELETE /admin/members/:id.
//
// @Summary      Remove a member
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Member id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/members/{id} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GenerateCredentials handles POST /admin/credentials. Nothing is stored.
//
// @Summary      Propose credentials for a new member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      credentialsRequest  true  "Club"
// @Success      200   {object}  credentialsResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/credentials [post]
func (h *MemberHandler) GenerateCredentials(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	creds, err := h.service.GenerateCredentials(c.Request().Context(), req.ClubID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, credentialsResponse(*creds))
}
