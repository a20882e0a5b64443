package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicaps/clubs-portal/internal/api/metrics"
	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

const (
	msgRejected       = "Invalid username or password."
	msgMemberRejected = "Invalid credentials or you're not a member of the selected club. Please check with your admin."
	msgMissingClub    = "Please select a club for member login"
)

// TokenIssuer signs the token returned by a successful login.
type TokenIssuer interface {
	Issue(u domain.User) (string, time.Time, error)
}

type AuthHandler struct {
	authService ports.AuthService
	tokens      TokenIssuer
}

func NewAuthHandler(authService ports.AuthService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

// Login authenticates and returns a session token.
//
// @Summary      Login
// @Description  Guests that have never signed in are registered on the spot.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.LoginsTotal.WithLabelValues(roleLabel(req.Role), "invalid").Inc()
		return err
	}

	role := domain.Role(req.Role)
	user, err := h.authService.Authenticate(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
		ClubID:   req.ClubID,
	})
	switch {
	case errors.Is(err, domain.ErrAuthenticationRejected):
		metrics.LoginsTotal.WithLabelValues(roleLabel(req.Role), "rejected").Inc()
		msg := msgRejected
		if role == domain.RoleMember {
			msg = msgMemberRejected
		}
		return echo.NewHTTPError(http.StatusUnauthorized, msg)
	case errors.Is(err, domain.ErrMissingClub):
		metrics.LoginsTotal.WithLabelValues(roleLabel(req.Role), "invalid").Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, msgMissingClub)
	case err != nil:
		metrics.LoginsTotal.WithLabelValues(roleLabel(req.Role), "error").Inc()
		return err
	}

	signed, exp, err := h.tokens.Issue(*user)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues(roleLabel(req.Role), "ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: signed, ExpiresAt: exp, User: toUserResponse(*user)})
}

// Logout clears the session slot. It needs no token and always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports who is signed in.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	user, err := h.authService.Session(c.Request().Context())
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	resp := toUserResponse(*user)
	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: &resp})
}

// roleLabel bounds the metric label to the known roles.
func roleLabel(r string) string {
	if domain.Role(r).Valid() {
		return r
	}
	return "unknown"
}
