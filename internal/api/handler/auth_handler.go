package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

const refreshCookie = "refreshToken"

type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
}

// NewAuthHandler builds the account handlers. secureCookies marks the
// refresh cookie Secure and should be set outside local development.
func NewAuthHandler(authService ports.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		Country:   req.Location.Country,
		City:      req.Location.City,
	})
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, res.RefreshToken, res.RefreshExpiresAt)
	return c.JSON(http.StatusCreated, authResponse{Status: "success", Token: res.AccessToken, Data: userData{User: res.User}})
}

// Login authenticates a user and returns an access token. The refresh token
// is set as an httpOnly cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, res.RefreshToken, res.RefreshExpiresAt)
	return c.JSON(http.StatusOK, authResponse{Status: "success", Token: res.AccessToken, Data: userData{User: res.User}})
}

// Refresh rotates the refresh cookie and returns a new access token.
//
// @Summary      Refresh the session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	res, err := h.authService.Refresh(c.Request().Context(), readCookie(c, refreshCookie))
	if err != nil {
		h.clearRefreshCookie(c)
		return err
	}

	h.setRefreshCookie(c, res.RefreshToken, res.RefreshExpiresAt)
	return c.JSON(http.StatusOK, authResponse{Status: "success", Token: res.AccessToken, Data: userData{User: res.User}})
}

// Logout revokes the refresh cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), readCookie(c, refreshCookie)); err != nil {
		return err
	}
	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Status: "success", Message: "User profile", User: user})
}

// ChangePassword replaces the caller's password. Tokens issued before the
// change stop working.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/password [patch]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.ChangePassword(c.Request().Context(), user, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, res.RefreshToken, res.RefreshExpiresAt)
	return c.JSON(http.StatusOK, authResponse{Status: "success", Token: res.AccessToken, Data: userData{User: res.User}})
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/auth",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func readCookie(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
