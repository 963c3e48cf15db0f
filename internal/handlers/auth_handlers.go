package handlers

import (
	"net/http"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/services"

	"github.com/labstack/echo/v4"
)

// CookieConfig controls the auth cookies.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthHandlers handles registration, login and session endpoints
type AuthHandlers struct {
	authService services.AuthService
	userService services.UserService
	cookies     CookieConfig
}

func NewAuthHandlers(authService services.AuthService, userService services.UserService, cookies CookieConfig) *AuthHandlers {
	return &AuthHandlers{authService: authService, userService: userService, cookies: cookies}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req services.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), tenantID, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req services.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), tenantID, &req)
	if err != nil {
		return err
	}

	h.setCookie(c, common.AccessTokenCookie, result.AccessToken, h.cookies.AccessTTL)
	h.setCookie(c, common.RefreshTokenCookie, result.RefreshToken, h.cookies.RefreshTTL)
	return common.SendSuccess(c, http.StatusOK, result)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandlers) Refresh(c echo.Context) error {
	token := h.refreshTokenFrom(c)
	if token == "" {
		return common.ValidationError("Refresh token is required")
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}

	h.setCookie(c, common.AccessTokenCookie, accessToken, h.cookies.AccessTTL)
	return common.SendSuccess(c, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Logout handles POST /auth/logout. It always succeeds.
func (h *AuthHandlers) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), h.refreshTokenFrom(c)); err != nil {
		return err
	}

	h.clearCookie(c, common.AccessTokenCookie)
	h.clearCookie(c, common.RefreshTokenCookie)
	return common.SendSuccess(c, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, profile)
}

// refreshTokenFrom prefers the cookie and falls back to the JSON body.
func (h *AuthHandlers) refreshTokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(common.RefreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req refreshRequest
	if c.Request().ContentLength != 0 {
		_ = c.Bind(&req)
	}
	return req.RefreshToken
}

func (h *AuthHandlers) setCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandlers) clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
