package middleware

import (
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/metrics"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	authService services.AuthService
	metrics     *metrics.Metrics
}

func NewAuthMiddleware(authService services.AuthService, m *metrics.Metrics) *AuthMiddleware {
	return &AuthMiddleware{authService: authService, metrics: m}
}

// Authenticate attaches the caller's Identity to the request context. The
// token is read from the accessToken cookie first, then from a Bearer header.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				m.metrics.AuthFailure(string(common.KindNoToken))
				return common.ErrNoToken
			}

			req := c.Request()
			var requestTenant *uuid.UUID
			if tenantID, ok := common.GetTenantIDFromContext(req.Context()); ok {
				requestTenant = &tenantID
			}

			identity, err := m.authService.Authenticate(req.Context(), token, requestTenant)
			if err != nil {
				return err
			}

			c.SetRequest(req.WithContext(common.WithIdentity(req.Context(), identity)))
			return next(c)
		}
	}
}

// RequireRoles admits only callers whose role is in roles.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := common.GetIdentityFromContext(c.Request().Context())
			if err := Authorize(identity, roles...); err != nil {
				m.metrics.AuthFailure(string(err.Kind))
				return err
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(common.AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
