package middleware

import (
	"jobboard/internal/common"
	"jobboard/internal/logger"
	"jobboard/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantResolver resolves the tenant from the Host header on every request
// and stores its id in the request context.
func TenantResolver(tenants services.TenantService, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			tenant, err := tenants.Resolve(req.Context(), req.Host)
			if err != nil {
				logger.FromEcho(c, log).Debug("Tenant resolution failed", zap.String("host", req.Host), zap.Error(err))
				return err
			}

			c.SetRequest(req.WithContext(common.WithTenantID(req.Context(), tenant.ID)))
			return next(c)
		}
	}
}
