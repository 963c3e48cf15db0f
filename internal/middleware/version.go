package middleware

import (
	"github.com/labstack/echo/v4"
)

const (
	APIVersionHeader = "X-API-Version"
	ServiceHeader    = "X-Service"
)

// VersionHeader stamps every response with the running server version.
func VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set(APIVersionHeader, version)
			header.Set(ServiceHeader, "jobboard")
			return next(c)
		}
	}
}
