package handlers

import (
	"jobboard/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func identityFrom(c echo.Context) (*common.Identity, error) {
	identity, ok := common.GetIdentityFromContext(c.Request().Context())
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	return identity, nil
}

func tenantFrom(c echo.Context) (uuid.UUID, error) {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, common.ErrTenantResolution
	}
	return tenantID, nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	return common.ValidateUUID(c.Param(name), name)
}

func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return common.ValidationError("Invalid request body")
	}
	return nil
}
