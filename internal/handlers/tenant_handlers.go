package handlers

import (
	"net/http"

	"jobboard/internal/common"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles tenant administration
type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req services.CreateTenantRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tenant, err := h.tenantService.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, tenant)
}

func (h *TenantHandlers) ListTenants(c echo.Context) error {
	tenants, err := h.tenantService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, tenants)
}

// GetTenant lets tenant admins read their own tenant only.
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if identity.Role == models.RoleTenantAdmin && identity.TenantID != id {
		return common.ErrInsufficientPermissions
	}

	tenant, err := h.tenantService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, tenant)
}

func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req services.UpdateTenantRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tenant, err := h.tenantService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, tenant)
}

func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.tenantService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, map[string]string{"message": "Tenant deleted successfully"})
}
