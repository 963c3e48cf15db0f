package handlers

import (
	"net/http"

	"jobboard/internal/common"
	"jobboard/internal/services"

	"github.com/labstack/echo/v4"
)

// CompanyHandlers handles company endpoints. A company user owns at most one company.
type CompanyHandlers struct {
	companyService services.CompanyService
}

func NewCompanyHandlers(companyService services.CompanyService) *CompanyHandlers {
	return &CompanyHandlers{companyService: companyService}
}

func (h *CompanyHandlers) CreateCompany(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req services.CompanyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	company, err := h.companyService.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, company)
}

func (h *CompanyHandlers) GetMyCompany(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	company, err := h.companyService.GetMine(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, company)
}

func (h *CompanyHandlers) ListCompanies(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	companies, err := h.companyService.List(c.Request().Context(), tenantID)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, companies)
}

func (h *CompanyHandlers) GetCompany(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	company, err := h.companyService.GetByID(c.Request().Context(), tenantID, id)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, company)
}

func (h *CompanyHandlers) UpdateCompany(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req services.CompanyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	company, err := h.companyService.UpdateMine(c.Request().Context(), identity, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, company)
}

func (h *CompanyHandlers) DeleteCompany(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	if err := h.companyService.DeleteMine(c.Request().Context(), identity); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, map[string]string{"message": "Company deleted successfully"})
}
