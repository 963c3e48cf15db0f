package handlers

import (
	"net/http"

	"jobboard/internal/common"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/labstack/echo/v4"
)

type ApplicationHandlers struct {
	applicationService services.ApplicationService
}

func NewApplicationHandlers(applicationService services.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{applicationService: applicationService}
}

type applyRequest struct {
	JobID string `json:"jobId"`
}

type statusRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

func (h *ApplicationHandlers) Apply(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	jobID, err := common.ValidateUUID(req.JobID, "jobId")
	if err != nil {
		return err
	}

	application, err := h.applicationService.Apply(c.Request().Context(), identity, jobID)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, application)
}

func (h *ApplicationHandlers) ListMine(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	applications, err := h.applicationService.ListMine(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, applications)
}

func (h *ApplicationHandlers) ListForJob(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	applications, err := h.applicationService.ListForJob(c.Request().Context(), identity, jobID)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, applications)
}

func (h *ApplicationHandlers) ListForCompany(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	applications, err := h.applicationService.ListForCompany(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, applications)
}

func (h *ApplicationHandlers) UpdateStatus(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	application, err := h.applicationService.UpdateStatus(c.Request().Context(), identity, id, req.Status)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, application)
}

func (h *ApplicationHandlers) Withdraw(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.applicationService.Withdraw(c.Request().Context(), identity, id); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, map[string]string{"message": "Application deleted successfully"})
}
