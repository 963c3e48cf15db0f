package handlers

import (
	"net/http"
	"strconv"

	"jobboard/internal/common"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/labstack/echo/v4"
)

type JobHandlers struct {
	jobService services.JobService
}

func NewJobHandlers(jobService services.JobService) *JobHandlers {
	return &JobHandlers{jobService: jobService}
}

func (h *JobHandlers) CreateJob(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req services.JobRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	job, err := h.jobService.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusCreated, job)
}

// ListJobs handles GET /jobs?isActive=true|false
func (h *JobHandlers) ListJobs(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var filter models.JobFilter
	if raw := c.QueryParam("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return common.ValidationError("isActive must be true or false")
		}
		filter.IsActive = &active
	}

	jobs, err := h.jobService.List(c.Request().Context(), tenantID, filter)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, jobs)
}

func (h *JobHandlers) GetJob(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	job, err := h.jobService.GetByID(c.Request().Context(), tenantID, id)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, job)
}

func (h *JobHandlers) ListCompanyJobs(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	companyID, err := pathUUID(c, "companyId")
	if err != nil {
		return err
	}

	jobs, err := h.jobService.ListByCompany(c.Request().Context(), tenantID, companyID)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, jobs)
}

func (h *JobHandlers) UpdateJob(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req services.JobRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	job, err := h.jobService.Update(c.Request().Context(), identity, id, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, job)
}

func (h *JobHandlers) DeleteJob(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.jobService.Delete(c.Request().Context(), identity, id); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}
