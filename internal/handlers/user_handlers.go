package handlers

import (
	"net/http"

	"jobboard/internal/common"
	"jobboard/internal/models"
	"jobboard/internal/services"

	"github.com/labstack/echo/v4"
)

const resumeFormField = "resume"

// UserHandlers serves profile and user administration endpoints.
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

func (h *UserHandlers) GetProfile(c echo.Context) error {
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

func (h *UserHandlers) UpdateProfile(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req services.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.userService.UpdateProfile(c.Request().Context(), identity.UserID, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, profile)
}

// UploadResume accepts a multipart form with a single PDF under "resume".
func (h *UserHandlers) UploadResume(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile(resumeFormField)
	if err != nil {
		return common.ValidationError("Resume file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.ValidationError("Unable to read resume file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if err := h.userService.UploadResume(c.Request().Context(), identity, file, fileHeader.Size, contentType); err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, map[string]string{"message": "Resume uploaded successfully"})
}

func (h *UserHandlers) GetResume(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	url, err := h.userService.ResumeURL(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, map[string]string{"url": url})
}

// ListUsers supports an optional ?role= filter.
func (h *UserHandlers) ListUsers(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var role *models.Role
	if raw := c.QueryParam("role"); raw != "" {
		r := models.Role(raw)
		if !r.Valid() {
			return common.ValidationError("Invalid role")
		}
		role = &r
	}

	users, err := h.userService.List(c.Request().Context(), tenantID, role)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, users)
}

func (h *UserHandlers) GetUser(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Request().Context(), tenantID, id)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, user)
}

func (h *UserHandlers) UpdateUser(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req services.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), identity, id, &req)
	if err != nil {
		return err
	}
	return common.SendSuccess(c, http.StatusOK, user)
}
