package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"jobboard/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

const (
	TenantIDKey contextKey = "tenant_id"
	IdentityKey contextKey = "identity"
)

// Identity is the verified, request-scoped caller derived from an access token.
type Identity struct {
	UserID   uuid.UUID   `json:"userId"`
	TenantID uuid.UUID   `json:"tenantId"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantIDFromContext returns the tenant resolved from the request host.
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext returns the authenticated caller, if any.
func GetIdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*Identity)
	return identity, ok && identity != nil
}

// SuccessResponse wraps every successful payload.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	return &resp
}

func SendSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// HTTPErrorHandler renders AppError and echo.HTTPError values as ErrorResponse.
// Anything else is logged and reported as a generic 500.
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := CreateErrorResponse(string(KindInternal), "Internal server error")

		var appErr *AppError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status
			resp = CreateErrorResponse(string(appErr.Kind), appErr.Message)
		case errors.As(err, &httpErr):
			status = httpErr.Code
			resp = CreateErrorResponse(httpErrorCode(httpErr.Code), fmt.Sprint(httpErr.Message))
		default:
			log.Error("Unhandled error",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, resp)
		}
		if writeErr != nil {
			log.Error("Failed to write error response", zap.Error(writeErr))
		}
	}
}

func httpErrorCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return string(KindNotFound)
	case status == http.StatusTooManyRequests:
		return string(KindRateLimit)
	case status >= 500:
		return string(KindInternal)
	default:
		return "ClientError"
	}
}

// ValidateUUID parses a path or body identifier.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, ValidationError(fmt.Sprintf("%s is required", fieldName))
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ValidationError(fmt.Sprintf("Invalid %s", fieldName))
	}
	return id, nil
}

// ValidateMinLength validates a trimmed string against a minimum length in characters.
func ValidateMinLength(value, fieldName string, minLength int) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < minLength {
		return ValidationError(fmt.Sprintf("%s must be at least %d characters", fieldName, minLength))
	}
	return nil
}

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ValidationError("Invalid email address")
	}
	return nil
}

func ValidateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ValidationError("Invalid URL")
	}
	return nil
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func ValidateSlug(slug string) error {
	if len(slug) < 3 {
		return ValidationError("Slug must be at least 3 characters")
	}
	if !slugPattern.MatchString(slug) {
		return ValidationError("Slug must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}
