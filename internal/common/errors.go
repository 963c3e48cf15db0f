package common

import (
	"errors"
	"net/http"
)

// ErrorKind tags an AppError. It is also the "code" field of error responses.
type ErrorKind string

const (
	KindNoToken                 ErrorKind = "NoToken"
	KindInvalidToken            ErrorKind = "InvalidToken"
	KindUserNotFoundOrInactive  ErrorKind = "UserNotFoundOrInactive"
	KindTenantMismatch          ErrorKind = "TenantMismatch"
	KindTenantResolutionError   ErrorKind = "TenantResolutionError"
	KindTenantNotFound          ErrorKind = "TenantNotFound"
	KindTenantInactive          ErrorKind = "TenantInactive"
	KindInvalidCredentials      ErrorKind = "InvalidCredentials"
	KindUserInactive            ErrorKind = "UserInactive"
	KindInvalidRefreshToken     ErrorKind = "InvalidRefreshToken"
	KindRefreshTokenExpired     ErrorKind = "RefreshTokenExpired"
	KindInsufficientPermissions ErrorKind = "InsufficientPermissions"
	KindUnauthenticated         ErrorKind = "Unauthenticated"

	KindValidation ErrorKind = "ValidationError"
	KindNotFound   ErrorKind = "NotFound"
	KindConflict   ErrorKind = "Conflict"
	KindForbidden  ErrorKind = "Forbidden"
	KindInternal   ErrorKind = "Internal"
	KindRateLimit  ErrorKind = "RateLimited"
)

// AppError is a terminal, request-scoped failure carrying the HTTP status it maps to.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches on Kind so errors carrying a custom message still satisfy
// errors.Is against the sentinel of the same kind.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func NewAppError(kind ErrorKind, status int, message string) *AppError {
	return &AppError{Kind: kind, Status: status, Message: message}
}

var (
	ErrNoToken                 = NewAppError(KindNoToken, http.StatusUnauthorized, "No token provided")
	ErrInvalidToken            = NewAppError(KindInvalidToken, http.StatusUnauthorized, "Invalid token")
	ErrUserNotFoundOrInactive  = NewAppError(KindUserNotFoundOrInactive, http.StatusUnauthorized, "User not found or inactive")
	ErrTenantMismatch          = NewAppError(KindTenantMismatch, http.StatusForbidden, "Tenant mismatch")
	ErrTenantResolution        = NewAppError(KindTenantResolutionError, http.StatusBadRequest, "Tenant subdomain not found")
	ErrTenantNotFound          = NewAppError(KindTenantNotFound, http.StatusNotFound, "Tenant not found")
	ErrTenantInactive          = NewAppError(KindTenantInactive, http.StatusForbidden, "Tenant is not active")
	ErrInvalidCredentials      = NewAppError(KindInvalidCredentials, http.StatusUnauthorized, "Invalid credentials")
	ErrUserInactive            = NewAppError(KindUserInactive, http.StatusForbidden, "User is not active")
	ErrInvalidRefreshToken     = NewAppError(KindInvalidRefreshToken, http.StatusUnauthorized, "Invalid refresh token")
	ErrRefreshTokenExpired     = NewAppError(KindRefreshTokenExpired, http.StatusUnauthorized, "Refresh token expired")
	ErrInsufficientPermissions = NewAppError(KindInsufficientPermissions, http.StatusForbidden, "Insufficient permissions")
	ErrUnauthenticated         = NewAppError(KindUnauthenticated, http.StatusUnauthorized, "User not authenticated")
)

func ValidationError(message string) *AppError {
	return NewAppError(KindValidation, http.StatusBadRequest, message)
}

func NotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, http.StatusNotFound, message)
}

func ConflictError(message string) *AppError {
	return NewAppError(KindConflict, http.StatusConflict, message)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(KindForbidden, http.StatusForbidden, message)
}

// Cookie names shared by the auth handlers and the auth pipeline.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)
