package middleware

import (
	"slices"

	"jobboard/internal/common"
	"jobboard/internal/models"
)

// Authorize is the pure role check behind RequireRoles.
func Authorize(identity *common.Identity, allowed ...models.Role) *common.AppError {
	if identity == nil {
		return common.ErrUnauthenticated
	}
	if !slices.Contains(allowed, identity.Role) {
		return common.ErrInsufficientPermissions
	}
	return nil
}
