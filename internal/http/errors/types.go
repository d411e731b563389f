package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// AppError es el error estándar que los gates y handlers devuelven al cliente.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New crea un AppError.
func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// FromError convierte cualquier error en AppError. Los sentinels del storage
// se traducen a su status; el resto es 500.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case repository.IsNotFound(err):
		return ErrNotFound.WithCause(err)
	case repository.IsConflict(err):
		return ErrConflict.WithCause(err)
	case errors.Is(err, repository.ErrInvalidInput):
		return ErrBadRequest.WithCause(err)
	case errors.Is(err, repository.ErrTenantMismatch):
		return ErrTenantMismatch.WithCause(err)
	case errors.Is(err, repository.ErrTenantRequired):
		return ErrTenantNotFound.WithCause(err)
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail retorna una COPIA con el detalle dado.
func (e *AppError) WithDetail(detail string) *AppError {
	c := *e
	c.Detail = detail
	return &c
}

// WithMessage retorna una COPIA con otro mensaje.
func (e *AppError) WithMessage(msg string) *AppError {
	c := *e
	c.Message = msg
	return &c
}

// TenantHeaderRequired nombra el header configurado en el mensaje.
func TenantHeaderRequired(header string) *AppError {
	return ErrTenantHeaderRequired.WithMessage(header + " header is required for tenant-scoped endpoints.")
}

// WithCause retorna una COPIA con la causa dada.
func (e *AppError) WithCause(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

// 400
var (
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "The request is malformed or missing parameters.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "The request body is not valid JSON.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidParameter = &AppError{
		Code:       "INVALID_PARAMETER",
		Message:    "A path or query parameter is invalid.",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrTenantHeaderRequired es ConfigurationError: el request no dice a qué tienda va.
	ErrTenantHeaderRequired = &AppError{
		Code:       "TENANT_HEADER_REQUIRED",
		Message:    "X-Tenant-Slug header is required for tenant-scoped endpoints.",
		HTTPStatus: http.StatusBadRequest,
	}
)

// 401
var (
	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Authentication required.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrTokenInvalid = &AppError{
		Code:       "TOKEN_INVALID",
		Message:    "The access token is invalid or expired.",
		HTTPStatus: http.StatusUnauthorized,
	}
)

// 403
var (
	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "You are not allowed to perform this action.",
		HTTPStatus: http.StatusForbidden,
	}

	ErrTokenMissingTenant = &AppError{
		Code:       "TOKEN_MISSING_TENANT",
		Message:    "Token missing tenant information.",
		HTTPStatus: http.StatusForbidden,
	}

	ErrTenantMismatch = &AppError{
		Code:       "TENANT_MISMATCH",
		Message:    "You can only access your own store.",
		HTTPStatus: http.StatusForbidden,
	}

	ErrTenantSuspended = &AppError{
		Code:       "TENANT_SUSPENDED",
		Message:    "Tenant suspended.",
		HTTPStatus: http.StatusForbidden,
	}

	ErrSubscriptionExpired = &AppError{
		Code:       "SUBSCRIPTION_EXPIRED",
		Message:    "Subscription expired. Renew the subscription to continue.",
		HTTPStatus: http.StatusForbidden,
	}

	ErrSubscriptionSuspended = &AppError{
		Code:       "SUBSCRIPTION_SUSPENDED",
		Message:    "Subscription suspended.",
		HTTPStatus: http.StatusForbidden,
	}

	ErrSubscriptionRequired = &AppError{
		Code:       "SUBSCRIPTION_REQUIRED",
		Message:    "An active subscription is required.",
		HTTPStatus: http.StatusForbidden,
	}

	ErrReadOnlyGrace = &AppError{
		Code:       "SUBSCRIPTION_READ_ONLY",
		Message:    "Subscription is in a read-only grace period.",
		HTTPStatus: http.StatusForbidden,
	}

	ErrInsufficientPermissions = &AppError{
		Code:       "INSUFFICIENT_PERMISSIONS",
		Message:    "Insufficient permissions.",
		HTTPStatus: http.StatusForbidden,
	}
)

// 404 / 409
var (
	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "The requested resource was not found.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrTenantNotFound = &AppError{
		Code:       "TENANT_NOT_FOUND",
		Message:    "Tenant not found.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrConflict = &AppError{
		Code:       "CONFLICT",
		Message:    "The resource already exists.",
		HTTPStatus: http.StatusConflict,
	}
)

// 5xx
var (
	ErrInternalServerError = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "Internal server error.",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrServiceUnavailable = &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    "Service temporarily unavailable.",
		HTTPStatus: http.StatusServiceUnavailable,
	}
)
