package service

import (
	"errors"
	"strings"
)

type ErrorCode string

const (
	ErrorCodeValidation     ErrorCode = "validation"
	ErrorCodeUnauthorized   ErrorCode = "unauthorized"
	ErrorCodeAuthentication ErrorCode = "authentication"
	ErrorCodeForbidden      ErrorCode = "forbidden"
	ErrorCodeConflict       ErrorCode = "conflict"
	ErrorCodeNotFound       ErrorCode = "not_found"
	ErrorCodeInternal       ErrorCode = "internal"
)

// ServiceError 携带一组面向调用方的错误信息。
type ServiceError struct {
	Code     ErrorCode
	Messages []string
}

func (e *ServiceError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func NewServiceError(code ErrorCode, messages ...string) error {
	return &ServiceError{Code: code, Messages: messages}
}

func NewValidationError(messages ...string) error {
	return NewServiceError(ErrorCodeValidation, messages...)
}

func NewUnauthorizedError(message string) error {
	return NewServiceError(ErrorCodeUnauthorized, message)
}

func NewAuthenticationError(message string) error {
	return NewServiceError(ErrorCodeAuthentication, message)
}

func NewForbiddenError(messages ...string) error {
	return NewServiceError(ErrorCodeForbidden, messages...)
}

func NewConflictError(message string) error {
	return NewServiceError(ErrorCodeConflict, message)
}

func NewNotFoundError(message string) error {
	return NewServiceError(ErrorCodeNotFound, message)
}

func NewInternalError(message string) error {
	return NewServiceError(ErrorCodeInternal, message)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// HasCode 判断 err 是否为指定错误码的 ServiceError。
func HasCode(err error, code ErrorCode) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.Code == code
}
