package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind - тип ошибки обработки события.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "NotFound"
	KindInvalidInput     ErrorKind = "InvalidInput"
	KindUnsupportedRoute ErrorKind = "UnsupportedRoute"
	KindInternal         ErrorKind = "Internal"
)

// ErrorResponse описывает ошибку с кодом, типом и сообщением.
type ErrorResponse struct {
	StatusCode int       `json:"-"`
	Kind       ErrorKind `json:"code"`
	Message    string    `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	kind := KindInternal
	switch statusCode {
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusBadRequest:
		kind = KindInvalidInput
	case http.StatusUnprocessableEntity:
		kind = KindUnsupportedRoute
	}
	return &ErrorResponse{
		StatusCode: statusCode,
		Kind:       kind,
		Message:    message}
}

// NewNotFoundError сообщает об отсутствии сущности с указанным id.
func NewNotFoundError(entity, id string) *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, fmt.Sprintf("%s '%s' not found", entity, id))
}

// NewInvalidInputError сообщает о некорректных входных данных.
func NewInvalidInputError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, message)
}

// NewUnsupportedRouteError сообщает о неподдерживаемой комбинации метода закупки и этапа.
func NewUnsupportedRouteError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusUnprocessableEntity, message)
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// IsKind проверяет тип ошибки в цепочке err.
func IsKind(err error, kind ErrorKind) bool {
	var errorResponse *ErrorResponse
	if errors.As(err, &errorResponse) {
		return errorResponse.Kind == kind
	}
	return false
}
