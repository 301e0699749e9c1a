package apperrs

import (
	"fmt"
	"net/http"
)

// Kind тип ошибки уровня приложения.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindExpired           Kind = "EXPIRED"
	KindForbidden         Kind = "FORBIDDEN"
	KindValidation        Kind = "VALIDATION_FAILED"
	KindTooManyRequests   Kind = "TOO_MANY_REQUESTS"
	KindUpstream          Kind = "UPSTREAM_UNAVAILABLE"
	KindAuthRequired      Kind = "AUTH_REQUIRED"
	KindAuthInvalid       Kind = "AUTH_INVALID"
	KindAuthExpired       Kind = "AUTH_EXPIRED"
	KindAuthInsufficient  Kind = "AUTH_INSUFFICIENT_SCOPE"
	KindUserDeactivated   Kind = "USER_DEACTIVATED"
	KindNotImplemented    Kind = "NOT_IMPLEMENTED"
	KindInternal          Kind = "INTERNAL_ERROR"
)

// AppError структурированная ошибка, отдаваемая наружу как есть.
// Code и Status совместимы с таблицей кодов API которую читают клиенты.
type AppError struct {
	Kind    Kind
	Code    int
	Status  int
	Message string
	Data    map[string]any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// WithData возвращает копию ошибки с приложенными структурированными данными.
func (e *AppError) WithData(data map[string]any) *AppError {
	clone := *e
	clone.Data = data
	return &clone
}

func newError(kind Kind, code int, status int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Status: status, Message: message}
}

// NotFound невалидный хеш и отсутствующая запись намеренно неразличимы,
// чтобы по ответу нельзя было перебирать существующие id.
func NotFound(message string) *AppError {
	return newError(KindNotFound, 8, http.StatusNotFound, message)
}

func Expired(message string) *AppError {
	return newError(KindExpired, 7, http.StatusForbidden, message)
}

func Forbidden(message string) *AppError {
	return newError(KindForbidden, 7, http.StatusForbidden, message)
}

func Validation(message string) *AppError {
	return newError(KindValidation, 3, http.StatusBadRequest, message)
}

// TooManyRequests лимит запросов исчерпан, retryAfter в секундах уходит
// клиенту и в заголовок Retry-After.
func TooManyRequests(retryAfter int64) *AppError {
	e := newError(KindTooManyRequests, 6, http.StatusTooManyRequests,
		"Too many requests! You are sending requests too fast!")
	e.Data = map[string]any{"retry_after": retryAfter}
	return e
}

// Upstream внешний сервис недоступен или ответил невалидно.
// Код 2 в таблице кодов идет со статусом 500, клиенты читают пару как есть.
func Upstream(message string) *AppError {
	return newError(KindUpstream, 2, http.StatusInternalServerError, message)
}

func AuthRequired(message string) *AppError {
	return newError(KindAuthRequired, 100, http.StatusUnauthorized, message)
}

func AuthInvalid(message string) *AppError {
	return newError(KindAuthInvalid, 101, http.StatusBadRequest, message)
}

func AuthExpired(message string) *AppError {
	return newError(KindAuthExpired, 102, http.StatusBadRequest, message)
}

func AuthInsufficient(message string) *AppError {
	return newError(KindAuthInsufficient, 103, http.StatusForbidden, message)
}

func UserDeactivated(message string) *AppError {
	return newError(KindUserDeactivated, 200, http.StatusForbidden, message)
}

func NotImplemented(message string) *AppError {
	return newError(KindNotImplemented, 4, http.StatusBadRequest, message)
}

func Internal() *AppError {
	return newError(KindInternal, 1, http.StatusInternalServerError, "Internal server error")
}
