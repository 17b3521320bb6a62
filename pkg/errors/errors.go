package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Токены
	ErrInvalidSigningMethod = fmt.Errorf("unexpected token signing method")

	// Аутентификация
	ErrInvalidAuthHeader  = fmt.Errorf("malformed authorization header")
	ErrInvalidCredentials = fmt.Errorf("invalid username/password")
	ErrTooManyAttempts    = fmt.Errorf("too many failed login attempts")

	// Общие
	ErrNotFound   = fmt.Errorf("record not found")
	ErrDuplicate  = fmt.Errorf("record already exists")
	ErrBadRequest = fmt.Errorf("bad request")
)

// HttpError несёт код статуса и сообщение для клиента. Err хранит исходную
// причину только для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details ...interface{}) *HttpError {
	httpErr := &HttpError{Code: code, Message: message, Err: err}
	if len(details) > 0 {
		httpErr.Details = details[0]
	}
	return httpErr
}

// ValidationError - клиент прислал негодные данные. Повтор без их
// изменения бесполезен.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AuthKind - причина отклонения токена.
type AuthKind string

const (
	AuthMalformed        AuthKind = "malformed"
	AuthSignatureInvalid AuthKind = "signature-invalid"
	AuthExpired          AuthKind = "expired"
)

type AuthenticationError struct {
	Kind AuthKind
	Err  error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Kind)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

func NewAuthenticationError(kind AuthKind, err error) error {
	return &AuthenticationError{Kind: kind, Err: err}
}

// AuthorizationError возвращает гейт ролей. Authenticated == false, если
// в запросе вообще не было личности.
type AuthorizationError struct {
	Gate          string
	Authenticated bool
}

func (e *AuthorizationError) Error() string {
	if !e.Authenticated {
		return fmt.Sprintf("unauthorized: %s requires a logged-in user", e.Gate)
	}
	return fmt.Sprintf("unauthorized: %s", e.Gate)
}

// StatusCode: 401 для анонимного запроса, иначе 403.
func (e *AuthorizationError) StatusCode() int {
	if !e.Authenticated {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// ContractViolation - неверное использование API внутри кода. Это ошибка программиста.
type ContractViolation struct {
	Message string
}

func (e *ContractViolation) Error() string { return "contract violation: " + e.Message }

func NewContractViolation(format string, args ...interface{}) error {
	return &ContractViolation{Message: fmt.Sprintf(format, args...)}
}

// IsValidation сообщает, является ли err (или оборачивает) ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
