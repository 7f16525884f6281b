package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Upstream services the server talks to.
const (
	ServiceMail    = "mail"
	ServicePayment = "payment"
)

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrNotConfigured is returned when a service is used without credentials
type ErrNotConfigured struct {
	Service string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("%s service is not configured", e.Service)
}

// ErrServiceUnavailable is returned when a connectivity check against a service fails
type ErrServiceUnavailable struct {
	Service string
	Err     error
}

func (e *ErrServiceUnavailable) Error() string {
	return fmt.Sprintf("%s service unavailable: %v", e.Service, e.Err)
}

func (e *ErrServiceUnavailable) Unwrap() error {
	return e.Err
}

// ErrUpstream wraps a failed call to the mail relay or the payment gateway
type ErrUpstream struct {
	Service string
	Op      string
	Err     error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// Validation is shorthand for a field-less validation error.
func Validation(message string) error {
	return &ErrValidation{Message: message}
}

// HTTPStatus maps an error to the status code returned to clients.
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		unauthorized *ErrUnauthorized
	)
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.As(err, &validation):
		return http.StatusBadRequest
	case stderrors.As(err, &unauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage maps an error to one of a fixed set of client-facing messages.
// Validation messages are written for end users and pass through unchanged;
// everything else is reduced so internal detail never reaches the response.
func PublicMessage(err error) string {
	var (
		validation   *ErrValidation
		unauthorized *ErrUnauthorized
		notConfig    *ErrNotConfigured
		unavailable  *ErrServiceUnavailable
		upstream     *ErrUpstream
	)
	switch {
	case err == nil:
		return ""
	case stderrors.As(err, &validation):
		return validation.Error()
	case stderrors.As(err, &unauthorized):
		return "unauthorized"
	case stderrors.As(err, &notConfig):
		if notConfig.Service == ServicePayment {
			return "Payment service is not configured"
		}
		return "Email service is not configured"
	case stderrors.As(err, &unavailable):
		if unavailable.Service == ServicePayment {
			return "Payment service is temporarily unavailable. Please try again later."
		}
		return "Email service is temporarily unavailable. Please try again later."
	case stderrors.As(err, &upstream):
		if upstream.Service == ServicePayment {
			return "Payment provider error. Please try again later."
		}
		return "Failed to send email. Please try again later."
	default:
		return "internal server error"
	}
}
