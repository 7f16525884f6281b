package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cause := stderrors.New("dial tcp: i/o timeout")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("Session ID is required"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("checkout: %w", Validation("bad")), http.StatusBadRequest},
		{"unauthorized", &ErrUnauthorized{}, http.StatusUnauthorized},
		{"not configured", &ErrNotConfigured{Service: ServiceMail}, http.StatusInternalServerError},
		{"unavailable", &ErrServiceUnavailable{Service: ServiceMail, Err: cause}, http.StatusInternalServerError},
		{"mail upstream", &ErrUpstream{Service: ServiceMail, Op: "send", Err: cause}, http.StatusInternalServerError},
		{"payment upstream", &ErrUpstream{Service: ServicePayment, Op: "create session", Err: cause}, http.StatusInternalServerError},
		{"unknown", cause, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage_NeverLeaksCause(t *testing.T) {
	cause := stderrors.New("No such checkout.session: cs_test_secret")

	errs := []error{
		&ErrUpstream{Service: ServicePayment, Op: "get session", Err: cause},
		&ErrUpstream{Service: ServiceMail, Op: "send", Err: cause},
		&ErrServiceUnavailable{Service: ServiceMail, Err: cause},
		cause,
	}
	for _, err := range errs {
		msg := PublicMessage(err)
		assert.NotContains(t, msg, "cs_test_secret")
		assert.NotEmpty(t, msg)
	}
}

func TestPublicMessage_Validation(t *testing.T) {
	err := fmt.Errorf("contact: %w", Validation("All fields are required"))
	assert.Equal(t, "All fields are required", PublicMessage(err))
	assert.Equal(t, "validation failed", PublicMessage(&ErrValidation{}))
}

func TestPublicMessage_NotConfigured(t *testing.T) {
	assert.Equal(t, "Email service is not configured", PublicMessage(&ErrNotConfigured{Service: ServiceMail}))
	assert.Equal(t, "Payment service is not configured", PublicMessage(&ErrNotConfigured{Service: ServicePayment}))
}
