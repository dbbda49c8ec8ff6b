// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestPasswordResetRejectsBadEmail(t *testing.T) {
	svc := NewAuthService(nil, nil, nil)

	err := svc.RequestPasswordReset(&ForgotPasswordRequest{Email: "not-an-email"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestResetPasswordRejectsWeakPassword(t *testing.T) {
	svc := NewAuthService(nil, nil, nil)

	err := svc.ResetPassword(&ResetPasswordRequest{
		Token:    "sometoken",
		Password: "short",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestResetPasswordRequiresToken(t *testing.T) {
	svc := NewAuthService(nil, nil, nil)

	err := svc.ResetPassword(&ResetPasswordRequest{Password: "Str0ngPassword"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
