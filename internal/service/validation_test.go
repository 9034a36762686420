package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/model"
)

func TestPasswordProblems(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{name: "strong", password: "Str0ng!Pass"},
		{name: "too short", password: "S0!a", want: []string{"must be at least 8 characters"}},
		{name: "no upper", password: "str0ng!pass", want: []string{"must contain at least one uppercase letter"}},
		{name: "no lower", password: "STR0NG!PASS", want: []string{"must contain at least one lowercase letter"}},
		{name: "no digit", password: "Strong!Pass", want: []string{"must contain at least one number"}},
		{name: "no special", password: "Str0ngPass", want: []string{"must contain at least one special character"}},
		{name: "too long", password: "Aa1!" + strings.Repeat("x", 69), want: []string{"cannot exceed 72 bytes"}},
		{name: "exactly 72 bytes", password: "Aa1!" + strings.Repeat("x", 68)},
		{name: "over 100 characters", password: "Aa1!" + strings.Repeat("x", 97), want: []string{"cannot exceed 100 characters"}},
		{name: "multibyte over 72 bytes", password: "Aa1!" + strings.Repeat("é", 35), want: []string{"cannot exceed 72 bytes"}},
		{name: "multibyte within 72 bytes", password: "Aa1!" + strings.Repeat("é", 34)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, passwordProblems(tt.password))
		})
	}
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Struct(model.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice_01",
		Password: "Str0ng!Pass",
	}))

	err := v.Struct(model.RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "weakpass"})
	apiErr := apierror.As(err)
	assert.Equal(t, apierror.KindValidationFailed, apiErr.Kind)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.ElementsMatch(t, []string{
		"password must contain at least one uppercase letter",
		"password must contain at least one number",
		"password must contain at least one special character",
	}, apiErr.Errors)

	err = v.Struct(model.RegisterRequest{Email: "alice@example.com", Username: "al", Password: "Str0ng!Pass"})
	assert.Contains(t, apierror.As(err).Errors, "username must be at least 3 characters")

	err = v.Struct(model.RevokeAPIKeyRequest{KeyID: "123"})
	assert.Contains(t, apierror.As(err).Errors, "key_id must be a valid UUID")
}

func TestValidator_NotAStruct(t *testing.T) {
	err := NewValidator().Struct("plain string")
	require.Error(t, err)
	assert.Equal(t, apierror.KindInternal, apierror.KindOf(err))
}
