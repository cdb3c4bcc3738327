package validator_test

import (
	"strings"
	"testing"

	"agenda/shared/validator"
)

type bookingPayload struct {
	UserID string `validate:"required,uuid"               json:"userId"`
	Email  string `validate:"required,email"              json:"email"`
	Limit  int    `validate:"gte=0,lte=100"               json:"limit"`
	Role   string `validate:"oneof=ADMIN PROFESSIONAL REGISTERED_USER" json:"role"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingPayload
		expectError bool
	}{
		{
			name: "valid struct",
			data: &bookingPayload{
				UserID: "550e8400-e29b-41d4-a716-446655440000",
				Email:  "jane@example.com",
				Limit:  25,
				Role:   "REGISTERED_USER",
			},
		},
		{
			name: "missing required field",
			data: &bookingPayload{
				Email: "jane@example.com",
				Limit: 25,
				Role:  "REGISTERED_USER",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &bookingPayload{
				UserID: "550e8400-e29b-41d4-a716-446655440000",
				Email:  "invalid-email",
				Limit:  25,
				Role:   "REGISTERED_USER",
			},
			expectError: true,
		},
		{
			name: "limit out of range",
			data: &bookingPayload{
				UserID: "550e8400-e29b-41d4-a716-446655440000",
				Email:  "jane@example.com",
				Limit:  150,
				Role:   "REGISTERED_USER",
			},
			expectError: true,
		},
		{
			name: "invalid role",
			data: &bookingPayload{
				UserID: "550e8400-e29b-41d4-a716-446655440000",
				Email:  "jane@example.com",
				Limit:  25,
				Role:   "SUPERUSER",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:  "valid required string",
			field: "test",
			tag:   "required",
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:  "valid email",
			field: "test@example.com",
			tag:   "email",
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:  "valid uuid",
			field: "550e8400-e29b-41d4-a716-446655440000",
			tag:   "uuid",
		},
		{
			name:        "invalid uuid",
			field:       "not-a-uuid",
			tag:         "uuid",
			expectError: true,
		},
		{
			name:  "valid oneof",
			field: "ADMIN",
			tag:   "oneof=ADMIN PROFESSIONAL",
		},
		{
			name:        "invalid oneof",
			field:       "SUPERUSER",
			tag:         "oneof=ADMIN PROFESSIONAL",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"userId":"550e8400-e29b-41d4-a716-446655440000","email":"jane@example.com","limit":25,"role":"ADMIN"}`,
		},
		{
			name:        "valid JSON failing validation",
			jsonBody:    `{"userId":"550e8400-e29b-41d4-a716-446655440000","email":"invalid-email","limit":25,"role":"ADMIN"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"userId":"550e8400","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingPayload

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := validator.ValidateStruct(&bookingPayload{})
	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	if !strings.Contains(err.Error(), "required") {
		t.Errorf("expected descriptive error message containing 'required', got: %s", err.Error())
	}
}
