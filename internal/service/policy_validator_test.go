package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"riskdesk/internal/errors"
)

func TestPolicyValidator_ValidatePolicy(t *testing.T) {
	validator := NewPolicyValidator()

	effective := time.Now().AddDate(0, -1, 0)
	expiry := time.Now().AddDate(1, 0, 0)
	pastExpiry := time.Now().AddDate(0, 0, -1)

	tests := []struct {
		name          string
		policyNumber  string
		effective     *time.Time
		expiry        *time.Time
		expectedError error
	}{
		{
			name:          "no policy details at all",
			policyNumber:  "",
			effective:     nil,
			expiry:        nil,
			expectedError: nil,
		},
		{
			name:          "valid policy",
			policyNumber:  "POL-123456",
			effective:     &effective,
			expiry:        &expiry,
			expectedError: nil,
		},
		{
			name:          "number without coverage period",
			policyNumber:  "POL-123456",
			effective:     nil,
			expiry:        nil,
			expectedError: errors.ErrInvalidPolicy,
		},
		{
			name:          "coverage period without number",
			policyNumber:  "",
			effective:     &effective,
			expiry:        &expiry,
			expectedError: errors.ErrInvalidPolicy,
		},
		{
			name:          "lowercase prefix",
			policyNumber:  "pol-123456",
			effective:     &effective,
			expiry:        &expiry,
			expectedError: errors.ErrInvalidPolicy,
		},
		{
			name:          "too few digits",
			policyNumber:  "POL-123",
			effective:     &effective,
			expiry:        &expiry,
			expectedError: errors.ErrInvalidPolicy,
		},
		{
			name:          "expiry before effective",
			policyNumber:  "POL-123456",
			effective:     &expiry,
			expiry:        &effective,
			expectedError: errors.ErrInvalidPolicy,
		},
		{
			name:          "coverage period already over",
			policyNumber:  "POL-123456",
			effective:     &effective,
			expiry:        &pastExpiry,
			expectedError: errors.ErrInvalidPolicy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePolicy(tt.policyNumber, tt.effective, tt.expiry)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
