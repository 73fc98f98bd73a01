package service

import (
	"regexp"
	"time"

	"riskdesk/internal/errors"
)

var policyNumberRegex = regexp.MustCompile(`^[A-Z]{2,4}-\d{6,10}$`)

// PolicyValidator validates policy binding details on a client.
type PolicyValidator struct{}

// NewPolicyValidator creates a new policy validator.
func NewPolicyValidator() *PolicyValidator {
	return &PolicyValidator{}
}

// ValidatePolicy validates policy number format and the coverage period.
// A client with no policy details at all is valid: entities are often
// registered and scored before a policy is bound.
func (v *PolicyValidator) ValidatePolicy(policyNumber string, effective, expiry *time.Time) error {
	if policyNumber == "" && effective == nil && expiry == nil {
		return nil
	}

	// Once any detail is present, all of them must be.
	if policyNumber == "" || effective == nil || expiry == nil {
		return errors.ErrInvalidPolicy
	}

	if !policyNumberRegex.MatchString(policyNumber) {
		return errors.ErrInvalidPolicy
	}

	if !expiry.After(*effective) {
		return errors.ErrInvalidPolicy
	}

	// The coverage period must not already be over.
	if expiry.Before(time.Now()) {
		return errors.ErrInvalidPolicy
	}

	return nil
}
