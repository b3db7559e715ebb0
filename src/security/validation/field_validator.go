// backend/src/security/validation/field_validator.go
package validation

import (
	"errors"
	"fmt"

	"github.com/username/prosper/backend/src/models"
	"github.com/username/prosper/backend/src/processors"
)

// ErrValidationFailed is the sentinel wrapped by every field validation
// error, so handlers can map the whole class to a 400 response.
var ErrValidationFailed = errors.New("validation failed")

// ValidateTransaction checks a transaction definition before it enters the
// canonical state. Invalid input is rejected locally with no state mutation.
func ValidateTransaction(t models.Transaction) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must be non-negative", ErrValidationFailed)
	}
	if t.Type != models.TypeIncome && t.Type != models.TypeExpense {
		return fmt.Errorf("%w: type must be income or expense", ErrValidationFailed)
	}
	if !t.Frequency.Valid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrValidationFailed, t.Frequency)
	}
	start, err := processors.ParseDate(t.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if t.EndDate != "" {
		end, err := processors.ParseDate(t.EndDate)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		if end.Before(start) {
			return fmt.Errorf("%w: end date must be on or after the start date", ErrValidationFailed)
		}
	}
	return nil
}

// ValidateVault checks a vault before it enters the canonical state.
// Balances may be negative (an overdrawn account is real cash state).
func ValidateVault(v models.Vault) error {
	if v.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	return nil
}

// ValidateJar checks a jar definition.
func ValidateJar(j models.Jar) error {
	if j.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if j.CurrentAmount.IsNegative() {
		return fmt.Errorf("%w: current amount must be non-negative", ErrValidationFailed)
	}
	if j.GoalAmount != nil && j.GoalAmount.IsNegative() {
		return fmt.Errorf("%w: goal amount must be non-negative", ErrValidationFailed)
	}
	if j.GoalDate != "" {
		if _, err := processors.ParseDate(j.GoalDate); err != nil {
			return fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
	}
	return nil
}
