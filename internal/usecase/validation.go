package usecase

import (
	"fmt"
	"strings"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation is presence checks only, done before any network call; a
// failed check means the request is never sent.

func ValidateSaleInput(input SaleInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.TrainerID) == "" {
		errors = append(errors, ValidationError{"trainer_id", "please select a trainer"})
	}

	return errors
}

func ValidateLeadInput(input LeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.TrainerID) == "" {
		errors = append(errors, ValidationError{"trainer_id", "please select a trainer"})
	}
	if strings.TrimSpace(input.BuyerName) == "" {
		errors = append(errors, ValidationError{"buyer_name", "please enter buyer name"})
	}
	if input.Status != "" && !isValidLeadStatus(input.Status) {
		errors = append(errors, ValidationError{"status", "must be new, converted or lost"})
	}

	return errors
}

func ValidateTrainerInput(input TrainerInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "please enter a trainer name"})
	}

	return errors
}

func isValidLeadStatus(status string) bool {
	switch status {
	case entity.LeadStatusNew, entity.LeadStatusConverted, entity.LeadStatusLost:
		return true
	}
	return false
}

// FirstValidationMessage flattens a validation result into the blocking
// alert the pages show.
func FirstValidationMessage(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Message
}
