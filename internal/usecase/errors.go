package usecase

import (
	"errors"
	"fmt"

	"sports-booking/pkg/utils"

	"github.com/google/uuid"
)

// Validation
var (
	ErrValidation  = errors.New("validation failed")
	ErrSlotOverlap = errors.New("time slot overlaps another slot")
)

// Not found
var (
	ErrGameNotFound    = errors.New("game not found")
	ErrSlotNotFound    = errors.New("time slot not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
)

// Conflict
var (
	ErrSlotNotAvailable   = errors.New("slot not available")
	ErrGameHasBookedSlots = errors.New("cannot delete game with active bookings")

	// ErrBookingAlreadyCancelled is returned together with the booking; callers
	// treat it as a successful no-op.
	ErrBookingAlreadyCancelled = errors.New("booking already cancelled")
)

var ErrForbidden = errors.New("forbidden")

// ValidationError carries per-field messages for the client.
type ValidationError struct {
	Fields  map[string]string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrValidation.Error() + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// validate runs the struct tags of a request DTO
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ValidationError{
			Message: fmt.Sprintf("invalid %s %q", field, raw),
			Fields:  map[string]string{field: "Must be a valid UUID"},
		}
	}
	return id, nil
}
