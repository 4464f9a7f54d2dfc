package habits

import (
	"errors"
	"fmt"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrForbidden     = errors.New("habit not owned by user")
	ErrValidation    = errors.New("validation failed")
	ErrStore         = errors.New("habit store failure")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
