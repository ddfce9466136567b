// Package validator wraps go-playground/validator behind a tiny API that
// returns joined, human-readable errors rooted at a sentinel. Call Init once
// during startup (tests may call it repeatedly; it is idempotent).
package validator

import (
	"errors"
	"fmt"
	"sync"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidation is the root of every error chain returned by Validate, so
// callers can classify failures with errors.Is.
var ErrValidation = errors.New("struct validation failed")

var (
	validate *gvalidator.Validate
	initOnce sync.Once
)

// Init builds the singleton validator instance.
func Init() {
	initOnce.Do(func() {
		validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
	})
}

// Validate checks the struct's `validate` tags. On failure it returns
// ErrValidation joined with one formatted message per offending field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors gvalidator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	errs := []error{ErrValidation}
	for _, fe := range fieldErrors {
		errs = append(errs, fmt.Errorf("'%s': value '%v' violates the '%s' rule", fe.Field(), fe.Value(), fe.Tag()))
	}

	return errors.Join(errs...)
}
