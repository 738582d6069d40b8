package fieldz

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// tags is the shared go-playground validator instance used by tag rules.
var tags = validator.New()

// Chain combines rules into one validator. Rules run in order and the first
// failure wins, so put cheap, general checks (emptiness) before specific ones
// (format).
//
// Example:
//
//	email := fieldz.NewField("", fieldz.Chain(
//	    fieldz.Required("email cannot be empty"),
//	    fieldz.Email("email is not in correct format"),
//	))
func Chain[T any](rules ...ValidatorFunc[T]) ValidatorFunc[T] {
	return func(v T) error {
		for _, rule := range rules {
			if err := rule(v); err != nil {
				return err
			}
		}
		return nil
	}
}

// Required rejects the empty string.
func Required(message string) ValidatorFunc[string] {
	return func(v string) error {
		if v == "" {
			return errors.New(message)
		}
		return nil
	}
}

// Tag rejects values that fail a go-playground/validator tag such as
// "min=8" or "email". A malformed tag panics inside the validator, which the
// Field records as ErrValidatorFault.
func Tag[T any](tag, message string) ValidatorFunc[T] {
	return func(v T) error {
		err := tags.Var(v, tag)
		if err == nil {
			return nil
		}
		var failed validator.ValidationErrors
		if errors.As(err, &failed) {
			return errors.New(message)
		}
		return fmt.Errorf("tag %q: %w", tag, err)
	}
}

// Email rejects strings that do not look like an email address.
func Email(message string) ValidatorFunc[string] {
	return Tag[string]("email", message)
}

// MinLength rejects strings shorter than n characters.
func MinLength(n int, message string) ValidatorFunc[string] {
	return Tag[string](fmt.Sprintf("min=%d", n), message)
}

// EqualTo rejects values that differ from other's current value. Pass a
// field's Value method to tie two fields together, e.g. a password
// confirmation:
//
//	confirm := fieldz.NewField("", fieldz.EqualTo(password.Value, "passwords do not match"))
//
// The dependent field is not re-validated automatically when other changes;
// call ValidateNow on it.
func EqualTo[T comparable](other func() T, message string) ValidatorFunc[T] {
	return func(v T) error {
		if v != other() {
			return errors.New(message)
		}
		return nil
	}
}

// LooksLikeEmail reports whether s has the shape of an email address.
func LooksLikeEmail(s string) bool {
	return tags.Var(s, "email") == nil
}
