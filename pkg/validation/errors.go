package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern signals a descriptor pattern that does not compile.
	ErrInvalidPattern = errors.New("validation: invalid pattern")
	// ErrMissingName signals a descriptor without a name.
	ErrMissingName = errors.New("validation: field name is required")
	// ErrDuplicateField signals two descriptors sharing a name.
	ErrDuplicateField = errors.New("validation: duplicate field name")
)

// FieldError is a configuration error tied to a single descriptor.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FieldErrors extracts every *FieldError carried by err, including those
// combined through errors.Join.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if fe, ok := e.(*FieldError); ok {
			out = append(out, fe)
			return
		}
		switch wrapped := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range wrapped.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(wrapped.Unwrap())
		}
	}
	walk(err)
	return out
}

func patternError(field, source string, cause error) error {
	return &FieldError{
		Field: field,
		Err:   fmt.Errorf("%w %q: %w", ErrInvalidPattern, source, cause),
	}
}
