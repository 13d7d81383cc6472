package fieldset

import "errors"

var (
	// ErrEmptyDocument is returned for blank configuration documents.
	ErrEmptyDocument = errors.New("fieldset: document is empty")
	// ErrInvalidDocument is returned when a document is neither JSON nor YAML.
	ErrInvalidDocument = errors.New("fieldset: invalid JSON or YAML")
	// ErrMissingOptions is returned for select fields without options.
	ErrMissingOptions = errors.New("fieldset: select field requires options")
	// ErrOperationNotFound is returned when an OpenAPI document lacks the
	// requested operation.
	ErrOperationNotFound = errors.New("fieldset: operation not found")
	// ErrNoRequestSchema is returned when an operation has no usable request
	// body schema.
	ErrNoRequestSchema = errors.New("fieldset: operation has no request body schema")
)
