package validation

import (
	"errors"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// ValidateForm validates every descriptor against data and returns the
// fields that failed. Missing keys are validated as "". A malformed
// descriptor does not stop the remaining fields from being checked; its
// *FieldError is joined into the returned error and the field is left out of
// the map.
func ValidateForm(fields []model.Field, data model.Values) (model.ErrorMap, error) {
	errs := make(model.ErrorMap)
	var configErrs []error
	for _, field := range fields {
		msg, err := ValidateField(field, data.Text(field.Name))
		if err != nil {
			configErrs = append(configErrs, err)
			continue
		}
		if msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs, errors.Join(configErrs...)
}
