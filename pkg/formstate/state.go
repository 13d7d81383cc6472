package formstate

import (
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// MsgFormErrors is the form-level message shown after a failed submit.
const MsgFormErrors = "Please fix the errors before submitting"

// Outcome records what the last submit attempt produced.
type Outcome int

const (
	// OutcomeNone means no submit happened since the last change.
	OutcomeNone Outcome = iota
	// OutcomeSubmitted means the last submit had no errors.
	OutcomeSubmitted
	// OutcomeErrorsPresent means the last submit was blocked by errors.
	OutcomeErrorsPresent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeErrorsPresent:
		return "errors-present"
	default:
		return "none"
	}
}

// State is a snapshot of a form. Errors always reflects a full validation
// pass over Values; Touched and Submitted only gate what is displayed.
type State struct {
	Values    model.Values
	Errors    model.ErrorMap
	Touched   map[string]bool
	Submitted bool
	Outcome   Outcome
}

// Initial builds the starting state for v, seeded with prefill.
func Initial(v *validation.Validator, prefill model.Values) State {
	values := prefill.Clone()
	return State{
		Values:  values,
		Errors:  v.Form(values),
		Touched: make(map[string]bool),
	}
}

// VisibleError returns the error for name once the field was touched or a
// submit was attempted.
func (s State) VisibleError(name string) string {
	if !s.Touched[name] && !s.Submitted {
		return ""
	}
	return s.Errors[name]
}

// VisibleErrors returns every error the presenter should display.
func (s State) VisibleErrors() model.ErrorMap {
	out := make(model.ErrorMap)
	for name, msg := range s.Errors {
		if s.Touched[name] || s.Submitted {
			out[name] = msg
		}
	}
	return out
}

// CanSubmit reports whether the current values pass validation.
func (s State) CanSubmit() bool {
	return len(s.Errors) == 0
}

// FormError returns the form-level message, which only appears after a
// submit attempt that found errors.
func (s State) FormError() string {
	if s.Submitted && len(s.Errors) > 0 {
		return MsgFormErrors
	}
	return ""
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Values = s.Values.Clone()
	out.Errors = s.Errors.Clone()
	out.Touched = make(map[string]bool, len(s.Touched))
	for name, touched := range s.Touched {
		out.Touched[name] = touched
	}
	return out
}
