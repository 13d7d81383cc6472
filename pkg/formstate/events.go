package formstate

import (
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Event is a discrete interaction applied through Reduce.
type Event interface {
	apply(v *validation.Validator, s State) State
}

// Change records a new value for a field.
type Change struct {
	Name  string
	Value any
}

// Blur marks a field as touched and normalises its value.
type Blur struct {
	Name string
}

// Submit marks every field as touched and records the outcome.
type Submit struct{}

// Reset returns to the initial state seeded with Values.
type Reset struct {
	Values model.Values
}

// Reduce applies ev to s and returns the new state. s is not modified.
func Reduce(v *validation.Validator, s State, ev Event) State {
	if ev == nil {
		return s.Clone()
	}
	return ev.apply(v, s.Clone())
}

func (e Change) apply(v *validation.Validator, s State) State {
	s.Values[e.Name] = e.Value
	s.Errors = v.Form(s.Values)
	s.Outcome = OutcomeNone
	return s
}

func (e Blur) apply(v *validation.Validator, s State) State {
	s.Touched[e.Name] = true
	if value, ok := s.Values[e.Name]; ok {
		s.Values[e.Name] = v.Normalize(e.Name, value)
	}
	s.Errors = v.Form(s.Values)
	s.Outcome = OutcomeNone
	return s
}

func (Submit) apply(v *validation.Validator, s State) State {
	for _, field := range v.Fields() {
		s.Touched[field.Name] = true
	}
	s.Submitted = true
	s.Errors = v.Form(s.Values)
	if len(s.Errors) == 0 {
		s.Outcome = OutcomeSubmitted
	} else {
		s.Outcome = OutcomeErrorsPresent
	}
	return s
}

func (e Reset) apply(v *validation.Validator, _ State) State {
	return Initial(v, e.Values)
}
