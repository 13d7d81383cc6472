// Package validation implements the form validation engine.
//
// ValidateField maps one descriptor and one raw value to a user-facing
// message, where "" means valid. Rules run in a fixed order and the first
// failure wins: the required check, then the kind rules held by a Registry
// (full name, email, password, age, phone, checkbox acceptance, select
// options), then the generic minLength/maxLength/pattern/number constraints.
// ValidateForm runs ValidateField across a descriptor list and returns a
// sparse model.ErrorMap.
//
// Bad user input is never an error; it is the message. The only error the
// engine produces is a configuration error (an unparseable pattern, a missing
// or duplicated field name), reported as a *FieldError naming the offending
// descriptor. New compiles a descriptor list once so those errors surface at
// load time, and the resulting *Validator is immutable and safe for
// concurrent use.
package validation
